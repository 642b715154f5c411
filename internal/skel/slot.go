package skel

import (
	"fmt"

	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// Blend mode indices, matching the order the original converter assigns
// them.
const (
	BlendNormal   = 0
	BlendAdditive = 1
	BlendMultiply = 2
	BlendScreen   = 3
)

func blendMode(s string) int {
	switch s {
	case "additive":
		return BlendAdditive
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	default:
		return BlendNormal
	}
}

// WriteSlots emits the slot count followed by each slot record, resolving
// each slot's owning bone by name against bones. It returns the ordered
// slot-name table the slots publish, consulted by later constraint, skin,
// and animation writers.
func WriteSlots(s *wire.Sink, slotsNode jsontree.Node, bones []Bone) ([]string, error) {
	entries := slotsNode.Array()
	s.Varint(uint32(len(entries)), true)
	boneNameList := boneNames(bones)
	names := make([]string, len(entries))
	for i, n := range entries {
		name := n.Get("name").String("")
		names[i] = name
		s.String(name, true)

		boneName := n.Get("bone").String("")
		boneIdx, ok := indexOf(boneNameList, boneName)
		if !ok {
			return nil, fmt.Errorf("skel: slot %q references unknown bone %q", name, boneName)
		}
		s.Varint(uint32(boneIdx), true)

		color, colorOK := n.Get("color").StringOK()
		if err := s.Color(color, colorOK); err != nil {
			return nil, fmt.Errorf("skel: slot %q: %w", name, err)
		}
		dark, darkOK := n.Get("dark").StringOK()
		if err := s.Color(dark, darkOK); err != nil {
			return nil, fmt.Errorf("skel: slot %q: %w", name, err)
		}

		s.String(n.Get("attachment").String(""), true)
		s.Varint(uint32(blendMode(n.Get("blend").String(""))), true)
	}
	return names, nil
}
