package skel

import (
	"fmt"

	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// Path constraint mode indices.
const (
	PathPositionFixed   = 0
	PathPositionPercent = 1

	PathSpacingLength  = 0
	PathSpacingFixed   = 1
	PathSpacingPercent = 2

	PathRotateTangent    = 0
	PathRotateChain      = 1
	PathRotateChainScale = 2
)

// writeBoneRefs resolves a JSON array of bone-name strings against bones,
// writing each resolved index as it goes (IK, transform, and path
// constraints all reference an ordered list of affected bones the same
// way).
func writeBoneRefs(s *wire.Sink, bonesArray jsontree.Node, bones []Bone) error {
	refs := bonesArray.Array()
	s.Varint(uint32(len(refs)), true)
	names := boneNames(bones)
	for _, ref := range refs {
		name, _ := ref.StringOK()
		idx, ok := indexOf(names, name)
		if !ok {
			return fmt.Errorf("skel: constraint references unknown bone %q", name)
		}
		s.Varint(uint32(idx), true)
	}
	return nil
}

// WriteIK emits the IK constraint list, returning the published IK-name
// table.
func WriteIK(s *wire.Sink, ikNode jsontree.Node, bones []Bone) ([]string, error) {
	entries := ikNode.Array()
	s.Varint(uint32(len(entries)), true)
	names := make([]string, len(entries))
	boneNameList := boneNames(bones)
	for i, n := range entries {
		name := n.Get("name").String("")
		names[i] = name
		s.String(name, true)
		s.Varint(uint32(n.Get("order").Int(0)), true)

		bonesArray := n.Get("bones")
		if !bonesArray.Has() {
			return nil, fmt.Errorf("skel: IK constraint %q is missing \"bones\"", name)
		}
		if err := writeBoneRefs(s, bonesArray, bones); err != nil {
			return nil, fmt.Errorf("skel: IK constraint %q: %w", name, err)
		}

		targetName := n.Get("target").String("")
		targetIdx, ok := indexOf(boneNameList, targetName)
		if !ok {
			return nil, fmt.Errorf("skel: IK constraint %q references unknown target bone %q", name, targetName)
		}
		s.Varint(uint32(targetIdx), true)

		s.Float(n.Get("mix").Float32(1))
		if n.Get("bendPositive").Bool(true) {
			s.Float(1)
		} else {
			s.Float(-1)
		}
	}
	return names, nil
}

// WriteTransform emits the transform constraint list, returning the
// published transform-name table.
func WriteTransform(s *wire.Sink, transformNode jsontree.Node, bones []Bone) ([]string, error) {
	entries := transformNode.Array()
	s.Varint(uint32(len(entries)), true)
	names := make([]string, len(entries))
	boneNameList := boneNames(bones)
	for i, n := range entries {
		name := n.Get("name").String("")
		names[i] = name
		s.String(name, true)
		s.Varint(uint32(n.Get("order").Int(0)), true)

		bonesArray := n.Get("bones")
		if !bonesArray.Has() {
			return nil, fmt.Errorf("skel: transform constraint %q is missing \"bones\"", name)
		}
		if err := writeBoneRefs(s, bonesArray, bones); err != nil {
			return nil, fmt.Errorf("skel: transform constraint %q: %w", name, err)
		}

		targetName := n.Get("target").String("")
		targetIdx, ok := indexOf(boneNameList, targetName)
		if !ok {
			return nil, fmt.Errorf("skel: transform constraint %q references unknown target bone %q", name, targetName)
		}
		s.Varint(uint32(targetIdx), true)

		s.Bool(n.Get("local").Bool(false))
		s.Bool(n.Get("relative").Bool(false))

		s.Float(n.Get("rotation").Float32(0))
		s.Float(n.Get("x").Float32(0))
		s.Float(n.Get("y").Float32(0))
		s.Float(n.Get("scaleX").Float32(0))
		s.Float(n.Get("scaleY").Float32(0))
		s.Float(n.Get("shearY").Float32(0))
		s.Float(n.Get("rotateMix").Float32(1))
		s.Float(n.Get("translateMix").Float32(1))
		s.Float(n.Get("scaleMix").Float32(1))
		s.Float(n.Get("shearMix").Float32(1))
	}
	return names, nil
}

func pathPositionMode(s string) int {
	if s == "fixed" {
		return PathPositionFixed
	}
	return PathPositionPercent
}

func pathSpacingMode(s string) int {
	switch s {
	case "fixed":
		return PathSpacingFixed
	case "percent":
		return PathSpacingPercent
	default:
		return PathSpacingLength
	}
}

func pathRotateMode(s string) int {
	switch s {
	case "chain":
		return PathRotateChain
	case "chainScale":
		return PathRotateChainScale
	default:
		return PathRotateTangent
	}
}

// WritePath emits the path constraint list, returning the published
// path-name table. Unlike IK/transform, a path constraint's target is a
// slot, not a bone.
func WritePath(s *wire.Sink, pathNode jsontree.Node, bones []Bone, slots []string) ([]string, error) {
	entries := pathNode.Array()
	s.Varint(uint32(len(entries)), true)
	names := make([]string, len(entries))
	for i, n := range entries {
		name := n.Get("name").String("")
		names[i] = name
		s.String(name, true)
		s.Varint(uint32(n.Get("order").Int(0)), true)

		bonesArray := n.Get("bones")
		if !bonesArray.Has() {
			return nil, fmt.Errorf("skel: path constraint %q is missing \"bones\"", name)
		}
		if err := writeBoneRefs(s, bonesArray, bones); err != nil {
			return nil, fmt.Errorf("skel: path constraint %q: %w", name, err)
		}

		targetName := n.Get("target").String("")
		targetIdx, ok := indexOf(slots, targetName)
		if !ok {
			return nil, fmt.Errorf("skel: path constraint %q references unknown target slot %q", name, targetName)
		}
		s.Varint(uint32(targetIdx), true)

		s.Varint(uint32(pathPositionMode(n.Get("positionMode").String("percent"))), true)
		s.Varint(uint32(pathSpacingMode(n.Get("spacingMode").String("length"))), true)
		s.Varint(uint32(pathRotateMode(n.Get("rotateMode").String("tangent"))), true)

		s.Float(n.Get("rotation").Float32(0))
		s.Float(n.Get("position").Float32(0))
		s.Float(n.Get("spacing").Float32(0))
		s.Float(n.Get("rotateMix").Float32(1))
		s.Float(n.Get("translateMix").Float32(1))
	}
	return names, nil
}
