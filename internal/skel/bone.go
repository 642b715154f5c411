package skel

import (
	"fmt"

	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// Transform mode indices, matching the order the original converter
// assigns them (normal is also the default when "transform" is absent).
const (
	TransformNormal                 = 0
	TransformOnlyTranslation        = 1
	TransformNoRotationOrReflection = 2
	TransformNoScale                = 3
	TransformNoScaleOrReflection    = 4
)

// Bone is one entry of the skeleton's bone hierarchy.
type Bone struct {
	Name     string
	Parent   int // -1 for the root bone
	Mode     int
	Rotation float32
	X, Y     float32
	ScaleX   float32
	ScaleY   float32
	ShearX   float32
	ShearY   float32
	Length   float32
}

func transformMode(s string) int {
	switch s {
	case "onlyTranslation":
		return TransformOnlyTranslation
	case "noRotationOrReflection":
		return TransformNoRotationOrReflection
	case "noScale":
		return TransformNoScale
	case "noScaleOrReflection":
		return TransformNoScaleOrReflection
	default:
		return TransformNormal
	}
}

// ResolveBones materializes one Bone per entry of the "bones" array,
// preserving input order (the first bone is always the root), then
// resolves each bone's "parent" name to an index in a second pass. A
// parent name that matches no bone in the array is an error; whether the
// parent is declared before the child is not checked.
func ResolveBones(bonesNode jsontree.Node) ([]Bone, error) {
	entries := bonesNode.Array()
	bones := make([]Bone, len(entries))
	parentNames := make([]string, len(entries))
	for i, n := range entries {
		bones[i] = Bone{
			Name:     n.Get("name").String(""),
			Parent:   -1,
			Mode:     transformMode(n.Get("transform").String("normal")),
			Rotation: n.Get("rotation").Float32(0),
			X:        n.Get("x").Float32(0),
			Y:        n.Get("y").Float32(0),
			ScaleX:   n.Get("scaleX").Float32(1),
			ScaleY:   n.Get("scaleY").Float32(1),
			ShearX:   n.Get("shearX").Float32(0),
			ShearY:   n.Get("shearY").Float32(0),
			Length:   n.Get("length").Float32(0),
		}
		parentNames[i] = n.Get("parent").String("")
	}
	names := boneNames(bones)
	for i, parentName := range parentNames {
		if parentName == "" {
			continue
		}
		idx, ok := indexOf(names, parentName)
		if !ok {
			return nil, fmt.Errorf("skel: bone %q references unknown parent %q", bones[i].Name, parentName)
		}
		bones[i].Parent = idx
	}
	return bones, nil
}

// WriteBones emits the bone count followed by each bone record: name,
// then (for every bone after the root) its parent index as a positive
// varint, then its numeric locals, then its transform mode.
func WriteBones(s *wire.Sink, bones []Bone) {
	s.Varint(uint32(len(bones)), true)
	for i, b := range bones {
		s.String(b.Name, true)
		if i > 0 {
			s.Varint(uint32(b.Parent), true)
		}
		s.Float(b.Rotation)
		s.Float(b.X)
		s.Float(b.Y)
		s.Float(b.ScaleX)
		s.Float(b.ScaleY)
		s.Float(b.ShearX)
		s.Float(b.ShearY)
		s.Float(b.Length)
		s.Varint(uint32(b.Mode), true)
	}
}
