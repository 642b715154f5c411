package skel

import (
	"errors"
	"fmt"

	"github.com/waozixyz/spine2krb/internal/atlas"
	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// ErrNoDefaultSkin is returned by WriteSkins when "skins" is missing,
// empty, or has no "default" entry — distinguished from other skin
// errors so the driver can map it to its own error code.
var ErrNoDefaultSkin = errors.New("skel: no default skin")

// Attachment type byte values.
const (
	AttachmentRegion      = 0
	AttachmentBoundingBox = 1
	AttachmentMesh        = 2
	AttachmentLinkedMesh  = 3
	AttachmentPath        = 4
	AttachmentPoint       = 5
	AttachmentClipping    = 6
)

func attachmentType(s string) int {
	switch s {
	case "mesh":
		return AttachmentMesh
	case "linkedmesh":
		return AttachmentLinkedMesh
	case "boundingbox":
		return AttachmentBoundingBox
	case "path":
		return AttachmentPath
	case "point":
		return AttachmentPoint
	case "clipping":
		return AttachmentClipping
	default:
		return AttachmentRegion
	}
}

// isAtlasFiltered reports whether an attachment type is subject to atlas
// region filtering. Only region, mesh, and linked-mesh attachments back a
// packed texture region; every other type is always kept.
func isAtlasFiltered(typ int) bool {
	return typ == AttachmentRegion || typ == AttachmentMesh || typ == AttachmentLinkedMesh
}

// WriteSkins emits the default skin (unnamed, first) followed by every
// named skin, returning the published skin-name table ("default" first,
// if present, then each named skin in input order). A skins object with
// no "default" entry is rejected: see Open Question 4 in DESIGN.md.
func WriteSkins(s *wire.Sink, skinsRaw []byte, slots []string, idx atlas.Index) ([]string, error) {
	entries, err := jsontree.OrderedEntries(skinsRaw)
	if err != nil {
		return nil, fmt.Errorf("skel: skins: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: \"skins\" is missing or empty", ErrNoDefaultSkin)
	}

	var defaultEntry *jsontree.Entry
	named := make([]jsontree.Entry, 0, len(entries))
	for i := range entries {
		if entries[i].Key == "default" {
			defaultEntry = &entries[i]
			continue
		}
		named = append(named, entries[i])
	}
	if defaultEntry == nil {
		return nil, fmt.Errorf("%w: \"skins\" has no \"default\" entry", ErrNoDefaultSkin)
	}

	names := make([]string, 0, len(entries))
	if err := writeSkin(s, defaultEntry.Raw, slots, idx); err != nil {
		return nil, fmt.Errorf("skel: default skin: %w", err)
	}
	names = append(names, "default")

	s.Varint(uint32(len(named)), true)
	for _, entry := range named {
		s.String(entry.Key, true)
		if err := writeSkin(s, entry.Raw, slots, idx); err != nil {
			return nil, fmt.Errorf("skel: skin %q: %w", entry.Key, err)
		}
		names = append(names, entry.Key)
	}
	return names, nil
}

// writeSkin emits one skin's slot-count prefix followed by, for each slot
// entry in input order, the slot index and its atlas-filtered attachment
// list.
func writeSkin(s *wire.Sink, skinRaw []byte, slots []string, idx atlas.Index) error {
	slotEntries, err := jsontree.OrderedEntries(skinRaw)
	if err != nil {
		return err
	}
	s.Varint(uint32(len(slotEntries)), true)
	for _, slotEntry := range slotEntries {
		slotIdx, ok := indexOf(slots, slotEntry.Key)
		if !ok {
			return fmt.Errorf("references unknown slot %q", slotEntry.Key)
		}
		s.Varint(uint32(slotIdx), true)

		attachmentEntries, err := jsontree.OrderedEntries(slotEntry.Raw)
		if err != nil {
			return err
		}
		valid := make([]jsontree.Entry, 0, len(attachmentEntries))
		for _, a := range attachmentEntries {
			typeStr := a.Node.Get("type").String("region")
			typ := attachmentType(typeStr)
			if idx.Enabled() && isAtlasFiltered(typ) {
				actualName := a.Node.Get("name").String(a.Key)
				if !idx.Has(actualName) {
					continue
				}
			}
			valid = append(valid, a)
		}

		s.Varint(uint32(len(valid)), true)
		for _, a := range valid {
			if err := writeAttachment(s, a.Key, a.Node, slots); err != nil {
				return fmt.Errorf("attachment %q: %w", a.Key, err)
			}
		}
	}
	return nil
}

func writeAttachment(s *wire.Sink, placeholder string, n jsontree.Node, slots []string) error {
	actualName := n.Get("name").String(placeholder)
	s.String(placeholder, true)
	s.String(actualName, true)

	typ := attachmentType(n.Get("type").String("region"))
	s.Byte(byte(typ))

	path, pathOK := n.Get("path").StringOK()

	switch typ {
	case AttachmentRegion:
		s.String(path, pathOK)
		s.Float(n.Get("rotation").Float32(0))
		s.Float(n.Get("x").Float32(0))
		s.Float(n.Get("y").Float32(0))
		s.Float(n.Get("scaleX").Float32(1))
		s.Float(n.Get("scaleY").Float32(1))
		s.Float(n.Get("width").Float32(32))
		s.Float(n.Get("height").Float32(32))
		color, colorOK := n.Get("color").StringOK()
		return s.Color(color, colorOK)

	case AttachmentBoundingBox:
		vertexCount := n.Get("vertexCount").Int(0) << 1
		s.Varint(uint32(vertexCount), true)
		writeVertices(s, n.Get("vertices"), vertexCount)
		return nil

	case AttachmentMesh:
		s.String(path, pathOK)
		color, colorOK := n.Get("color").StringOK()
		if err := s.Color(color, colorOK); err != nil {
			return err
		}
		uvs := n.Get("uvs").Array()
		verticesLength := len(uvs)
		s.Varint(uint32(verticesLength>>1), true)
		for _, uv := range uvs {
			s.Float(uv.Float32(0))
		}
		triangles := n.Get("triangles").Array()
		s.Varint(uint32(len(triangles)), true)
		for _, tri := range triangles {
			v := uint16(tri.Int(0))
			s.Byte(byte(v >> 8))
			s.Byte(byte(v))
		}
		writeVertices(s, n.Get("vertices"), verticesLength)
		s.Varint(uint32(n.Get("hull").Int(0)>>1), true)
		return nil

	case AttachmentLinkedMesh:
		s.String(path, pathOK)
		color, colorOK := n.Get("color").StringOK()
		if err := s.Color(color, colorOK); err != nil {
			return err
		}
		skin, skinOK := n.Get("skin").StringOK()
		s.String(skin, skinOK)
		parent, parentOK := n.Get("parent").StringOK()
		s.String(parent, parentOK)
		s.Bool(n.Get("deform").Int(1) != 0)
		return nil

	case AttachmentPath:
		s.Bool(n.Get("closed").Bool(false))
		s.Bool(n.Get("constantSpeed").Bool(false))
		vertexCount := n.Get("vertexCount").Int(0)
		s.Varint(uint32(vertexCount), true)
		writeVertices(s, n.Get("vertices"), vertexCount<<1)
		for _, length := range n.Get("lengths").Array() {
			s.Float(length.Float32(0))
		}
		return nil

	case AttachmentPoint:
		s.Float(n.Get("x").Float32(0))
		s.Float(n.Get("y").Float32(0))
		s.Float(n.Get("rotation").Float32(0))
		return nil

	case AttachmentClipping:
		end, endOK := n.Get("end").StringOK()
		endIdx := 0
		if endOK {
			if i, ok := indexOf(slots, end); ok {
				endIdx = i
			}
		}
		s.Varint(uint32(endIdx), true)
		vertexCount := n.Get("vertexCount").Int(0)
		s.Varint(uint32(vertexCount), true)
		writeVertices(s, n.Get("vertices"), vertexCount<<1)
		return nil
	}
	return nil
}

// writeVertices emits a vertex block, choosing between the plain shape
// (the raw array length matches expectedLength) and the bone-weighted
// shape (it doesn't) exactly as the decoder expects.
func writeVertices(s *wire.Sink, verticesNode jsontree.Node, expectedLength int) {
	raw := verticesNode.Array()
	if len(raw) == 0 {
		return
	}
	floats := make([]float32, len(raw))
	for i, v := range raw {
		floats[i] = v.Float32(0)
	}

	if len(floats) == expectedLength {
		s.Bool(false)
		for _, f := range floats {
			s.Float(f)
		}
		return
	}

	s.Bool(true)
	for i := 0; i < len(floats); {
		boneCount := int(floats[i])
		i++
		s.Varint(uint32(boneCount), true)
		for n := 0; n < boneCount; n++ {
			s.Varint(uint32(floats[i]), true)
			s.Float(floats[i+1])
			s.Float(floats[i+2])
			s.Float(floats[i+3])
			i += 4
		}
	}
}
