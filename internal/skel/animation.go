package skel

import (
	"encoding/json"
	"fmt"

	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// Curve tags.
const (
	CurveLinear  = 0
	CurveStepped = 1
	CurveBezier  = 2
)

// Slot timeline type bytes.
const (
	SlotTimelineAttachment = 0
	SlotTimelineColor      = 1
	SlotTimelineTwoColor   = 2
)

// Bone timeline type bytes.
const (
	BoneTimelineRotate    = 0
	BoneTimelineTranslate = 1
	BoneTimelineScale     = 2
	BoneTimelineShear     = 3
)

// Path timeline type bytes.
const (
	PathTimelinePosition = 0
	PathTimelineSpacing  = 1
	PathTimelineMix      = 2
)

// WriteAnimation emits one animation's seven timeline families plus its
// event timeline, in the fixed order the format requires, resolving every
// cross-reference against t.
func WriteAnimation(s *wire.Sink, animRaw json.RawMessage, t *Tables) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(animRaw, &fields); err != nil {
		return fmt.Errorf("skel: animation: %w", err)
	}

	if err := writeSlotTimelines(s, fields["slots"], t.Slots); err != nil {
		return err
	}
	if err := writeBoneTimelines(s, fields["bones"], t.Bones); err != nil {
		return err
	}
	if err := writeIKTimelines(s, fields["ik"], t.IK); err != nil {
		return err
	}
	if err := writeTransformTimelines(s, fields["transform"], t.Transform); err != nil {
		return err
	}
	if err := writePathTimelines(s, fields["paths"], t.Path); err != nil {
		return err
	}
	if err := writeDeformTimelines(s, fields["deform"], t.Skins, t.Slots); err != nil {
		return err
	}
	if err := writeDrawOrderTimeline(s, fields["drawOrder"], t.Slots); err != nil {
		return err
	}
	if err := writeEventTimeline(s, fields["events"], t.Events); err != nil {
		return err
	}
	return nil
}

func framesOf(raw json.RawMessage) ([]jsontree.Node, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	n, err := jsontree.Decode(raw)
	if err != nil {
		return nil, err
	}
	return n.Array(), nil
}

// writeCurve appends the curve tag for frame index i within frames. The
// last frame gets no tag at all. Otherwise: tag 1 (stepped) for the
// literal string "stepped"; tag 2 (bezier) plus four control-point floats
// for a 4-element array; tag 0 (linear) for anything else, including no
// curve field.
func writeCurve(s *wire.Sink, frames []jsontree.Node, i int) {
	if i == len(frames)-1 {
		return
	}
	curve := frames[i].Get("curve")
	if str, ok := curve.StringOK(); ok && str == "stepped" {
		s.Byte(CurveStepped)
		return
	}
	if arr := curve.Array(); len(arr) == 4 {
		s.Byte(CurveBezier)
		for _, v := range arr {
			s.Float(v.Float32(0))
		}
		return
	}
	s.Byte(CurveLinear)
}

func writeSlotTimelines(s *wire.Sink, raw json.RawMessage, slots []string) error {
	entries, err := jsontree.OrderedEntries(raw)
	if err != nil {
		return fmt.Errorf("skel: animation slots: %w", err)
	}
	s.Varint(uint32(len(entries)), true)
	for _, entry := range entries {
		slotIdx, ok := indexOf(slots, entry.Key)
		if !ok {
			return fmt.Errorf("skel: animation references unknown slot %q", entry.Key)
		}
		s.Varint(uint32(slotIdx), true)

		timelines, err := jsontree.OrderedEntries(entry.Raw)
		if err != nil {
			return err
		}
		s.Varint(uint32(len(timelines)), true)
		for _, tl := range timelines {
			frames, err := framesOf(tl.Raw)
			if err != nil {
				return err
			}
			switch tl.Key {
			case "attachment":
				s.Byte(SlotTimelineAttachment)
				s.Varint(uint32(len(frames)), true)
				for _, f := range frames {
					s.Float(f.Get("time").Float32(0))
					s.String(f.Get("name").String(""), true)
				}
			case "color":
				s.Byte(SlotTimelineColor)
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					color, colorOK := f.Get("color").StringOK()
					if err := s.Color(color, colorOK); err != nil {
						return err
					}
					writeCurve(s, frames, i)
				}
			case "twoColor":
				s.Byte(SlotTimelineTwoColor)
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					light, lightOK := f.Get("light").StringOK()
					if err := s.Color(light, lightOK); err != nil {
						return err
					}
					dark, darkOK := f.Get("dark").StringOK()
					if err := s.Color(dark, darkOK); err != nil {
						return err
					}
					writeCurve(s, frames, i)
				}
			default:
				return fmt.Errorf("skel: slot %q has unknown timeline %q", entry.Key, tl.Key)
			}
		}
	}
	return nil
}

func writeBoneTimelines(s *wire.Sink, raw json.RawMessage, bones []Bone) error {
	entries, err := jsontree.OrderedEntries(raw)
	if err != nil {
		return fmt.Errorf("skel: animation bones: %w", err)
	}
	s.Varint(uint32(len(entries)), true)
	names := boneNames(bones)
	for _, entry := range entries {
		boneIdx, ok := indexOf(names, entry.Key)
		if !ok {
			return fmt.Errorf("skel: animation references unknown bone %q", entry.Key)
		}
		s.Varint(uint32(boneIdx), true)

		timelines, err := jsontree.OrderedEntries(entry.Raw)
		if err != nil {
			return err
		}
		s.Varint(uint32(len(timelines)), true)
		for _, tl := range timelines {
			frames, err := framesOf(tl.Raw)
			if err != nil {
				return err
			}
			switch tl.Key {
			case "rotate":
				s.Byte(BoneTimelineRotate)
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					s.Float(f.Get("angle").Float32(0))
					writeCurve(s, frames, i)
				}
			case "translate", "scale", "shear":
				switch tl.Key {
				case "translate":
					s.Byte(BoneTimelineTranslate)
				case "scale":
					s.Byte(BoneTimelineScale)
				case "shear":
					s.Byte(BoneTimelineShear)
				}
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					s.Float(f.Get("x").Float32(0))
					s.Float(f.Get("y").Float32(0))
					writeCurve(s, frames, i)
				}
			default:
				return fmt.Errorf("skel: bone %q has unknown timeline %q", entry.Key, tl.Key)
			}
		}
	}
	return nil
}

func writeIKTimelines(s *wire.Sink, raw json.RawMessage, ik []string) error {
	entries, err := jsontree.OrderedEntries(raw)
	if err != nil {
		return fmt.Errorf("skel: animation ik: %w", err)
	}
	s.Varint(uint32(len(entries)), true)
	for _, entry := range entries {
		idx, ok := indexOf(ik, entry.Key)
		if !ok {
			return fmt.Errorf("skel: animation references unknown IK constraint %q", entry.Key)
		}
		s.Varint(uint32(idx), true)

		frames, err := framesOf(entry.Raw)
		if err != nil {
			return err
		}
		s.Varint(uint32(len(frames)), true)
		for i, f := range frames {
			s.Float(f.Get("time").Float32(0))
			s.Float(f.Get("mix").Float32(1))
			if f.Get("bendPositive").Bool(true) {
				s.Byte(1)
			} else {
				s.Byte(0xFF)
			}
			writeCurve(s, frames, i)
		}
	}
	return nil
}

func writeTransformTimelines(s *wire.Sink, raw json.RawMessage, transform []string) error {
	entries, err := jsontree.OrderedEntries(raw)
	if err != nil {
		return fmt.Errorf("skel: animation transform: %w", err)
	}
	s.Varint(uint32(len(entries)), true)
	for _, entry := range entries {
		idx, ok := indexOf(transform, entry.Key)
		if !ok {
			return fmt.Errorf("skel: animation references unknown transform constraint %q", entry.Key)
		}
		s.Varint(uint32(idx), true)

		frames, err := framesOf(entry.Raw)
		if err != nil {
			return err
		}
		s.Varint(uint32(len(frames)), true)
		for i, f := range frames {
			s.Float(f.Get("time").Float32(0))
			s.Float(f.Get("rotateMix").Float32(1))
			s.Float(f.Get("translateMix").Float32(1))
			s.Float(f.Get("scaleMix").Float32(1))
			s.Float(f.Get("shearMix").Float32(1))
			writeCurve(s, frames, i)
		}
	}
	return nil
}

func writePathTimelines(s *wire.Sink, raw json.RawMessage, paths []string) error {
	entries, err := jsontree.OrderedEntries(raw)
	if err != nil {
		return fmt.Errorf("skel: animation paths: %w", err)
	}
	s.Varint(uint32(len(entries)), true)
	for _, entry := range entries {
		idx, ok := indexOf(paths, entry.Key)
		if !ok {
			return fmt.Errorf("skel: animation references unknown path constraint %q", entry.Key)
		}
		s.Varint(uint32(idx), true)

		timelines, err := jsontree.OrderedEntries(entry.Raw)
		if err != nil {
			return err
		}
		s.Varint(uint32(len(timelines)), true)
		for _, tl := range timelines {
			frames, err := framesOf(tl.Raw)
			if err != nil {
				return err
			}
			switch tl.Key {
			case "position", "spacing":
				if tl.Key == "position" {
					s.Byte(PathTimelinePosition)
				} else {
					s.Byte(PathTimelineSpacing)
				}
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					s.Float(f.Get(tl.Key).Float32(0))
					writeCurve(s, frames, i)
				}
			case "mix":
				s.Byte(PathTimelineMix)
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					s.Float(f.Get("rotateMix").Float32(1))
					s.Float(f.Get("translateMix").Float32(1))
					writeCurve(s, frames, i)
				}
			default:
				return fmt.Errorf("skel: path constraint %q has unknown timeline %q", entry.Key, tl.Key)
			}
		}
	}
	return nil
}

func writeDeformTimelines(s *wire.Sink, raw json.RawMessage, skins []string, slots []string) error {
	skinEntries, err := jsontree.OrderedEntries(raw)
	if err != nil {
		return fmt.Errorf("skel: animation deform: %w", err)
	}
	s.Varint(uint32(len(skinEntries)), true)
	for _, skinEntry := range skinEntries {
		skinIdx, ok := indexOf(skins, skinEntry.Key)
		if !ok {
			return fmt.Errorf("skel: animation references unknown skin %q", skinEntry.Key)
		}
		s.Varint(uint32(skinIdx), true)

		slotEntries, err := jsontree.OrderedEntries(skinEntry.Raw)
		if err != nil {
			return err
		}
		s.Varint(uint32(len(slotEntries)), true)
		for _, slotEntry := range slotEntries {
			slotIdx, ok := indexOf(slots, slotEntry.Key)
			if !ok {
				return fmt.Errorf("skel: animation deform references unknown slot %q", slotEntry.Key)
			}
			s.Varint(uint32(slotIdx), true)

			timelines, err := jsontree.OrderedEntries(slotEntry.Raw)
			if err != nil {
				return err
			}
			s.Varint(uint32(len(timelines)), true)
			for _, tl := range timelines {
				s.String(tl.Key, true)

				frames, err := framesOf(tl.Raw)
				if err != nil {
					return err
				}
				s.Varint(uint32(len(frames)), true)
				for i, f := range frames {
					s.Float(f.Get("time").Float32(0))
					vertices := f.Get("vertices").Array()
					if len(vertices) == 0 {
						s.Varint(0, true)
					} else {
						s.Varint(uint32(len(vertices)), true)
						s.Varint(uint32(f.Get("offset").Int(0)), true)
						for _, v := range vertices {
							s.Float(v.Float32(0))
						}
					}
					writeCurve(s, frames, i)
				}
			}
		}
	}
	return nil
}

func writeDrawOrderTimeline(s *wire.Sink, raw json.RawMessage, slots []string) error {
	frames, err := framesOf(raw)
	if err != nil {
		return fmt.Errorf("skel: animation drawOrder: %w", err)
	}
	s.Varint(uint32(len(frames)), true)
	for _, f := range frames {
		s.Float(f.Get("time").Float32(0))
		offsets := f.Get("offsets").Array()
		s.Varint(uint32(len(offsets)), true)
		for _, o := range offsets {
			slotName := o.Get("slot").String("")
			slotIdx, ok := indexOf(slots, slotName)
			if !ok {
				return fmt.Errorf("skel: drawOrder references unknown slot %q", slotName)
			}
			s.Varint(uint32(slotIdx), true)
			s.SignedVarint(int32(o.Get("offset").Int(0)))
		}
	}
	return nil
}

func writeEventTimeline(s *wire.Sink, raw json.RawMessage, events []EventDef) error {
	frames, err := framesOf(raw)
	if err != nil {
		return fmt.Errorf("skel: animation events: %w", err)
	}
	s.Varint(uint32(len(frames)), true)
	for _, f := range frames {
		name, ok := f.Get("name").StringOK()
		if !ok {
			return fmt.Errorf("skel: animation event frame is missing \"name\"")
		}
		eventIdx := -1
		var def EventDef
		for i, e := range events {
			if e.Name == name {
				eventIdx = i
				def = e
				break
			}
		}
		if eventIdx == -1 {
			return fmt.Errorf("skel: animation references unknown event %q", name)
		}

		s.Float(f.Get("time").Float32(0))
		s.Varint(uint32(eventIdx), true)
		s.SignedVarint(int32(f.Get("int").Int(def.Int)))
		s.Float(f.Get("float").Float32(def.Float))
		str, strOK := f.Get("string").StringOK()
		s.Bool(strOK)
		if strOK {
			s.String(str, true)
		}
	}
	return nil
}
