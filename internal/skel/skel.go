// Package skel builds and emits the Spine 3.8 binary skeleton data model:
// bones, slots, IK/transform/path constraints, skins and their attachments,
// events, and animations. Every writer here both appends bytes to a
// internal/wire.Sink and publishes an ordered name table that later
// writers (principally the animation writer) resolve cross-references
// against, mirroring the original converter's name-table-by-emission-order
// contract.
package skel

// indexOf linearly scans names for name, the same resolution strategy the
// original converter uses for bone/slot/constraint/skin/event lookups.
// Adequate for the tens-to-hundreds of entities a typical skeleton has.
func indexOf(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Tables collects every name table published while emitting the bone,
// slot, constraint, skin, and event sections, so the animation writer can
// resolve the cross-references its timelines carry.
type Tables struct {
	Bones     []Bone
	Slots     []string
	IK        []string
	Transform []string
	Path      []string
	Skins     []string
	Events    []EventDef
}

func boneNames(bones []Bone) []string {
	names := make([]string, len(bones))
	for i, b := range bones {
		names[i] = b.Name
	}
	return names
}

// FindBone resolves a bone by name against t.Bones.
func (t *Tables) FindBone(name string) (int, bool) {
	return indexOf(boneNames(t.Bones), name)
}
