// Package jsontree gives typed leaf access over the generic tree
// encoding/json produces when unmarshaled into `any` (map[string]any /
// []any / float64 / string / bool / nil). The encoder reads Spine
// skeleton JSON leaves through this package; each caller passes the
// default that applies when a key is missing.
package jsontree

// Node wraps a decoded JSON value (map[string]any, []any, or a scalar)
// with typed, default-aware accessors. A zero Node (Value == nil) is a
// valid "absent" node: every getter returns its zero/default and ok=false.
type Node struct {
	Value any
}

// Of wraps a raw decoded value.
func Of(v any) Node { return Node{Value: v} }

// Get looks up a key on an object node. Returns the zero Node (absent)
// if this node is not an object or the key is missing.
func (n Node) Get(key string) Node {
	m, ok := n.Value.(map[string]any)
	if !ok {
		return Node{}
	}
	v, ok := m[key]
	if !ok {
		return Node{}
	}
	return Node{Value: v}
}

// Has reports whether the node carries a value at all. A key whose value
// is JSON null decodes to nil and so reports false, the same as a missing
// key.
func (n Node) Has() bool { return n.Value != nil }

// Array returns the node's elements as Nodes. A non-array or absent node
// yields nil.
func (n Node) Array() []Node {
	a, ok := n.Value.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(a))
	for i, v := range a {
		out[i] = Node{Value: v}
	}
	return out
}

// Keys returns an object node's keys in map iteration order (the caller
// is responsible for any ordering guarantee beyond that; Spine skeleton
// JSON is an ordered object on disk but Go's decoded map is not — see
// OrderedEntries in ordered.go, which walks an object with
// encoding/json.Decoder + json.Token for the sections where key order
// matters).
func (n Node) Keys() []string {
	m, ok := n.Value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// String returns the node's string value, or def if absent/wrong type.
func (n Node) String(def string) string {
	s, ok := n.Value.(string)
	if !ok {
		return def
	}
	return s
}

// StringOK is like String but also reports whether the value was present
// and of the right type.
func (n Node) StringOK() (string, bool) {
	s, ok := n.Value.(string)
	return s, ok
}

// Float returns the node's numeric value as float64, or def if
// absent/wrong type. encoding/json decodes every JSON number as float64
// when the target is `any`.
func (n Node) Float(def float64) float64 {
	f, ok := n.Value.(float64)
	if !ok {
		return def
	}
	return f
}

// Float32 is Float narrowed to float32, the width every Spine numeric
// field is ultimately written as.
func (n Node) Float32(def float32) float32 {
	return float32(n.Float(float64(def)))
}

// Int returns the node's numeric value truncated to int, or def if
// absent/wrong type.
func (n Node) Int(def int) int {
	f, ok := n.Value.(float64)
	if !ok {
		return def
	}
	return int(f)
}

// Bool returns the node's boolean value, or def if absent/wrong type.
func (n Node) Bool(def bool) bool {
	b, ok := n.Value.(bool)
	if !ok {
		return def
	}
	return b
}
