package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of a JSON object, in source order. Raw
// holds the value's exact original bytes, for recursing into a further
// OrderedEntries call; Node holds the same value already decoded to
// `any`, for ordinary leaf access. Both are derived straight from the
// source document — neither is reconstructed by re-marshaling a decoded
// map, which would not round-trip key order.
type Entry struct {
	Key  string
	Raw  json.RawMessage
	Node Node
}

// OrderedEntries decodes a JSON object's top-level keys in the order
// they appear in data, using encoding/json's streaming Decoder/Token API
// (Go's map[string]any decode loses key order; the Spine binary format
// is deterministic by the order its skin, event, and animation name
// tables are built in, which must match the source document's object key
// order exactly). A nil/empty data or a JSON null yields a nil, nil
// result — the caller treats that the same as "section absent".
func OrderedEntries(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsontree: %w", err)
	}
	delim, isDelim := tok.(json.Delim)
	if !isDelim || delim != '{' {
		if tok == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("jsontree: expected object, got %v", tok)
	}
	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsontree: reading key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("jsontree: object key is not a string: %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("jsontree: decoding value for key %q: %w", key, err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("jsontree: decoding value for key %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Raw: raw, Node: Of(v)})
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, fmt.Errorf("jsontree: %w", err)
	}
	return entries, nil
}

// RawOf returns the raw bytes of one top-level key of a JSON object
// document, or nil if the key is absent. Top-level key order never
// matters here — only OrderedEntries on the returned bytes, for whatever
// nesting lives beneath that key, needs to preserve source order.
func RawOf(data []byte, key string) ([]byte, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("jsontree: %w", err)
	}
	return m[key], nil
}

// Decode unmarshals a JSON document's raw bytes into a Node, the entry
// point for jsontree's ordinary leaf-access API. Use OrderedEntries
// instead when the object's key order matters.
func Decode(data []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Node{}, fmt.Errorf("jsontree: %w", err)
	}
	return Of(v), nil
}
