package skel

import (
	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

// EventDef is one entry of the event table: its defaults double as the
// fallback values an animation's event timeline frames inherit when they
// omit "int"/"float".
type EventDef struct {
	Name  string
	Int   int
	Float float32
	Str   string
}

// WriteEvents emits the event table, returning the published event
// defaults in table order (consulted by the animation event timeline).
func WriteEvents(s *wire.Sink, eventsRaw []byte) ([]EventDef, error) {
	entries, err := jsontree.OrderedEntries(eventsRaw)
	if err != nil {
		return nil, err
	}
	s.Varint(uint32(len(entries)), true)
	defs := make([]EventDef, len(entries))
	for i, entry := range entries {
		def := EventDef{
			Name:  entry.Key,
			Int:   entry.Node.Get("int").Int(0),
			Float: entry.Node.Get("float").Float32(0),
			Str:   entry.Node.Get("string").String(""),
		}
		defs[i] = def

		s.String(def.Name, true)
		s.SignedVarint(int32(def.Int))
		s.Float(def.Float)
		s.String(def.Str, true)
	}
	return defs, nil
}
