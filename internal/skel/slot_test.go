package skel

import (
	"testing"

	"github.com/waozixyz/spine2krb/internal/wire"
)

func TestWriteSlotsResolvesBoneByName(t *testing.T) {
	bones := []Bone{{Name: "root", Parent: -1}}
	root := mustDecode(t, `{"slots": [{"name": "s", "bone": "root"}]}`)
	s := wire.NewSink(nil)
	names, err := WriteSlots(s, root.Get("slots"), bones)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "s" {
		t.Fatalf("names = %v, want [s]", names)
	}
}

func TestWriteSlotsUnknownBoneIsError(t *testing.T) {
	bones := []Bone{{Name: "root", Parent: -1}}
	root := mustDecode(t, `{"slots": [{"name": "s", "bone": "missing"}]}`)
	s := wire.NewSink(nil)
	if _, err := WriteSlots(s, root.Get("slots"), bones); err == nil {
		t.Fatal("expected an error for an unresolved bone reference")
	}
}

func TestSlotColorDefaultsToOpaqueWhite(t *testing.T) {
	bones := []Bone{{Name: "root", Parent: -1}}
	root := mustDecode(t, `{"slots": [{"name": "s", "bone": "root"}]}`)
	s := wire.NewSink(nil)
	if _, err := WriteSlots(s, root.Get("slots"), bones); err != nil {
		t.Fatal(err)
	}
	// count(1) + name("s" -> 1+1) + boneIdx(1); light color(4 bytes) starts here.
	colorOffset := 1 + 1 + 1 + 1
	got := s.Bytes()[colorOffset : colorOffset+4]
	for _, b := range got {
		if b != 0xFF {
			t.Fatalf("default light color = % X, want FF FF FF FF", got)
		}
	}
}
