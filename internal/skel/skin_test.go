package skel

import (
	"testing"

	"github.com/waozixyz/spine2krb/internal/atlas"
	"github.com/waozixyz/spine2krb/internal/wire"
)

func TestWriteSkinsRejectsMissingDefault(t *testing.T) {
	s := wire.NewSink(nil)
	_, err := WriteSkins(s, []byte(`{"hero": {}}`), nil, nil)
	if err == nil {
		t.Fatal("expected an error for a skins object with no \"default\" entry")
	}
}

func TestWriteSkinsEmptyIsRejected(t *testing.T) {
	s := wire.NewSink(nil)
	_, err := WriteSkins(s, []byte(`{}`), nil, nil)
	if err == nil {
		t.Fatal("expected an error for an empty skins object")
	}
}

func TestWriteSkinsDefaultFirst(t *testing.T) {
	s := wire.NewSink(nil)
	slots := []string{"s"}
	names, err := WriteSkins(s, []byte(`{"extra": {}, "default": {}}`), slots, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"default", "extra"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestRegionFilteringDropsUnpackedAttachments(t *testing.T) {
	idx := atlas.Parse([]byte("head\n"))
	slots := []string{"s"}
	raw := []byte(`{"default": {"s": {"head": {"type": "region"}, "torso": {"type": "region"}}}}`)

	filtered := wire.NewSink(nil)
	if _, err := WriteSkins(filtered, raw, slots, idx); err != nil {
		t.Fatal(err)
	}
	unfiltered := wire.NewSink(nil)
	if _, err := WriteSkins(unfiltered, raw, slots, nil); err != nil {
		t.Fatal(err)
	}

	// Filtering drops "torso", so the filtered encoding must be strictly
	// shorter than the unfiltered one (one whole region attachment).
	if filtered.Len() >= unfiltered.Len() {
		t.Fatalf("filtered output (%d bytes) should be shorter than unfiltered (%d bytes)", filtered.Len(), unfiltered.Len())
	}

	// The attachment-count byte for slot "s" is written right after the
	// slot index (both single-byte varints here). The default skin is
	// written first with no count prefix: slotCount(1) -> slotIdx(0) ->
	// attachmentCount.
	attachmentCountOffset := 2
	if got := filtered.Bytes()[attachmentCountOffset]; got != 1 {
		t.Fatalf("filtered attachment count = %d, want 1", got)
	}
	if got := unfiltered.Bytes()[attachmentCountOffset]; got != 2 {
		t.Fatalf("unfiltered attachment count = %d, want 2", got)
	}
}

func TestWeightedMeshSelectsWeightedPath(t *testing.T) {
	// uvs.length = 4 means 2 vertices expected in the plain shape; the raw
	// array below has 10 entries, so writeVertices must pick the
	// bone-weighted shape: leading `true`, then one weighted vertex
	// (boneCount=2, then 2 groups of [boneIndex, x, y, weight]); the
	// trailing 0.5 is read as a second vertex with boneCount 0.
	root := mustDecode(t, `{"vertices": [2, 0, 0.5, 0.5, 1.0, 1, 0.5, 0.5, 1.0, 0.5]}`)
	s := wire.NewSink(nil)
	writeVertices(s, root.Get("vertices"), 4)

	if s.Bytes()[0] != 1 {
		t.Fatalf("weighted flag = %d, want 1 (true)", s.Bytes()[0])
	}
}

func TestPlainMeshSelectsPlainPath(t *testing.T) {
	root := mustDecode(t, `{"vertices": [0, 0, 1, 1]}`)
	s := wire.NewSink(nil)
	writeVertices(s, root.Get("vertices"), 4)

	if s.Bytes()[0] != 0 {
		t.Fatalf("weighted flag = %d, want 0 (false)", s.Bytes()[0])
	}
}
