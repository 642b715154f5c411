package atlas

import "testing"

func TestParseSkipsMetadataLines(t *testing.T) {
	data := []byte("atlas.png\nsize: 2048,2048\nformat: RGBA8888\n\nhead\ntorso\n")
	idx := Parse(data)
	if !idx.Has("head") || !idx.Has("torso") {
		t.Fatalf("expected head and torso to be region names, got %v", idx)
	}
	if idx.Has("size") {
		t.Fatalf("did not expect a key:value metadata line to be a region name, got %v", idx)
	}
}

func TestParseEmptyDisablesFiltering(t *testing.T) {
	idx := Parse(nil)
	if idx.Enabled() {
		t.Fatalf("nil atlas should disable filtering")
	}
	if !idx.Has("anything") {
		t.Fatalf("disabled filtering must report every name as present")
	}
}
