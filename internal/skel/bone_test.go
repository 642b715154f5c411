package skel

import (
	"testing"

	"github.com/waozixyz/spine2krb/internal/jsontree"
	"github.com/waozixyz/spine2krb/internal/wire"
)

func TestResolveBonesRootHasNoParent(t *testing.T) {
	root := mustDecode(t, `{"bones": [{"name": "root"}, {"name": "child", "parent": "root"}]}`)
	bones, err := ResolveBones(root.Get("bones"))
	if err != nil {
		t.Fatal(err)
	}
	if len(bones) != 2 {
		t.Fatalf("len(bones) = %d, want 2", len(bones))
	}
	if bones[0].Parent != -1 {
		t.Fatalf("root.Parent = %d, want -1", bones[0].Parent)
	}
	if bones[1].Parent != 0 {
		t.Fatalf("child.Parent = %d, want 0", bones[1].Parent)
	}
}

func TestResolveBonesUnknownParentIsError(t *testing.T) {
	root := mustDecode(t, `{"bones": [{"name": "a", "parent": "nope"}]}`)
	if _, err := ResolveBones(root.Get("bones")); err == nil {
		t.Fatal("expected an error for an unresolved parent name")
	}
}

func TestWriteBonesOmitsParentIndexForRoot(t *testing.T) {
	bones := []Bone{{Name: "root", Parent: -1, ScaleX: 1, ScaleY: 1}}
	s := wire.NewSink(nil)
	WriteBones(s, bones)
	// count(1) + name("root" -> varint(5) + 4 bytes) + 8 floats + mode varint.
	want := 1 + 1 + 4 + 4*8 + 1
	if s.Len() != want {
		t.Fatalf("WriteBones(root only) wrote %d bytes, want %d", s.Len(), want)
	}
}

func mustDecode(t *testing.T, raw string) jsontree.Node {
	t.Helper()
	n, err := jsontree.Decode([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	return n
}
