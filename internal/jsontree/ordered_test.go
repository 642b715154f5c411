package jsontree

import "testing"

func TestOrderedEntriesPreservesSourceOrder(t *testing.T) {
	raw := []byte(`{"zebra": 1, "apple": 2, "mango": 3}`)
	entries, err := OrderedEntries(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"zebra", "apple", "mango"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, k := range want {
		if entries[i].Key != k {
			t.Fatalf("entry %d key = %q, want %q", i, entries[i].Key, k)
		}
	}
}

func TestRawOfReturnsNilForAbsentKey(t *testing.T) {
	raw, err := RawOf([]byte(`{"a": 1}`), "b")
	if err != nil {
		t.Fatal(err)
	}
	if raw != nil {
		t.Fatalf("RawOf(absent) = %q, want nil", raw)
	}
}

func TestRawOfReturnsRawBytesForKey(t *testing.T) {
	raw, err := RawOf([]byte(`{"a": {"x": 1}}`), "a")
	if err != nil {
		t.Fatal(err)
	}
	entries, err := OrderedEntries(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Key != "x" {
		t.Fatalf("OrderedEntries(RawOf) = %+v, want one entry \"x\"", entries)
	}
}
