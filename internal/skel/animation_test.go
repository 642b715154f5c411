package skel

import (
	"testing"

	"github.com/waozixyz/spine2krb/internal/wire"
)

func TestWriteCurveOmitsTagOnLastFrame(t *testing.T) {
	root := mustDecode(t, `{"frames": [{"time": 0}, {"time": 1}, {"time": 2}]}`)
	frames := root.Get("frames").Array()

	s := wire.NewSink(nil)
	writeCurve(s, frames, len(frames)-1)
	if s.Len() != 0 {
		t.Fatalf("writeCurve on the last frame wrote %d bytes, want 0", s.Len())
	}
}

func TestWriteCurveTagsNonLastFrames(t *testing.T) {
	root := mustDecode(t, `{"frames": [{"time": 0}, {"curve": "stepped", "time": 1}, {"time": 2}]}`)
	frames := root.Get("frames").Array()

	for i, want := range []byte{CurveLinear, CurveStepped} {
		s := wire.NewSink(nil)
		writeCurve(s, frames, i)
		if s.Len() != 1 || s.Bytes()[0] != want {
			t.Fatalf("frame %d curve tag = % X, want [%d]", i, s.Bytes(), want)
		}
	}
}

func TestColorTimelineTagsOnlyNonTerminalFrames(t *testing.T) {
	slots := []string{"s"}
	raw := []byte(`{
		"s": {"color": [{"time": 0}, {"time": 1}, {"time": 2}]}
	}`)
	s := wire.NewSink(nil)
	if err := writeSlotTimelines(s, raw, slots); err != nil {
		t.Fatal(err)
	}
	// slotCount(1) + slotIdx(0) + timelineCount(1) + typeByte(color=1) +
	// frameCount(3), then per-frame: time(4) + color(4) [+ curve tag for
	// frames 0,1 only]. Just confirm the total length matches that shape.
	header := 1 + 1 + 1 + 1 + 1
	perFrame := 4 + 4
	want := header + perFrame*3 + 1 /*curve after frame 0*/ + 1 /*curve after frame 1*/
	if s.Len() != want {
		t.Fatalf("writeSlotTimelines(color, 3 frames) wrote %d bytes, want %d", s.Len(), want)
	}
}
