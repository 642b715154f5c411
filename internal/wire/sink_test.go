package wire

import (
	"bytes"
	"testing"
)

func TestVarintBoundary(t *testing.T) {
	cases := []struct {
		name string
		v    uint32
		want []byte
	}{
		{"127", 127, []byte{0x7F}},
		{"128", 128, []byte{0x80, 0x01}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewSink(nil)
			s.Varint(c.v, true)
			if !bytes.Equal(s.Bytes(), c.want) {
				t.Fatalf("Varint(%d) = % X, want % X", c.v, s.Bytes(), c.want)
			}
		})
	}
}

func TestSignedVarintZigZag(t *testing.T) {
	s := NewSink(nil)
	s.SignedVarint(-1)
	if !bytes.Equal(s.Bytes(), []byte{0x01}) {
		t.Fatalf("SignedVarint(-1) = % X, want [01]", s.Bytes())
	}
}

func TestColorDefaultsToOpaqueWhite(t *testing.T) {
	s := NewSink(nil)
	if err := s.Color("", false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Bytes(), []byte{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Fatalf("Color(absent) = % X, want FF FF FF FF", s.Bytes())
	}
}

func TestColorParsesRGBA8(t *testing.T) {
	s := NewSink(nil)
	if err := s.Color("11223344", true); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x11, 0x22, 0x33, 0x44}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Color = % X, want % X", s.Bytes(), want)
	}
}

func TestStringAbsentVsEmpty(t *testing.T) {
	absent := NewSink(nil)
	absent.String("", false)
	if !bytes.Equal(absent.Bytes(), []byte{0x00}) {
		t.Fatalf("absent string = % X, want [00]", absent.Bytes())
	}

	empty := NewSink(nil)
	empty.String("", true)
	if !bytes.Equal(empty.Bytes(), []byte{0x01}) {
		t.Fatalf("present-but-empty string = % X, want [01]", empty.Bytes())
	}
}

func TestFloatBigEndian(t *testing.T) {
	s := NewSink(nil)
	s.Float(1.0)
	want := []byte{0x3F, 0x80, 0x00, 0x00}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Float(1.0) = % X, want % X", s.Bytes(), want)
	}
}

func TestShortBigEndian(t *testing.T) {
	s := NewSink(nil)
	s.Short(0x0102)
	want := []byte{0x01, 0x02}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Short = % X, want % X", s.Bytes(), want)
	}
}
