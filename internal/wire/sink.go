// Package wire implements the primitive byte-level writers used by the
// Spine binary skeleton encoder: big-endian floats, base-128 varints,
// zig-zag signed varints, length-prefixed strings, and packed RGBA8
// colors. Every writer appends to a caller-supplied buffer and never
// seeks or patches — the wire format has no offset table to backfill.
package wire

import (
	"fmt"
	"math"
)

// Sink is an append-only byte buffer with the primitive writers the
// Spine binary format needs. The zero value is ready to use.
type Sink struct {
	buf []byte
}

// NewSink wraps a caller-supplied buffer for append-only writing. The
// buffer's existing contents, if any, are kept and writes continue from
// the end of len(buf).
func NewSink(buf []byte) *Sink {
	return &Sink{buf: buf}
}

// Len returns the number of bytes written so far.
func (s *Sink) Len() int { return len(s.buf) }

// Bytes returns the accumulated buffer.
func (s *Sink) Bytes() []byte { return s.buf }

// Byte appends a single byte.
func (s *Sink) Byte(b byte) {
	s.buf = append(s.buf, b)
}

// Bool appends 1 or 0.
func (s *Sink) Bool(v bool) {
	if v {
		s.Byte(1)
	} else {
		s.Byte(0)
	}
}

// Float appends an IEEE-754 float32 in big-endian byte order.
func (s *Sink) Float(v float32) {
	bits := math.Float32bits(v)
	s.buf = append(s.buf, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
}

// Short appends a big-endian uint16.
func (s *Sink) Short(v uint16) {
	s.buf = append(s.buf, byte(v>>8), byte(v))
}

// Varint appends v using the Spine base-128 varint encoding: 7 bits per
// byte, low bits first, the high bit set on every byte but the last,
// capped at 5 bytes. When optimizePositive is false the caller must have
// already zig-zag encoded v (see ZigZag); this method never re-encodes.
func (s *Sink) Varint(v uint32, optimizePositive bool) {
	_ = optimizePositive // kept for call-site clarity; encoding is identical either way
	for i := 0; i < 5; i++ {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			s.buf = append(s.buf, b|0x80)
			continue
		}
		s.buf = append(s.buf, b)
		return
	}
}

// ZigZag converts a signed 32-bit value into the unsigned zig-zag form
// the Spine format varint-encodes for all signed fields.
func ZigZag(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// SignedVarint zig-zag encodes v and appends it as a varint.
func (s *Sink) SignedVarint(v int32) {
	s.Varint(ZigZag(v), false)
}

// String appends a Spine length-prefixed UTF-8 string. present
// distinguishes a JSON key that was absent entirely (varint(0), no
// bytes) from one present with an empty value (varint(1), zero bytes) —
// the convention that lets the decoder tell "absent" from "empty". When
// present, non-empty strings are varint(len+1) followed by the raw bytes.
func (s *Sink) String(str string, present bool) {
	if !present {
		s.Varint(0, true)
		return
	}
	s.Varint(uint32(len(str)+1), true)
	s.buf = append(s.buf, str...)
}

// StringOrEmpty is a convenience for the common case where the caller
// does not distinguish "absent" from "empty" — both are written as an
// absent string. Use String directly when that distinction matters.
func (s *Sink) StringOrEmpty(str string) {
	s.String(str, str != "")
}

// Color appends a packed RGBA8 color. hex is an 8-hex-digit "RRGGBBAA"
// string; ok selects whether the field was present in the source at all.
// When ok is false, all four bytes are 0xFF (Spine's default: opaque
// white).
func (s *Sink) Color(hex string, ok bool) error {
	if !ok || hex == "" {
		s.buf = append(s.buf, 0xFF, 0xFF, 0xFF, 0xFF)
		return nil
	}
	if len(hex) != 8 {
		return fmt.Errorf("wire: color %q is not 8 hex digits", hex)
	}
	var rgba [4]byte
	for i := 0; i < 4; i++ {
		b, err := parseHexByte(hex[i*2 : i*2+2])
		if err != nil {
			return fmt.Errorf("wire: color %q: %w", hex, err)
		}
		rgba[i] = b
	}
	s.buf = append(s.buf, rgba[:]...)
	return nil
}

func parseHexByte(s string) (byte, error) {
	var v byte
	for _, c := range []byte(s) {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return v, nil
}
