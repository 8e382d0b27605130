package cdr

import (
	"math"

	"github.com/nebuladds/xcdr-core/internal/bufio"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// primitive is the common spine of spec §4.B.1 for a fixed-width leaf type:
// align(width, true on write), then write/read/move/max the width bytes,
// swapping when the wire endianness differs from native.
func (s *Stream) primitive(width int) ([]byte, bool) {
	if s.status != 0 {
		return nil, false
	}
	if s.saturated() {
		return nil, true
	}
	if !s.Align(width, true) {
		return nil, false
	}
	switch s.mode {
	case xtypes.ModeWrite:
		if !s.reserve(width) {
			return nil, s.fail(WriteBoundExceeded)
		}
		start := len(s.buf)
		s.buf = s.buf[:start+width]
		s.pos += width
		return s.buf[start : start+width], true
	case xtypes.ModeRead:
		if s.bound >= 0 && s.pos+width > s.bound {
			return nil, s.fail(ReadBoundExceeded)
		}
		raw := s.buf[s.pos : s.pos+width]
		s.pos += width
		return raw, true
	default: // move, max
		s.pos += width
		return nil, true
	}
}

// Bool streams a single-byte boolean (0x00/0x01 on the wire).
func (s *Stream) Bool(v *bool) bool {
	raw, ok := s.primitive(1)
	if !ok {
		return false
	}
	switch s.mode {
	case xtypes.ModeWrite:
		if *v {
			raw[0] = 1
		} else {
			raw[0] = 0
		}
	case xtypes.ModeRead:
		*v = raw[0] != 0
	}
	return true
}

// Octet streams a single unsigned byte (IDL octet / uint8).
func (s *Stream) Octet(v *uint8) bool {
	raw, ok := s.primitive(1)
	if !ok {
		return false
	}
	switch s.mode {
	case xtypes.ModeWrite:
		raw[0] = *v
	case xtypes.ModeRead:
		*v = raw[0]
	}
	return true
}

// Char streams a single narrow character byte.
func (s *Stream) Char(v *byte) bool { return s.Octet(v) }

// Int8 streams a signed byte.
func (s *Stream) Int8(v *int8) bool {
	u := uint8(*v)
	ok := s.Octet(&u)
	if s.mode == xtypes.ModeRead {
		*v = int8(u)
	}
	return ok
}

// Uint16 streams an unsigned 16-bit scalar.
func (s *Stream) Uint16(v *uint16) bool {
	raw, ok := s.primitive(2)
	if !ok {
		return false
	}
	big := s.streamEndian == xtypes.BigEndian
	switch s.mode {
	case xtypes.ModeWrite:
		bufio.PutU16(raw, 0, *v, big)
	case xtypes.ModeRead:
		*v = bufio.ReadU16(raw, 0, big)
	}
	return true
}

// Int16 streams a signed 16-bit scalar.
func (s *Stream) Int16(v *int16) bool {
	u := uint16(*v)
	ok := s.Uint16(&u)
	if s.mode == xtypes.ModeRead {
		*v = int16(u)
	}
	return ok
}

// Uint32 streams an unsigned 32-bit scalar.
func (s *Stream) Uint32(v *uint32) bool {
	raw, ok := s.primitive(4)
	if !ok {
		return false
	}
	big := s.streamEndian == xtypes.BigEndian
	switch s.mode {
	case xtypes.ModeWrite:
		bufio.PutU32(raw, 0, *v, big)
	case xtypes.ModeRead:
		*v = bufio.ReadU32(raw, 0, big)
	}
	return true
}

// Int32 streams a signed 32-bit scalar.
func (s *Stream) Int32(v *int32) bool {
	u := uint32(*v)
	ok := s.Uint32(&u)
	if s.mode == xtypes.ModeRead {
		*v = int32(u)
	}
	return ok
}

// Uint64 streams an unsigned 64-bit scalar.
func (s *Stream) Uint64(v *uint64) bool {
	raw, ok := s.primitive(8)
	if !ok {
		return false
	}
	big := s.streamEndian == xtypes.BigEndian
	switch s.mode {
	case xtypes.ModeWrite:
		bufio.PutU64(raw, 0, *v, big)
	case xtypes.ModeRead:
		*v = bufio.ReadU64(raw, 0, big)
	}
	return true
}

// Int64 streams a signed 64-bit scalar.
func (s *Stream) Int64(v *int64) bool {
	u := uint64(*v)
	ok := s.Uint64(&u)
	if s.mode == xtypes.ModeRead {
		*v = int64(u)
	}
	return ok
}

// Float32 streams an IEEE-754 single-precision float.
func (s *Stream) Float32(v *float32) bool {
	u := math.Float32bits(*v)
	ok := s.Uint32(&u)
	if s.mode == xtypes.ModeRead {
		*v = math.Float32frombits(u)
	}
	return ok
}

// Float64 streams an IEEE-754 double-precision float.
func (s *Stream) Float64(v *float64) bool {
	u := math.Float64bits(*v)
	ok := s.Uint64(&u)
	if s.mode == xtypes.ModeRead {
		*v = math.Float64frombits(u)
	}
	return ok
}

// BitBound streams an enum or bitmask value whose wire width is given by
// bound (8/16/32/64), per spec §3.1 "bit-bound". Bitmasks under Basic CDR
// wider than 32 bits are rejected: Basic CDR has no concept of a 64-bit
// bit-bound (spec §4.D.3 lists bitmask as an XCDR2-only feature when its
// bit-bound exceeds what Basic CDR's primitive dispatch supports).
func (s *Stream) BitBound(v *uint64, bound xtypes.BitBound) bool {
	switch bound {
	case xtypes.Bits8:
		u := uint8(*v)
		ok := s.Octet(&u)
		if s.mode == xtypes.ModeRead {
			*v = uint64(u)
		}
		return ok
	case xtypes.Bits16:
		u := uint16(*v)
		ok := s.Uint16(&u)
		if s.mode == xtypes.ModeRead {
			*v = uint64(u)
		}
		return ok
	case xtypes.Bits32:
		u := uint32(*v)
		ok := s.Uint32(&u)
		if s.mode == xtypes.ModeRead {
			*v = uint64(u)
		}
		return ok
	case xtypes.Bits64:
		if s.kind == xtypes.BasicCDR {
			return s.fail(IllegalFieldValue)
		}
		return s.Uint64(v)
	default:
		return s.fail(IllegalFieldValue)
	}
}
