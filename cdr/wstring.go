package cdr

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// wcharSize is the wire width of one UTF-16 code unit.
const wcharSize = 2

// utf16Codec returns the x/text UTF-16 codec matching the stream's wire
// endianness, grounded on the same golang.org/x/text/encoding family the
// teacher uses to decode UTF-16LE registry key/value names
// (hive/subkeys/reader.go, internal/reader/key.go) — here reused for the
// DDS IDL wchar/wstring wire representation rather than registry names.
func (s *Stream) utf16Codec() *unicode.UTF16 {
	if s.streamEndian == xtypes.BigEndian {
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

// WString streams a wide IDL string member. bound is the compile-time
// code-unit bound, or 0 for unbounded. Unlike narrow strings (spec
// §4.B.3), a wstring carries no trailing NUL on the wire: the length
// prefix counts UTF-16 code units exactly (DDS-XTypes 1.3 §7.2.2).
func (s *Stream) WString(v *string, bound int) bool {
	switch s.mode {
	case xtypes.ModeWrite:
		return s.writeWString(*v, bound)
	case xtypes.ModeRead:
		return s.readWString(v, bound)
	case xtypes.ModeMove:
		return s.moveWString(*v, bound)
	case xtypes.ModeMax:
		return s.maxWString(bound)
	}
	return false
}

func (s *Stream) encodeUnits(v string) ([]byte, int, bool) {
	raw, err := s.utf16Codec().NewEncoder().Bytes([]byte(v))
	if err != nil {
		return nil, 0, false
	}
	return raw, len(raw) / wcharSize, true
}

func (s *Stream) writeWString(v string, bound int) bool {
	raw, units, ok := s.encodeUnits(v)
	if !ok {
		return s.fail(IllegalFieldValue)
	}
	if bound > 0 && units > bound {
		return s.fail(WriteBoundExceeded)
	}
	length := uint32(units)
	if !s.Uint32(&length) {
		return false
	}
	if !s.reserve(len(raw)) {
		return s.fail(WriteBoundExceeded)
	}
	s.buf = append(s.buf, raw...)
	s.pos += len(raw)
	return true
}

func (s *Stream) readWString(v *string, bound int) bool {
	var length uint32
	if !s.Uint32(&length) {
		return false
	}
	n := int(length) * wcharSize
	if s.bound >= 0 && s.pos+n > s.bound {
		return s.fail(ReadBoundExceeded)
	}
	raw := s.buf[s.pos : s.pos+n]
	s.pos += n

	units := int(length)
	if bound > 0 && units > bound {
		raw = raw[:bound*wcharSize]
	}
	out, err := s.utf16Codec().NewDecoder().Bytes(raw)
	if err != nil {
		return s.fail(IllegalFieldValue)
	}
	*v = string(out)
	return true
}

func (s *Stream) moveWString(v string, bound int) bool {
	_, units, ok := s.encodeUnits(v)
	if !ok {
		return s.fail(IllegalFieldValue)
	}
	if bound > 0 && units > bound {
		return s.fail(WriteBoundExceeded)
	}
	length := uint32(units)
	if !s.Uint32(&length) {
		return false
	}
	s.pos += units * wcharSize
	return true
}

func (s *Stream) maxWString(bound int) bool {
	var length uint32
	if !s.Uint32(&length) {
		return false
	}
	if bound == 0 {
		s.saturate()
		return true
	}
	if s.saturated() {
		return true
	}
	s.pos += bound * wcharSize
	return true
}
