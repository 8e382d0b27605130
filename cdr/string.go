package cdr

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// String streams a narrow IDL string member (spec §4.B.3). bound is the
// compile-time character bound, or 0 for an unbounded string.
//
// On the wire a string is a uint32 length (including the trailing NUL)
// followed by that many bytes (including the NUL). The local
// representation never stores the NUL.
func (s *Stream) String(v *string, bound int) bool {
	switch s.mode {
	case xtypes.ModeWrite:
		return s.writeString(*v, bound)
	case xtypes.ModeRead:
		return s.readString(v, bound)
	case xtypes.ModeMove:
		return s.moveString(*v, bound)
	case xtypes.ModeMax:
		return s.maxString(bound)
	}
	return false
}

func (s *Stream) writeString(v string, bound int) bool {
	if bound > 0 && len(v) > bound {
		return s.fail(WriteBoundExceeded)
	}
	length := uint32(len(v)) + 1
	if !s.Uint32(&length) {
		return false
	}
	if !s.reserve(len(v) + 1) {
		return s.fail(WriteBoundExceeded)
	}
	s.buf = append(s.buf, v...)
	s.buf = append(s.buf, 0)
	s.pos += len(v) + 1
	return true
}

func (s *Stream) readString(v *string, bound int) bool {
	var length uint32
	if !s.Uint32(&length) {
		return false
	}
	if length == 0 {
		*v = ""
		return true
	}
	n := int(length)
	if s.bound >= 0 && s.pos+n > s.bound {
		return s.fail(ReadBoundExceeded)
	}
	raw := s.buf[s.pos : s.pos+n]
	s.pos += n

	charCount := n - 1
	if bound > 0 && charCount > bound {
		charCount = bound
	}
	*v = string(raw[:charCount])
	return true
}

func (s *Stream) moveString(v string, bound int) bool {
	if bound > 0 && len(v) > bound {
		return s.fail(WriteBoundExceeded)
	}
	length := uint32(len(v)) + 1
	if !s.Uint32(&length) {
		return false
	}
	s.pos += len(v) + 1
	return true
}

// maxString computes the type-level upper-bound size: for a bounded string
// it is the bound plus the NUL; for an unbounded string no finite bound
// exists, so the cursor saturates (spec §4.B.3).
func (s *Stream) maxString(bound int) bool {
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
	s.pos += bound + 1
	return true
}
