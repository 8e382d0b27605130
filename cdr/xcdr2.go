package cdr

import (
	"github.com/nebuladds/xcdr-core/internal/bufio"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// emLengthCode is the LC field of an EMHEADER (spec §4.B.6 table).
type emLengthCode uint8

const (
	lc1Byte emLengthCode = iota
	lc2Byte
	lc4Byte
	lc8Byte
	lcNextUint32
	lcNextUint32OverlapsLength
	lcNextUint32TimesFour
	lcNextUint32TimesEight
)

// BeginDHeader pushes a DHEADER frame (spec §4.B.6): a 32-bit length
// prefix, in the stream's byte order, written before every appendable-struct
// body, every mutable-struct body, and every sequence/array of
// non-primitive elements. A no-op outside XCDR2.
func (s *Stream) BeginDHeader() bool {
	if s.kind != xtypes.XCDR2 {
		return true
	}
	if s.mode == xtypes.ModeMax && s.saturated() {
		return true
	}
	raw, ok := s.primitive(4)
	if !ok {
		return false
	}
	switch s.mode {
	case xtypes.ModeWrite:
		placeholderPos := len(s.buf) - 4
		bufio.PutU32(raw, 0, 0, false)
		s.frames = append(s.frames, frame{kind: frameDHeader, placeholderPos: placeholderPos, bodyStart: s.pos})
	case xtypes.ModeRead:
		length := bufio.ReadU32(raw, 0, s.streamEndian == xtypes.BigEndian)
		declaredEnd := s.pos + int(length)
		if s.bound >= 0 && declaredEnd > s.bound {
			return s.fail(InvalidDLEntry)
		}
		s.frames = append(s.frames, frame{kind: frameDHeader, bodyStart: s.pos, declaredEnd: declaredEnd})
	default: // move, max
		s.frames = append(s.frames, frame{kind: frameDHeader, bodyStart: s.pos})
	}
	return true
}

// EndDHeader pops the current DHEADER frame: on write, back-patches the
// placeholder with the actual body length; on read, skips any
// forward-compatible trailing bytes or raises invalid_dl_entry if the
// cursor ran past the declared end. A no-op outside XCDR2.
func (s *Stream) EndDHeader() bool {
	if s.kind != xtypes.XCDR2 {
		return true
	}
	if s.mode == xtypes.ModeMax && s.saturated() {
		return true
	}
	if len(s.frames) == 0 {
		return s.fail(InvalidDLEntry)
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	switch s.mode {
	case xtypes.ModeWrite:
		bodyLen := len(s.buf) - f.bodyStart
		bufio.PutU32(s.buf, f.placeholderPos, uint32(bodyLen), s.streamEndian == xtypes.BigEndian)
	case xtypes.ModeRead:
		if s.pos < f.declaredEnd {
			s.pos = f.declaredEnd
		} else if s.pos > f.declaredEnd {
			return s.fail(InvalidDLEntry)
		}
	}
	return true
}

// EMHeader packs an extended member header: a must-understand flag, a
// length code, and a 28-bit member id (spec §4.B.6). The writer always
// emits LC=4 (next uint32 is the member length); the reader accepts any
// LC in 0..7.
type EMHeader struct {
	MustUnderstand bool
	LengthCode     uint8
	MemberID       uint32
}

func packEMHeader(h EMHeader) uint32 {
	var v uint32
	v |= uint32(h.MemberID&0x0FFFFFFF) << 4
	v |= uint32(h.LengthCode&0x7) << 1
	if h.MustUnderstand {
		v |= 1
	}
	return v
}

func unpackEMHeader(v uint32) EMHeader {
	return EMHeader{
		MustUnderstand: v&1 != 0,
		LengthCode:     uint8((v >> 1) & 0x7),
		MemberID:       (v >> 4) & 0x0FFFFFFF,
	}
}

// WriteEMHeader emits an EMHEADER followed by a placeholder 4-byte member
// length (LC=4, spec §4.B.6), returning the frame to later back-patch with
// FinishEMHeader.
func (s *Stream) WriteEMHeader(memberID uint32, mustUnderstand bool) bool {
	h := EMHeader{MustUnderstand: mustUnderstand, LengthCode: uint8(lcNextUint32), MemberID: memberID}
	packed := packEMHeader(h)
	if !s.Uint32(&packed) {
		return false
	}
	raw, ok := s.primitive(4)
	if !ok {
		return false
	}
	placeholderPos := len(s.buf) - 4
	bufio.PutU32(raw, 0, 0, s.streamEndian == xtypes.BigEndian)
	s.frames = append(s.frames, frame{kind: frameDHeader, placeholderPos: placeholderPos, bodyStart: s.pos})
	return true
}

// FinishEMHeader back-patches the member-length placeholder pushed by
// WriteEMHeader.
func (s *Stream) FinishEMHeader() bool {
	if len(s.frames) == 0 {
		return s.fail(InvalidPLEntry)
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	memLen := len(s.buf) - f.bodyStart
	bufio.PutU32(s.buf, f.placeholderPos, uint32(memLen), s.streamEndian == xtypes.BigEndian)
	return true
}

// ReadEMHeader reads one EMHEADER and returns the member length, whichever
// LC encoding the writer used (spec §4.B.6 table): LC 0-3 imply a fixed
// 1/2/4/8-byte member and read no length word; LC 4 reads the next uint32
// as the length; LC 5 reads the next uint32 and then rewinds over it, since
// that word is the member's own length field, and returns 4 plus its
// value; LC 6/7 read an element count and return count×4 / count×8.
func (s *Stream) ReadEMHeader() (EMHeader, int, bool) {
	var packed uint32
	if !s.Uint32(&packed) {
		return EMHeader{}, 0, false
	}
	h := unpackEMHeader(packed)
	switch emLengthCode(h.LengthCode) {
	case lc1Byte:
		return h, 1, true
	case lc2Byte:
		return h, 2, true
	case lc4Byte:
		return h, 4, true
	case lc8Byte:
		return h, 8, true
	case lcNextUint32:
		var length uint32
		if !s.Uint32(&length) {
			return EMHeader{}, 0, false
		}
		return h, int(length), true
	case lcNextUint32OverlapsLength:
		var length uint32
		if !s.Uint32(&length) {
			return EMHeader{}, 0, false
		}
		s.pos -= 4
		return h, 4 + int(length), true
	case lcNextUint32TimesFour:
		var count uint32
		if !s.Uint32(&count) {
			return EMHeader{}, 0, false
		}
		return h, int(count) * 4, true
	case lcNextUint32TimesEight:
		var count uint32
		if !s.Uint32(&count) {
			return EMHeader{}, 0, false
		}
		return h, int(count) * 8, true
	default:
		return EMHeader{}, 0, s.fail(InvalidPLEntry)
	}
}

// SkipMember advances the cursor past n raw bytes of an unrecognized
// member, honoring the read bound (spec §4.B.9: unknown member ids "MUST
// be skippable").
func (s *Stream) SkipMember(n int) bool {
	if s.bound >= 0 && s.pos+n > s.bound {
		return s.fail(ReadBoundExceeded)
	}
	s.pos += n
	return true
}
