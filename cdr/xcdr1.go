package cdr

import (
	"github.com/nebuladds/xcdr-core/internal/bufio"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// XCDR1 mutable-member parameter-list framing (spec §4.B.7): a 32-bit PID
// header per member, an extended form for ids that don't fit 14 bits, and
// a list terminator.
const (
	pidMustUnderstandFlag = 0x4000
	pidImplExtensionFlag  = 0x8000
	pidNumberMask         = 0x3FFF

	pidExtended   uint16 = 0x3F01
	pidTerminator uint16 = 0x3F02
)

// WritePIDHeader emits a short-form PID header (16-bit flags+pid, 16-bit
// length) when memberID fits 14 bits, or the extended form (short header
// announcing length 8, then a 32-bit member id, then a 32-bit length)
// otherwise.
func (s *Stream) WritePIDHeader(memberID uint32, length int, mustUnderstand, implExtension bool) bool {
	var flags uint16
	if mustUnderstand {
		flags |= pidMustUnderstandFlag
	}
	if implExtension {
		flags |= pidImplExtensionFlag
	}

	if memberID <= pidNumberMask {
		pidField := flags | uint16(memberID)
		if !s.Uint16(&pidField) {
			return false
		}
		l16 := uint16(length)
		return s.Uint16(&l16)
	}

	extField := flags | pidExtended
	if !s.Uint16(&extField) {
		return false
	}
	eight := uint16(8)
	if !s.Uint16(&eight) {
		return false
	}
	id := memberID
	if !s.Uint32(&id) {
		return false
	}
	l32 := uint32(length)
	return s.Uint32(&l32)
}

// WritePIDEntry writes a PID header (short or extended form, chosen by
// memberID) with a placeholder length and pushes a frame so FinishPIDEntry
// can back-patch the real length once the member's bytes are written —
// the PID-framing analogue of WriteEMHeader/FinishEMHeader, needed because
// a PID header's length field precedes the member, not follows it.
func (s *Stream) WritePIDEntry(memberID uint32, mustUnderstand bool) bool {
	var flags uint16
	if mustUnderstand {
		flags |= pidMustUnderstandFlag
	}
	big := s.streamEndian == xtypes.BigEndian

	if memberID <= pidNumberMask {
		pidField := flags | uint16(memberID)
		if !s.Uint16(&pidField) {
			return false
		}
		raw, ok := s.primitive(2)
		if !ok {
			return false
		}
		placeholderPos := len(s.buf) - 2
		bufio.PutU16(raw, 0, 0, big)
		s.frames = append(s.frames, frame{kind: framePIDList, placeholderPos: placeholderPos, placeholderWidth: 2, bodyStart: s.pos})
		return true
	}

	extField := flags | pidExtended
	if !s.Uint16(&extField) {
		return false
	}
	eight := uint16(8)
	if !s.Uint16(&eight) {
		return false
	}
	id := memberID
	if !s.Uint32(&id) {
		return false
	}
	raw, ok := s.primitive(4)
	if !ok {
		return false
	}
	placeholderPos := len(s.buf) - 4
	bufio.PutU32(raw, 0, 0, big)
	s.frames = append(s.frames, frame{kind: framePIDList, placeholderPos: placeholderPos, placeholderWidth: 4, bodyStart: s.pos})
	return true
}

// FinishPIDEntry back-patches the length placeholder pushed by
// WritePIDEntry with the number of bytes the member actually occupied.
func (s *Stream) FinishPIDEntry() bool {
	if len(s.frames) == 0 {
		return s.fail(InvalidPLEntry)
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	length := len(s.buf) - f.bodyStart
	big := s.streamEndian == xtypes.BigEndian
	if f.placeholderWidth == 2 {
		bufio.PutU16(s.buf, f.placeholderPos, uint16(length), big)
	} else {
		bufio.PutU32(s.buf, f.placeholderPos, uint32(length), big)
	}
	return true
}

// WritePIDTerminator emits the parameter-list terminator (pid=0x3f02,
// length 0) that closes an XCDR1 mutable struct body.
func (s *Stream) WritePIDTerminator() bool {
	term := pidTerminator
	if !s.Uint16(&term) {
		return false
	}
	zero := uint16(0)
	return s.Uint16(&zero)
}

// PIDHeader is one decoded XCDR1 parameter-list entry.
type PIDHeader struct {
	MemberID       uint32
	Length         int
	MustUnderstand bool
	ImplExtension  bool
	Terminator     bool
}

// ReadPIDHeader decodes the next PID header, including the
// implementation-extension-flagged short/extended forms, following the
// extended-form length (always 8) to recover the real member length (spec
// §4.B.7). The reader tolerates the implementation-extension bit being set
// even though WritePIDEntry, the struct-body writer, never sets it; only
// WritePIDHeader does, when its caller asks (spec §9 open question:
// left implementation-defined on write, accepted on read).
func (s *Stream) ReadPIDHeader() (PIDHeader, bool) {
	var flagsPID uint16
	if !s.Uint16(&flagsPID) {
		return PIDHeader{}, false
	}
	mustUnderstand := flagsPID&pidMustUnderstandFlag != 0
	implExt := flagsPID&pidImplExtensionFlag != 0
	pid := flagsPID &^ (pidMustUnderstandFlag | pidImplExtensionFlag)

	if pid == pidTerminator {
		var length uint16
		if !s.Uint16(&length) {
			return PIDHeader{}, false
		}
		return PIDHeader{Terminator: true}, true
	}

	if pid == pidExtended {
		var hdrLen uint16
		if !s.Uint16(&hdrLen) {
			return PIDHeader{}, false
		}
		var memberID uint32
		if !s.Uint32(&memberID) {
			return PIDHeader{}, false
		}
		var length uint32
		if !s.Uint32(&length) {
			return PIDHeader{}, false
		}
		return PIDHeader{MemberID: memberID, Length: int(length), MustUnderstand: mustUnderstand, ImplExtension: implExt}, true
	}

	var length uint16
	if !s.Uint16(&length) {
		return PIDHeader{}, false
	}
	return PIDHeader{MemberID: uint32(pid), Length: int(length), MustUnderstand: mustUnderstand, ImplExtension: implExt}, true
}

// xcdr1Applicable reports whether PID framing applies: only the XCDR1 CDR
// kind uses it (spec §4.B.7); callers should otherwise use XCDR2 EMHEADER
// framing (spec §4.B.6).
func (s *Stream) xcdr1Applicable() bool { return s.kind == xtypes.XCDR1 }
