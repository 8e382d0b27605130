package cdr

import (
	"github.com/nebuladds/xcdr-core/proptree"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// Dispatch streams one member of a generated struct or union, given the
// property-tree node describing it. Generated code supplies this as a
// switch over p.MemberID indexing the type's own fields.
type Dispatch func(s *Stream, p *proptree.EntityProperty) bool

// StreamBody drives one struct (or union-branch-holding-struct) body
// against root's property tree, choosing the framing the stream's CDR kind
// and the body's own extensibility require (spec §4.B.9's "struct read
// loop", generalized over all three CDR kinds and all four modes):
//
//   - Final: no framing; members stream in root's property-tree order.
//   - Appendable: under XCDR v2 only, the body is wrapped in a DHEADER;
//     otherwise identical to Final (Basic CDR and XCDR v1 carry no
//     appendable-specific framing).
//   - Mutable: under XCDR v2, a DHEADER-wrapped body of per-member
//     EMHEADER entries; under XCDR v1, a PID-framed body terminated by the
//     parameter-list terminator. Basic CDR cannot carry a mutable body
//     (illegal_field_value is the caller's responsibility to avoid by
//     construction, since Basic CDR types are generated final-only).
func StreamBody(s *Stream, root *proptree.EntityProperty, ext xtypes.Extensibility, dispatch Dispatch) bool {
	needsDHeader := s.Kind() == xtypes.XCDR2 && ext != xtypes.Final
	if needsDHeader {
		if !s.BeginDHeader() {
			return false
		}
	}

	var ok bool
	switch {
	case ext == xtypes.Mutable && s.Kind() == xtypes.XCDR2:
		ok = streamMutableXCDR2(s, root, dispatch)
	case ext == xtypes.Mutable && s.Kind() == xtypes.XCDR1:
		ok = streamMutableXCDR1(s, root, dispatch)
	default:
		ok = streamFixed(s, root, dispatch)
	}
	if !ok {
		return false
	}

	if needsDHeader {
		if !s.EndDHeader() {
			return false
		}
	}
	return true
}

// StreamKeyFields streams exactly the members root.FirstEntity(s.KeyMode())
// selects, in flat declaration/sorted order with no per-member PID/EMHEADER
// framing regardless of the type's own extensibility — a key is never a
// parameter list. Under XCDR v2, a non-final type's key still gets the same
// DHEADER wrapper its data body would, so a reader can skip an unknown key
// serialization the same way it skips an unknown data body (spec §4.B.10).
func StreamKeyFields(s *Stream, root *proptree.EntityProperty, ext xtypes.Extensibility, dispatch Dispatch) bool {
	needsDHeader := s.Kind() == xtypes.XCDR2 && ext != xtypes.Final
	if needsDHeader {
		if !s.BeginDHeader() {
			return false
		}
	}
	if !streamFixed(s, root, dispatch) {
		return false
	}
	if needsDHeader {
		return s.EndDHeader()
	}
	return true
}

// streamFixed streams every member of root's property tree, in the order
// the stream's current key mode selects, with no per-member framing.
func streamFixed(s *Stream, root *proptree.EntityProperty, dispatch Dispatch) bool {
	for p := root.FirstEntity(s.KeyMode()); p != nil; p = p.NextEntity(s.KeyMode()) {
		if !dispatch(s, p) {
			return false
		}
	}
	return true
}

// checkMissingMembers fails the stream with MissingMember if root declares
// a must-understand member whose id never showed up in seen (spec §7 error
// kind 5: a mutable body closed without a required member ever arriving).
func checkMissingMembers(s *Stream, root *proptree.EntityProperty, seen map[uint32]bool) bool {
	for m := root.FirstMember; m != nil; m = m.NextOnLevel {
		if m.MustUnderstand && !seen[m.MemberID] {
			return s.fail(MissingMember)
		}
	}
	return true
}

func streamMutableXCDR2(s *Stream, root *proptree.EntityProperty, dispatch Dispatch) bool {
	switch s.Mode() {
	case xtypes.ModeRead:
		seen := map[uint32]bool{}
		for s.FrameRemaining() {
			h, length, ok := s.ReadEMHeader()
			if !ok {
				return false
			}
			node := root.ChildByID(h.MemberID)
			if node == nil {
				if h.MustUnderstand {
					return s.fail(MustUnderstandFail)
				}
				if !s.SkipMember(length) {
					return false
				}
				continue
			}
			seen[h.MemberID] = true
			if !dispatch(s, node) {
				return false
			}
		}
		return checkMissingMembers(s, root, seen)
	case xtypes.ModeWrite:
		for p := root.FirstEntity(s.KeyMode()); p != nil; p = p.NextEntity(s.KeyMode()) {
			if !s.WriteEMHeader(p.MemberID, p.MustUnderstand) {
				return false
			}
			if !dispatch(s, p) {
				return false
			}
			if !s.FinishEMHeader() {
				return false
			}
		}
		return true
	default: // move, max: account for the EMHEADER word + length word (8 bytes, 4-aligned) per member
		for p := root.FirstEntity(s.KeyMode()); p != nil; p = p.NextEntity(s.KeyMode()) {
			if !s.Align(4, true) {
				return false
			}
			if !s.advance(8) {
				return false
			}
			if !dispatch(s, p) {
				return false
			}
		}
		return true
	}
}

func streamMutableXCDR1(s *Stream, root *proptree.EntityProperty, dispatch Dispatch) bool {
	switch s.Mode() {
	case xtypes.ModeRead:
		seen := map[uint32]bool{}
		for {
			hdr, ok := s.ReadPIDHeader()
			if !ok {
				return false
			}
			if hdr.Terminator {
				return checkMissingMembers(s, root, seen)
			}
			node := root.ChildByID(hdr.MemberID)
			if node == nil {
				if hdr.MustUnderstand {
					return s.fail(MustUnderstandFail)
				}
				if !s.SkipMember(hdr.Length) {
					return false
				}
				continue
			}
			seen[hdr.MemberID] = true
			if !dispatch(s, node) {
				return false
			}
		}
	case xtypes.ModeWrite:
		for p := root.FirstEntity(s.KeyMode()); p != nil; p = p.NextEntity(s.KeyMode()) {
			if !s.WritePIDEntry(p.MemberID, p.MustUnderstand) {
				return false
			}
			if !dispatch(s, p) {
				return false
			}
			if !s.FinishPIDEntry() {
				return false
			}
		}
		return s.WritePIDTerminator()
	default: // move, max: PID headers start with a uint16, so align(2) first
		for p := root.FirstEntity(s.KeyMode()); p != nil; p = p.NextEntity(s.KeyMode()) {
			width := 4
			if p.MemberID > pidNumberMask {
				width = 12
			}
			if !s.Align(2, true) {
				return false
			}
			if !s.advance(width) {
				return false
			}
			if !dispatch(s, p) {
				return false
			}
		}
		if !s.Align(2, true) {
			return false
		}
		return s.advance(4) // terminator
	}
}
