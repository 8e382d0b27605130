package cdr

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// Optional streams an optional member represented as a nil-able pointer.
// Optional members begin with a one-byte present flag followed by the
// value if present (spec §4.B.8). Allowed only under XCDR1/XCDR2; Basic
// CDR has no wire representation for "absent", so attempting to stream an
// optional under Basic CDR sets illegal_field_value and fails.
//
// Every representation streams this same presence flag, including members
// of a mutable struct: a mutable body still gives an optional member its
// own PID/EMHEADER entry regardless of whether the value is present, and
// this function's flag octet is what actually signals absence inside that
// entry (spec §4.B.9's struct loop never special-cases optional members by
// skipping their frame entries).
func Optional[T any](s *Stream, v **T, elem ElemFunc[T]) bool {
	if s.kind == xtypes.BasicCDR {
		return s.fail(IllegalFieldValue)
	}
	switch s.mode {
	case xtypes.ModeWrite, xtypes.ModeMove:
		present := *v != nil
		var flag uint8
		if present {
			flag = 1
		}
		if !s.Octet(&flag) {
			return false
		}
		if present {
			return elem(s, *v)
		}
		return true
	case xtypes.ModeRead:
		var flag uint8
		if !s.Octet(&flag) {
			return false
		}
		if flag == 0 {
			*v = nil
			return true
		}
		val := new(T)
		if !elem(s, val) {
			return false
		}
		*v = val
		return true
	case xtypes.ModeMax:
		if s.saturated() {
			return true
		}
		var flag uint8
		if !s.Octet(&flag) {
			return false
		}
		var zero T
		return elem(s, &zero)
	}
	return false
}
