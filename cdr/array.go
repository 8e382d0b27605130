package cdr

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// Array streams a fixed-size IDL array member (spec §4.B.4). Arrays are
// length-free: v's length is the array's compile-time dimension. primitive
// arrays are transferred element by element (this package does not
// implement the bulk-block-copy-then-swap micro-optimization the spec
// allows for primitive arrays). Arrays of
// non-primitive elements are framed by a DHEADER under XCDR2 (spec
// §4.B.6), same as a sequence of non-primitive elements.
func Array[T any](s *Stream, v []T, primitive bool, elem ElemFunc[T]) bool {
	switch s.mode {
	case xtypes.ModeMax:
		if s.saturated() {
			return true
		}
	}
	if !primitive {
		if !s.BeginDHeader() {
			return false
		}
	}
	for i := range v {
		if !elem(s, &v[i]) {
			return false
		}
	}
	if !primitive {
		if !s.EndDHeader() {
			return false
		}
	}
	return true
}
