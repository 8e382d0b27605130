package cdr

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// ElemFunc streams one sequence or array element under the stream's
// current mode.
type ElemFunc[T any] func(s *Stream, v *T) bool

// Sequence streams a sequence<T> (bound == 0) or sequence<T,bound> member
// (spec §4.B.2, §4.B.5). primitive indicates T is a fixed-size wire
// primitive: primitive sequences need no DHEADER even under XCDR2, while
// sequences of non-primitive elements are framed by a DHEADER in XCDR2
// (spec §4.B.6).
func Sequence[T any](s *Stream, v *[]T, bound int, primitive bool, elem ElemFunc[T]) bool {
	switch s.mode {
	case xtypes.ModeWrite:
		return writeSequence(s, *v, bound, primitive, elem)
	case xtypes.ModeRead:
		return readSequence(s, v, bound, primitive, elem)
	case xtypes.ModeMove:
		return moveSequence(s, *v, bound, primitive, elem)
	case xtypes.ModeMax:
		return maxSequence(s, bound, primitive, elem)
	}
	return false
}

func (s *Stream) sequenceLength(n, bound int) (uint32, bool) {
	if bound > 0 && n > bound {
		return 0, s.fail(WriteBoundExceeded)
	}
	return uint32(n), true
}

func writeSequence[T any](s *Stream, v []T, bound int, primitive bool, elem ElemFunc[T]) bool {
	length, ok := s.sequenceLength(len(v), bound)
	if !ok {
		return false
	}
	if !s.Uint32(&length) {
		return false
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

func moveSequence[T any](s *Stream, v []T, bound int, primitive bool, elem ElemFunc[T]) bool {
	length, ok := s.sequenceLength(len(v), bound)
	if !ok {
		return false
	}
	if !s.Uint32(&length) {
		return false
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

// readSequence takes the wire length at face value (spec §4.B.2): a
// deliberately long on-wire value cannot be used to truncate local data.
// If bound > 0 and length exceeds it, the excess elements are consumed
// from the stream and discarded, and the local slice is resized to
// min(length, bound).
func readSequence[T any](s *Stream, v *[]T, bound int, primitive bool, elem ElemFunc[T]) bool {
	var length uint32
	if !s.Uint32(&length) {
		return false
	}
	if !primitive {
		if !s.BeginDHeader() {
			return false
		}
	}
	n := int(length)
	keep := n
	if bound > 0 && keep > bound {
		keep = bound
	}
	out := make([]T, keep)
	for i := 0; i < n; i++ {
		if i < keep {
			if !elem(s, &out[i]) {
				return false
			}
		} else {
			var discard T
			if !elem(s, &discard) {
				return false
			}
		}
	}
	if !primitive {
		if !s.EndDHeader() {
			return false
		}
	}
	*v = out
	return true
}

// maxSequence computes a type-level upper-bound size: an unbounded
// sequence has no finite max, so the cursor saturates; a bounded sequence
// measures bound worst-case elements.
func maxSequence[T any](s *Stream, bound int, primitive bool, elem ElemFunc[T]) bool {
	var length uint32
	if !s.Uint32(&length) {
		return false
	}
	if bound == 0 {
		s.saturate()
		return true
	}
	if !primitive {
		if !s.BeginDHeader() {
			return false
		}
	}
	for i := 0; i < bound; i++ {
		var zero T
		if !elem(s, &zero) {
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
