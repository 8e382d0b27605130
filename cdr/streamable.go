package cdr

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// Streamable is the method surface every generated type (struct, union,
// enum, bitmask, typedef wrapper) implements, letting a member whose type
// is itself generated be streamed through the same Stream regardless of
// its own internal encoding.
type Streamable interface {
	Write(s *Stream) bool
	Read(s *Stream) bool
	Move(s *Stream) bool
	Max(s *Stream) bool
}

// StreamValue dispatches to whichever of v's four methods matches s's
// current mode, the generated-code equivalent of a member dispatch
// function's case for a nested named type.
func StreamValue(s *Stream, v Streamable) bool {
	switch s.Mode() {
	case xtypes.ModeWrite:
		return v.Write(s)
	case xtypes.ModeRead:
		return v.Read(s)
	case xtypes.ModeMove:
		return v.Move(s)
	case xtypes.ModeMax:
		return v.Max(s)
	default:
		return false
	}
}
