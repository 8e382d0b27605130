// Package xtypes holds the type vocabulary shared by the CDR stream engine,
// the entity-property tree, the generator, and the sertype bridge: wire
// extensibility kinds, status bits, key modes and the typed error taxonomy
// that callers branch on at the sertype boundary.
package xtypes

import "fmt"

// ErrKind classifies a failure so callers can branch on intent rather than
// on error text. These correspond 1:1 to the six error kinds of the
// specification's error-handling design.
type ErrKind int

const (
	// ErrKindBoundExceeded: a read or write would cross its supplied buffer.
	ErrKindBoundExceeded ErrKind = iota
	// ErrKindIllegalFieldValue: a feature unsupported by the chosen CDR mode
	// was written (e.g. an optional member under Basic CDR).
	ErrKindIllegalFieldValue
	// ErrKindInvalidFraming: a PID entry or DHEADER was malformed or pointed
	// past its enclosing frame.
	ErrKindInvalidFraming
	// ErrKindMustUnderstand: an unrecognized member arrived with the
	// must-understand flag set.
	ErrKindMustUnderstand
	// ErrKindMissingMember: a must-understand-present member was not read
	// by the close of a mutable struct body.
	ErrKindMissingMember
	// ErrKindInvalidArgument: API misuse — nil pointer, bad handle, a union
	// setter called with a label incompatible with the current discriminator.
	ErrKindInvalidArgument
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindBoundExceeded:
		return "bound_exceeded"
	case ErrKindIllegalFieldValue:
		return "illegal_field_value"
	case ErrKindInvalidFraming:
		return "invalid_framing"
	case ErrKindMustUnderstand:
		return "must_understand_fail"
	case ErrKindMissingMember:
		return "missing_member"
	case ErrKindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause, following the
// same shape as the rest of the pack's typed-error conventions: a stable
// Kind for programmatic handling, a human message, and an unwrappable cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, xtypes.ErrBoundExceeded) to match any *Error with
// the same Kind, independent of message/cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error of the given kind wrapping a lower-level cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Sentinels usable with errors.Is for the common cases.
var (
	ErrBoundExceeded      = &Error{Kind: ErrKindBoundExceeded, Msg: "bound exceeded"}
	ErrIllegalFieldValue  = &Error{Kind: ErrKindIllegalFieldValue, Msg: "illegal field value for encoding"}
	ErrInvalidFraming     = &Error{Kind: ErrKindInvalidFraming, Msg: "invalid PID/DHEADER framing"}
	ErrMustUnderstandFail = &Error{Kind: ErrKindMustUnderstand, Msg: "unrecognized must-understand member"}
	ErrMissingMember      = &Error{Kind: ErrKindMissingMember, Msg: "required member missing from mutable body"}
	ErrInvalidArgument    = &Error{Kind: ErrKindInvalidArgument, Msg: "invalid argument"}
)
