// Package proptree builds and caches the entity-property tree that drives
// generated read/write/move/max loops and key-hash iteration: one node per
// structural member of a topic type, linked by declaration order and by
// member-id order, built once per type and never mutated afterward.
package proptree

import "github.com/nebuladds/xcdr-core/pkg/xtypes"

// EntityProperty describes one node in a type's structural tree.
type EntityProperty struct {
	MemberID uint32
	Depth    uint32

	// Extensibility is the node's own wire-extensibility kind; ParentExtensibility
	// is its enclosing struct/union's, duplicated here so a member dispatch
	// never needs to walk up to Parent just to check it.
	Extensibility       xtypes.Extensibility
	ParentExtensibility xtypes.Extensibility

	// BitBound is set only for primitive-sized entities and bit-bounded
	// enums/bitmasks; xtypes.Unbound otherwise.
	BitBound xtypes.BitBound

	IsKey                   bool
	IsOptional              bool
	MustUnderstand          bool
	Ignore                  bool
	ImplementationExtension bool
	XTypesNecessary         bool

	Parent      *EntityProperty
	FirstMember *EntityProperty

	NextOnLevel *EntityProperty
	PrevOnLevel *EntityProperty

	FirstUnsortedKey *EntityProperty
	NextUnsortedKey  *EntityProperty
	PrevUnsortedKey  *EntityProperty

	FirstSortedKey *EntityProperty
	NextSortedKey  *EntityProperty
	PrevSortedKey  *EntityProperty
}

// IsRoot reports whether this property is the synthetic root of its type's
// tree: depth 0, member id 0, never a key.
func (e *EntityProperty) IsRoot() bool { return e.Depth == 0 && e.Parent == nil }

// FirstEntity returns the head of the sibling-iteration list selected by
// mode: every declared member (NotKey), only key members in declaration
// order (UnsortedKey), or only key members in member-id order (SortedKey).
// Called on the struct's root (or on a nested member acting as a sub-root)
// to begin a member-dispatch loop (spec's "struct read loop").
func (e *EntityProperty) FirstEntity(mode xtypes.KeyMode) *EntityProperty {
	switch mode {
	case xtypes.UnsortedKey:
		return e.FirstUnsortedKey
	case xtypes.SortedKey:
		return e.FirstSortedKey
	default:
		return e.FirstMember
	}
}

// NextEntity advances to the next sibling under the same iteration mode
// that produced this node via FirstEntity.
func (e *EntityProperty) NextEntity(mode xtypes.KeyMode) *EntityProperty {
	switch mode {
	case xtypes.UnsortedKey:
		return e.NextUnsortedKey
	case xtypes.SortedKey:
		return e.NextSortedKey
	default:
		return e.NextOnLevel
	}
}

// ChildByID finds the direct member with the given member id, in
// declaration order. Mutable-body reads use this to resolve a wire member
// id that may arrive in a different order than declared; it returns nil
// for an id the type does not declare (the caller must then skip the
// member's raw bytes rather than treat it as an error).
func (e *EntityProperty) ChildByID(id uint32) *EntityProperty {
	for m := e.FirstMember; m != nil; m = m.NextOnLevel {
		if m.MemberID == id {
			return m
		}
	}
	return nil
}
