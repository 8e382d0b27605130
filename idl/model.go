// Package idl holds an in-memory description of IDL modules, structs,
// unions, enums, bitmasks and typedefs: the input the code generator
// (package gen) consumes in place of a full OMG IDL parser, which is
// explicitly out of scope for this core.
package idl

import (
	"strings"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// PrimitiveKind enumerates the IDL arithmetic scalar types a TypeRef can
// name directly (as opposed to referencing a user-defined type by name).
type PrimitiveKind int

const (
	PrimBoolean PrimitiveKind = iota
	PrimOctet
	PrimChar
	PrimWChar
	PrimInt8
	PrimUint8
	PrimInt16
	PrimUint16
	PrimInt32
	PrimUint32
	PrimInt64
	PrimUint64
	PrimFloat32
	PrimFloat64
)

// TypeRefKind discriminates the shape of a TypeRef.
type TypeRefKind int

const (
	RefPrimitive TypeRefKind = iota
	RefNamed                 // a struct/union/enum/bitmask/typedef, by fully-scoped name
	RefString
	RefWString
	RefSequence
	RefArray
	RefOptional
	RefExternal // shared/indirected member, per spec's "external" member kind
)

// TypeRef describes one member's or branch's type, including the
// injectable-template parameters (bound, dimension) that the generator
// substitutes into a CLI-supplied backing-type template (spec §4.D.1).
type TypeRef struct {
	Kind      TypeRefKind
	Primitive PrimitiveKind
	Named     string // fully-scoped name, "::"-separated, valid when Kind == RefNamed
	Element   *TypeRef
	Bound     int // sequence/string bound; 0 means unbounded
	Dimension int // array dimension; 0 for non-array kinds
}

// Member is one field of a struct, or the payload of a union branch.
type Member struct {
	Name                    string
	MemberID                uint32
	Type                    TypeRef
	IsOptional              bool
	MustUnderstand          bool
	Ignore                  bool
	ImplementationExtension bool
	IsKey                   bool // set by an inline @key annotation
}

// Struct is one IDL struct definition.
type Struct struct {
	Name          string
	Extensibility xtypes.Extensibility
	Members       []Member
	// Keys lists member-name paths ("::"-joined) forming an explicit
	// keylist (spec §3.2). Package gen reads neither Keys nor Member.IsKey:
	// the descriptors it emits carry no key-endpoint map, so every member
	// of a generated struct is treated as a key.
	Keys []string
}

// UnionBranch is one labeled (or default) arm of a union.
type UnionBranch struct {
	Labels    []int64
	IsDefault bool
	Member    Member
}

// Union is one IDL union definition: a discriminator plus a set of
// deduplicated branch types.
type Union struct {
	Name              string
	Extensibility     xtypes.Extensibility
	DiscriminatorType TypeRef
	Branches          []UnionBranch
}

// EnumValue is one named constant of an Enum.
type EnumValue struct {
	Name  string
	Value uint32
}

// Enum is one IDL enum definition.
type Enum struct {
	Name     string
	Values   []EnumValue
	Default  string // @default literal; empty means the first declared value
	BitBound xtypes.BitBound
}

// BitmaskBit is one named, positioned flag of a Bitmask.
type BitmaskBit struct {
	Name     string
	Position uint8
}

// Bitmask is one IDL bitmask definition.
type Bitmask struct {
	Name     string
	Bits     []BitmaskBit
	BitBound xtypes.BitBound
}

// Typedef is a named alias for another TypeRef, emitted as a wrapper
// streamer so nested arrays/sequences behind the alias round-trip
// correctly (spec §4.D.2).
type Typedef struct {
	Name   string
	Target TypeRef
}

// Module is one IDL module: a named scope holding type definitions and
// nested submodules.
type Module struct {
	Name       string
	Structs    []Struct
	Unions     []Union
	Enums      []Enum
	Bitmasks   []Bitmask
	Typedefs   []Typedef
	Submodules []Module
}

// Qualify joins a module scope path and a local name with the IDL "::"
// scope separator (spec §4.D.1).
func Qualify(scope []string, name string) string {
	if len(scope) == 0 {
		return name
	}
	return strings.Join(scope, "::") + "::" + name
}
