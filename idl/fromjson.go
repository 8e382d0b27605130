package idl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// LoadJSON decodes a Module description from r. The JSON shape mirrors
// Module field-for-field, with enums spelled as lowercase strings
// ("final"/"appendable"/"mutable", "int32", "sequence", ...) so a hand-
// written fixture stays readable — this is the JSON-as-IDL-surrogate input
// a real OMG IDL grammar would otherwise produce.
func LoadJSON(r io.Reader) (Module, error) {
	var doc jsonModule
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Module{}, xtypes.Wrap(xtypes.ErrKindInvalidArgument, "decode IDL JSON module", err)
	}
	return doc.toModule()
}

type jsonModule struct {
	Name       string          `json:"name"`
	Structs    []jsonStruct    `json:"structs,omitempty"`
	Unions     []jsonUnion     `json:"unions,omitempty"`
	Enums      []jsonEnum      `json:"enums,omitempty"`
	Bitmasks   []jsonBitmask   `json:"bitmasks,omitempty"`
	Typedefs   []jsonTypedef   `json:"typedefs,omitempty"`
	Submodules []jsonModule    `json:"submodules,omitempty"`
}

type jsonStruct struct {
	Name          string       `json:"name"`
	Extensibility string       `json:"extensibility,omitempty"`
	Members       []jsonMember `json:"members"`
	Keys          []string     `json:"keys,omitempty"`
}

type jsonMember struct {
	Name                    string      `json:"name"`
	MemberID                uint32      `json:"memberId"`
	Type                    jsonTypeRef `json:"type"`
	Optional                bool        `json:"optional,omitempty"`
	MustUnderstand          bool        `json:"mustUnderstand,omitempty"`
	Ignore                  bool        `json:"ignore,omitempty"`
	ImplementationExtension bool        `json:"implementationExtension,omitempty"`
	Key                     bool        `json:"key,omitempty"`
}

type jsonTypeRef struct {
	Kind      string       `json:"kind"` // primitive, named, string, wstring, sequence, array, optional, external
	Primitive string       `json:"primitive,omitempty"`
	Named     string       `json:"named,omitempty"`
	Element   *jsonTypeRef `json:"element,omitempty"`
	Bound     int          `json:"bound,omitempty"`
	Dimension int          `json:"dimension,omitempty"`
}

type jsonUnionBranch struct {
	Labels    []int64    `json:"labels,omitempty"`
	IsDefault bool       `json:"default,omitempty"`
	Member    jsonMember `json:"member"`
}

type jsonUnion struct {
	Name              string            `json:"name"`
	Extensibility     string            `json:"extensibility,omitempty"`
	DiscriminatorType jsonTypeRef       `json:"discriminatorType"`
	Branches          []jsonUnionBranch `json:"branches"`
}

type jsonEnumValue struct {
	Name  string `json:"name"`
	Value uint32 `json:"value"`
}

type jsonEnum struct {
	Name     string          `json:"name"`
	Values   []jsonEnumValue `json:"values"`
	Default  string          `json:"default,omitempty"`
	BitBound int             `json:"bitBound,omitempty"`
}

type jsonBitmaskBit struct {
	Name     string `json:"name"`
	Position uint8  `json:"position"`
}

type jsonBitmask struct {
	Name     string           `json:"name"`
	Bits     []jsonBitmaskBit `json:"bits"`
	BitBound int              `json:"bitBound,omitempty"`
}

type jsonTypedef struct {
	Name   string      `json:"name"`
	Target jsonTypeRef `json:"target"`
}

func (m jsonModule) toModule() (Module, error) {
	out := Module{Name: m.Name}
	for _, s := range m.Structs {
		cs, err := s.toStruct()
		if err != nil {
			return Module{}, err
		}
		out.Structs = append(out.Structs, cs)
	}
	for _, u := range m.Unions {
		cu, err := u.toUnion()
		if err != nil {
			return Module{}, err
		}
		out.Unions = append(out.Unions, cu)
	}
	for _, e := range m.Enums {
		out.Enums = append(out.Enums, e.toEnum())
	}
	for _, b := range m.Bitmasks {
		out.Bitmasks = append(out.Bitmasks, b.toBitmask())
	}
	for _, td := range m.Typedefs {
		ct, err := td.Target.toTypeRef()
		if err != nil {
			return Module{}, err
		}
		out.Typedefs = append(out.Typedefs, Typedef{Name: td.Name, Target: ct})
	}
	for _, sub := range m.Submodules {
		cm, err := sub.toModule()
		if err != nil {
			return Module{}, err
		}
		out.Submodules = append(out.Submodules, cm)
	}
	return out, nil
}

func (s jsonStruct) toStruct() (Struct, error) {
	out := Struct{
		Name:          s.Name,
		Extensibility: parseExtensibility(s.Extensibility),
		Keys:          s.Keys,
	}
	for _, m := range s.Members {
		cm, err := m.toMember()
		if err != nil {
			return Struct{}, err
		}
		out.Members = append(out.Members, cm)
	}
	return out, nil
}

func (m jsonMember) toMember() (Member, error) {
	t, err := m.Type.toTypeRef()
	if err != nil {
		return Member{}, fmt.Errorf("member %q: %w", m.Name, err)
	}
	return Member{
		Name:                    m.Name,
		MemberID:                m.MemberID,
		Type:                    t,
		IsOptional:              m.Optional,
		MustUnderstand:          m.MustUnderstand,
		Ignore:                  m.Ignore,
		ImplementationExtension: m.ImplementationExtension,
		IsKey:                   m.Key,
	}, nil
}

func (u jsonUnion) toUnion() (Union, error) {
	disc, err := u.DiscriminatorType.toTypeRef()
	if err != nil {
		return Union{}, fmt.Errorf("union %q discriminator: %w", u.Name, err)
	}
	out := Union{Name: u.Name, Extensibility: parseExtensibility(u.Extensibility), DiscriminatorType: disc}
	for _, b := range u.Branches {
		cm, err := b.Member.toMember()
		if err != nil {
			return Union{}, err
		}
		out.Branches = append(out.Branches, UnionBranch{Labels: b.Labels, IsDefault: b.IsDefault, Member: cm})
	}
	return out, nil
}

func (e jsonEnum) toEnum() Enum {
	out := Enum{Name: e.Name, Default: e.Default, BitBound: parseBitBound(e.BitBound, xtypes.Bits32)}
	for _, v := range e.Values {
		out.Values = append(out.Values, EnumValue{Name: v.Name, Value: v.Value})
	}
	return out
}

func (b jsonBitmask) toBitmask() Bitmask {
	out := Bitmask{Name: b.Name, BitBound: parseBitBound(b.BitBound, xtypes.Bits32)}
	for _, bit := range b.Bits {
		out.Bits = append(out.Bits, BitmaskBit{Name: bit.Name, Position: bit.Position})
	}
	return out
}

func (t jsonTypeRef) toTypeRef() (TypeRef, error) {
	switch t.Kind {
	case "primitive":
		p, err := parsePrimitive(t.Primitive)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Kind: RefPrimitive, Primitive: p}, nil
	case "named":
		if t.Named == "" {
			return TypeRef{}, fmt.Errorf("named type reference missing a name")
		}
		return TypeRef{Kind: RefNamed, Named: t.Named}, nil
	case "string":
		return TypeRef{Kind: RefString, Bound: t.Bound}, nil
	case "wstring":
		return TypeRef{Kind: RefWString, Bound: t.Bound}, nil
	case "sequence", "array", "optional", "external":
		if t.Element == nil {
			return TypeRef{}, fmt.Errorf("%s type reference missing an element type", t.Kind)
		}
		elem, err := t.Element.toTypeRef()
		if err != nil {
			return TypeRef{}, err
		}
		kind := map[string]TypeRefKind{
			"sequence": RefSequence,
			"array":    RefArray,
			"optional": RefOptional,
			"external": RefExternal,
		}[t.Kind]
		return TypeRef{Kind: kind, Element: &elem, Bound: t.Bound, Dimension: t.Dimension}, nil
	default:
		return TypeRef{}, fmt.Errorf("unknown IDL type reference kind %q", t.Kind)
	}
}

func parseExtensibility(s string) xtypes.Extensibility {
	switch s {
	case "appendable":
		return xtypes.Appendable
	case "mutable":
		return xtypes.Mutable
	default:
		return xtypes.Final
	}
}

func parseBitBound(n int, fallback xtypes.BitBound) xtypes.BitBound {
	switch n {
	case 8:
		return xtypes.Bits8
	case 16:
		return xtypes.Bits16
	case 32:
		return xtypes.Bits32
	case 64:
		return xtypes.Bits64
	default:
		return fallback
	}
}

func parsePrimitive(s string) (PrimitiveKind, error) {
	switch s {
	case "boolean":
		return PrimBoolean, nil
	case "octet":
		return PrimOctet, nil
	case "char":
		return PrimChar, nil
	case "wchar":
		return PrimWChar, nil
	case "int8":
		return PrimInt8, nil
	case "uint8":
		return PrimUint8, nil
	case "int16", "short":
		return PrimInt16, nil
	case "uint16", "unsigned short":
		return PrimUint16, nil
	case "int32", "long":
		return PrimInt32, nil
	case "uint32", "unsigned long":
		return PrimUint32, nil
	case "int64", "long long":
		return PrimInt64, nil
	case "uint64", "unsigned long long":
		return PrimUint64, nil
	case "float32", "float":
		return PrimFloat32, nil
	case "float64", "double":
		return PrimFloat64, nil
	default:
		return 0, fmt.Errorf("unknown IDL primitive %q", s)
	}
}
