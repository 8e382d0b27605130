package gen

import (
	"github.com/nebuladds/xcdr-core/idl"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// StructEncodings computes the allowable-encoding mask for a struct (spec
// §4.D.3): a type requires XCDR2 (excludes XCDR1) if, anywhere in its
// transitive content, it contains an optional member, a non-default
// must-understand member, appendable/mutable extensibility, a bitmask, or a
// non-primitive sequence/array needing a DHEADER. Both encodings are
// allowed otherwise.
func (r *Registry) StructEncodings(name string) xtypes.AllowableEncodings {
	if r.structRequiresXCDR2(name, make(map[string]bool)) {
		return xtypes.AllowXCDR2
	}
	return xtypes.AllowXCDR1 | xtypes.AllowXCDR2
}

// UnionEncodings is the union analogue of StructEncodings: the
// discriminator and every branch's payload type are checked the same way a
// struct's members are.
func (r *Registry) UnionEncodings(name string) xtypes.AllowableEncodings {
	if r.unionRequiresXCDR2(name, make(map[string]bool)) {
		return xtypes.AllowXCDR2
	}
	return xtypes.AllowXCDR1 | xtypes.AllowXCDR2
}

func (r *Registry) structRequiresXCDR2(name string, visited map[string]bool) bool {
	if visited[name] {
		return false
	}
	visited[name] = true

	s, ok := r.Structs[name]
	if !ok {
		return false
	}
	if s.Extensibility != xtypes.Final {
		return true
	}
	for _, m := range s.Members {
		if m.IsOptional || m.MustUnderstand {
			return true
		}
		if r.typeRequiresXCDR2(m.Type, visited) {
			return true
		}
	}
	return false
}

func (r *Registry) unionRequiresXCDR2(name string, visited map[string]bool) bool {
	if visited[name] {
		return false
	}
	visited[name] = true

	u, ok := r.Unions[name]
	if !ok {
		return false
	}
	if u.Extensibility != xtypes.Final {
		return true
	}
	if r.typeRequiresXCDR2(u.DiscriminatorType, visited) {
		return true
	}
	for _, b := range u.Branches {
		if b.Member.IsOptional || b.Member.MustUnderstand {
			return true
		}
		if r.typeRequiresXCDR2(b.Member.Type, visited) {
			return true
		}
	}
	return false
}

func (r *Registry) typeRequiresXCDR2(t idl.TypeRef, visited map[string]bool) bool {
	switch t.Kind {
	case idl.RefOptional, idl.RefExternal:
		return true
	case idl.RefNamed:
		if r.IsBitmask(t.Named) {
			return true
		}
		if r.structRequiresXCDR2(t.Named, visited) || r.unionRequiresXCDR2(t.Named, visited) {
			return true
		}
		return false
	case idl.RefSequence, idl.RefArray:
		if t.Element == nil {
			return false
		}
		if t.Element.Kind != idl.RefPrimitive {
			return true // needs a DHEADER around non-primitive content
		}
		return false
	default:
		return false
	}
}
