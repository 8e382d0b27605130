package gen

import "github.com/nebuladds/xcdr-core/idl"

// Registry flattens an idl.Module tree (including submodules) into
// name-indexed lookup tables, the transitive-reference resolver the
// allowable-encoding computation (spec §4.D.3) and struct/union emission
// need to recurse through named-type references.
type Registry struct {
	Structs  map[string]idl.Struct
	Unions   map[string]idl.Union
	Enums    map[string]idl.Enum
	Bitmasks map[string]idl.Bitmask
	Typedefs map[string]idl.Typedef
}

// NewRegistry walks mod and its submodules, indexing every definition by
// its fully-scoped ("::"-joined) name.
func NewRegistry(mod idl.Module) *Registry {
	r := &Registry{
		Structs:  make(map[string]idl.Struct),
		Unions:   make(map[string]idl.Union),
		Enums:    make(map[string]idl.Enum),
		Bitmasks: make(map[string]idl.Bitmask),
		Typedefs: make(map[string]idl.Typedef),
	}
	r.index(mod, nil)
	return r
}

func (r *Registry) index(mod idl.Module, scope []string) {
	inner := make([]string, len(scope), len(scope)+1)
	copy(inner, scope)
	inner = append(inner, mod.Name)
	for _, s := range mod.Structs {
		r.Structs[idl.Qualify(inner, s.Name)] = s
	}
	for _, u := range mod.Unions {
		r.Unions[idl.Qualify(inner, u.Name)] = u
	}
	for _, e := range mod.Enums {
		r.Enums[idl.Qualify(inner, e.Name)] = e
	}
	for _, b := range mod.Bitmasks {
		r.Bitmasks[idl.Qualify(inner, b.Name)] = b
	}
	for _, td := range mod.Typedefs {
		r.Typedefs[idl.Qualify(inner, td.Name)] = td
	}
	for _, sub := range mod.Submodules {
		r.index(sub, inner)
	}
}

// IsBitmask reports whether name resolves to a bitmask definition.
func (r *Registry) IsBitmask(name string) bool {
	_, ok := r.Bitmasks[name]
	return ok
}
