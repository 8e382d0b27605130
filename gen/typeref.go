package gen

import "github.com/nebuladds/xcdr-core/idl"

func primitiveGoType(p idl.PrimitiveKind) string {
	switch p {
	case idl.PrimBoolean:
		return "bool"
	case idl.PrimOctet, idl.PrimUint8:
		return "uint8"
	case idl.PrimChar:
		return "byte"
	case idl.PrimWChar:
		return "uint16"
	case idl.PrimInt8:
		return "int8"
	case idl.PrimInt16:
		return "int16"
	case idl.PrimUint16:
		return "uint16"
	case idl.PrimInt32:
		return "int32"
	case idl.PrimUint32:
		return "uint32"
	case idl.PrimInt64:
		return "int64"
	case idl.PrimUint64:
		return "uint64"
	case idl.PrimFloat32:
		return "float32"
	case idl.PrimFloat64:
		return "float64"
	default:
		return "any"
	}
}

// resolvedType is a member's Go type expression plus whichever injectable
// template import path it pulled in, if any.
type resolvedType struct {
	GoType string
	Import string
}

// GoType resolves an idl.TypeRef to a Go type expression, expanding
// whichever Options template slot applies (spec §4.D.1's injectable
// templates reinterpreted for Go; see templates.go).
func GoType(ref idl.TypeRef, opts *Options) (resolvedType, error) {
	switch ref.Kind {
	case idl.RefPrimitive:
		return resolvedType{GoType: primitiveGoType(ref.Primitive)}, nil
	case idl.RefNamed:
		return resolvedType{GoType: GoTypeName(ref.Named)}, nil
	case idl.RefString:
		pair := opts.String
		if ref.Bound > 0 {
			pair = opts.BoundedString
		}
		out, err := renderBackingType(pair, backingTypeData{Bound: ref.Bound})
		return resolvedType{GoType: out, Import: pair.Import}, err
	case idl.RefWString:
		return resolvedType{GoType: "string"}, nil
	case idl.RefSequence:
		elem, err := GoType(*ref.Element, opts)
		if err != nil {
			return resolvedType{}, err
		}
		pair := opts.Sequence
		if ref.Bound > 0 {
			pair = opts.BoundedSequence
		}
		out, err := renderBackingType(pair, backingTypeData{Type: elem.GoType, Bound: ref.Bound})
		return resolvedType{GoType: out, Import: pair.Import}, err
	case idl.RefArray:
		elem, err := GoType(*ref.Element, opts)
		if err != nil {
			return resolvedType{}, err
		}
		out, err := renderBackingType(opts.Array, backingTypeData{Type: elem.GoType, Dimension: ref.Dimension})
		return resolvedType{GoType: out, Import: opts.Array.Import}, err
	case idl.RefOptional, idl.RefExternal:
		elem, err := GoType(*ref.Element, opts)
		if err != nil {
			return resolvedType{}, err
		}
		out, err := renderBackingType(opts.Optional, backingTypeData{Type: elem.GoType})
		return resolvedType{GoType: out, Import: opts.Optional.Import}, err
	default:
		return resolvedType{GoType: "any"}, nil
	}
}

// RequiresXCDR2 reports whether ref, anywhere in its transitive content,
// needs a feature XCDR1 cannot carry: a non-primitive array/sequence (which
// needs a DHEADER) or an optional member (spec §4.D.3 contributes its own
// rule for optionals; this helper covers the structural-content half).
func RequiresXCDR2(ref idl.TypeRef) bool {
	switch ref.Kind {
	case idl.RefOptional:
		return true
	case idl.RefSequence, idl.RefArray, idl.RefExternal:
		if ref.Element != nil && ref.Element.Kind != idl.RefPrimitive {
			return true
		}
		if ref.Element != nil && RequiresXCDR2(*ref.Element) {
			return true
		}
		return false
	default:
		return false
	}
}
