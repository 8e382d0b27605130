package gen

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"github.com/nebuladds/xcdr-core/idl"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// Generator drives emission of one Go source file per IDL definition,
// following the teacher's builder.New()-then-Build() shape
// (hive/builder/builder.go): configure once via Options, then call
// Generate for each module tree the front end loaded.
type Generator struct {
	opts *Options
	reg  *Registry
}

// NewGenerator pairs a Registry (for transitive type/encoding lookups)
// with the Options a CLI invocation or DefaultOptions produced.
func NewGenerator(reg *Registry, opts *Options) *Generator {
	return &Generator{opts: opts, reg: reg}
}

// Generate walks every definition in the generator's registry and returns
// one formatted Go source file per definition, keyed by the file name the
// CLI front end should write it under (cmd/xcdrgen does the actual
// filesystem write, following the teacher's separation between hive's pure
// builder and hivectl's I/O).
func (g *Generator) Generate() (map[string]string, error) {
	out := make(map[string]string)

	for _, name := range sortedKeys(g.reg.Structs) {
		src, err := g.emitStruct(name, g.reg.Structs[name])
		if err != nil {
			return nil, fmt.Errorf("struct %s: %w", name, err)
		}
		out[fileName(name)] = src
	}
	for _, name := range sortedKeys(g.reg.Unions) {
		src, err := g.emitUnion(name, g.reg.Unions[name])
		if err != nil {
			return nil, fmt.Errorf("union %s: %w", name, err)
		}
		out[fileName(name)] = src
	}
	for _, name := range sortedKeys(g.reg.Enums) {
		src, err := g.emitEnum(name, g.reg.Enums[name])
		if err != nil {
			return nil, fmt.Errorf("enum %s: %w", name, err)
		}
		out[fileName(name)] = src
	}
	for _, name := range sortedKeys(g.reg.Bitmasks) {
		src, err := g.emitBitmask(name, g.reg.Bitmasks[name])
		if err != nil {
			return nil, fmt.Errorf("bitmask %s: %w", name, err)
		}
		out[fileName(name)] = src
	}
	for _, name := range sortedKeys(g.reg.Typedefs) {
		src, err := g.emitTypedef(name, g.reg.Typedefs[name])
		if err != nil {
			return nil, fmt.Errorf("typedef %s: %w", name, err)
		}
		out[fileName(name)] = src
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fileName(qualifiedName string) string {
	flat := strings.ToLower(strings.ReplaceAll(qualifiedName, "::", "_"))
	return flat + "_gen.go"
}

// gofmt runs the assembled source through go/format, the same
// gofmt-on-emit step every mainstream Go code generator (stringer,
// protoc-gen-go) applies so hand-assembled template output never reaches
// disk with inconsistent indentation.
func gofmt(src string) (string, error) {
	out, err := format.Source([]byte(src))
	if err != nil {
		return "", fmt.Errorf("formatting generated source: %w\n%s", err, src)
	}
	return string(out), nil
}

func mustRender(tmplSrc string, data any) string {
	t := template.Must(template.New("t").Funcs(template.FuncMap{
		"goName": GoTypeName,
	}).Parse(tmplSrc))
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		panic(err)
	}
	return b.String()
}

// structFieldData is one member's template-rendering context.
type structFieldData struct {
	GoName         string
	MemberID       uint32
	GoType         string
	StreamExpr     string // "s.Uint32(&x.Field)"-shaped call against the receiver "x"
	MustUnderstand bool
	IsOptional     bool
}

type structTemplateData struct {
	PackageName   string
	GoName        string
	Extensibility string
	Fields        []structFieldData
	Imports       []string
}

const structTemplate = `// Code generated by xcdrgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/nebuladds/xcdr-core/cdr"
	"github.com/nebuladds/xcdr-core/proptree"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

// {{.GoName}} was generated from an IDL struct definition.
type {{.GoName}} struct {
{{- range .Fields}}
	{{.GoName}} {{.GoType}}
{{- end}}
}

var {{.GoName}}Descriptor = proptree.NewDescriptor(func() ([]proptree.PropertyRecord, proptree.KeyEndpointMap) {
	records := []proptree.PropertyRecord{
		{Depth: 0, Extensibility: xtypes.{{.Extensibility}}},
{{- range .Fields}}
		{MemberID: {{.MemberID}}, Depth: 1, ParentExtensibility: xtypes.{{$.Extensibility}}, MustUnderstand: {{.MustUnderstand}}, IsOptional: {{.IsOptional}}},
{{- end}}
	}
	return records, nil
})

func (x *{{.GoName}}) dispatch(s *cdr.Stream, p *proptree.EntityProperty) bool {
	switch p.MemberID {
{{- range .Fields}}
	case {{.MemberID}}:
		return {{.StreamExpr}}
{{- end}}
	default:
		return false
	}
}

// Write serializes x onto s (spec §4.B.9's struct write loop).
func (x *{{.GoName}}) Write(s *cdr.Stream) bool {
	return cdr.StreamBody(s, {{.GoName}}Descriptor.Tree(), xtypes.{{.Extensibility}}, x.dispatch)
}

// Read deserializes x from s.
func (x *{{.GoName}}) Read(s *cdr.Stream) bool {
	return cdr.StreamBody(s, {{.GoName}}Descriptor.Tree(), xtypes.{{.Extensibility}}, x.dispatch)
}

// Move advances s's cursor by x's exact encoded size without touching s's buffer.
func (x *{{.GoName}}) Move(s *cdr.Stream) bool {
	return cdr.StreamBody(s, {{.GoName}}Descriptor.Tree(), xtypes.{{.Extensibility}}, x.dispatch)
}

// Max advances s's cursor by x's worst-case encoded size, saturating if an
// unbounded sequence or string is reachable from x.
func (x *{{.GoName}}) Max(s *cdr.Stream) bool {
	return cdr.StreamBody(s, {{.GoName}}Descriptor.Tree(), xtypes.{{.Extensibility}}, x.dispatch)
}

// GetSize returns x's exact encoded size under kind/endian (spec §4.B.1 move).
func (x *{{.GoName}}) GetSize(kind xtypes.CDRKind, endian xtypes.Endianness) int {
	s := cdr.NewMoveStream(kind, endian)
	x.Move(s)
	return int(s.Position())
}

// ComputeKeyHash produces the 16-byte DDS instance key hash for x (spec §4.B.10).
func (x *{{.GoName}}) ComputeKeyHash(kind xtypes.CDRKind) [xtypes.KeyHashSize]byte {
	s := cdr.NewKeyHashStream(kind)
	cdr.StreamKeyFields(s, {{.GoName}}Descriptor.Tree(), xtypes.{{.Extensibility}}, x.dispatch)
	return cdr.FoldKeyHash(s.Bytes())
}
`

func (g *Generator) emitStruct(name string, st idl.Struct) (string, error) {
	pkg := g.opts.PackageName
	goName := GoTypeName(name)

	var fields []structFieldData
	var imports []string
	seenImport := map[string]bool{}
	for _, m := range st.Members {
		resolved, err := GoType(m.Type, g.opts)
		if err != nil {
			return "", err
		}
		if resolved.Import != "" && !seenImport[resolved.Import] {
			seenImport[resolved.Import] = true
			imports = append(imports, resolved.Import)
		}
		fieldGoName := SanitizeIdentifier(strings.ToUpper(m.Name[:1]) + m.Name[1:])
		fields = append(fields, structFieldData{
			GoName:         fieldGoName,
			MemberID:       m.MemberID,
			GoType:         resolved.GoType,
			StreamExpr:     streamExprFor(m.Type, "x."+fieldGoName, g.opts),
			MustUnderstand: m.MustUnderstand,
			IsOptional:     m.IsOptional,
		})
	}

	data := structTemplateData{
		PackageName:   pkg,
		GoName:        goName,
		Extensibility: extensibilityName(st.Extensibility),
		Fields:        fields,
		Imports:       imports,
	}
	return gofmt(mustRender(structTemplate, data))
}

// extensibilityName maps an xtypes.Extensibility value to its identifier
// name as declared in pkg/xtypes, for interpolation into generated source.
func extensibilityName(e xtypes.Extensibility) string {
	switch e {
	case xtypes.Appendable:
		return "Appendable"
	case xtypes.Mutable:
		return "Mutable"
	default:
		return "Final"
	}
}

// streamExprFor renders the cdr.Stream call streaming one member
// expression (e.g. "x.Name") of the given type. Primitives map directly to
// a Stream method; strings/wstrings/sequences/arrays/optionals route
// through the matching generic helper with an inline element closure.
func streamExprFor(t idl.TypeRef, expr string, opts *Options) string {
	switch t.Kind {
	case idl.RefPrimitive:
		return fmt.Sprintf("s.%s(&%s)", primitiveStreamMethod(t.Primitive), expr)
	case idl.RefNamed:
		return fmt.Sprintf("cdr.StreamValue(s, &%s)", expr)
	case idl.RefString:
		return fmt.Sprintf("s.String(&%s, %d)", expr, t.Bound)
	case idl.RefWString:
		return fmt.Sprintf("s.WString(&%s, %d)", expr, t.Bound)
	case idl.RefSequence:
		elemPrim := t.Element != nil && t.Element.Kind == idl.RefPrimitive
		elemFn := elemStreamFunc(*t.Element, opts)
		return fmt.Sprintf("cdr.Sequence(s, &%s, %d, %v, %s)", expr, t.Bound, elemPrim, elemFn)
	case idl.RefArray:
		elemPrim := t.Element != nil && t.Element.Kind == idl.RefPrimitive
		elemFn := elemStreamFunc(*t.Element, opts)
		return fmt.Sprintf("cdr.Array(s, %s[:], %v, %s)", expr, elemPrim, elemFn)
	case idl.RefOptional, idl.RefExternal:
		elemFn := elemStreamFunc(*t.Element, opts)
		return fmt.Sprintf("cdr.Optional(s, &%s, %s)", expr, elemFn)
	default:
		return fmt.Sprintf("false /* unsupported type kind for %s */", expr)
	}
}

// elemStreamFunc renders a cdr.ElemFunc closure streaming one element of
// the given type, for use as a sequence/array/optional element callback.
func elemStreamFunc(t idl.TypeRef, opts *Options) string {
	switch t.Kind {
	case idl.RefPrimitive:
		return fmt.Sprintf("func(s *cdr.Stream, v *%s) bool { return s.%s(v) }", primitiveGoType(t.Primitive), primitiveStreamMethod(t.Primitive))
	case idl.RefNamed:
		return fmt.Sprintf("func(s *cdr.Stream, v *%s) bool { return cdr.StreamValue(s, v) }", GoTypeName(t.Named))
	case idl.RefString:
		bound := t.Bound
		return fmt.Sprintf("func(s *cdr.Stream, v *string) bool { return s.String(v, %d) }", bound)
	case idl.RefWString:
		bound := t.Bound
		return fmt.Sprintf("func(s *cdr.Stream, v *string) bool { return s.WString(v, %d) }", bound)
	default:
		return "func(s *cdr.Stream, v *any) bool { return false }"
	}
}

func primitiveStreamMethod(p idl.PrimitiveKind) string {
	switch p {
	case idl.PrimBoolean:
		return "Bool"
	case idl.PrimOctet, idl.PrimUint8:
		return "Octet"
	case idl.PrimChar:
		return "Char"
	case idl.PrimWChar:
		return "Uint16"
	case idl.PrimInt8:
		return "Int8"
	case idl.PrimInt16:
		return "Int16"
	case idl.PrimUint16:
		return "Uint16"
	case idl.PrimInt32:
		return "Int32"
	case idl.PrimUint32:
		return "Uint32"
	case idl.PrimInt64:
		return "Int64"
	case idl.PrimUint64:
		return "Uint64"
	case idl.PrimFloat32:
		return "Float32"
	case idl.PrimFloat64:
		return "Float64"
	default:
		return "Octet"
	}
}
