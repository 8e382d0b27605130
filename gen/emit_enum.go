package gen

import (
	"strings"

	"github.com/nebuladds/xcdr-core/idl"
)

type enumValueData struct {
	GoName string
	Value  uint32
}

type enumTemplateData struct {
	PackageName string
	GoName      string
	BitBound    int
	Values      []enumValueData
	Default     string
}

const enumTemplate = `// Code generated by xcdrgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/nebuladds/xcdr-core/cdr"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// {{.GoName}} was generated from an IDL enum definition, backed by its
// declared bit width (spec's enum @bit_bound, default 32).
type {{.GoName}} uint32

const (
{{- range .Values}}
	{{$.GoName}}{{.GoName}} {{$.GoName}} = {{.Value}}
{{- end}}
	{{.GoName}}Default {{.GoName}} = {{.Default}}
)

// Write serializes the enum's ordinal onto s as a {{.BitBound}}-bit field.
func (e *{{.GoName}}) Write(s *cdr.Stream) bool {
	v := uint64(*e)
	return s.BitBound(&v, xtypes.Bits{{.BitBound}})
}

// Read deserializes the enum's ordinal from s, rejecting a value outside
// the declared set by substituting {{.GoName}}Default rather than
// accepting an unrecognized ordinal (spec's enum @default fallback).
func (e *{{.GoName}}) Read(s *cdr.Stream) bool {
	var v uint64
	if !s.BitBound(&v, xtypes.Bits{{.BitBound}}) {
		return false
	}
	switch {{.GoName}}(v) {
{{- range .Values}}
	case {{$.GoName}}{{.GoName}}:
		*e = {{$.GoName}}{{.GoName}}
{{- end}}
	default:
		*e = {{.GoName}}Default
	}
	return true
}

// Move advances s's cursor by the enum's fixed encoded size.
func (e *{{.GoName}}) Move(s *cdr.Stream) bool { return e.Write(s) }

// Max advances s's cursor by the enum's fixed encoded size.
func (e *{{.GoName}}) Max(s *cdr.Stream) bool { return e.Write(s) }
`

func (g *Generator) emitEnum(name string, en idl.Enum) (string, error) {
	goName := GoTypeName(name)
	var values []enumValueData
	defaultExpr := ""
	for _, v := range en.Values {
		valGoName := SanitizeIdentifier(strings.ToUpper(v.Name[:1]) + v.Name[1:])
		values = append(values, enumValueData{GoName: valGoName, Value: v.Value})
		if en.Default == v.Name {
			defaultExpr = goName + valGoName
		}
	}
	if defaultExpr == "" && len(values) > 0 {
		defaultExpr = goName + values[0].GoName
	}
	bitBound := 32
	if en.BitBound != 0 {
		bitBound = int(en.BitBound)
	}
	data := enumTemplateData{
		PackageName: g.opts.PackageName,
		GoName:      goName,
		BitBound:    bitBound,
		Values:      values,
		Default:     defaultExpr,
	}
	return gofmt(mustRender(enumTemplate, data))
}
