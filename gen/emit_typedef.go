package gen

import "github.com/nebuladds/xcdr-core/idl"

type typedefTemplateData struct {
	PackageName string
	GoName      string
	Underlying  string
	StreamExpr  string
	Imports     []string
}

const typedefTemplate = `// Code generated by xcdrgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/nebuladds/xcdr-core/cdr"
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

// {{.GoName}} was generated from an IDL typedef: a distinct Go type over
// the same underlying representation, streamed identically to its target
// (spec §4.D.2's "wrapper streamer", needed so a typedef'd array/sequence
// round-trips through its own named type rather than its bare element
// type).
type {{.GoName}} struct {
	Value {{.Underlying}}
}

// Write serializes t's underlying value onto s.
func (t *{{.GoName}}) Write(s *cdr.Stream) bool {
	v := t.Value
	return {{.StreamExpr}}
}

// Read deserializes t's underlying value from s.
func (t *{{.GoName}}) Read(s *cdr.Stream) bool {
	var v {{.Underlying}}
	if !({{.StreamExpr}}) {
		return false
	}
	t.Value = v
	return true
}

// Move advances s's cursor by t's exact encoded size.
func (t *{{.GoName}}) Move(s *cdr.Stream) bool {
	v := t.Value
	return {{.StreamExpr}}
}

// Max advances s's cursor by t's worst-case encoded size.
func (t *{{.GoName}}) Max(s *cdr.Stream) bool {
	v := t.Value
	return {{.StreamExpr}}
}
`

func (g *Generator) emitTypedef(name string, td idl.Typedef) (string, error) {
	resolved, err := GoType(td.Target, g.opts)
	if err != nil {
		return "", err
	}
	var imports []string
	if resolved.Import != "" {
		imports = append(imports, resolved.Import)
	}
	data := typedefTemplateData{
		PackageName: g.opts.PackageName,
		GoName:      GoTypeName(name),
		Underlying:  resolved.GoType,
		StreamExpr:  streamExprFor(td.Target, "v", g.opts),
		Imports:     imports,
	}
	return gofmt(mustRender(typedefTemplate, data))
}
