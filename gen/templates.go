package gen

import (
	"bytes"
	"text/template"
)

// backingTypeData is substituted into a TemplatePair's Template string: the
// Go analogue of spec §4.D.1's `{TYPE}`/`{DIMENSION}`/`{BOUND}`
// placeholders.
type backingTypeData struct {
	Type      string
	Dimension int
	Bound     int
}

// unionGetterData is substituted into a union getter TemplatePair.
type unionGetterData struct {
	UnionName  string
	BranchName string
	Type       string
}

func renderBackingType(pair TemplatePair, data backingTypeData) (string, error) {
	return renderTemplate(pair.Template, data)
}

func renderUnionGetter(pair TemplatePair, data unionGetterData) (string, error) {
	return renderTemplate(pair.Template, data)
}

func renderTemplate(src string, data any) (string, error) {
	t, err := template.New("backing").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Default backing-type templates: ordinary Go slices, strings, fixed
// arrays, and pointers. A CLI invocation overrides any of these (spec
// §6's `*-template`/`*-include` flags) to route a member through a
// different backing type, e.g. a fixed-capacity bounded-container type
// from another package.
var (
	defaultSequenceTemplate        = TemplatePair{Template: "[]{{.Type}}"}
	defaultBoundedSequenceTemplate = TemplatePair{Template: "[]{{.Type}}"}
	defaultStringTemplate          = TemplatePair{Template: "string"}
	defaultBoundedStringTemplate   = TemplatePair{Template: "string"}
	defaultArrayTemplate           = TemplatePair{Template: "[{{.Dimension}}]{{.Type}}"}
	defaultOptionalTemplate        = TemplatePair{Template: "*{{.Type}}"}
	defaultUnionTemplate           = TemplatePair{Template: "any"}
	defaultUnionGetterTemplate     = TemplatePair{
		Template: "func (u *{{.UnionName}}) {{.BranchName}}() ({{.Type}}, bool) {\n" +
			"\tv, ok := u.value.({{.Type}})\n" +
			"\treturn v, ok\n" +
			"}\n",
	}
)
