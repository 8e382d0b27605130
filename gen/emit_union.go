package gen

import (
	"strings"

	"github.com/nebuladds/xcdr-core/idl"
)

// unionBranchData is one branch's template context.
type unionBranchData struct {
	GoName     string
	GoType     string
	Labels     []int64
	IsDefault  bool
	StreamExpr string
	Getter     string
}

type unionTemplateData struct {
	PackageName    string
	GoName         string
	Extensibility  string
	DiscGoType     string
	DiscStreamExpr string
	ValueType      string
	Branches       []unionBranchData
	Imports        []string
}

const unionTemplate = `// Code generated by xcdrgen. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/nebuladds/xcdr-core/cdr"
	"github.com/nebuladds/xcdr-core/proptree"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

// {{.GoName}} was generated from an IDL union definition: exactly one of
// its branches holds a value at a time, selected by Discriminator.
type {{.GoName}} struct {
	Discriminator {{.DiscGoType}}
	value         {{.ValueType}}
}

{{range $i, $b := .Branches}}
// Set{{.GoName}} selects this union's "{{.GoName}}" branch, assigning the
// discriminator the branch's first case label. A branch with no case
// labels of its own leaves the discriminator unchanged.
func (u *{{$.GoName}}) Set{{.GoName}}(v {{.GoType}}) {
{{- if $b.Labels}}
	u.Discriminator = {{$.DiscGoType}}({{index $b.Labels 0}})
{{- end}}
	u.value = v
}

// Set{{.GoName}}At selects this union's "{{.GoName}}" branch under an
// explicit discriminator value, failing with xtypes.ErrInvalidArgument if
// disc does not actually select this branch (spec §8 scenario 5).
func (u *{{$.GoName}}) Set{{.GoName}}At(disc {{$.DiscGoType}}, v {{.GoType}}) error {
	if u.branchForValue(disc) != {{$i}} {
		return xtypes.ErrInvalidArgument
	}
	u.Discriminator = disc
	u.value = v
	return nil
}

{{$b.Getter}}
{{end}}

var {{.GoName}}Descriptor = proptree.NewDescriptor(func() ([]proptree.PropertyRecord, proptree.KeyEndpointMap) {
	records := []proptree.PropertyRecord{
		{Depth: 0, Extensibility: xtypes.{{.Extensibility}}},
		{MemberID: 0, Depth: 1, ParentExtensibility: xtypes.{{.Extensibility}}},
	}
	return records, nil
})

// branchForValue resolves which branch a given discriminator value selects
// (spec's union discriminator-to-branch resolution): the first matching
// label wins, falling back to the default branch, or to no branch at all
// if none matches and there is no default.
func (u *{{.GoName}}) branchForValue(disc {{.DiscGoType}}) int {
{{- range $i, $b := .Branches}}
{{- if not $b.IsDefault}}
{{- range $b.Labels}}
	if int64(disc) == {{.}} {
		return {{$i}}
	}
{{- end}}
{{- end}}
{{- end}}
{{- range $i, $b := .Branches}}
{{- if $b.IsDefault}}
	return {{$i}}
{{- end}}
{{- end}}
	return -1
}

// branchFor resolves which branch u.Discriminator currently selects.
func (u *{{.GoName}}) branchFor() int { return u.branchForValue(u.Discriminator) }

// Write serializes u onto s: the discriminator, then the selected
// branch's payload if one is selected (spec's union write loop). In
// key-hash mode only the discriminator is written.
func (u *{{.GoName}}) Write(s *cdr.Stream) bool {
	if !{{.DiscStreamExpr}} {
		return false
	}
	if s.KeyMode() != xtypes.NotKey {
		return true
	}
	switch u.branchFor() {
{{- range $i, $b := .Branches}}
	case {{$i}}:
		v, _ := u.{{$b.GoName}}()
		return {{$b.StreamExpr}}
{{- end}}
	default:
		return true
	}
}

// Read deserializes u from s. In key-hash mode only the discriminator is
// read.
func (u *{{.GoName}}) Read(s *cdr.Stream) bool {
	if !{{.DiscStreamExpr}} {
		return false
	}
	if s.KeyMode() != xtypes.NotKey {
		return true
	}
	switch u.branchFor() {
{{- range $i, $b := .Branches}}
	case {{$i}}:
		var v {{$b.GoType}}
		if !{{$b.StreamExpr}} {
			return false
		}
		u.value = v
		return true
{{- end}}
	default:
		return true
	}
}

// Move advances s's cursor by u's exact encoded size.
func (u *{{.GoName}}) Move(s *cdr.Stream) bool { return u.Write(s) }

// Max advances s's cursor by u's worst-case encoded size.
func (u *{{.GoName}}) Max(s *cdr.Stream) bool { return u.Write(s) }
`

func (g *Generator) emitUnion(name string, un idl.Union) (string, error) {
	discResolved, err := GoType(un.DiscriminatorType, g.opts)
	if err != nil {
		return "", err
	}

	goName := GoTypeName(name)
	valueType, err := renderBackingType(g.opts.Union, backingTypeData{})
	if err != nil {
		return "", err
	}

	var branches []unionBranchData
	var imports []string
	seenImport := map[string]bool{}
	if g.opts.Union.Import != "" {
		seenImport[g.opts.Union.Import] = true
		imports = append(imports, g.opts.Union.Import)
	}
	if g.opts.UnionGetter.Import != "" && !seenImport[g.opts.UnionGetter.Import] {
		seenImport[g.opts.UnionGetter.Import] = true
		imports = append(imports, g.opts.UnionGetter.Import)
	}
	for _, b := range un.Branches {
		resolved, err := GoType(b.Member.Type, g.opts)
		if err != nil {
			return "", err
		}
		if resolved.Import != "" && !seenImport[resolved.Import] {
			seenImport[resolved.Import] = true
			imports = append(imports, resolved.Import)
		}
		branchName := SanitizeIdentifier(strings.ToUpper(b.Member.Name[:1]) + b.Member.Name[1:])
		getter, err := renderUnionGetter(g.opts.UnionGetter, unionGetterData{
			UnionName:  goName,
			BranchName: branchName,
			Type:       resolved.GoType,
		})
		if err != nil {
			return "", err
		}
		branches = append(branches, unionBranchData{
			GoName:     branchName,
			GoType:     resolved.GoType,
			Labels:     b.Labels,
			IsDefault:  b.IsDefault,
			StreamExpr: streamExprFor(b.Member.Type, "v", g.opts),
			Getter:     getter,
		})
	}

	data := unionTemplateData{
		PackageName:    g.opts.PackageName,
		GoName:         goName,
		Extensibility:  extensibilityName(un.Extensibility),
		DiscGoType:     discResolved.GoType,
		DiscStreamExpr: streamExprFor(un.DiscriminatorType, "u.Discriminator", g.opts),
		ValueType:      valueType,
		Branches:       branches,
		Imports:        imports,
	}
	if discResolved.Import != "" {
		data.Imports = append(data.Imports, discResolved.Import)
	}
	return gofmt(mustRender(unionTemplate, data))
}
