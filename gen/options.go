// Package gen drives code generation from an idl.Module description into
// Go source implementing the property-tree-driven read/write/move/max
// loops, traits, and property-tree builders spec'd for the generator
// (spec §4.D). Its internal shape — a driving Generator plus an Options
// struct plus low-level template-expansion helpers — follows the
// teacher's hive/builder package (builder.go/options.go/encode.go).
package gen

// TemplatePair is one CLI-injectable backing-type template: a Go type
// expression template (with {{.Type}}/{{.Dimension}}/{{.Bound}}
// placeholders, the Go analogue of spec §4.D.1's `{TYPE}`/`{DIMENSION}`/
// `{BOUND}`) and the import path a generated file must carry to use it
// (the analogue of a paired C++ #include).
type TemplatePair struct {
	Template string
	Import   string
}

// Options configures one generator invocation; CLI flags populate this
// struct one-for-one with spec §6's flag table (cmd/xcdrgen wires
// spf13/cobra flags onto these fields, following the teacher's
// cmd/hivectl global-flag convention).
type Options struct {
	PackageName string
	OutputDir   string

	Sequence        TemplatePair
	BoundedSequence TemplatePair
	String          TemplatePair
	BoundedString   TemplatePair
	Array           TemplatePair
	Optional        TemplatePair
	Union           TemplatePair
	UnionGetter     TemplatePair

	Verbose bool
	Quiet   bool
	JSON    bool
}

// DefaultOptions returns an Options using this package's built-in Go
// backing-type templates (templates.go) for every injectable slot.
func DefaultOptions() *Options {
	return &Options{
		PackageName:     "generated",
		Sequence:        defaultSequenceTemplate,
		BoundedSequence: defaultBoundedSequenceTemplate,
		String:          defaultStringTemplate,
		BoundedString:   defaultBoundedStringTemplate,
		Array:           defaultArrayTemplate,
		Optional:        defaultOptionalTemplate,
		Union:           defaultUnionTemplate,
		UnionGetter:     defaultUnionGetterTemplate,
	}
}
