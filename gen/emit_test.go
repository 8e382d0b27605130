package gen

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebuladds/xcdr-core/idl"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// parseGenerated checks that src is syntactically valid Go, the same
// sanity check any mainstream generator's own test suite runs against its
// template output before trusting it.
func parseGenerated(t *testing.T, src string) {
	t.Helper()
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "generated.go", src, parser.AllErrors)
	require.NoError(t, err)
}

func fixtureModule() idl.Module {
	return idl.Module{
		Name: "demo",
		Structs: []idl.Struct{
			{
				Name:          "Point",
				Extensibility: xtypes.Final,
				Members: []idl.Member{
					{Name: "x", MemberID: 0, Type: idl.TypeRef{Kind: idl.RefPrimitive, Primitive: idl.PrimUint32}},
					{Name: "y", MemberID: 1, Type: idl.TypeRef{Kind: idl.RefPrimitive, Primitive: idl.PrimUint32}},
				},
			},
		},
		Unions: []idl.Union{
			{
				Name:              "Choice",
				Extensibility:     xtypes.Mutable,
				DiscriminatorType: idl.TypeRef{Kind: idl.RefPrimitive, Primitive: idl.PrimInt32},
				Branches: []idl.UnionBranch{
					{Labels: []int64{1}, Member: idl.Member{Name: "red", MemberID: 0, Type: idl.TypeRef{Kind: idl.RefPrimitive, Primitive: idl.PrimInt32}}},
					{IsDefault: true, Member: idl.Member{Name: "green", MemberID: 1, Type: idl.TypeRef{Kind: idl.RefPrimitive, Primitive: idl.PrimInt32}}},
				},
			},
		},
		Enums: []idl.Enum{
			{
				Name: "Color",
				Values: []idl.EnumValue{
					{Name: "red", Value: 0},
					{Name: "green", Value: 1},
				},
				Default: "red",
			},
		},
		Bitmasks: []idl.Bitmask{
			{
				Name: "Flags",
				Bits: []idl.BitmaskBit{
					{Name: "readable", Position: 0},
					{Name: "writable", Position: 1},
				},
			},
		},
		Typedefs: []idl.Typedef{
			{
				Name:   "ScoreList",
				Target: idl.TypeRef{Kind: idl.RefSequence, Element: &idl.TypeRef{Kind: idl.RefPrimitive, Primitive: idl.PrimFloat64}},
			},
		},
	}
}

func TestEmitStructProducesValidGoSource(t *testing.T) {
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, DefaultOptions())

	src, err := g.emitStruct("demo::Point", reg.Structs["demo::Point"])
	require.NoError(t, err)
	parseGenerated(t, src)
	require.Contains(t, src, "type demo_Point struct")
	require.Contains(t, src, "X uint32")
	require.Contains(t, src, "Y uint32")
}

func TestEmitUnionProducesValidGoSourceWithKeyModeGuard(t *testing.T) {
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, DefaultOptions())

	src, err := g.emitUnion("demo::Choice", reg.Unions["demo::Choice"])
	require.NoError(t, err)
	parseGenerated(t, src)
	require.Contains(t, src, "func (u *demo_Choice) SetRed(v int32)")
	require.Contains(t, src, "func (u *demo_Choice) SetRedAt(disc int32, v int32) error")
	require.Contains(t, src, "s.KeyMode() != xtypes.NotKey")
	require.Contains(t, src, "func (u *demo_Choice) Red() (int32, bool)")
}

func TestEmitUnionHonorsCustomBackingAndGetterTemplates(t *testing.T) {
	opts := DefaultOptions()
	opts.Union = TemplatePair{Template: "unionBacking"}
	opts.UnionGetter = TemplatePair{
		Template: "func (u *{{.UnionName}}) Get{{.BranchName}}() {{.Type}} {\n\tv, _ := u.value.({{.Type}})\n\treturn v\n}\n",
	}
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, opts)

	src, err := g.emitUnion("demo::Choice", reg.Unions["demo::Choice"])
	require.NoError(t, err)
	parseGenerated(t, src)
	require.Contains(t, src, "unionBacking")
	require.Contains(t, src, "func (u *demo_Choice) GetRed() int32")
	require.NotContains(t, src, "func (u *demo_Choice) Red() (int32, bool)")
}

func TestEmitEnumRejectsUnknownValueFallsBackToDefault(t *testing.T) {
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, DefaultOptions())

	src, err := g.emitEnum("demo::Color", reg.Enums["demo::Color"])
	require.NoError(t, err)
	parseGenerated(t, src)
	require.Contains(t, src, "demo_ColorDefault demo_Color = demo_ColorRed")
	require.Contains(t, src, "case demo_ColorRed:")
	require.Contains(t, src, "case demo_ColorGreen:")
	require.Contains(t, src, "*e = demo_ColorDefault")
}

func TestEmitBitmaskProducesValidGoSource(t *testing.T) {
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, DefaultOptions())

	src, err := g.emitBitmask("demo::Flags", reg.Bitmasks["demo::Flags"])
	require.NoError(t, err)
	parseGenerated(t, src)
	require.Contains(t, src, "demo_FlagsReadable demo_Flags = 1 << 0")
	require.Contains(t, src, "demo_FlagsWritable demo_Flags = 1 << 1")
}

func TestEmitTypedefProducesValidGoSource(t *testing.T) {
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, DefaultOptions())

	src, err := g.emitTypedef("demo::ScoreList", reg.Typedefs["demo::ScoreList"])
	require.NoError(t, err)
	parseGenerated(t, src)
	require.Contains(t, src, "type demo_ScoreList struct")
	require.Contains(t, src, "Value []float64")
}

func TestGenerateProducesOneFilePerDefinition(t *testing.T) {
	reg := NewRegistry(fixtureModule())
	g := NewGenerator(reg, DefaultOptions())

	files, err := g.Generate()
	require.NoError(t, err)
	require.Contains(t, files, "demo_point_gen.go")
	require.Contains(t, files, "demo_choice_gen.go")
	require.Contains(t, files, "demo_color_gen.go")
	require.Contains(t, files, "demo_flags_gen.go")
	require.Contains(t, files, "demo_scorelist_gen.go")
	for _, src := range files {
		parseGenerated(t, src)
	}
}
