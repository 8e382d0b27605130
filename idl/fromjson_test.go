package idl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

const basicStructJSON = `{
  "name": "demo",
  "structs": [
    {
      "name": "BasicStruct",
      "extensibility": "final",
      "keys": ["id"],
      "members": [
        {"name": "id", "memberId": 0, "type": {"kind": "primitive", "primitive": "int32"}},
        {"name": "name", "memberId": 1, "type": {"kind": "string", "bound": 0}},
        {"name": "scores", "memberId": 2, "type": {"kind": "sequence", "bound": 8, "element": {"kind": "primitive", "primitive": "float64"}}}
      ]
    }
  ]
}`

func TestLoadJSONBasicStruct(t *testing.T) {
	mod, err := LoadJSON(strings.NewReader(basicStructJSON))
	require.NoError(t, err)
	require.Equal(t, "demo", mod.Name)
	require.Len(t, mod.Structs, 1)

	s := mod.Structs[0]
	require.Equal(t, "BasicStruct", s.Name)
	require.Equal(t, xtypes.Final, s.Extensibility)
	require.Equal(t, []string{"id"}, s.Keys)
	require.Len(t, s.Members, 3)

	require.Equal(t, RefPrimitive, s.Members[0].Type.Kind)
	require.Equal(t, PrimInt32, s.Members[0].Type.Primitive)

	require.Equal(t, RefString, s.Members[1].Type.Kind)

	seq := s.Members[2].Type
	require.Equal(t, RefSequence, seq.Kind)
	require.Equal(t, 8, seq.Bound)
	require.NotNil(t, seq.Element)
	require.Equal(t, PrimFloat64, seq.Element.Primitive)
}

func TestLoadJSONRejectsUnknownKind(t *testing.T) {
	bad := `{"name":"x","structs":[{"name":"S","members":[{"name":"f","memberId":0,"type":{"kind":"bogus"}}]}]}`
	_, err := LoadJSON(strings.NewReader(bad))
	require.Error(t, err)
}

func TestLoadJSONUnionBranches(t *testing.T) {
	src := `{
		"name": "demo",
		"unions": [{
			"name": "Choice",
			"extensibility": "mutable",
			"discriminatorType": {"kind": "primitive", "primitive": "int32"},
			"branches": [
				{"labels": [1,2], "member": {"name": "a", "memberId": 0, "type": {"kind":"primitive","primitive":"int32"}}},
				{"default": true, "member": {"name": "b", "memberId": 1, "type": {"kind":"primitive","primitive":"float32"}}}
			]
		}]
	}`
	mod, err := LoadJSON(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, mod.Unions, 1)
	u := mod.Unions[0]
	require.Equal(t, xtypes.Mutable, u.Extensibility)
	require.Len(t, u.Branches, 2)
	require.Equal(t, []int64{1, 2}, u.Branches[0].Labels)
	require.True(t, u.Branches[1].IsDefault)
}

func TestQualifyJoinsScopeWithDoubleColon(t *testing.T) {
	require.Equal(t, "A::B::C", Qualify([]string{"A", "B"}, "C"))
	require.Equal(t, "C", Qualify(nil, "C"))
}
