package cdr

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebuladds/xcdr-core/proptree"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// basicstruct is the fixture from the concrete scenarios: a long, a char
// key, an unbounded string, and a double.
type basicstruct struct {
	l int32
	c byte
	s string
	d float64
}

func basicstructTree(ext xtypes.Extensibility) *proptree.EntityProperty {
	records := []proptree.PropertyRecord{
		{Depth: 0, Extensibility: ext},
		{MemberID: 1, Depth: 1, ParentExtensibility: ext},
		{MemberID: 2, Depth: 1, ParentExtensibility: ext},
		{MemberID: 3, Depth: 1, ParentExtensibility: ext},
		{MemberID: 4, Depth: 1, ParentExtensibility: ext},
	}
	return proptree.Finish(records, proptree.KeyEndpointMap{2: {}})
}

func (v *basicstruct) dispatch(s *Stream, p *proptree.EntityProperty) bool {
	switch p.MemberID {
	case 1:
		return s.Int32(&v.l)
	case 2:
		return s.Char(&v.c)
	case 3:
		return s.String(&v.s, 0)
	case 4:
		return s.Float64(&v.d)
	default:
		return false
	}
}

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

// Scenario 1: basic struct, Basic CDR.
func TestScenarioBasicStructBasicCDR(t *testing.T) {
	v := &basicstruct{l: 123456, c: 'g', s: "abcdef", d: 654.321}
	tree := basicstructTree(xtypes.Final)

	s := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	require.True(t, StreamBody(s, tree, xtypes.Final, v.dispatch))
	want := hexBytes(t, "00 01 E2 40 67 00 00 00 00 00 00 07 61 62 63 64 65 66 00 00 00 00 00 00 40 84 72 91 68 72 B0 21")
	require.Equal(t, want, s.Bytes())

	ks := NewKeyHashStream(xtypes.BasicCDR)
	require.True(t, StreamKeyFields(ks, tree, xtypes.Final, v.dispatch))
	require.Equal(t, hexBytes(t, "67"), ks.Bytes())

	got := &basicstruct{}
	rs := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, s.Bytes())
	require.True(t, StreamBody(rs, tree, xtypes.Final, got.dispatch))
	require.Equal(t, *v, *got)
}

// Scenario 2: appendable struct, XCDR v2 — DHEADER framing shrinks the
// double's alignment padding from 5 bytes (max_align=8) to 1 (max_align=4),
// and the key serialization picks up its own DHEADER.
func TestScenarioAppendableStructXCDR2(t *testing.T) {
	v := &basicstruct{l: 123456, c: 'g', s: "abcdef", d: 654.321}
	tree := basicstructTree(xtypes.Appendable)

	s := NewWriteStream(xtypes.XCDR2, xtypes.BigEndian, -1)
	require.True(t, StreamBody(s, tree, xtypes.Appendable, v.dispatch))
	want := hexBytes(t, "00 00 00 1C 00 01 E2 40 67 00 00 00 00 00 00 07 61 62 63 64 65 66 00 00 40 84 72 91 68 72 B0 21")
	require.Equal(t, want, s.Bytes())

	ks := NewKeyHashStream(xtypes.XCDR2)
	require.True(t, StreamKeyFields(ks, tree, xtypes.Appendable, v.dispatch))
	require.Equal(t, hexBytes(t, "00 00 00 01 67"), ks.Bytes())

	got := &basicstruct{}
	rs := NewReadStream(xtypes.XCDR2, xtypes.BigEndian, s.Bytes())
	require.True(t, StreamBody(rs, tree, xtypes.Appendable, got.dispatch))
	require.Equal(t, *v, *got)
}

// Scenario 6: optional absence round-trip, then a re-write of the same
// absent member under XCDR v1 inside a mutable body still emits a PID
// entry (the sentinel is the explicit presence-flag octet 0, never a
// skipped/empty member).
func TestScenarioOptionalAbsenceRoundTripAndXCDR1Sentinel(t *testing.T) {
	var value *int32
	elem := func(s *Stream, p *int32) bool { return s.Int32(p) }

	ws := NewWriteStream(xtypes.XCDR2, xtypes.BigEndian, -1)
	require.True(t, Optional(ws, &value, elem))
	require.Equal(t, []byte{0x00}, ws.Bytes())

	var readBack *int32
	rs := NewReadStream(xtypes.XCDR2, xtypes.BigEndian, ws.Bytes())
	require.True(t, Optional(rs, &readBack, elem))
	require.Nil(t, readBack)

	records := []proptree.PropertyRecord{
		{Depth: 0, Extensibility: xtypes.Mutable},
		{MemberID: 1, Depth: 1, ParentExtensibility: xtypes.Mutable, IsOptional: true},
	}
	tree := proptree.Finish(records, nil)
	dispatch := func(s *Stream, p *proptree.EntityProperty) bool {
		return Optional(s, &value, elem)
	}

	xs := NewWriteStream(xtypes.XCDR1, xtypes.BigEndian, -1)
	require.True(t, StreamBody(xs, tree, xtypes.Mutable, dispatch))

	hdr, ok := NewReadStream(xtypes.XCDR1, xtypes.BigEndian, xs.Bytes()).ReadPIDHeader()
	require.True(t, ok)
	require.False(t, hdr.Terminator)
	require.Equal(t, uint32(1), hdr.MemberID)
}

// Scenario 5: union discriminator mismatch and default-branch fallback are
// exercised directly on a hand-written stand-in for a generated union,
// matching the shape xcdrgen's union template emits (set/get by branch,
// Write/Read via Discriminator + selected branch).
type colorUnion struct {
	Discriminator int32
	value         any
}

const (
	colorUnionBranchRed   = 1
	colorUnionBranchGreen = 2
)

func (u *colorUnion) SetRed(v int32) {
	u.Discriminator = 1
	u.value = v
}

// SetRedAt mirrors the generated Set{Name}At shape: it only accepts disc
// values that actually select this branch.
func (u *colorUnion) SetRedAt(disc int32, v int32) error {
	if u.branchForValue(disc) != colorUnionBranchRed {
		return xtypes.ErrInvalidArgument
	}
	u.Discriminator = disc
	u.value = v
	return nil
}

func (u *colorUnion) SetGreen(v int32) {
	u.Discriminator = 2
	u.value = v
}

func (u *colorUnion) branchForValue(disc int32) int {
	switch disc {
	case 1:
		return colorUnionBranchRed
	case 2:
		return colorUnionBranchGreen
	default:
		return colorUnionBranchGreen // declared default label
	}
}

func (u *colorUnion) branchFor() int { return u.branchForValue(u.Discriminator) }

func (u *colorUnion) Write(s *Stream) bool {
	if !s.Int32(&u.Discriminator) {
		return false
	}
	if s.KeyMode() != xtypes.NotKey {
		return true
	}
	switch u.branchFor() {
	case colorUnionBranchRed:
		v, _ := u.value.(int32)
		return s.Int32(&v)
	case colorUnionBranchGreen:
		v, _ := u.value.(int32)
		return s.Int32(&v)
	default:
		return true
	}
}

func TestScenarioUnionDiscriminatorMismatchUsesDefaultBranch(t *testing.T) {
	u := &colorUnion{Discriminator: 99}
	require.Equal(t, colorUnionBranchGreen, u.branchFor())

	s := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	require.True(t, u.Write(s))
	require.Len(t, s.Bytes(), 8)
}

func TestScenarioUnionSetAtRejectsIncompatibleLabel(t *testing.T) {
	u := &colorUnion{}
	err := u.SetRedAt(2, 7)
	require.ErrorIs(t, err, xtypes.ErrInvalidArgument)

	require.NoError(t, u.SetRedAt(1, 7))
	require.Equal(t, int32(1), u.Discriminator)
	v, ok := u.Red()
	require.True(t, ok)
	require.Equal(t, int32(7), v)
}

func (u *colorUnion) Red() (int32, bool) {
	v, ok := u.value.(int32)
	return v, ok
}
