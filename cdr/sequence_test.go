package cdr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

func u32Elem(s *Stream, v *uint32) bool { return s.Uint32(v) }

func TestSequenceRoundTripPrimitive(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	in := []uint32{1, 2, 3, 4}
	require.True(t, Sequence(w, &in, 0, true, u32Elem))

	r := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, w.Bytes())
	var out []uint32
	require.True(t, Sequence(r, &out, 0, true, u32Elem))
	require.Equal(t, in, out)
}

func TestSequenceZeroLength(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	var in []uint32
	require.True(t, Sequence(w, &in, 5, true, u32Elem))

	r := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, w.Bytes())
	var out []uint32
	require.True(t, Sequence(r, &out, 5, true, u32Elem))
	require.Empty(t, out)
}

func TestBoundedSequenceWriteExceeded(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	in := []uint32{1, 2, 3}
	require.False(t, Sequence(w, &in, 2, true, u32Elem))
	require.True(t, w.Status().Has(WriteBoundExceeded))
	require.Equal(t, 0, len(w.Bytes()))
}

func TestBoundedSequenceReadTruncatesAndDiscards(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	in := []uint32{1, 2, 3, 4, 5}
	require.True(t, Sequence(w, &in, 0, true, u32Elem))

	r := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, w.Bytes())
	var out []uint32
	require.True(t, Sequence(r, &out, 3, true, u32Elem))
	require.Equal(t, []uint32{1, 2, 3}, out)
	// All 5 elements' bytes (20) plus the 4-byte length were consumed.
	require.Equal(t, len(w.Bytes()), int(r.Position()))
}

func TestBoolSequenceBytes(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	in := []bool{true, false, true}
	boolElem := func(s *Stream, v *bool) bool { return s.Bool(v) }
	require.True(t, Sequence(w, &in, 0, true, boolElem))

	tail := w.Bytes()[4:] // after the uint32 length
	require.Equal(t, []byte{0x01, 0x00, 0x01}, tail)

	r := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, w.Bytes())
	var out []bool
	require.True(t, Sequence(r, &out, 0, true, boolElem))
	require.Equal(t, in, out)
}

func TestArrayRoundTrip(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	in := []uint32{9, 8, 7}
	require.True(t, Array(w, in, true, u32Elem))

	r := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, w.Bytes())
	out := make([]uint32, 3)
	require.True(t, Array(r, out, true, u32Elem))
	require.Equal(t, in, out)
}
