package cdr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	l := int32(123456)
	c := byte('g')
	d := 654.321

	require.True(t, w.Int32(&l))
	require.True(t, w.Char(&c))
	require.True(t, w.Float64(&d))
	require.True(t, w.Ok())

	r := NewReadStream(xtypes.BasicCDR, xtypes.BigEndian, w.Bytes())
	var l2 int32
	var c2 byte
	var d2 float64
	require.True(t, r.Int32(&l2))
	require.True(t, r.Char(&c2))
	require.True(t, r.Float64(&d2))
	require.Equal(t, l, l2)
	require.Equal(t, c, c2)
	require.InDelta(t, d, d2, 1e-9)
}

func TestMoveMatchesWriteSize(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.LittleEndian, -1)
	v := uint16(7)
	str := "abcdef"
	require.True(t, w.Uint16(&v))
	require.True(t, w.String(&str, 0))

	m := NewMoveStream(xtypes.BasicCDR, xtypes.LittleEndian)
	v2 := v
	str2 := str
	require.True(t, m.Uint16(&v2))
	require.True(t, m.String(&str2, 0))

	require.Equal(t, uint64(len(w.Bytes())), m.Position())
}

func TestEndiannessSwap(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	v := uint32(0x01020304)
	require.True(t, w.Uint32(&v))
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, w.Bytes())

	w2 := NewWriteStream(xtypes.BasicCDR, xtypes.LittleEndian, -1)
	require.True(t, w2.Uint32(&v))
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, w2.Bytes())
}

func TestAlignment(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	var b byte = 1
	var l int64 = 2
	require.True(t, w.Octet(&b))
	require.True(t, w.Int64(&l))
	// 1 byte + 7 padding + 8 bytes = 16
	require.Equal(t, 16, len(w.Bytes()))
}

func TestWriteBoundExceeded(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, 2)
	v := uint32(1)
	require.False(t, w.Uint32(&v))
	require.True(t, w.Status().Has(WriteBoundExceeded))
}

func TestResetIdempotence(t *testing.T) {
	w := NewWriteStream(xtypes.BasicCDR, xtypes.BigEndian, -1)
	v := int32(42)
	require.True(t, w.Int32(&v))
	first := append([]byte(nil), w.Bytes()...)

	w.Reset()
	require.True(t, w.Int32(&v))
	require.Equal(t, first, w.Bytes())
}
