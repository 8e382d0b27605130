package cdr

import (
	"crypto/md5" //nolint:gosec // matching the production code's choice, see keyhash.go
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

func TestFoldKeyHashDirectForShortKeys(t *testing.T) {
	s := NewKeyHashStream(xtypes.XCDR2)
	require.Equal(t, xtypes.BigEndian, s.streamEndian)
	require.Equal(t, xtypes.SortedKey, s.KeyMode())

	var id uint32 = 0x67
	require.True(t, s.Uint32(&id))

	var want [xtypes.KeyHashSize]byte
	copy(want[:], s.Bytes())
	require.Equal(t, want, FoldKeyHash(s.Bytes()))
}

func TestFoldKeyHashExactly16BytesUsedDirectly(t *testing.T) {
	buf := make([]byte, xtypes.KeyHashSize)
	for i := range buf {
		buf[i] = byte(i + 1)
	}
	var want [xtypes.KeyHashSize]byte
	copy(want[:], buf)
	require.Equal(t, want, FoldKeyHash(buf))
}

func TestFoldKeyHashMD5FallbackOverLongKeys(t *testing.T) {
	buf := make([]byte, 17)
	for i := range buf {
		buf[i] = byte(i)
	}
	want := md5.Sum(buf) //nolint:gosec // see keyhash.go
	require.Equal(t, want, FoldKeyHash(buf))
}
