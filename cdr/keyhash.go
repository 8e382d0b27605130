package cdr

import (
	"crypto/md5" //nolint:gosec // DDS-XTypes mandates MD5 for key hash folding, not a security use.

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// NewKeyHashStream creates a write stream configured to produce the
// canonical key serialization (spec §4.B.10): key mode Sorted (key
// members only, in member-id ascending order) and big-endian byte order,
// independent of the sample's own wire endianness, since the key hash must
// be endianness-independent across writers and readers.
func NewKeyHashStream(kind xtypes.CDRKind) *Stream {
	s := NewWriteStream(kind, xtypes.BigEndian, -1)
	s.SetKeyMode(xtypes.SortedKey)
	return s
}

// FoldKeyHash produces the 16-byte DDS instance key hash from a
// sorted-key serialization (spec §4.B.10, DDS-XTypes): if the
// serialization is 16 bytes or fewer, it is used directly, right-padded
// with zeros; otherwise the 128-bit MD5 of the full serialization is used.
func FoldKeyHash(serializedSortedKey []byte) [xtypes.KeyHashSize]byte {
	var out [xtypes.KeyHashSize]byte
	if len(serializedSortedKey) <= xtypes.KeyHashSize {
		copy(out[:], serializedSortedKey)
		return out
	}
	return md5.Sum(serializedSortedKey) //nolint:gosec // see import comment
}
