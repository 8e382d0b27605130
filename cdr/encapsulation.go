package cdr

import (
	"encoding/binary"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// EncodeEncapsulation produces the 4-byte {representation_id, options}
// header that precedes every serialized payload (spec §6). The
// representation id and options are always written in network (big-endian)
// byte order, independent of the payload's own endianness — the header
// must be decodable before the payload's endianness is even known.
func EncodeEncapsulation(repr xtypes.RepresentationID, options uint16) [xtypes.EncapsulationHeaderSize]byte {
	var out [xtypes.EncapsulationHeaderSize]byte
	binary.BigEndian.PutUint16(out[0:2], uint16(repr))
	binary.BigEndian.PutUint16(out[2:4], options)
	return out
}

// DecodeEncapsulation parses the 4-byte encapsulation header, reporting
// the representation id and the reserved options field (its low bits
// carry a padding-count hint on read, per spec §6, which this core does
// not interpret further).
func DecodeEncapsulation(header []byte) (xtypes.RepresentationID, uint16, bool) {
	if len(header) < xtypes.EncapsulationHeaderSize {
		return 0, 0, false
	}
	repr := xtypes.RepresentationID(binary.BigEndian.Uint16(header[0:2]))
	options := binary.BigEndian.Uint16(header[2:4])
	return repr, options, true
}
