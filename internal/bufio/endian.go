// Package bufio holds the byte-buffer primitives the CDR stream engine is
// built on: endianness swap/transfer and alignment-to-boundary helpers.
// Grounded on the teacher's internal/buf (U16LE/U32LE/U64LE helpers) and
// internal/format (PutU16/ReadU32/Align8 helpers), generalized from the
// registry's fixed byte order and alignment moduli to the CDR engine's
// stream-selected endianness and 4/8-byte max alignments.
package bufio

import "encoding/binary"

// ByteSwap16 reverses the byte order of a 16-bit scalar.
func ByteSwap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// ByteSwap32 reverses the byte order of a 32-bit scalar.
func ByteSwap32(v uint32) uint32 {
	return binary.LittleEndian.Uint32(reverse4(v))
}

func reverse4(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

// ByteSwap64 reverses the byte order of a 64-bit scalar.
func ByteSwap64(v uint64) uint64 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return binary.LittleEndian.Uint64(b[:])
}

// PutU16 writes v at b[off:off+2] in the requested byte order.
func PutU16(b []byte, off int, v uint16, big bool) {
	if big {
		binary.BigEndian.PutUint16(b[off:off+2], v)
	} else {
		binary.LittleEndian.PutUint16(b[off:off+2], v)
	}
}

// PutU32 writes v at b[off:off+4] in the requested byte order.
func PutU32(b []byte, off int, v uint32, big bool) {
	if big {
		binary.BigEndian.PutUint32(b[off:off+4], v)
	} else {
		binary.LittleEndian.PutUint32(b[off:off+4], v)
	}
}

// PutU64 writes v at b[off:off+8] in the requested byte order.
func PutU64(b []byte, off int, v uint64, big bool) {
	if big {
		binary.BigEndian.PutUint64(b[off:off+8], v)
	} else {
		binary.LittleEndian.PutUint64(b[off:off+8], v)
	}
}

// ReadU16 reads a uint16 from b[off:off+2] in the requested byte order.
func ReadU16(b []byte, off int, big bool) uint16 {
	if big {
		return binary.BigEndian.Uint16(b[off : off+2])
	}
	return binary.LittleEndian.Uint16(b[off : off+2])
}

// ReadU32 reads a uint32 from b[off:off+4] in the requested byte order.
func ReadU32(b []byte, off int, big bool) uint32 {
	if big {
		return binary.BigEndian.Uint32(b[off : off+4])
	}
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 from b[off:off+8] in the requested byte order.
func ReadU64(b []byte, off int, big bool) uint64 {
	if big {
		return binary.BigEndian.Uint64(b[off : off+8])
	}
	return binary.LittleEndian.Uint64(b[off : off+8])
}
