package sertype

import (
	"fmt"

	"github.com/nebuladds/xcdr-core/cdr"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// KeySerializable is a generated type that additionally knows how to fold
// its key members into a 16-byte instance key hash (spec §4.B.10); every
// struct xcdrgen emits for a keyed type implements it.
type KeySerializable interface {
	cdr.Streamable
	ComputeKeyHash(kind xtypes.CDRKind) [xtypes.KeyHashSize]byte
}

// Sertype is the opaque per-topic-type bridge described in spec §4.E. It
// holds no sample state of its own; samples are any cdr.Streamable the
// caller owns (ordinarily a value produced by xcdrgen).
type Sertype struct {
	Traits TopicTypeTraits
}

// New builds a Sertype for the given topic type traits.
func New(traits TopicTypeTraits) *Sertype {
	return &Sertype{Traits: traits}
}

func (st *Sertype) encodingFlag(kind xtypes.CDRKind) xtypes.AllowableEncodings {
	switch kind {
	case xtypes.XCDR1:
		return xtypes.AllowXCDR1
	default:
		return xtypes.AllowXCDR2
	}
}

func (st *Sertype) checkEncoding(kind xtypes.CDRKind) error {
	if kind == xtypes.BasicCDR {
		return nil
	}
	if !st.Traits.AllowableEncodings.Has(st.encodingFlag(kind)) {
		return xtypes.New(xtypes.ErrKindIllegalFieldValue, fmt.Sprintf("%s does not allow the requested CDR encoding", st.Traits.TypeName))
	}
	return nil
}

// Serialize writes sample as a write-mode stream under kind/endian/keyMode
// and returns the payload prefixed with its 4-byte encapsulation header
// (spec §4.E, §6). A non-final type is wrapped in delimited/parameter-list
// framing automatically by the generated Write method itself; Serialize
// only picks the header and the byte order.
func (st *Sertype) Serialize(sample cdr.Streamable, kind xtypes.CDRKind, endian xtypes.Endianness, keyMode xtypes.KeyMode) ([]byte, error) {
	if err := st.checkEncoding(kind); err != nil {
		return nil, err
	}
	s := cdr.NewWriteStream(kind, endian, -1)
	s.SetKeyMode(keyMode)
	if !sample.Write(s) {
		return nil, xtypes.Wrap(xtypes.ErrKindBoundExceeded, "serialize failed", fmt.Errorf("stream status 0x%x", s.Status()))
	}
	parameterList := st.Traits.Extensibility == xtypes.Mutable
	header := cdr.EncodeEncapsulation(xtypes.RepresentationFor(kind, endian, parameterList), 0)
	out := make([]byte, 0, len(header)+len(s.Bytes()))
	out = append(out, header[:]...)
	out = append(out, s.Bytes()...)
	return out, nil
}

// Deserialize reads the 4-byte encapsulation header off the front of data
// to recover the CDR kind and byte order the payload was written with,
// then runs sample through a matching read-mode stream (spec §4.E, §6).
func (st *Sertype) Deserialize(data []byte, sample cdr.Streamable, keyMode xtypes.KeyMode) error {
	if len(data) < xtypes.EncapsulationHeaderSize {
		return xtypes.New(xtypes.ErrKindInvalidFraming, "payload shorter than the encapsulation header")
	}
	repr, _, ok := cdr.DecodeEncapsulation(data[:xtypes.EncapsulationHeaderSize])
	if !ok {
		return xtypes.New(xtypes.ErrKindInvalidFraming, "malformed encapsulation header")
	}
	kind := repr.CDRKind()
	if err := st.checkEncoding(kind); err != nil {
		return err
	}
	s := cdr.NewReadStream(kind, repr.Endianness(), data[xtypes.EncapsulationHeaderSize:])
	s.SetKeyMode(keyMode)
	if !sample.Read(s) {
		return xtypes.Wrap(xtypes.ErrKindInvalidFraming, "deserialize failed", fmt.Errorf("stream status 0x%x", s.Status()))
	}
	return nil
}

// GetSize returns the exact number of bytes Serialize would produce for
// sample under kind/endian/keyMode, header included (spec §4.E).
func (st *Sertype) GetSize(sample cdr.Streamable, kind xtypes.CDRKind, endian xtypes.Endianness, keyMode xtypes.KeyMode) (int, error) {
	if err := st.checkEncoding(kind); err != nil {
		return 0, err
	}
	s := cdr.NewMoveStream(kind, endian)
	s.SetKeyMode(keyMode)
	if !sample.Move(s) {
		return 0, xtypes.Wrap(xtypes.ErrKindBoundExceeded, "size computation failed", fmt.Errorf("stream status 0x%x", s.Status()))
	}
	return xtypes.EncapsulationHeaderSize + int(s.Position()), nil
}

// ComputeKeyHash folds sample's key members into the 16-byte instance key
// hash (spec §4.B.10). Keyless types should not call this; callers are
// expected to consult Traits.Keyless first.
func (st *Sertype) ComputeKeyHash(sample KeySerializable, kind xtypes.CDRKind) [xtypes.KeyHashSize]byte {
	return sample.ComputeKeyHash(kind)
}

// DeserializeChunk deserializes a sample out of a loaned Chunk, honoring
// the chunk's data_state (spec §4.E, §5): a Raw chunk already holds a live
// sample the writer built directly in the loaned region, so the reader
// takes it as-is and Deserialize is skipped entirely; a Serialized chunk
// holds an encapsulated CDR payload and is run through Deserialize exactly
// like any other wire buffer.
func (st *Sertype) DeserializeChunk(c *Chunk, sample cdr.Streamable, keyMode xtypes.KeyMode) error {
	if c.State() == Raw {
		return nil
	}
	return st.Deserialize(c.Bytes(), sample, keyMode)
}

// FreeSample exists for parity with spec §4.E's callback table. Generated
// samples are plain Go values collected by the garbage collector, so
// there is nothing for this bridge to release; it is kept as a no-op so
// callers written against the five-callback shape still compile.
func (st *Sertype) FreeSample(sample cdr.Streamable) {}
