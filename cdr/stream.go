// Package cdr implements the three wire-compatible CDR streaming modes —
// Basic CDR, XCDR version 1, and XCDR version 2 — that read, write, and
// size user samples as on-the-wire byte buffers with strict alignment,
// endianness conversion, and extensibility semantics.
//
// A Stream is stack-local, single-operation state: one serialize,
// deserialize, or size pass runs on the caller's goroutine and never
// suspends (spec §5). Growing the write buffer follows the teacher's
// bump-allocator growth-by-pages idiom (hive/alloc/bump.go): capacity is
// added in fixed-size pages rather than ad hoc doublings, so buffer growth
// stays predictable across many small appends.
package cdr

import (
	"github.com/nebuladds/xcdr-core/internal/bufio"
	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// growPageSize is the chunk size used to grow an unbounded write buffer,
// the CDR-engine analogue of the teacher's HBIN page growth.
const growPageSize = 4096

// frameKind distinguishes the two header-frame stack entries the XCDR
// modes push: a DHEADER (appendable/mutable body, or a non-primitive
// sequence/array) and a PID-list (XCDR1 mutable struct body).
type frameKind uint8

const (
	frameDHeader frameKind = iota
	framePIDList
)

// frame is one entry of the header-frame stack (spec §3.3), remembering
// where to back-patch a DHEADER length on write, or where a DHEADER body
// ends on read.
type frame struct {
	kind             frameKind
	placeholderPos   int // write: offset of the length placeholder
	placeholderWidth int // write: width of a PID-entry placeholder in bytes (short form: 2; extended form: 4); unset for DHEADER/EMHEADER frames
	bodyStart        int // position immediately after the placeholder/header
	declaredEnd      int // read: position the body is declared to end at
}

// Stream is a single CDR read/write/move/max pass over a byte buffer.
type Stream struct {
	buf   []byte
	bound int // -1 means unlimited
	pos   int

	alignment int // current_alignment, a divisor of kind.MaxAlign()

	kind           xtypes.CDRKind
	mode           xtypes.Mode
	streamEndian   xtypes.Endianness
	keyMode        xtypes.KeyMode
	status         StatusBits
	frames         []frame
	growUnbounded  bool
}

// NewWriteStream creates a stream that serializes into a growable buffer.
// If bound >= 0, writes past that many bytes set WriteBoundExceeded.
func NewWriteStream(kind xtypes.CDRKind, endian xtypes.Endianness, bound int) *Stream {
	s := &Stream{
		kind:         kind,
		mode:         xtypes.ModeWrite,
		streamEndian: endian,
		bound:        bound,
	}
	if bound < 0 {
		s.growUnbounded = true
		s.buf = make([]byte, 0, growPageSize)
	} else {
		s.buf = make([]byte, 0, bound)
	}
	return s
}

// NewReadStream creates a stream that deserializes from an existing buffer.
func NewReadStream(kind xtypes.CDRKind, endian xtypes.Endianness, data []byte) *Stream {
	return &Stream{
		kind:         kind,
		mode:         xtypes.ModeRead,
		streamEndian: endian,
		buf:          data,
		bound:        len(data),
	}
}

// NewMoveStream creates a stream that only advances a cursor to compute the
// exact encoded size of a sample (spec §4.B.1 "move").
func NewMoveStream(kind xtypes.CDRKind, endian xtypes.Endianness) *Stream {
	return &Stream{kind: kind, mode: xtypes.ModeMove, streamEndian: endian, bound: -1}
}

// NewMaxStream creates a stream that computes an upper-bound encoded size,
// saturating at xtypes.SaturatedPosition when an unbounded sequence/string
// is encountered (spec §4.B.1 "max", §4.B.3).
func NewMaxStream(kind xtypes.CDRKind, endian xtypes.Endianness) *Stream {
	return &Stream{kind: kind, mode: xtypes.ModeMax, streamEndian: endian, bound: -1}
}

// Mode returns the operation this stream performs.
func (s *Stream) Mode() xtypes.Mode { return s.mode }

// Kind returns the CDR streaming mode (Basic/XCDR1/XCDR2).
func (s *Stream) Kind() xtypes.CDRKind { return s.kind }

// SetKeyMode selects how struct member iteration walks the property tree
// (spec §3.3, §4.B.10): NotKey for ordinary data, UnsortedKey/SortedKey for
// key-hash passes.
func (s *Stream) SetKeyMode(m xtypes.KeyMode) { s.keyMode = m }

// KeyMode returns the current key-iteration mode.
func (s *Stream) KeyMode() xtypes.KeyMode { return s.keyMode }

// Position returns the current cursor, or xtypes.SaturatedPosition if the
// max-mode cursor has saturated.
func (s *Stream) Position() uint64 {
	if s.saturated() {
		return xtypes.SaturatedPosition
	}
	return uint64(s.pos)
}

func (s *Stream) saturated() bool {
	return s.mode == xtypes.ModeMax && s.pos < 0
}

// Bytes returns the bytes written so far (write mode only).
func (s *Stream) Bytes() []byte { return s.buf }

// Status returns the sticky status bitset.
func (s *Stream) Status() StatusBits { return s.status }

// Ok reports whether no sticky status bit has been set.
func (s *Stream) Ok() bool { return s.status == 0 }

// Reset clears position, alignment, status and the header-frame stack so
// the same Stream can be reused for a fresh pass over a fresh or rewound
// buffer (spec §4.B.11 "Idempotence of reset"). This is the stream-level
// analogue of the teacher's transaction Rollback/Begin idiom
// (hive/tx/tx.go): one write/read/move/max pass is one "transaction"; Reset
// starts the next one.
func (s *Stream) Reset() {
	s.pos = 0
	s.alignment = 0
	s.status = 0
	s.frames = s.frames[:0]
	if s.mode == xtypes.ModeWrite {
		s.buf = s.buf[:0]
	}
}

// fail sets a sticky status bit and reports false, the shared tail of
// every stream primitive's error path.
func (s *Stream) fail(bit StatusBits) bool {
	s.status |= bit
	return false
}

// Align advances the cursor to the next multiple of min(n, max_align). In
// write mode, if zeroFill is true, every skipped byte is written as zero
// (required for key-hash determinism and wire cleanliness per spec
// §4.A). After a successful Align, current_alignment = n (clamped).
func (s *Stream) Align(n int, zeroFill bool) bool {
	if s.saturated() {
		return true
	}
	modulus := n
	if max := s.kind.MaxAlign(); modulus > max {
		modulus = max
	}
	newPos := bufio.AlignUp(s.pos, modulus)
	pad := newPos - s.pos
	if pad > 0 {
		switch s.mode {
		case xtypes.ModeWrite:
			if !s.reserve(pad) {
				return s.fail(WriteBoundExceeded)
			}
			if zeroFill {
				s.buf = append(s.buf, make([]byte, pad)...)
			} else {
				s.buf = s.buf[:len(s.buf)+pad]
			}
		case xtypes.ModeRead:
			if s.bound >= 0 && newPos > s.bound {
				return s.fail(ReadBoundExceeded)
			}
		}
	}
	s.pos = newPos
	s.alignment = modulus
	return true
}

// reserve ensures pad more bytes can be appended in write mode, respecting
// a finite bound and growing an unbounded buffer in fixed pages.
func (s *Stream) reserve(n int) bool {
	want := s.pos + n
	if !s.growUnbounded && s.bound >= 0 && want > s.bound {
		return false
	}
	if s.growUnbounded && cap(s.buf) < want {
		need := want - cap(s.buf)
		pages := (need + growPageSize - 1) / growPageSize
		grown := make([]byte, len(s.buf), cap(s.buf)+pages*growPageSize)
		copy(grown, s.buf)
		s.buf = grown
	}
	return true
}

// advance moves the cursor by n bytes without touching buffer contents
// (move/max mode), or grows+advances the write buffer, or checks+advances
// the read cursor.
func (s *Stream) advance(n int) bool {
	switch s.mode {
	case xtypes.ModeWrite:
		if !s.reserve(n) {
			return s.fail(WriteBoundExceeded)
		}
		s.buf = s.buf[:len(s.buf)+n]
		s.pos += n
	case xtypes.ModeRead:
		if s.bound >= 0 && s.pos+n > s.bound {
			return s.fail(ReadBoundExceeded)
		}
		s.pos += n
	case xtypes.ModeMove:
		s.pos += n
	case xtypes.ModeMax:
		if !s.saturated() {
			s.pos += n
		}
	}
	return true
}

// saturate marks a max-mode stream as having encountered an unbounded
// sequence/string; subsequent operations are no-ops (spec §4.B.3).
func (s *Stream) saturate() {
	if s.mode == xtypes.ModeMax {
		s.pos = -1
	}
}

// FrameRemaining reports whether the current DHEADER frame (read mode)
// still has undeclared bytes, the termination condition a mutable XCDR v2
// struct body's per-member EMHEADER read loop uses in place of a count or
// sentinel. False once the cursor reaches the frame's declared end, or
// when no frame is open.
func (s *Stream) FrameRemaining() bool {
	if len(s.frames) == 0 {
		return false
	}
	f := s.frames[len(s.frames)-1]
	return s.pos < f.declaredEnd
}
