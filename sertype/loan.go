package sertype

// DataState marks what a loaned Chunk currently holds: a live sample
// (Raw) that a writer still owns and may mutate in place, or a finished
// CDR payload (Serialized) ready for a reader on the other end of a
// shared-memory transport (spec §4.E, §5's loan/return model).
type DataState uint8

const (
	Raw DataState = iota
	Serialized
)

// Chunk wraps a shared-memory region loaned from a pool, mirroring the
// dirty-page tracker's page-backed buffer in the teacher repo but for a
// single loaned sample rather than an accumulating write set.
type Chunk struct {
	data  []byte
	state DataState
}

// NewChunk wraps an existing mmap'd or pool-allocated region. The caller
// retains ownership of data's backing memory; Chunk never allocates or
// frees it.
func NewChunk(data []byte, state DataState) *Chunk {
	return &Chunk{data: data, state: state}
}

// Bytes returns the chunk's backing region.
func (c *Chunk) Bytes() []byte { return c.data }

// State reports whether the chunk currently holds a raw sample or a
// serialized payload.
func (c *Chunk) State() DataState { return c.state }

// SetState transitions the chunk, e.g. after Sertype.Serialize has
// written a payload into it.
func (c *Chunk) SetState(state DataState) { c.state = state }

// Len reports the number of valid bytes currently held; for a Serialized
// chunk this is the encoded payload length, not the pool allocation size.
func (c *Chunk) Len() int { return len(c.data) }

// Flush pushes the chunk's contents out of any CPU cache and onto the
// shared-memory segment so a reader mapping the same region observes
// them, via the platform's memory-sync primitive (spec §5's
// cross-process loan visibility requirement).
func (c *Chunk) Flush() error {
	if len(c.data) == 0 {
		return nil
	}
	return msync(c.data)
}
