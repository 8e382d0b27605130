package proptree

import "sync"

// Builder produces the flat records and key-endpoint map for one topic
// type; the generator emits one Builder (as a closure) per generated type.
type Builder func() ([]PropertyRecord, KeyEndpointMap)

// Descriptor is the process-wide, per-type cache entry holding the built
// tree. It is built exactly once, lazily, on first use, and never mutates
// afterward — every Tree call goes through sync.Once, whose completed-case
// check is the lock-free fast path, and the tree is only ever assigned
// once.
type Descriptor struct {
	once  sync.Once
	build Builder
	tree  *EntityProperty
}

// NewDescriptor wraps a Builder in a lazily-initialized, process-wide cache
// entry (spec's per-type descriptor lifecycle: "built on first use under a
// mutex with a lock-free fast path").
func NewDescriptor(build Builder) *Descriptor {
	return &Descriptor{build: build}
}

// Tree returns the built property tree, constructing it under a mutex the
// first time any caller asks and reusing the result for every call after
// (including concurrent callers blocked on the same first call).
func (d *Descriptor) Tree() *EntityProperty {
	d.once.Do(func() {
		records, keys := d.build()
		d.tree = Finish(records, keys)
	})
	return d.tree
}
