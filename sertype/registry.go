package sertype

import "sync"

// Registry is a process-wide lookup from topic type name to the Sertype
// that serializes it, the way a participant's type support table would be
// populated once per type at startup and consulted by every reader/writer
// thereafter (spec §4.E, §5's "one sertype per topic type" model).
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Sertype
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Sertype)}
}

// Register installs st under its own TypeName, replacing whatever was
// previously registered for that name.
func (r *Registry) Register(st *Sertype) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[st.Traits.TypeName] = st
}

// Lookup returns the sertype registered for typeName, if any.
func (r *Registry) Lookup(typeName string) (*Sertype, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.types[typeName]
	return st, ok
}

// Reset removes every registered sertype.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]*Sertype)
}
