package extfunc

import "sync"

// Registry maps operator names to resolved entry points. Unknown names are
// resolved through the configured Loader on first use and cached; a name
// present in the map always resolves to the same Operator for the life of
// the registry, even if the loader's backing table changes afterwards.
//
// The registry is an explicit object owned by the graph-execution context,
// not ambient process state. It is safe for concurrent use: already
// resolved names are served under a read lock, and a first-use load of a
// given name happens at most once. Invocation of a resolved operator is
// not synchronized here.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Operator
	loader  Loader
}

// NewRegistry creates a registry resolving through the given loader.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		entries: make(map[string]Operator),
		loader:  loader,
	}
}

// Resolve returns the entry point bound to name, loading and caching it on
// first use. A failed load returns a *LinkageError and inserts nothing, so
// the registry is left unchanged.
func (r *Registry) Resolve(name string) (Operator, error) {
	r.mu.RLock()
	op, ok := r.entries[name]
	r.mu.RUnlock()
	if ok {
		return op, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have completed the load while we waited.
	if op, ok := r.entries[name]; ok {
		return op, nil
	}
	op, err := r.loader.Load(name)
	if err != nil {
		return nil, err
	}
	r.entries[name] = op
	return op, nil
}

// Resolved reports whether name has already been bound.
func (r *Registry) Resolved(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of bound entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
