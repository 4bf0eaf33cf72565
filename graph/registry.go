package graph

import "sync"

// Registry is the set of identifiers in use within one Document. Each
// Document owns exactly one Registry; registries are never shared across
// documents, so there is no cross-document locking. The lifetime is one
// parse/rebuild operation.
type Registry struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Add records id and reports whether it was absent before the call.
func (r *Registry) Add(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id]; ok {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

func (r *Registry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[id]
	return ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ids, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
