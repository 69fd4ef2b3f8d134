package cart

import "sync"

// Registry hands out the per-user cart store. Stores live for the session:
// created on first touch, dropped on sign-out.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stores[userID]
	if !ok {
		st = NewStore()
		r.stores[userID] = st
	}
	return st
}

// Drop removes a user's store, e.g. when their session ends.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, userID)
}
