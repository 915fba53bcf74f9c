package cart

import "sync"

// Registry hands out one Store per user id. Carts live only in process
// memory for the duration of the session; nothing is persisted.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// Get returns the user's store, creating it on first use.
func (r *Registry) Get(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[userID]; ok {
		return s
	}
	s := NewStore()
	r.stores[userID] = s
	return s
}

// Drop discards a user's store, e.g. on logout.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	delete(r.stores, userID)
	r.mu.Unlock()
}
