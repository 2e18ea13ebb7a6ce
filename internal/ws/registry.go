package ws

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns the live user-to-transport bindings for the lifetime of
// the process. At most one binding exists per user id; binding again for
// the same user displaces the previous transport (last writer wins).
// The table is rebuilt from zero on restart, nothing is persisted.
type Registry struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uuid.UUID]*Client)}
}

// Bind registers the client as the live transport for its user and
// returns the displaced client, if any.
func (r *Registry) Bind(userID uuid.UUID, c *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.clients[userID]
	r.clients[userID] = c
	return prev
}

// Unbind removes the binding only if c is still the bound client, and
// reports whether it did. A stale connection that was already displaced
// must not evict its successor.
func (r *Registry) Unbind(userID uuid.UUID, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clients[userID] != c {
		return false
	}
	delete(r.clients, userID)
	return true
}

// Lookup returns the live transport for a user, if bound.
func (r *Registry) Lookup(userID uuid.UUID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[userID]
	return c, ok
}

// OnlineIDs returns the ids of all currently bound users.
func (r *Registry) OnlineIDs() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of live bindings.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}
