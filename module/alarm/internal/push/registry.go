package push

import (
	"sync"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

// Conn is a live client connection able to receive zone events. Send must
// not block; it reports whether the event was accepted for delivery.
type Conn interface {
	ID() string
	Send(ev *domain.ZoneEvent) bool
}

// Registry maps an authenticated user to at most one live connection. Both
// directions of the mapping are kept so a disconnect can unregister by
// connection id without scanning.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Conn
	byConn map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]Conn),
		byConn: make(map[string]string),
	}
}

// Register upserts the user's connection. The latest registration wins: any
// prior connection for the user is dropped from the reverse index, and a
// connection re-registering as a different user is moved.
func (r *Registry) Register(userID string, c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byUser[userID]; ok && old.ID() != c.ID() {
		delete(r.byConn, old.ID())
	}
	if oldUser, ok := r.byConn[c.ID()]; ok && oldUser != userID {
		delete(r.byUser, oldUser)
	}

	r.byUser[userID] = c
	r.byConn[c.ID()] = userID
}

// UnregisterByConn removes the entry for the given connection id, if any.
func (r *Registry) UnregisterByConn(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return
	}
	delete(r.byConn, connID)
	if c, ok := r.byUser[userID]; ok && c.ID() == connID {
		delete(r.byUser, userID)
	}
}

func (r *Registry) Lookup(userID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byUser[userID]
	return c, ok
}

// Len reports the number of live registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
