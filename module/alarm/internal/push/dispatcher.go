package push

import (
	"context"
	"log"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

// Dispatcher delivers zone events to live connections. Delivery is
// at-most-once: a user without a connection, or a connection with a full
// send buffer, drops the event.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

func (d *Dispatcher) Notify(_ context.Context, userID string, ev *domain.ZoneEvent) {
	c, ok := d.registry.Lookup(userID)
	if !ok {
		log.Printf("no live connection for user %s, dropping %s event", userID, ev.Kind)
		return
	}
	if !c.Send(ev) {
		log.Printf("send buffer full for user %s, dropping %s event", userID, ev.Kind)
	}
}
