package push

import (
	"context"
	"testing"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

func TestDispatcher_DeliversToRegisteredConn(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{id: "A"}
	r.Register("u1", conn)

	d := NewDispatcher(r)
	ev := &domain.ZoneEvent{Kind: domain.ZoneEntered, DistanceMeters: 55, Timestamp: 1715003456}
	d.Notify(context.Background(), "u1", ev)

	if len(conn.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(conn.events))
	}
	if conn.events[0].Kind != domain.ZoneEntered {
		t.Errorf("expected entered, got %s", conn.events[0].Kind)
	}
}

func TestDispatcher_NoConnectionDropsEvent(t *testing.T) {
	d := NewDispatcher(NewRegistry())
	// must not panic or block
	d.Notify(context.Background(), "ghost", &domain.ZoneEvent{Kind: domain.ZoneExited})
}

func TestDispatcher_FullBufferDropsEvent(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{id: "A", full: true}
	r.Register("u1", conn)

	d := NewDispatcher(r)
	d.Notify(context.Background(), "u1", &domain.ZoneEvent{Kind: domain.ZoneEntered})

	if len(conn.events) != 0 {
		t.Errorf("expected dropped event, got %d delivered", len(conn.events))
	}
}
