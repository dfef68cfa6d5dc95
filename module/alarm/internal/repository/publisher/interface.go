package publisher

import (
	"context"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

// ZonePublisher fans a zone event out to integration consumers. Publishing is
// best-effort relative to the caller's position update.
type ZonePublisher interface {
	PublishZoneEvent(ctx context.Context, userID string, ev *domain.ZoneEvent) error
}
