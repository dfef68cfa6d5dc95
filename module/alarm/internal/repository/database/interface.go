package database

import (
	"context"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

// TargetRepository reads and updates the single target-location row per user.
// GetByUser returns domain.ErrNoTarget when no row exists.
type TargetRepository interface {
	GetByUser(ctx context.Context, userID string) (*domain.TargetLocation, error)
	SetInZone(ctx context.Context, targetID int64, inZone bool) error
}
