package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
	"github.com/Musoye/GeoSmart/module/alarm/internal/repository/database"
)

var _ database.TargetRepository = (*TargetRepo)(nil)

// TargetRepo reads the location_targets table:
//
//	CREATE TABLE location_targets (
//	    id         BIGSERIAL PRIMARY KEY,
//	    user_id    TEXT NOT NULL UNIQUE,
//	    target_lat DOUBLE PRECISION NOT NULL,
//	    target_lng DOUBLE PRECISION NOT NULL,
//	    radius     DOUBLE PRECISION NOT NULL,
//	    in_zone    BOOLEAN NOT NULL DEFAULT FALSE
//	);
//
// The UNIQUE constraint on user_id enforces the one-target-per-user
// invariant; the ORDER BY id LIMIT 1 below keeps reads deterministic should
// an unmigrated table still contain duplicates.
type TargetRepo struct {
	db *sql.DB
}

func NewTargetRepo(db *sql.DB) *TargetRepo {
	return &TargetRepo{db: db}
}

func (r *TargetRepo) GetByUser(ctx context.Context, userID string) (*domain.TargetLocation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, target_lat, target_lng, radius, in_zone FROM location_targets WHERE user_id = $1 ORDER BY id LIMIT 1`,
		userID,
	)

	var t domain.TargetLocation
	if err := row.Scan(&t.ID, &t.UserID, &t.Lat, &t.Lng, &t.RadiusMeters, &t.InZone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoTarget
		}
		return nil, err
	}
	return &t, nil
}

func (r *TargetRepo) SetInZone(ctx context.Context, targetID int64, inZone bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE location_targets SET in_zone = $2 WHERE id = $1`,
		targetID, inZone,
	)
	return err
}
