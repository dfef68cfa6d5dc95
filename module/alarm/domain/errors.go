package domain

import "errors"

var (
	// ErrNoTarget means the user has no target location configured. This is
	// an expected outcome, not a system failure.
	ErrNoTarget = errors.New("no target location configured")

	// ErrInvalidCoordinates means a latitude/longitude was NaN or outside
	// [-90,90] / [-180,180].
	ErrInvalidCoordinates = errors.New("coordinates out of range")
)
