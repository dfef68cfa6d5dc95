package domain

// TargetLocation is the single stored target for a user. InZone is the last
// known membership state and is flipped only when a boundary crossing is
// detected.
type TargetLocation struct {
	ID           int64
	UserID       string
	Lat          float64
	Lng          float64
	RadiusMeters float64
	InZone       bool
}
