package domain

type ZoneEventKind string

const (
	ZoneEntered ZoneEventKind = "entered"
	ZoneExited  ZoneEventKind = "exited"
)

// ZoneEvent is pushed to the user's live connection on a boundary crossing.
type ZoneEvent struct {
	Kind           ZoneEventKind `json:"event"`
	DistanceMeters float64       `json:"distance_meters"`
	Timestamp      int64         `json:"timestamp"`
}

// UpdateResult is returned to the caller of a position update regardless of
// whether the event could be delivered anywhere.
type UpdateResult struct {
	DistanceMeters float64
	InZone         bool
	Transitioned   bool
}
