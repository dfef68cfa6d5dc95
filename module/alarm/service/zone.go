package service

import "github.com/Musoye/GeoSmart/module/alarm/domain"

// Evaluation is the outcome of comparing a distance against a zone boundary
// and the previously stored membership state.
type Evaluation struct {
	InZone       bool
	Transitioned bool
	// Direction is ZoneEntered or ZoneExited when Transitioned, empty otherwise.
	Direction domain.ZoneEventKind
}

// EvaluateZone decides zone membership and whether a boundary crossing
// occurred. A point exactly at the radius counts as inside.
func EvaluateZone(distance, radius float64, previousInZone bool) Evaluation {
	inZone := distance <= radius
	ev := Evaluation{InZone: inZone, Transitioned: inZone != previousInZone}
	if !ev.Transitioned {
		return ev
	}
	if inZone {
		ev.Direction = domain.ZoneEntered
	} else {
		ev.Direction = domain.ZoneExited
	}
	return ev
}
