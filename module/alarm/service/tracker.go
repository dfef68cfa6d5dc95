package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
	"github.com/Musoye/GeoSmart/module/alarm/internal/repository/database"
	"github.com/Musoye/GeoSmart/module/alarm/internal/repository/publisher"
)

// Notifier delivers a zone event to the user's live connection, if any.
// Delivery is best-effort; a missing connection is not an error.
type Notifier interface {
	Notify(ctx context.Context, userID string, ev *domain.ZoneEvent)
}

// TrackerService processes position reports for authenticated users: it
// loads the user's target, evaluates zone membership against the stored
// state, persists boundary crossings and fans the resulting event out.
type TrackerService struct {
	repo      database.TargetRepository
	notifier  Notifier
	publisher publisher.ZonePublisher

	// Reports for the same user are serialized so two concurrent updates
	// cannot race a read-then-write of the stored in_zone state.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTrackerService(repo database.TargetRepository, notifier Notifier, pub publisher.ZonePublisher) *TrackerService {
	return &TrackerService{
		repo:      repo,
		notifier:  notifier,
		publisher: pub,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *TrackerService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// ProcessReport runs one position update for userID. It returns ErrNoTarget
// when the user has no target configured and ErrInvalidCoordinates before any
// storage access when the report is malformed. The stored in_zone flag is
// written only when membership actually changed; a failed write aborts
// dispatch so the next report re-detects the crossing.
func (s *TrackerService) ProcessReport(ctx context.Context, userID string, lat, lng float64) (*domain.UpdateResult, error) {
	if err := ValidateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	target, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoTarget) {
			return nil, err
		}
		return nil, fmt.Errorf("load target: %w", err)
	}

	dist, err := Distance(lat, lng, target.Lat, target.Lng)
	if err != nil {
		return nil, err
	}

	ev := EvaluateZone(dist, target.RadiusMeters, target.InZone)
	if ev.Transitioned {
		if err := s.repo.SetInZone(ctx, target.ID, ev.InZone); err != nil {
			return nil, fmt.Errorf("persist zone state: %w", err)
		}

		event := &domain.ZoneEvent{
			Kind:           ev.Direction,
			DistanceMeters: dist,
			Timestamp:      time.Now().Unix(),
		}
		s.notifier.Notify(ctx, userID, event)
		if s.publisher != nil {
			if err := s.publisher.PublishZoneEvent(ctx, userID, event); err != nil {
				log.Printf("publish zone event for user %s: %v", userID, err)
			}
		}
	}

	return &domain.UpdateResult{
		DistanceMeters: dist,
		InZone:         ev.InZone,
		Transitioned:   ev.Transitioned,
	}, nil
}
