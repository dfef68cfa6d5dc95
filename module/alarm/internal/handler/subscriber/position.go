package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-playground/validator/v10"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

// Clients that prefer a broker over HTTP publish position reports here. The
// wildcard segment is a client-chosen id used only for topic routing; the
// token inside the payload is what identifies the user.
const topicPattern = "/alarm/+/position"

type trackerService interface {
	ProcessReport(ctx context.Context, userID string, lat, lng float64) (*domain.UpdateResult, error)
}

type tokenVerifier interface {
	Verify(token string) (string, error)
}

type positionMessage struct {
	Token     string   `json:"token" validate:"required"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type PositionSubscriber struct {
	client     mqtt.Client
	trackerSvc trackerService
	tokens     tokenVerifier
	validate   *validator.Validate
}

func NewPositionSubscriber(client mqtt.Client, trackerSvc trackerService, tokens tokenVerifier) *PositionSubscriber {
	return &PositionSubscriber{
		client:     client,
		trackerSvc: trackerSvc,
		tokens:     tokens,
		validate:   validator.New(),
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid position message: %v", err)
		return
	}

	if err := s.validate.Struct(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	userID, err := s.tokens.Verify(raw.Token)
	if err != nil {
		log.Printf("position message rejected: %v", err)
		return
	}

	ctx := context.Background()

	result, err := s.trackerSvc.ProcessReport(ctx, userID, *raw.Latitude, *raw.Longitude)
	if err != nil {
		if errors.Is(err, domain.ErrNoTarget) {
			log.Printf("position report for user %s: no target configured", userID)
			return
		}
		log.Printf("position report for user %s: %v", userID, err)
		return
	}

	if result.Transitioned {
		log.Printf("user %s %s zone (%.0fm from target)", userID, transitionVerb(result.InZone), result.DistanceMeters)
	}
}

func transitionVerb(inZone bool) string {
	if inZone {
		return "entered"
	}
	return "exited"
}
