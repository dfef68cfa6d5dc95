package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
	"github.com/Musoye/GeoSmart/module/alarm/internal/auth"
)

type mockTrackerSvc struct {
	processReportFn func(ctx context.Context, userID string, lat, lng float64) (*domain.UpdateResult, error)
}

func (m *mockTrackerSvc) ProcessReport(ctx context.Context, userID string, lat, lng float64) (*domain.UpdateResult, error) {
	return m.processReportFn(ctx, userID, lat, lng)
}

type mockVerifier struct {
	verifyFn func(token string) (string, error)
}

func (m *mockVerifier) Verify(token string) (string, error) {
	return m.verifyFn(token)
}

type fakeMQTTMessage struct {
	payload []byte
}

func (f *fakeMQTTMessage) Duplicate() bool   { return false }
func (f *fakeMQTTMessage) Qos() byte         { return 0 }
func (f *fakeMQTTMessage) Retained() bool    { return false }
func (f *fakeMQTTMessage) Topic() string     { return "/alarm/client-1/position" }
func (f *fakeMQTTMessage) MessageID() uint16 { return 0 }
func (f *fakeMQTTMessage) Payload() []byte   { return f.payload }
func (f *fakeMQTTMessage) Ack()              {}

func newSubscriber(svc trackerService, tokens tokenVerifier) *PositionSubscriber {
	return &PositionSubscriber{trackerSvc: svc, tokens: tokens, validate: validator.New()}
}

func payloadFor(token string, lat, lng float64) []byte {
	b, _ := json.Marshal(positionMessage{Token: token, Latitude: &lat, Longitude: &lng})
	return b
}

func TestHandleMessage_Success(t *testing.T) {
	var gotUser string
	var gotLat, gotLng float64

	svc := &mockTrackerSvc{
		processReportFn: func(_ context.Context, userID string, lat, lng float64) (*domain.UpdateResult, error) {
			gotUser, gotLat, gotLng = userID, lat, lng
			return &domain.UpdateResult{DistanceMeters: 55.6, InZone: true, Transitioned: true}, nil
		},
	}
	tokens := &mockVerifier{
		verifyFn: func(token string) (string, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token: %s", token)
			}
			return "u1", nil
		},
	}

	sub := newSubscriber(svc, tokens)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payloadFor("good-token", 0, 0.0005)})

	if gotUser != "u1" {
		t.Errorf("expected u1, got %s", gotUser)
	}
	if gotLat != 0 || gotLng != 0.0005 {
		t.Errorf("unexpected coordinates: %f, %f", gotLat, gotLng)
	}
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	svc := &mockTrackerSvc{
		processReportFn: func(_ context.Context, _ string, _, _ float64) (*domain.UpdateResult, error) {
			t.Fatal("ProcessReport should not be called")
			return nil, nil
		},
	}
	tokens := &mockVerifier{
		verifyFn: func(_ string) (string, error) {
			t.Fatal("Verify should not be called")
			return "", nil
		},
	}

	sub := newSubscriber(svc, tokens)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: []byte("not json")})
}

func TestHandleMessage_OutOfRangeLatitude(t *testing.T) {
	svc := &mockTrackerSvc{
		processReportFn: func(_ context.Context, _ string, _, _ float64) (*domain.UpdateResult, error) {
			t.Fatal("ProcessReport should not be called")
			return nil, nil
		},
	}
	tokens := &mockVerifier{
		verifyFn: func(_ string) (string, error) {
			t.Fatal("Verify should not be called")
			return "", nil
		},
	}

	sub := newSubscriber(svc, tokens)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payloadFor("good-token", 200, 0)})
}

func TestHandleMessage_BadToken(t *testing.T) {
	svc := &mockTrackerSvc{
		processReportFn: func(_ context.Context, _ string, _, _ float64) (*domain.UpdateResult, error) {
			t.Fatal("ProcessReport should not be called")
			return nil, nil
		},
	}
	tokens := &mockVerifier{
		verifyFn: func(_ string) (string, error) {
			return "", auth.ErrTokenInvalid
		},
	}

	sub := newSubscriber(svc, tokens)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payloadFor("bad-token", 0, 0.0005)})
}

func TestHandleMessage_NoTargetIsNotFatal(t *testing.T) {
	svc := &mockTrackerSvc{
		processReportFn: func(_ context.Context, _ string, _, _ float64) (*domain.UpdateResult, error) {
			return nil, domain.ErrNoTarget
		},
	}
	tokens := &mockVerifier{
		verifyFn: func(_ string) (string, error) { return "u1", nil },
	}

	sub := newSubscriber(svc, tokens)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payloadFor("good-token", 0, 0.0005)})
}

func TestHandleMessage_TrackerError(t *testing.T) {
	svc := &mockTrackerSvc{
		processReportFn: func(_ context.Context, _ string, _, _ float64) (*domain.UpdateResult, error) {
			return nil, errors.New("db down")
		},
	}
	tokens := &mockVerifier{
		verifyFn: func(_ string) (string, error) { return "u1", nil },
	}

	sub := newSubscriber(svc, tokens)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payloadFor("good-token", 0, 0.0005)})
}
