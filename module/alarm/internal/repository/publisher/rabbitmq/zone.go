package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
	"github.com/Musoye/GeoSmart/module/alarm/internal/repository/publisher"
)

var _ publisher.ZonePublisher = (*ZonePublisher)(nil)

const (
	exchangeName = "alarm.events"
	queueName    = "zone_events"
)

type ZonePublisher struct {
	ch *amqp.Channel
}

func NewZonePublisher(conn *amqp.Connection) (*ZonePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &ZonePublisher{ch: ch}, nil
}

type zoneEventMessage struct {
	UserID         string               `json:"user_id"`
	Event          domain.ZoneEventKind `json:"event"`
	DistanceMeters float64              `json:"distance_meters"`
	Timestamp      int64                `json:"timestamp"`
}

func (p *ZonePublisher) PublishZoneEvent(ctx context.Context, userID string, ev *domain.ZoneEvent) error {
	msg := zoneEventMessage{
		UserID:         userID,
		Event:          ev.Kind,
		DistanceMeters: ev.DistanceMeters,
		Timestamp:      ev.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal zone event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
