package alarm

import (
	"database/sql"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Musoye/GeoSmart/module/alarm/internal/auth"
	handler "github.com/Musoye/GeoSmart/module/alarm/internal/handler/http"
	"github.com/Musoye/GeoSmart/module/alarm/internal/handler/subscriber"
	"github.com/Musoye/GeoSmart/module/alarm/internal/handler/ws"
	"github.com/Musoye/GeoSmart/module/alarm/internal/push"
	"github.com/Musoye/GeoSmart/module/alarm/internal/repository/database/postgres"
	"github.com/Musoye/GeoSmart/module/alarm/internal/repository/publisher/rabbitmq"
	"github.com/Musoye/GeoSmart/module/alarm/service"
)

type Module struct {
	TrackerSvc *service.TrackerService

	registry   *push.Registry
	handler    *handler.LocationHandler
	socket     *ws.SocketHandler
	subscriber *subscriber.PositionSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, jwtSecret string, tokenTTL time.Duration) (*Module, error) {
	targetRepo := postgres.NewTargetRepo(db)

	zonePub, err := rabbitmq.NewZonePublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("zone publisher: %w", err)
	}

	tokens := auth.NewTokenManager(jwtSecret, tokenTTL)
	registry := push.NewRegistry()
	dispatcher := push.NewDispatcher(registry)

	trackerSvc := service.NewTrackerService(targetRepo, dispatcher, zonePub)

	h := handler.NewLocationHandler(trackerSvc, tokens)
	socket := ws.NewSocketHandler(registry, tokens)
	sub := subscriber.NewPositionSubscriber(mqttClient, trackerSvc, tokens)

	return &Module{
		TrackerSvc: trackerSvc,
		registry:   registry,
		handler:    h,
		socket:     socket,
		subscriber: sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.handler.Register(r)
	m.socket.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

// ConnectionCount reports the number of live registered connections.
func (m *Module) ConnectionCount() int {
	return m.registry.Len()
}
