package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Musoye/GeoSmart/config"
	"github.com/Musoye/GeoSmart/module/alarm"
)

func main() {
	cfg := config.Load()

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	alarmModule, err := alarm.Build(db, amqpConn, mqttClient, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("alarm module: %v", err)
	}

	if err := alarmModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	r := gin.Default()

	health := config.NewHealthChecker(db, amqpConn, mqttClient, alarmModule.ConnectionCount)
	health.Register(r)

	alarmModule.RegisterRoutes(r.Group("/api"))

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
