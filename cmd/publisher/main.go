package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang-jwt/jwt/v5"
)

// Mock position publisher: signs a token for a test user and walks them
// across the zone boundary, flipping sides every few reports.

type positionMessage struct {
	Token     string  `json:"token"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const reportsPerSide = 3

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func signToken(secret, userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := envOr("MQTT_BROKER", "tcp://localhost:1883")
	secret := envOr("JWT_SECRET", "dev-secret")
	userID := envOr("USER_ID", "demo-user")

	targetLat, _ := strconv.ParseFloat(envOr("TARGET_LAT", "-6.2088"), 64)
	targetLng, _ := strconv.ParseFloat(envOr("TARGET_LNG", "106.8456"), 64)

	token, err := signToken(secret, userID)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("alarm-mock-publisher")

	client := mqtt.NewClient(opts)
	if t := client.Connect(); t.Wait() && t.Error() != nil {
		log.Fatalf("mqtt connect: %v", t.Error())
	}
	defer client.Disconnect(250)

	log.Printf("connected to %s, publishing every %ds as %s...", broker, intervalSec, userID)

	topic := fmt.Sprintf("/alarm/%s/position", userID)
	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	inside := false
	count := 0
	for range ticker.C {
		if count%reportsPerSide == 0 {
			inside = !inside
		}
		count++

		var lat, lng float64
		if inside {
			// ~50m drift around the target
			lat = targetLat + (rand.Float64()-0.5)*0.0005
			lng = targetLng + (rand.Float64()-0.5)*0.0005
		} else {
			// ~1km off
			lat = targetLat + 0.01
			lng = targetLng + (rand.Float64()-0.5)*0.001
		}

		msg := positionMessage{Token: token, Latitude: lat, Longitude: lng}
		payload, _ := json.Marshal(msg)

		t := client.Publish(topic, 1, false, payload)
		t.Wait()

		log.Printf("published to %s: lat=%.5f lng=%.5f (inside=%v)", topic, lat, lng, inside)
	}
}
