package service

import (
	"errors"
	"math"
	"testing"

	"github.com/Musoye/GeoSmart/module/alarm/domain"
)

func TestDistance_SamePoint(t *testing.T) {
	d, err := Distance(-6.2088, 106.8456, -6.2088, 106.8456)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	d1, err := Distance(-6.2088, 106.8456, 51.5074, -0.1278)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := Distance(51.5074, -0.1278, -6.2088, 106.8456)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d1 != d2 {
		t.Errorf("expected symmetric distances, got %f and %f", d1, d2)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// 0.0005 degrees of longitude at the equator is roughly 55m
	d, err := Distance(0, 0, 0, 0.0005)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d < 50 || d > 60 {
		t.Errorf("expected ~55m, got %f", d)
	}

	// 0.01 degrees is roughly 1113m
	d, err = Distance(0, 0, 0, 0.01)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d < 1100 || d > 1125 {
		t.Errorf("expected ~1113m, got %f", d)
	}
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
	}{
		{"latitude too large", 200, 0, 0, 0},
		{"latitude too small", -91, 0, 0, 0},
		{"longitude too large", 0, 181, 0, 0},
		{"longitude too small", 0, -181, 0, 0},
		{"nan latitude", math.NaN(), 0, 0, 0},
		{"nan longitude", 0, math.NaN(), 0, 0},
		{"invalid second point", 0, 0, 100, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Distance(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			if !errors.Is(err, domain.ErrInvalidCoordinates) {
				t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestValidateCoordinates_Boundaries(t *testing.T) {
	for _, p := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		if err := ValidateCoordinates(p[0], p[1]); err != nil {
			t.Errorf("expected (%v, %v) to be valid: %v", p[0], p[1], err)
		}
	}
}
