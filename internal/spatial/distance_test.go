package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistanceZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{37.0, -122.0},
		{-90, 0},
		{90, 180},
		{51.5074, -0.1278},
	}

	for _, p := range points {
		if d := HaversineDistance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("HaversineDistance(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestHaversineDistanceSymmetric(t *testing.T) {
	a := [2]float64{37.0, -122.0}
	b := [2]float64{40.7128, -74.0060}

	ab := HaversineDistance(a[0], a[1], b[0], b[1])
	ba := HaversineDistance(b[0], b[1], a[0], a[1])
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("distance not symmetric: ab=%v ba=%v", ab, ba)
	}
	if ab <= 0 {
		t.Errorf("distance should be positive, got %v", ab)
	}
}

func TestHaversineDistanceKnownValues(t *testing.T) {
	// 0.0005 degrees of latitude is roughly 55.6 m
	d := HaversineDistance(37.0000, -122.0000, 37.0005, -122.0000)
	if d < 55 || d > 56.5 {
		t.Errorf("close fix distance = %v, want ~55.6", d)
	}

	// 0.03 degrees of latitude is roughly 3336 m, past the 3000 m threshold
	d = HaversineDistance(37.0000, -122.0000, 37.03, -122.0000)
	if d < 3300 || d > 3375 {
		t.Errorf("far fix distance = %v, want ~3336", d)
	}
}

func TestValidLatLng(t *testing.T) {
	valid := [][2]float64{
		{0, 0},
		{-90, -180},
		{90, 180},
		{37.0005, -122.0},
	}
	for _, p := range valid {
		if !ValidLatLng(p[0], p[1]) {
			t.Errorf("ValidLatLng(%v, %v) = false, want true", p[0], p[1])
		}
	}

	invalid := [][2]float64{
		{95.0, 0},
		{-90.1, 0},
		{0, 180.5},
		{0, -200},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	}
	for _, p := range invalid {
		if ValidLatLng(p[0], p[1]) {
			t.Errorf("ValidLatLng(%v, %v) = true, want false", p[0], p[1])
		}
	}
}
