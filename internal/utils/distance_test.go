package utils

import (
	"math"
	"testing"
)

func TestCalculateDistance(t *testing.T) {
	tests := []struct {
		name        string
		lat1, lng1  float64
		lat2, lng2  float64
		wantKM      float64
		toleranceKM float64
	}{
		{
			name: "same point",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 40.7128, lng2: -74.0060,
			wantKM: 0, toleranceKM: 0.001,
		},
		{
			name: "manhattan to jfk",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 40.6413, lng2: -73.7781,
			wantKM: 21, toleranceKM: 1,
		},
		{
			name: "new york to los angeles",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantKM: 3936, toleranceKM: 30,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lng1: 179.5,
			lat2: 0, lng2: -179.5,
			wantKM: 111, toleranceKM: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDistance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKM) > tt.toleranceKM {
				t.Errorf("CalculateDistance() = %v km, want %v +/- %v", got, tt.wantKM, tt.toleranceKM)
			}
		})
	}
}

func TestCalculateDistanceIsSymmetric(t *testing.T) {
	forward := CalculateDistance(40.7128, -74.0060, 34.0522, -118.2437)
	backward := CalculateDistance(34.0522, -118.2437, 40.7128, -74.0060)
	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("distance not symmetric: %v vs %v", forward, backward)
	}
}

func TestCalculateDistanceMeters(t *testing.T) {
	km := CalculateDistance(40.7128, -74.0060, 40.7308, -74.0060)
	meters := CalculateDistanceMeters(40.7128, -74.0060, 40.7308, -74.0060)
	if math.Abs(meters-km*1000) > 0.01 {
		t.Errorf("meters %v does not match km %v", meters, km)
	}
}

func TestIsWithinRadius(t *testing.T) {
	// ~2 km apart
	if !IsWithinRadius(40.7128, -74.0060, 40.7308, -74.0060, 5) {
		t.Error("2 km apart should be within a 5 km radius")
	}
	if IsWithinRadius(40.7128, -74.0060, 40.7308, -74.0060, 1) {
		t.Error("2 km apart should not be within a 1 km radius")
	}
}
