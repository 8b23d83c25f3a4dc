package discovery

import (
	"math"
	"testing"
)

func TestHaversineKmKnownDistance(t *testing.T) {
	// Stockholm (59.3293, 18.0686) to Gothenburg (57.7089, 11.9746) ~ 400 km
	d := HaversineKm(59.3293, 18.0686, 57.7089, 11.9746)
	if d < 380 || d > 420 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{59.3293, 18.0686, 57.7089, 11.9746},
		{0, 0, 45, 90},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, p := range pairs {
		ab := HaversineKm(p[0], p[1], p[2], p[3])
		ba := HaversineKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestHaversineKmSamePoint(t *testing.T) {
	if d := HaversineKm(59.3293, 18.0686, 59.3293, 18.0686); d != 0 {
		t.Fatalf("expected zero distance for identical points, got %v", d)
	}
}

func TestHaversineKmNaNPropagates(t *testing.T) {
	if d := HaversineKm(math.NaN(), 18.0686, 59.3293, 18.0686); !math.IsNaN(d) {
		t.Fatalf("expected NaN result for NaN input, got %v", d)
	}
}
