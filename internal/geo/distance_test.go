package geo

import (
	"math"
	"testing"
)

func TestCalculateDistanceSamePoint(t *testing.T) {
	if got := CalculateDistance(37.7749, -122.4194, 37.7749, -122.4194); got != 0.0 {
		t.Fatalf("expected 0.0, got %v", got)
	}
}

func TestCalculateDistanceSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{37.7749, -122.4194, 34.0522, -118.2437},
		{40.7128, -74.0060, 41.8781, -87.6298},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}
	for _, p := range pairs {
		ab := CalculateDistance(p[0], p[1], p[2], p[3])
		ba := CalculateDistance(p[2], p[3], p[0], p[1])
		if ab != ba {
			t.Fatalf("distance not symmetric for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestCalculateDistanceKnownRoute(t *testing.T) {
	// San Francisco to Los Angeles is roughly 347 miles as the crow flies.
	got := CalculateDistance(37.7749, -122.4194, 34.0522, -118.2437)
	if got < 345 || got > 350 {
		t.Fatalf("unexpected SF-LA distance %v", got)
	}
	if math.Abs(got*10-math.Round(got*10)) > 1e-9 {
		t.Fatalf("expected one decimal place, got %v", got)
	}
}

func ptr(v float64) *float64 { return &v }

func TestRankVendors(t *testing.T) {
	origin := Point{Lat: 37.7749, Lon: -122.4194}
	vendors := []Vendor{
		{ID: "far", Name: "Far Plumbing", Specialty: "Plumbing", Latitude: ptr(34.0522), Longitude: ptr(-118.2437)},
		{ID: "b", Name: "Bay Plumbing", Specialty: "Plumbing", Latitude: ptr(37.80), Longitude: ptr(-122.42)},
		{ID: "a", Name: "Able Electric", Specialty: "Electrical", Latitude: ptr(37.90), Longitude: ptr(-122.30)},
		{ID: "near", Name: "Corner Plumbing", Specialty: "Plumbing", Latitude: ptr(37.776), Longitude: ptr(-122.42)},
		{ID: "nocoords", Name: "Ghost Roofing", Specialty: "Roofing"},
	}

	ranked := RankVendors(vendors, origin, 25)
	gotIDs := make([]string, len(ranked))
	for i, v := range ranked {
		gotIDs[i] = v.ID
	}
	want := []string{"a", "near", "b"}
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
	if ranked[1].Distance > ranked[2].Distance {
		t.Fatal("expected ascending distance within a specialty")
	}
	if want := Between(origin, Point{Lat: 37.776, Lon: -122.42}); ranked[1].Distance != want {
		t.Fatalf("expected distance %v from the origin, got %v", want, ranked[1].Distance)
	}
	if vendors[1].Distance != 0 {
		t.Fatal("input slice must not be modified")
	}

	all := RankVendors(vendors, origin, 0)
	if len(all) != 4 {
		t.Fatalf("expected radius 0 to keep every located vendor, got %d", len(all))
	}
}
