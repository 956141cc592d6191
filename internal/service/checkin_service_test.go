package service

import (
	"testing"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/spatial"
)

// TestResolveVenueExplicitWins ensures an explicitly chosen venue overrides
// proximity, even when another venue is closer.
func TestResolveVenueExplicitWins(t *testing.T) {
	venues := []models.Venue{
		coordVenue("near", 40.0, -74.0),
		coordVenue("far", 40.1, -74.1),
	}
	pos := models.GeoPosition{Latitude: 40.0, Longitude: -74.0}

	venue, _ := ResolveVenue("far", &pos, venues, 70)
	if venue == nil || venue.ID != "far" {
		t.Fatalf("expected the explicit venue, got %+v", venue)
	}

	// An unknown explicit id resolves to nothing rather than falling back
	// to proximity
	venue, _ = ResolveVenue("ghost", &pos, venues, 70)
	if venue != nil {
		t.Fatalf("expected no venue for an unknown explicit id, got %s", venue.ID)
	}
}

// TestResolveVenueNearestWithinRadius picks the closest venue inside the
// radius.
func TestResolveVenueNearestWithinRadius(t *testing.T) {
	venues := []models.Venue{
		coordVenue("far", 40.0006, -74.0),  // ~65 m north
		coordVenue("near", 40.0002, -74.0), // ~22 m north
	}
	pos := models.GeoPosition{Latitude: 40.0, Longitude: -74.0}

	venue, dist := ResolveVenue("", &pos, venues, 70)
	if venue == nil || venue.ID != "near" {
		t.Fatalf("expected the nearest venue, got %+v", venue)
	}
	if dist <= 0 || dist >= 70 {
		t.Fatalf("expected a distance inside the radius, got %f", dist)
	}
}

// TestResolveVenueRadiusExclusive verifies the boundary is exclusive: a
// venue exactly at the radius is out, a hair inside is in.
func TestResolveVenueRadiusExclusive(t *testing.T) {
	pos := models.GeoPosition{Latitude: 40.0, Longitude: -74.0}
	venues := []models.Venue{coordVenue("edge", 40.0006, -74.0)}

	venuePos, _ := venues[0].Position()
	d := spatial.DistanceMeters(pos, venuePos)

	if venue, _ := ResolveVenue("", &pos, venues, d); venue != nil {
		t.Fatalf("a venue exactly at the radius must be excluded, got %s", venue.ID)
	}
	if venue, _ := ResolveVenue("", &pos, venues, d+0.01); venue == nil {
		t.Fatal("a venue strictly inside the radius must resolve")
	}
}

// TestResolveVenueSkipsCoordinateless ensures venues without coordinates
// never resolve by proximity.
func TestResolveVenueSkipsCoordinateless(t *testing.T) {
	venues := []models.Venue{{ID: "nowhere", Name: "Nowhere"}}
	pos := models.GeoPosition{Latitude: 40.0, Longitude: -74.0}

	if venue, _ := ResolveVenue("", &pos, venues, 70); venue != nil {
		t.Fatalf("coordinate-less venue must not resolve, got %s", venue.ID)
	}
}

// TestResolveVenueTieFirstInOrder ensures an exact distance tie goes to the
// earlier venue.
func TestResolveVenueTieFirstInOrder(t *testing.T) {
	venues := []models.Venue{
		coordVenue("first", 40.0002, -74.0),
		coordVenue("second", 40.0002, -74.0),
	}
	pos := models.GeoPosition{Latitude: 40.0, Longitude: -74.0}

	venue, _ := ResolveVenue("", &pos, venues, 70)
	if venue == nil || venue.ID != "first" {
		t.Fatalf("expected the first venue on a tie, got %+v", venue)
	}
}

// TestBuildSelectionCarriesWindow ensures the rolling window reaches the
// pipeline's time_window stage instead of being swallowed by the fetch
// bounds, and that unknown enum values are dropped from the selection.
func TestBuildSelectionCarriesWindow(t *testing.T) {
	sel := buildSelection(models.CheckinFilter{
		WindowMinutes: 90,
		SingleOnly:    true,
		AgeBands:      []string{"18_25", "bogus"},
		Intents:       []string{"party", "bogus"},
	})

	if sel.WindowMinutes != 90 {
		t.Fatalf("expected window 90 in the selection, got %d", sel.WindowMinutes)
	}
	if !sel.SingleOnly {
		t.Fatal("expected single-only to carry through")
	}
	if len(sel.AgeBands) != 1 || sel.AgeBands[0] != models.AgeBand18To25 {
		t.Fatalf("unexpected age bands: %v", sel.AgeBands)
	}
	if len(sel.Intents) != 1 || sel.Intents[0] != models.IntentParty {
		t.Fatalf("unexpected intents: %v", sel.Intents)
	}
}

// TestResolveVenueNoPosition returns nothing when neither an explicit id
// nor a position is available.
func TestResolveVenueNoPosition(t *testing.T) {
	venues := []models.Venue{coordVenue("v", 40.0, -74.0)}
	if venue, _ := ResolveVenue("", nil, venues, 70); venue != nil {
		t.Fatalf("expected no venue without a position, got %s", venue.ID)
	}
}
