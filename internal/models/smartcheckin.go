package models

import "time"

// SmartCheckinState is the live status of the geofenced check-in engine.
// Only the cooldown anchor (last venue + timestamp) is persisted; the rest
// is recomputed each session.
type SmartCheckinState struct {
	Active bool `json:"active"`

	NearbyVenueID  string  `json:"nearby_venue_id,omitempty"`
	NearbyDistance float64 `json:"nearby_distance_meters,omitempty"`

	LastCheckinVenueID string    `json:"last_checkin_venue_id,omitempty"`
	LastCheckinAt      time.Time `json:"last_checkin_at,omitempty"`

	Permission PermissionState `json:"permission"`
	GeoError   string          `json:"geo_error,omitempty"`
}
