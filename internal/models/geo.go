package models

// GeoPosition is a latitude/longitude pair, either a device sample or a
// venue's fixed location
type GeoPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PermissionState is the geolocation permission signal reported by the device
type PermissionState string

const (
	PermissionPrompt      PermissionState = "prompt"
	PermissionGranted     PermissionState = "granted"
	PermissionDenied      PermissionState = "denied"
	PermissionUnavailable PermissionState = "unavailable"
)

// Terminal reports whether the permission state ends polling for the session.
// Denied requires the user to re-grant at the OS/browser level; unavailable
// means the device has no usable positioning source.
func (p PermissionState) Terminal() bool {
	return p == PermissionDenied || p == PermissionUnavailable
}

// WalkingRoute is the routing collaborator's answer for a two-point walk
type WalkingRoute struct {
	Polyline        string  `json:"polyline"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}
