package spatial

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// DistanceMeters calculates the great-circle distance between two positions
// in meters using the haversine formula. Accurate at both geofence scale
// (tens of meters) and area-radius scale (kilometers); no short-distance
// special casing.
func DistanceMeters(a, b models.GeoPosition) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing calculates the initial bearing (forward azimuth) from a to b.
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(a, b models.GeoPosition) float64 {
	lat1Rad := a.Latitude * math.Pi / 180
	lat2Rad := b.Latitude * math.Pi / 180
	lonDiff := (b.Longitude - a.Longitude) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}
