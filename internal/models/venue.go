package models

// Venue is a nightlife location. Coordinates may be absent for venues that
// were imported without geodata; those are excluded from all geofencing and
// mapping use.
type Venue struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Category  string   `json:"category" db:"category"` // BAR, CLUB, LOUNGE, ROOFTOP, OTHER
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

// Position returns the venue's coordinate and whether one is set
func (v *Venue) Position() (GeoPosition, bool) {
	if v.Latitude == nil || v.Longitude == nil {
		return GeoPosition{}, false
	}
	return GeoPosition{Latitude: *v.Latitude, Longitude: *v.Longitude}, true
}
