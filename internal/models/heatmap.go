package models

// VenueMode is the derived dominant character of a venue, independent of
// which display mode a viewer selected
type VenueMode string

const (
	ModeNeutral VenueMode = "neutral"
	ModeSingles VenueMode = "singles"
	ModeOns     VenueMode = "ons"
	ModeParty   VenueMode = "party"
	ModeChill   VenueMode = "chill"
)

// DisplayMode is the viewer-selected heatmap lens
type DisplayMode string

const (
	DisplayActivity DisplayMode = "activity"
	DisplaySingle   DisplayMode = "single"
	DisplayOns      DisplayMode = "ons"
	DisplayOnsBoost DisplayMode = "ons_boost"
	DisplayParty    DisplayMode = "party"
	DisplayChill    DisplayMode = "chill"
)

// Valid reports whether the display mode is one of the enumerated values
func (d DisplayMode) Valid() bool {
	switch d {
	case DisplayActivity, DisplaySingle, DisplayOns, DisplayOnsBoost, DisplayParty, DisplayChill:
		return true
	}
	return false
}

// VenueActivitySnapshot is the per-venue reduction of in-window check-ins.
// All ratios are computed over answered responses only and clamped to [0,1];
// a venue with zero answered responses for a field reports 0.
type VenueActivitySnapshot struct {
	VenueID string `json:"venue_id"`
	Count   int    `json:"count"` // Total check-ins in window

	SingleRatio float64 `json:"single_ratio"` // Share answered single
	OnsRatio    float64 `json:"ons_ratio"`    // Share answered open or maybe
	PartyRatio  float64 `json:"party_ratio"`  // Share with party intent
	ChillRatio  float64 `json:"chill_ratio"`  // Share with chill intent
	YoungRatio  float64 `json:"young_ratio"`  // Share answered in the 18-25 band

	// OnsIntensity weights open answers at 1.0 and maybe at 0.6 over all
	// answered ons responses; it feeds the ons_boost composite score
	OnsIntensity float64 `json:"ons_intensity"`
}

// HeatmapVenue is a scored venue ready for map rendering
type HeatmapVenue struct {
	VenueID   string    `json:"venue_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Count     int       `json:"count"`
	Intensity float64   `json:"intensity"` // Normalized 0-1 activity
	Weight    float64   `json:"weight"`    // Display weight for the selected mode, 0-1
	Mode      VenueMode `json:"mode"`
}

// HeatmapResponse is the heatmap API payload
type HeatmapResponse struct {
	Venues      []HeatmapVenue `json:"venues"`
	Count       int            `json:"count"`
	DisplayMode DisplayMode    `json:"display_mode"`
	WindowMin   int            `json:"window_minutes"`
	GeneratedAt string         `json:"generated_at"`
}
