package models

// CheckinFilter represents filter parameters for querying check-ins
type CheckinFilter struct {
	VenueID       string   `form:"venueId"`
	StartTime     int64    `form:"startTime"`     // Unix timestamp
	EndTime       int64    `form:"endTime"`       // Unix timestamp, exclusive
	WindowMinutes int      `form:"windowMinutes"` // Rolling window ending now; overrides start/end
	SingleOnly    bool     `form:"singleOnly"`
	AgeBands      []string `form:"ageBands"` // 18_25, 26_35, 36_45, 46_plus
	Intents       []string `form:"intents"`  // party, chill, social, flirt, music
}

// HeatmapFilter represents filter parameters for the heatmap endpoint
type HeatmapFilter struct {
	DisplayMode   string `form:"mode"`          // activity, single, ons, ons_boost, party, chill
	WindowMinutes int    `form:"windowMinutes"` // Defaults to the live window (90)
}

// InsightsFilter represents filter parameters for venue insights queries
type InsightsFilter struct {
	VenueID   string `form:"venueId" binding:"required"`
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp, exclusive
	Days      int    `form:"days"`      // Daily series length, default 7
}
