package models

// ComparisonMetric ranks one venue against every venue with data in the
// same period for a single metric
type ComparisonMetric struct {
	Metric string  `json:"metric"` // activity, party_share, single_share, young_share
	Rank   int     `json:"rank"`   // 1-based; ties broken by stable input order
	Total  int     `json:"total"`  // Number of ranked venues
	Score  float64 `json:"score"`  // Target value / max observed value, 0 if max is 0
}

// KPIDelta reports a period-over-period change for one metric.
// A zero previous value with a nonzero current value reports +100%;
// zero over zero reports 0%.
type KPIDelta struct {
	Metric        string  `json:"metric"`
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
}

// DailyActivityPoint is one day in a venue's activity series. Days with no
// activity are explicit zero points, never absent.
type DailyActivityPoint struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Visits int    `json:"visits"`
}

// DailyIntentPoint is one day in a venue's intent-mix series
type DailyIntentPoint struct {
	Date   string         `json:"date"` // YYYY-MM-DD
	Counts map[Intent]int `json:"counts"`
}
