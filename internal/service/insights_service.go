package service

import (
	"fmt"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/stats"
)

// Metric labels for venue comparisons and KPI deltas
const (
	MetricActivity    = "activity"
	MetricPartyShare  = "party_share"
	MetricSingleShare = "single_share"
	MetricYoungShare  = "young_share"
)

// comparisonMetrics is the tracked metric set, in report order
var comparisonMetrics = []struct {
	Name  string
	Value func(models.VenueActivitySnapshot) float64
}{
	{MetricActivity, func(s models.VenueActivitySnapshot) float64 { return float64(s.Count) }},
	{MetricPartyShare, func(s models.VenueActivitySnapshot) float64 { return s.PartyRatio }},
	{MetricSingleShare, func(s models.VenueActivitySnapshot) float64 { return s.SingleRatio }},
	{MetricYoungShare, func(s models.VenueActivitySnapshot) float64 { return s.YoungRatio }},
}

// InsightsService ranks a venue against its area and reports
// period-over-period KPI changes
type InsightsService struct {
	activity *ActivityService
}

// NewInsightsService creates a new insights service
func NewInsightsService(activity *ActivityService) *InsightsService {
	return &InsightsService{activity: activity}
}

// CompareVenue ranks the target venue against every venue with data in
// [from, to). Returns nil when the target has no data in the period.
func (s *InsightsService) CompareVenue(venueID string, from, to time.Time) ([]models.ComparisonMetric, error) {
	if venueID == "" {
		return nil, fmt.Errorf("venue id is required")
	}

	snapshots, err := s.activity.SnapshotsInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period: %w", err)
	}

	return Compare(snapshots, venueID), nil
}

// KPIDeltas compares the target venue's metrics in [from, to) against the
// immediately preceding period of equal length
func (s *InsightsService) KPIDeltas(venueID string, from, to time.Time) ([]models.KPIDelta, error) {
	if venueID == "" {
		return nil, fmt.Errorf("venue id is required")
	}

	current, err := s.activity.SnapshotsInRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate current period: %w", err)
	}

	length := to.Sub(from)
	previous, err := s.activity.SnapshotsInRange(from.Add(-length), from)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate previous period: %w", err)
	}

	return Deltas(current, previous, venueID), nil
}

// Compare produces one ComparisonMetric per tracked metric. Rank is the
// 1-based position in a descending sort with ties broken by stable input
// order; score is the target value relative to the maximum observed value
// (0 when the max is 0). This is a full re-rank per request; at dozens to
// low hundreds of venues no incremental structure is needed.
func Compare(snapshots []models.VenueActivitySnapshot, targetID string) []models.ComparisonMetric {
	targetIndex := -1
	for i, snap := range snapshots {
		if snap.VenueID == targetID {
			targetIndex = i
			break
		}
	}
	if targetIndex < 0 {
		return nil
	}

	result := make([]models.ComparisonMetric, 0, len(comparisonMetrics))
	for _, metric := range comparisonMetrics {
		values := make([]float64, len(snapshots))
		for i, snap := range snapshots {
			values[i] = metric.Value(snap)
		}

		result = append(result, models.ComparisonMetric{
			Metric: metric.Name,
			Rank:   stats.Rank(values, targetIndex),
			Total:  len(values),
			Score:  stats.RelativeScore(values, targetIndex),
		})
	}

	return result
}

// Deltas reports the percentage change per tracked metric between two
// aggregation runs for one venue. A venue absent from a period contributes
// zero values for that period.
func Deltas(current, previous []models.VenueActivitySnapshot, targetID string) []models.KPIDelta {
	cur := findSnapshot(current, targetID)
	prev := findSnapshot(previous, targetID)

	result := make([]models.KPIDelta, 0, len(comparisonMetrics))
	for _, metric := range comparisonMetrics {
		var curVal, prevVal float64
		if cur != nil {
			curVal = metric.Value(*cur)
		}
		if prev != nil {
			prevVal = metric.Value(*prev)
		}

		result = append(result, models.KPIDelta{
			Metric:        metric.Name,
			Current:       curVal,
			Previous:      prevVal,
			ChangePercent: stats.PercentChange(curVal, prevVal),
		})
	}

	return result
}

func findSnapshot(snapshots []models.VenueActivitySnapshot, venueID string) *models.VenueActivitySnapshot {
	for i := range snapshots {
		if snapshots[i].VenueID == venueID {
			return &snapshots[i]
		}
	}
	return nil
}
