package service

import (
	"testing"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

func comparisonFixture() []models.VenueActivitySnapshot {
	return []models.VenueActivitySnapshot{
		{VenueID: "a", Count: 10, PartyRatio: 0.5, SingleRatio: 0.2, YoungRatio: 0.1},
		{VenueID: "b", Count: 40, PartyRatio: 0.1, SingleRatio: 0.8, YoungRatio: 0.4},
		{VenueID: "c", Count: 20, PartyRatio: 0.3, SingleRatio: 0.5, YoungRatio: 0.4},
	}
}

// TestCompareRanksAndScores checks rank and relative score per metric for a
// mid-field venue.
func TestCompareRanksAndScores(t *testing.T) {
	metrics := Compare(comparisonFixture(), "c")
	if len(metrics) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(metrics))
	}

	byName := make(map[string]models.ComparisonMetric, len(metrics))
	for _, m := range metrics {
		byName[m.Metric] = m
	}

	activity := byName[MetricActivity]
	if activity.Rank != 2 || activity.Total != 3 {
		t.Fatalf("expected activity rank 2/3, got %d/%d", activity.Rank, activity.Total)
	}
	if activity.Score != 0.5 {
		t.Fatalf("expected activity score 20/40 = 0.5, got %f", activity.Score)
	}

	party := byName[MetricPartyShare]
	if party.Rank != 2 {
		t.Fatalf("expected party rank 2, got %d", party.Rank)
	}

	single := byName[MetricSingleShare]
	if single.Rank != 2 || single.Score != 0.5/0.8 {
		t.Fatalf("unexpected single share metric: %+v", single)
	}
}

// TestCompareTiedMetricStableOrder ensures a tied metric value ranks by
// input position.
func TestCompareTiedMetricStableOrder(t *testing.T) {
	// b and c tie on young_share at 0.4; b comes first in input order
	byName := func(target string) map[string]models.ComparisonMetric {
		out := make(map[string]models.ComparisonMetric)
		for _, m := range Compare(comparisonFixture(), target) {
			out[m.Metric] = m
		}
		return out
	}

	if r := byName("b")[MetricYoungShare].Rank; r != 1 {
		t.Fatalf("first tied venue should rank 1, got %d", r)
	}
	if r := byName("c")[MetricYoungShare].Rank; r != 2 {
		t.Fatalf("second tied venue should rank 2, got %d", r)
	}
}

// TestCompareTargetAbsent returns nil when the target has no data in the
// period.
func TestCompareTargetAbsent(t *testing.T) {
	if metrics := Compare(comparisonFixture(), "ghost"); metrics != nil {
		t.Fatalf("expected nil for an absent target, got %+v", metrics)
	}
}

// TestDeltasPercentChanges checks the period-over-period change math,
// including the zero-previous conventions.
func TestDeltasPercentChanges(t *testing.T) {
	current := []models.VenueActivitySnapshot{{VenueID: "a", Count: 30, PartyRatio: 0.6}}
	previous := []models.VenueActivitySnapshot{{VenueID: "a", Count: 20, PartyRatio: 0}}

	byName := make(map[string]models.KPIDelta)
	for _, d := range Deltas(current, previous, "a") {
		byName[d.Metric] = d
	}

	if d := byName[MetricActivity]; d.ChangePercent != 50 {
		t.Fatalf("expected +50%% activity, got %f", d.ChangePercent)
	}
	// Zero previous with nonzero current reports +100
	if d := byName[MetricPartyShare]; d.ChangePercent != 100 {
		t.Fatalf("expected +100%% party share, got %f", d.ChangePercent)
	}
	// Zero over zero reports 0
	if d := byName[MetricSingleShare]; d.ChangePercent != 0 {
		t.Fatalf("expected 0%% single share, got %f", d.ChangePercent)
	}
}

// TestDeltasVenueAbsentFromPeriod treats a missing venue as zero values for
// that period rather than an error.
func TestDeltasVenueAbsentFromPeriod(t *testing.T) {
	current := []models.VenueActivitySnapshot{{VenueID: "a", Count: 10}}

	deltas := Deltas(current, nil, "a")
	if len(deltas) != 4 {
		t.Fatalf("expected 4 deltas, got %d", len(deltas))
	}
	for _, d := range deltas {
		if d.Previous != 0 {
			t.Fatalf("metric %s: expected zero previous, got %f", d.Metric, d.Previous)
		}
	}
}
