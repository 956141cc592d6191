package service

import (
	"testing"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

func ptr[T any](v T) *T { return &v }

func eventAt(venueID string, at time.Time) models.CheckInEvent {
	return models.CheckInEvent{
		VenueID:   venueID,
		UserID:    "u1",
		CreatedAt: at,
		Mood:      models.MoodGood,
		Intent:    models.IntentSocial,
	}
}

// TestSnapshotsRatiosOverAnsweredOnly verifies ratios exclude unanswered
// demographics from both numerator and denominator.
func TestSnapshotsRatiosOverAnsweredOnly(t *testing.T) {
	now := time.Now()
	events := []models.CheckInEvent{}

	// 4 single out of 6 answered, 4 unanswered
	for i := 0; i < 4; i++ {
		e := eventAt("v1", now)
		e.RelationshipStatus = ptr(models.RelationshipSingle)
		events = append(events, e)
	}
	for i := 0; i < 2; i++ {
		e := eventAt("v1", now)
		e.RelationshipStatus = ptr(models.RelationshipTaken)
		events = append(events, e)
	}
	for i := 0; i < 4; i++ {
		events = append(events, eventAt("v1", now))
	}

	snapshots := Snapshots(events)
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(snapshots))
	}

	snap := snapshots[0]
	if snap.Count != 10 {
		t.Fatalf("expected count 10, got %d", snap.Count)
	}
	want := 4.0 / 6.0
	if diff := snap.SingleRatio - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected single ratio %f, got %f", want, snap.SingleRatio)
	}
}

// TestSnapshotsZeroAnsweredIsZeroNotNaN verifies a venue with no answered
// demographic responses reports ratio 0.
func TestSnapshotsZeroAnsweredIsZeroNotNaN(t *testing.T) {
	events := []models.CheckInEvent{
		eventAt("v1", time.Now()),
		eventAt("v1", time.Now()),
	}

	snap := Snapshots(events)[0]
	if snap.SingleRatio != 0 || snap.OnsRatio != 0 || snap.YoungRatio != 0 || snap.OnsIntensity != 0 {
		t.Fatalf("unanswered fields must report 0, got %+v", snap)
	}
}

// TestSnapshotsRatiosClamped verifies every ratio stays in [0,1].
func TestSnapshotsRatiosClamped(t *testing.T) {
	now := time.Now()
	var events []models.CheckInEvent
	for i := 0; i < 5; i++ {
		e := eventAt("v1", now)
		e.Intent = models.IntentParty
		e.RelationshipStatus = ptr(models.RelationshipSingle)
		e.OnsIntent = ptr(models.OnsOpen)
		e.AgeBand = ptr(models.AgeBand18To25)
		events = append(events, e)
	}

	snap := Snapshots(events)[0]
	ratios := []float64{snap.SingleRatio, snap.OnsRatio, snap.PartyRatio, snap.ChillRatio, snap.YoungRatio, snap.OnsIntensity}
	for i, r := range ratios {
		if r < 0 || r > 1 {
			t.Fatalf("ratio %d out of [0,1]: %f", i, r)
		}
	}
}

// TestSnapshotsOmitZeroEventVenues verifies venues without events in the
// input simply do not appear.
func TestSnapshotsOmitZeroEventVenues(t *testing.T) {
	snapshots := Snapshots([]models.CheckInEvent{eventAt("v1", time.Now())})
	if len(snapshots) != 1 || snapshots[0].VenueID != "v1" {
		t.Fatalf("expected only v1, got %+v", snapshots)
	}

	if got := Snapshots(nil); len(got) != 0 {
		t.Fatalf("expected empty snapshot set, got %d", len(got))
	}
}

// TestSnapshotsOnsIntensityWeighting verifies the open/maybe weighting.
func TestSnapshotsOnsIntensityWeighting(t *testing.T) {
	now := time.Now()
	var events []models.CheckInEvent

	// 3 open, 1 maybe, 1 no -> (3*1.0 + 1*0.6) / 5 = 0.72
	for i := 0; i < 3; i++ {
		e := eventAt("v1", now)
		e.OnsIntent = ptr(models.OnsOpen)
		events = append(events, e)
	}
	e := eventAt("v1", now)
	e.OnsIntent = ptr(models.OnsMaybe)
	events = append(events, e)
	e = eventAt("v1", now)
	e.OnsIntent = ptr(models.OnsNo)
	events = append(events, e)

	snap := Snapshots(events)[0]
	if diff := snap.OnsIntensity - 0.72; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected ons intensity 0.72, got %f", snap.OnsIntensity)
	}
	if diff := snap.OnsRatio - 0.8; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected ons ratio 0.8, got %f", snap.OnsRatio)
	}
}

// TestDailyActivitySeriesZeroFill verifies a 7-day series always has 7
// points, with explicit zeros for empty days.
func TestDailyActivitySeriesZeroFill(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, loc)

	// Activity on the first 4 days only
	var events []models.CheckInEvent
	for day := 0; day < 4; day++ {
		events = append(events, eventAt("v1", start.AddDate(0, 0, day).Add(22*time.Hour)))
	}

	series := DailyActivitySeries(events, start, 7)
	if len(series) != 7 {
		t.Fatalf("expected 7 points, got %d", len(series))
	}
	for day := 0; day < 4; day++ {
		if series[day].Visits != 1 {
			t.Fatalf("day %d: expected 1 visit, got %d", day, series[day].Visits)
		}
	}
	for day := 4; day < 7; day++ {
		if series[day].Visits != 0 {
			t.Fatalf("day %d: expected explicit zero, got %d", day, series[day].Visits)
		}
	}
	if series[6].Date != "2026-08-26" {
		t.Fatalf("expected last date 2026-08-26, got %s", series[6].Date)
	}
}

// TestDailyIntentSeriesZeroFill verifies the intent series pre-initializes
// every requested day.
func TestDailyIntentSeriesZeroFill(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, loc)

	e := eventAt("v1", start.Add(2*time.Hour))
	e.Intent = models.IntentParty

	series := DailyIntentSeries([]models.CheckInEvent{e}, start, 3)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	if series[0].Counts[models.IntentParty] != 1 {
		t.Fatalf("expected 1 party intent on day 0, got %d", series[0].Counts[models.IntentParty])
	}
	if len(series[1].Counts) != 0 || len(series[2].Counts) != 0 {
		t.Fatal("empty days must carry empty (not nil-panicking) count maps")
	}
}

// TestSnapshotsDeterministicOrder verifies venue ordering is stable across
// runs regardless of event order.
func TestSnapshotsDeterministicOrder(t *testing.T) {
	now := time.Now()
	forward := Snapshots([]models.CheckInEvent{eventAt("b", now), eventAt("a", now)})
	backward := Snapshots([]models.CheckInEvent{eventAt("a", now), eventAt("b", now)})

	if forward[0].VenueID != backward[0].VenueID {
		t.Fatalf("snapshot order is input-dependent: %s vs %s", forward[0].VenueID, backward[0].VenueID)
	}
}
