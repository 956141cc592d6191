package filter

import (
	"testing"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

func ptr[T any](v T) *T { return &v }

func sampleEvents(now time.Time) []models.CheckInEvent {
	return []models.CheckInEvent{
		{
			ID:                 "e1",
			CreatedAt:          now.Add(-10 * time.Minute),
			Intent:             models.IntentParty,
			RelationshipStatus: ptr(models.RelationshipSingle),
			AgeBand:            ptr(models.AgeBand18To25),
		},
		{
			ID:                 "e2",
			CreatedAt:          now.Add(-20 * time.Minute),
			Intent:             models.IntentChill,
			RelationshipStatus: ptr(models.RelationshipTaken),
			AgeBand:            ptr(models.AgeBand26To35),
		},
		{
			ID:        "e3",
			CreatedAt: now.Add(-30 * time.Minute),
			Intent:    models.IntentParty,
			// Age band unanswered: dropped when the age filter is active
		},
		{
			ID:                 "e4",
			CreatedAt:          now.Add(-3 * time.Hour),
			Intent:             models.IntentParty,
			RelationshipStatus: ptr(models.RelationshipSingle),
			AgeBand:            ptr(models.AgeBand18To25),
		},
	}
}

// TestTimeWindowCutoff keeps only events within the rolling window.
func TestTimeWindowCutoff(t *testing.T) {
	now := time.Now()
	result := Apply(sampleEvents(now), Selection{WindowMinutes: 90}, now)

	if len(result.Events) != 3 {
		t.Fatalf("expected 3 in-window events, got %d", len(result.Events))
	}
	for _, e := range result.Events {
		if e.ID == "e4" {
			t.Fatal("e4 is outside the window and should be dropped")
		}
	}
	if result.Stages[0].Stage != "time_window" || result.Stages[0].Discarded != 1 {
		t.Fatalf("unexpected stage diagnostics: %+v", result.Stages[0])
	}
}

// TestNullDropSemantics drops events with unanswered fields once the
// corresponding filter is active.
func TestNullDropSemantics(t *testing.T) {
	now := time.Now()
	result := Apply(sampleEvents(now), Selection{
		AgeBands: []models.AgeBand{models.AgeBand18To25, models.AgeBand26To35},
	}, now)

	for _, e := range result.Events {
		if e.AgeBand == nil {
			t.Fatal("events with an unanswered age band must be dropped")
		}
	}
	if len(result.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(result.Events))
	}
}

// TestSingleOnly keeps only events that answered single.
func TestSingleOnly(t *testing.T) {
	now := time.Now()
	result := Apply(sampleEvents(now), Selection{SingleOnly: true}, now)

	if len(result.Events) != 2 {
		t.Fatalf("expected 2 single events, got %d", len(result.Events))
	}
	for _, e := range result.Events {
		if e.RelationshipStatus == nil || *e.RelationshipStatus != models.RelationshipSingle {
			t.Fatalf("non-single event %s passed the filter", e.ID)
		}
	}
}

// TestStagesCommute ensures age-band and intent filters yield the same
// final set regardless of which selection carries them, since all stages
// are independent predicates.
func TestStagesCommute(t *testing.T) {
	now := time.Now()
	events := sampleEvents(now)

	sel := Selection{
		AgeBands: []models.AgeBand{models.AgeBand18To25},
		Intents:  []models.Intent{models.IntentParty},
	}

	first := Apply(events, sel, now)

	// Apply the same predicates as two sequential single-stage runs in the
	// opposite order
	intentsOnly := Apply(events, Selection{Intents: sel.Intents}, now)
	reversed := Apply(intentsOnly.Events, Selection{AgeBands: sel.AgeBands}, now)

	if len(first.Events) != len(reversed.Events) {
		t.Fatalf("filter order changed the result: %d vs %d", len(first.Events), len(reversed.Events))
	}
	for i := range first.Events {
		if first.Events[i].ID != reversed.Events[i].ID {
			t.Fatalf("filter order changed event %d: %s vs %s", i, first.Events[i].ID, reversed.Events[i].ID)
		}
	}
}

// TestPipelineIdempotent ensures re-running the pipeline on the same input
// and selection yields the same output set.
func TestPipelineIdempotent(t *testing.T) {
	now := time.Now()
	sel := Selection{WindowMinutes: 90, SingleOnly: true}

	first := Apply(sampleEvents(now), sel, now)
	second := Apply(sampleEvents(now), sel, now)

	if len(first.Events) != len(second.Events) {
		t.Fatalf("pipeline is not idempotent: %d vs %d", len(first.Events), len(second.Events))
	}
	for i := range first.Events {
		if first.Events[i].ID != second.Events[i].ID {
			t.Fatalf("pipeline is not idempotent at index %d", i)
		}
	}
}

// TestEmptySelectionPassesThrough ensures no active stages means no drops.
func TestEmptySelectionPassesThrough(t *testing.T) {
	now := time.Now()
	events := sampleEvents(now)

	result := Apply(events, Selection{}, now)
	if len(result.Events) != len(events) {
		t.Fatalf("expected passthrough, got %d of %d events", len(result.Events), len(events))
	}
	if len(result.Stages) != 0 {
		t.Fatalf("expected no stage diagnostics, got %d", len(result.Stages))
	}
}
