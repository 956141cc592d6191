package filter

import (
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

// Selection describes the viewer's active filters. Zero values disable the
// corresponding stage.
type Selection struct {
	WindowMinutes int
	SingleOnly    bool
	AgeBands      []models.AgeBand
	Intents       []models.Intent
}

// StageResult records how many events one stage discarded, for diagnostics
type StageResult struct {
	Stage     string `json:"stage"`
	Discarded int    `json:"discarded"`
}

// Result is the output of a pipeline run
type Result struct {
	Events []models.CheckInEvent `json:"events"`
	Stages []StageResult         `json:"stages"`
}

// Apply runs the fixed filter sequence over a check-in collection:
// time window, single-only, age bands, intents. All stages are independent
// predicates, so the final set is the same in any order; only the per-stage
// discard counts depend on ordering. Re-running on the same input and
// selection always yields the same output.
func Apply(events []models.CheckInEvent, sel Selection, now time.Time) Result {
	result := Result{Events: events}

	if sel.WindowMinutes > 0 {
		cutoff := now.Add(-time.Duration(sel.WindowMinutes) * time.Minute)
		result = result.stage("time_window", func(e models.CheckInEvent) bool {
			return !e.CreatedAt.Before(cutoff)
		})
	}

	if sel.SingleOnly {
		result = result.stage("single_only", func(e models.CheckInEvent) bool {
			return e.RelationshipStatus != nil && *e.RelationshipStatus == models.RelationshipSingle
		})
	}

	if len(sel.AgeBands) > 0 {
		bands := make(map[models.AgeBand]bool, len(sel.AgeBands))
		for _, b := range sel.AgeBands {
			bands[b] = true
		}
		// Events with an unanswered age band are dropped once this stage is active
		result = result.stage("age_bands", func(e models.CheckInEvent) bool {
			return e.AgeBand != nil && bands[*e.AgeBand]
		})
	}

	if len(sel.Intents) > 0 {
		intents := make(map[models.Intent]bool, len(sel.Intents))
		for _, i := range sel.Intents {
			intents[i] = true
		}
		result = result.stage("intents", func(e models.CheckInEvent) bool {
			return intents[e.Intent]
		})
	}

	return result
}

func (r Result) stage(name string, keep func(models.CheckInEvent) bool) Result {
	kept := make([]models.CheckInEvent, 0, len(r.Events))
	for _, e := range r.Events {
		if keep(e) {
			kept = append(kept, e)
		}
	}

	r.Stages = append(r.Stages, StageResult{
		Stage:     name,
		Discarded: len(r.Events) - len(kept),
	})
	r.Events = kept
	return r
}
