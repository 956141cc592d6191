package engine

import (
	"sync"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/spatial"
)

// ArrivalState is the navigation arrival state machine position
type ArrivalState string

const (
	ArrivalIdle  ArrivalState = "idle"  // En route, outside the threshold
	ArrivalReady ArrivalState = "ready" // Within threshold, prompt not yet shown
	ArrivalShown ArrivalState = "shown" // Caller has displayed the arrival prompt
	ArrivalDone  ArrivalState = "done"  // Terminal for this navigation session
)

// ArrivalTracker watches a position stream during navigation and emits a
// one-shot "offer to check in" signal when the user reaches the
// destination. Detection (idle to ready) is distance-driven; ready to shown
// is driven by the caller acknowledging the signal, which decouples
// detection from UI timing. Explicit user action ends the session.
type ArrivalTracker struct {
	mu          sync.Mutex
	state       ArrivalState
	destination models.GeoPosition
	threshold   float64
}

// NewArrivalTracker starts a navigation session toward a destination
func NewArrivalTracker(destination models.GeoPosition, thresholdMeters float64) *ArrivalTracker {
	return &ArrivalTracker{
		state:       ArrivalIdle,
		destination: destination,
		threshold:   thresholdMeters,
	}
}

// Update feeds a position sample. Returns the state after the sample; the
// caller should offer the check-in prompt when it observes ready.
func (t *ArrivalTracker) Update(position models.GeoPosition) ArrivalState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == ArrivalIdle {
		if spatial.DistanceMeters(position, t.destination) <= t.threshold {
			t.state = ArrivalReady
		}
	}
	return t.state
}

// Acknowledge marks the arrival prompt as displayed (ready to shown).
// A no-op in any other state.
func (t *ArrivalTracker) Acknowledge() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == ArrivalReady {
		t.state = ArrivalShown
	}
}

// Dismiss ends the session by explicit dismissal
func (t *ArrivalTracker) Dismiss() { t.finish() }

// Confirm ends the session by explicit confirmation
func (t *ArrivalTracker) Confirm() { t.finish() }

// Cancel ends the session because navigation was cancelled
func (t *ArrivalTracker) Cancel() { t.finish() }

func (t *ArrivalTracker) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ArrivalDone
}

// Destination returns the session's destination position
func (t *ArrivalTracker) Destination() models.GeoPosition {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.destination
}

// State returns the current state
func (t *ArrivalTracker) State() ArrivalState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Reset starts a new navigation session toward a new destination
func (t *ArrivalTracker) Reset(destination models.GeoPosition) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ArrivalIdle
	t.destination = destination
}
