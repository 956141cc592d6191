package engine

import (
	"testing"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

var arrivalDest = models.GeoPosition{Latitude: 40.0, Longitude: -74.0}

// ~55 m and ~22 m north of the destination; the threshold is 35 m
func farPosition() models.GeoPosition  { return models.GeoPosition{Latitude: 40.0005, Longitude: -74.0} }
func nearPosition() models.GeoPosition { return models.GeoPosition{Latitude: 40.0002, Longitude: -74.0} }

// TestArrivalIdleUntilThreshold keeps the tracker idle while the user is
// still beyond the arrival threshold.
func TestArrivalIdleUntilThreshold(t *testing.T) {
	tracker := NewArrivalTracker(arrivalDest, 35)

	if s := tracker.Update(farPosition()); s != ArrivalIdle {
		t.Fatalf("expected idle beyond the threshold, got %s", s)
	}
	if s := tracker.Update(nearPosition()); s != ArrivalReady {
		t.Fatalf("expected ready within the threshold, got %s", s)
	}
}

// TestArrivalReadyLatches ensures ready persists even if the user drifts
// back out of range before acknowledging.
func TestArrivalReadyLatches(t *testing.T) {
	tracker := NewArrivalTracker(arrivalDest, 35)
	tracker.Update(nearPosition())

	if s := tracker.Update(farPosition()); s != ArrivalReady {
		t.Fatalf("ready must latch, got %s", s)
	}
}

// TestArrivalAcknowledgeTransition checks ready to shown, and that
// acknowledging in any other state is a no-op.
func TestArrivalAcknowledgeTransition(t *testing.T) {
	tracker := NewArrivalTracker(arrivalDest, 35)

	tracker.Acknowledge()
	if s := tracker.State(); s != ArrivalIdle {
		t.Fatalf("acknowledging while idle must be a no-op, got %s", s)
	}

	tracker.Update(nearPosition())
	tracker.Acknowledge()
	if s := tracker.State(); s != ArrivalShown {
		t.Fatalf("expected shown after acknowledge, got %s", s)
	}
}

// TestArrivalTerminalActions checks each explicit ending reaches done and
// that done is terminal for position updates.
func TestArrivalTerminalActions(t *testing.T) {
	endings := []struct {
		name string
		end  func(*ArrivalTracker)
	}{
		{"dismiss", (*ArrivalTracker).Dismiss},
		{"confirm", (*ArrivalTracker).Confirm},
		{"cancel", (*ArrivalTracker).Cancel},
	}

	for _, tc := range endings {
		tracker := NewArrivalTracker(arrivalDest, 35)
		tracker.Update(nearPosition())
		tracker.Acknowledge()
		tc.end(tracker)

		if s := tracker.State(); s != ArrivalDone {
			t.Fatalf("%s: expected done, got %s", tc.name, s)
		}
		if s := tracker.Update(nearPosition()); s != ArrivalDone {
			t.Fatalf("%s: done must be terminal, got %s", tc.name, s)
		}
	}
}

// TestArrivalOneShotPerSession ensures no second prompt signal after the
// session ends, until an explicit reset.
func TestArrivalOneShotPerSession(t *testing.T) {
	tracker := NewArrivalTracker(arrivalDest, 35)
	tracker.Update(nearPosition())
	tracker.Acknowledge()
	tracker.Confirm()

	if s := tracker.Update(nearPosition()); s != ArrivalDone {
		t.Fatalf("expected no re-arming after confirm, got %s", s)
	}

	newDest := models.GeoPosition{Latitude: 41.0, Longitude: -73.0}
	tracker.Reset(newDest)
	if s := tracker.State(); s != ArrivalIdle {
		t.Fatalf("expected idle after reset, got %s", s)
	}
	if s := tracker.Update(models.GeoPosition{Latitude: 41.0001, Longitude: -73.0}); s != ArrivalReady {
		t.Fatalf("expected a fresh session to arm again, got %s", s)
	}
}
