package geolocation

import (
	"sync"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
)

// Sample is one position report from a device, or a permission/error signal
// when no position is available
type Sample struct {
	Position   *models.GeoPosition
	Permission models.PermissionState
	At         time.Time
}

// Source yields the most recent position sample per user. The smart
// check-in engine polls it on its own interval.
type Source interface {
	Latest(userID string) (Sample, bool)
}

// DeviceFeed is a Source fed by the devices themselves: clients POST their
// current position and permission state to the API, and the engine reads
// the latest sample on each poll tick.
type DeviceFeed struct {
	mu      sync.RWMutex
	samples map[string]Sample
}

// NewDeviceFeed creates an empty device feed
func NewDeviceFeed() *DeviceFeed {
	return &DeviceFeed{samples: make(map[string]Sample)}
}

// Report records a position sample for a user
func (f *DeviceFeed) Report(userID string, position models.GeoPosition, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples[userID] = Sample{
		Position:   &position,
		Permission: models.PermissionGranted,
		At:         at,
	}
}

// ReportPermission records a permission state change without a position.
// Denied and unavailable are terminal for the session; the engine stops
// polling until the user re-enables.
func (f *DeviceFeed) ReportPermission(userID string, state models.PermissionState) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sample := f.samples[userID]
	sample.Permission = state
	if state != models.PermissionGranted {
		sample.Position = nil
	}
	sample.At = time.Now()
	f.samples[userID] = sample
}

// Latest returns the most recent sample for a user
func (f *DeviceFeed) Latest(userID string) (Sample, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	sample, ok := f.samples[userID]
	return sample, ok
}

// Drop removes a user's samples, releasing the watch for the session
func (f *DeviceFeed) Drop(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.samples, userID)
}
