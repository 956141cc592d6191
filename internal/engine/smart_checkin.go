package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/geolocation"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
)

// DefaultAutoMood is the fixed mood attached to autonomous check-ins
const DefaultAutoMood = models.MoodGood

// Submitter stores a check-in on the engine's behalf
type Submitter interface {
	SubmitAutonomous(req *models.CheckInRequest) (*models.CheckInEvent, error)
}

// VenueSource yields the venue list used for geofencing
type VenueSource interface {
	GetAll() ([]models.Venue, error)
}

// AnchorStore persists the per-user cooldown anchor across restarts
type AnchorStore interface {
	CooldownAnchor(userID string) (string, time.Time, bool, error)
	SaveCooldownAnchor(userID, venueID string, at time.Time) error
}

// SmartCheckin polls the device position, finds the nearest venue within
// the geofence radius, and autonomously submits a check-in once per venue
// per cooldown period. One engine instance serves one user session; the
// user's stored profile defaults are injected at construction.
type SmartCheckin struct {
	profile   models.CheckinProfile
	venues    VenueSource
	source    geolocation.Source
	submitter Submitter
	anchors   AnchorStore
	tunables  config.Tunables

	// now is the clock; replaced in tests
	now func() time.Time

	mu      sync.Mutex
	state   models.SmartCheckinState
	cancel  context.CancelFunc
	session uint64

	// inFlight prevents a second submission from being triggered by a
	// subsequent position sample while one is still outstanding
	inFlight atomic.Bool
}

// NewSmartCheckin creates an engine for one user session
func NewSmartCheckin(profile models.CheckinProfile, venues VenueSource, source geolocation.Source, submitter Submitter, anchors AnchorStore, tunables config.Tunables) *SmartCheckin {
	return &SmartCheckin{
		profile:   profile,
		venues:    venues,
		source:    source,
		submitter: submitter,
		anchors:   anchors,
		tunables:  tunables,
		now:       time.Now,
		state:     models.SmartCheckinState{Permission: models.PermissionPrompt},
	}
}

// Enable loads the persisted cooldown anchor and starts the polling loop.
// Enabling an already-active engine is a no-op.
func (e *SmartCheckin) Enable() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Active {
		return nil
	}

	venueID, at, exists, err := e.anchors.CooldownAnchor(e.profile.UserID)
	if err != nil {
		return fmt.Errorf("failed to load cooldown anchor: %w", err)
	}
	if exists {
		e.state.LastCheckinVenueID = venueID
		e.state.LastCheckinAt = at
	}

	e.state.Active = true
	e.state.GeoError = ""
	e.session++
	session := e.session

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	go e.poll(ctx, session)

	log.Printf("[SmartCheckin] Enabled for user %s", e.profile.UserID)
	return nil
}

// Disable stops the polling loop. In-flight submission results are
// discarded via the session check.
func (e *SmartCheckin) Disable() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked("")
}

// State returns a copy of the current engine state
func (e *SmartCheckin) State() models.SmartCheckinState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetProfile replaces the stored check-in defaults. The user id never
// changes; an engine serves one user. Takes effect from the next autonomous
// submission.
func (e *SmartCheckin) SetProfile(profile models.CheckinProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	profile.UserID = e.profile.UserID
	e.profile = profile
}

func (e *SmartCheckin) stopLocked(geoError string) {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.state.Active = false
	e.state.NearbyVenueID = ""
	e.state.NearbyDistance = 0
	if geoError != "" {
		e.state.GeoError = geoError
	}
	// Bump the session so late results from in-flight work are discarded
	e.session++
}

func (e *SmartCheckin) poll(ctx context.Context, session uint64) {
	ticker := time.NewTicker(e.tunables.GeoPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Evaluate(session)
		}
	}
}

// Evaluate processes the latest position sample: updates the nearby venue,
// and submits a check-in when the cooldown allows. Exposed so tests can
// drive ticks directly.
func (e *SmartCheckin) Evaluate(session uint64) {
	e.mu.Lock()
	if !e.state.Active || session != e.session {
		e.mu.Unlock()
		return
	}
	userID := e.profile.UserID
	e.mu.Unlock()

	sample, ok := e.source.Latest(userID)
	if !ok {
		return
	}

	if sample.Permission.Terminal() {
		e.mu.Lock()
		if session == e.session {
			e.stopLocked(fmt.Sprintf("geolocation %s", sample.Permission))
			e.state.Permission = sample.Permission
			log.Printf("[SmartCheckin] Polling stopped for user %s: %s", userID, sample.Permission)
		}
		e.mu.Unlock()
		return
	}
	if sample.Position == nil {
		// Transient: no fix yet, retry on the next poll
		return
	}

	venues, err := e.venues.GetAll()
	if err != nil {
		log.Printf("[SmartCheckin] Failed to fetch venues: %v", err)
		return
	}

	nearby, dist := service.ResolveVenue("", sample.Position, venues, e.tunables.GeofenceRadius)

	e.mu.Lock()
	if session != e.session {
		e.mu.Unlock()
		return
	}
	e.state.Permission = sample.Permission
	e.state.GeoError = ""
	if nearby == nil {
		e.state.NearbyVenueID = ""
		e.state.NearbyDistance = 0
		e.mu.Unlock()
		return
	}
	e.state.NearbyVenueID = nearby.ID
	e.state.NearbyDistance = dist

	eligible := e.cooldownElapsedLocked(nearby.ID)
	e.mu.Unlock()

	if !eligible {
		return
	}
	if !e.inFlight.CompareAndSwap(false, true) {
		return
	}

	go e.submit(session, nearby.ID)
}

// cooldownElapsedLocked reports whether a check-in at the venue is allowed.
// The cooldown is per-venue: a different venue bypasses it entirely.
func (e *SmartCheckin) cooldownElapsedLocked(venueID string) bool {
	if e.state.LastCheckinVenueID == "" {
		return true
	}
	if e.state.LastCheckinVenueID != venueID {
		return true
	}
	return e.now().Sub(e.state.LastCheckinAt) >= e.tunables.SmartCooldown
}

func (e *SmartCheckin) submit(session uint64, venueID string) {
	defer e.inFlight.Store(false)

	e.mu.Lock()
	profile := e.profile
	e.mu.Unlock()

	req := &models.CheckInRequest{
		VenueID:            venueID,
		UserID:             profile.UserID,
		Mood:               DefaultAutoMood,
		Intent:             profile.Intent,
		RelationshipStatus: profile.RelationshipStatus,
		OnsIntent:          profile.OnsIntent,
		Gender:             profile.Gender,
		AgeBand:            profile.AgeBand,
	}

	event, err := e.submitter.SubmitAutonomous(req)
	if err != nil {
		// A failed submission must not advance the cooldown anchor; the
		// next eligible sample may retry
		log.Printf("[SmartCheckin] Submission failed at venue %s: %v", venueID, err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if session != e.session {
		// Engine was disabled while the submission was in flight; the
		// stored event stands but the session state is gone
		return
	}

	e.state.LastCheckinVenueID = venueID
	e.state.LastCheckinAt = event.CreatedAt

	if err := e.anchors.SaveCooldownAnchor(e.profile.UserID, venueID, event.CreatedAt); err != nil {
		log.Printf("[SmartCheckin] Failed to persist cooldown anchor: %v", err)
	}

	log.Printf("[SmartCheckin] Checked in user %s at venue %s", e.profile.UserID, venueID)
}

// CurrentSession returns the live session generation, for tests that drive
// Evaluate directly
func (e *SmartCheckin) CurrentSession() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// SetClock replaces the engine clock; tests only
func (e *SmartCheckin) SetClock(now func() time.Time) {
	e.now = now
}
