package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/filter"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/spatial"
)

// ErrCooldownActive is returned when a manual check-in arrives before the
// per-venue manual cooldown has elapsed
var ErrCooldownActive = fmt.Errorf("check-in cooldown active for this venue")

// CheckinService handles check-in submission and retrieval
type CheckinService struct {
	checkinRepo *repository.CheckinRepository
	venueRepo   *repository.VenueRepository
	tunables    config.Tunables
}

// NewCheckinService creates a new check-in service
func NewCheckinService(checkinRepo *repository.CheckinRepository, venueRepo *repository.VenueRepository, tunables config.Tunables) *CheckinService {
	return &CheckinService{
		checkinRepo: checkinRepo,
		venueRepo:   venueRepo,
		tunables:    tunables,
	}
}

// Submit validates and stores a manual check-in, enforcing the per-venue
// manual cooldown
func (s *CheckinService) Submit(req *models.CheckInRequest) (*models.CheckInEvent, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	last, exists, err := s.checkinRepo.LastByUserAndVenue(req.UserID, req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to check cooldown: %w", err)
	}
	if exists && time.Since(last) < s.tunables.ManualCooldown {
		return nil, ErrCooldownActive
	}

	return s.store(req)
}

// SubmitAutonomous stores a check-in on behalf of the smart check-in
// engine. The engine enforces its own per-venue cooldown, so the manual
// cooldown does not apply here.
func (s *CheckinService) SubmitAutonomous(req *models.CheckInRequest) (*models.CheckInEvent, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return s.store(req)
}

// List retrieves check-ins matching the filter, running the client filter
// pipeline over the fetched window
func (s *CheckinService) List(f models.CheckinFilter) (*filter.Result, error) {
	now := time.Now()
	from := time.Unix(f.StartTime, 0)
	to := now
	if f.EndTime > 0 {
		to = time.Unix(f.EndTime, 0)
	}
	if f.WindowMinutes > 0 {
		from = now.Add(-time.Duration(f.WindowMinutes) * time.Minute)
		to = now
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("start time must be before end time")
	}

	events, err := s.checkinRepo.FetchInRange(f.VenueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}

	result := filter.Apply(events, buildSelection(f), now)
	return &result, nil
}

// buildSelection maps the HTTP filter onto pipeline stages, dropping
// unknown enum values. The rolling window travels into the pipeline: the
// fetch only bounds the query, the time_window stage is the authoritative
// cut and reports its discard diagnostic.
func buildSelection(f models.CheckinFilter) filter.Selection {
	sel := filter.Selection{
		WindowMinutes: f.WindowMinutes,
		SingleOnly:    f.SingleOnly,
	}
	for _, b := range f.AgeBands {
		band := models.AgeBand(b)
		if band.Valid() {
			sel.AgeBands = append(sel.AgeBands, band)
		}
	}
	for _, i := range f.Intents {
		intent := models.Intent(i)
		if intent.Valid() {
			sel.Intents = append(sel.Intents, intent)
		}
	}
	return sel
}

func (s *CheckinService) validate(req *models.CheckInRequest) error {
	if req.VenueID == "" {
		return fmt.Errorf("venue id is required")
	}
	if req.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !req.Mood.Valid() {
		return fmt.Errorf("invalid mood score: %d", req.Mood)
	}
	if !req.Intent.Valid() {
		return fmt.Errorf("invalid intent: %s", req.Intent)
	}
	if req.RelationshipStatus != nil && !req.RelationshipStatus.Valid() {
		return fmt.Errorf("invalid relationship status: %s", *req.RelationshipStatus)
	}
	if req.OnsIntent != nil && !req.OnsIntent.Valid() {
		return fmt.Errorf("invalid ons intent: %s", *req.OnsIntent)
	}
	if req.Gender != nil && !req.Gender.Valid() {
		return fmt.Errorf("invalid gender: %s", *req.Gender)
	}
	if req.AgeBand != nil && !req.AgeBand.Valid() {
		return fmt.Errorf("invalid age band: %s", *req.AgeBand)
	}

	venue, err := s.venueRepo.GetByID(req.VenueID)
	if err != nil {
		return fmt.Errorf("failed to look up venue: %w", err)
	}
	if venue == nil {
		return fmt.Errorf("unknown venue: %s", req.VenueID)
	}

	return nil
}

func (s *CheckinService) store(req *models.CheckInRequest) (*models.CheckInEvent, error) {
	event := &models.CheckInEvent{
		ID:                 uuid.New().String(),
		VenueID:            req.VenueID,
		UserID:             req.UserID,
		CreatedAt:          time.Now(),
		Mood:               req.Mood,
		Intent:             req.Intent,
		RelationshipStatus: req.RelationshipStatus,
		OnsIntent:          req.OnsIntent,
		Gender:             req.Gender,
		AgeBand:            req.AgeBand,
	}

	if err := s.checkinRepo.Insert(event); err != nil {
		return nil, fmt.Errorf("failed to store check-in: %w", err)
	}

	return event, nil
}

// ResolveVenue is the single venue-resolution policy for the check-in form
// and the smart engine. Precedence: an explicitly chosen venue id wins;
// otherwise the nearest venue strictly within radius of the position;
// otherwise none. Venues without coordinates are never resolved by
// proximity. Distance ties go to the first venue in input order.
func ResolveVenue(explicitID string, position *models.GeoPosition, venues []models.Venue, radius float64) (*models.Venue, float64) {
	if explicitID != "" {
		for i := range venues {
			if venues[i].ID == explicitID {
				return &venues[i], 0
			}
		}
		return nil, 0
	}

	if position == nil {
		return nil, 0
	}

	var nearest *models.Venue
	var nearestDist float64
	for i := range venues {
		pos, ok := venues[i].Position()
		if !ok {
			continue
		}

		dist := spatial.DistanceMeters(*position, pos)
		if dist >= radius {
			continue
		}
		if nearest == nil || dist < nearestDist {
			nearest = &venues[i]
			nearestDist = dist
		}
	}

	return nearest, nearestDist
}
