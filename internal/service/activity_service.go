package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/stats"
)

// ActivityService aggregates raw check-in events into per-venue activity
// snapshots and per-day series
type ActivityService struct {
	checkinRepo *repository.CheckinRepository
	tunables    config.Tunables
}

// NewActivityService creates a new activity service
func NewActivityService(checkinRepo *repository.CheckinRepository, tunables config.Tunables) *ActivityService {
	return &ActivityService{
		checkinRepo: checkinRepo,
		tunables:    tunables,
	}
}

// SnapshotsInWindow aggregates all venues over the rolling live window
// ending now
func (s *ActivityService) SnapshotsInWindow(window time.Duration) ([]models.VenueActivitySnapshot, error) {
	if window <= 0 {
		window = s.tunables.LiveWindow
	}

	now := time.Now()
	events, err := s.checkinRepo.FetchInRange("", now.Add(-window), now)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}

	return Snapshots(events), nil
}

// SnapshotsInRange aggregates all venues over an explicit [from, to) range
// for historical analysis
func (s *ActivityService) SnapshotsInRange(from, to time.Time) ([]models.VenueActivitySnapshot, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("start time must be before end time")
	}

	events, err := s.checkinRepo.FetchInRange("", from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}

	return Snapshots(events), nil
}

// DailyActivity returns a venue's daily visit series for the trailing
// number of days, ending today
func (s *ActivityService) DailyActivity(venueID string, days int) ([]models.DailyActivityPoint, error) {
	if days <= 0 {
		days = 7
	}

	start, end := trailingDays(time.Now(), days)
	events, err := s.checkinRepo.FetchInRange(venueID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}

	return DailyActivitySeries(events, start, days), nil
}

// DailyIntents returns a venue's daily intent-mix series for the trailing
// number of days, ending today
func (s *ActivityService) DailyIntents(venueID string, days int) ([]models.DailyIntentPoint, error) {
	if days <= 0 {
		days = 7
	}

	start, end := trailingDays(time.Now(), days)
	events, err := s.checkinRepo.FetchInRange(venueID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-ins: %w", err)
	}

	return DailyIntentSeries(events, start, days), nil
}

// trailingDays returns the [start, end) range covering the last `days`
// calendar days including today, in the local timezone
func trailingDays(now time.Time, days int) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)
	return start, end
}

// Snapshots reduces a set of check-in events to one activity snapshot per
// venue with at least one event. Venues with zero events are omitted;
// callers treat absence as zero activity. The reduction is order-insensitive
// and the output is sorted by venue id for determinism.
func Snapshots(events []models.CheckInEvent) []models.VenueActivitySnapshot {
	type venueAcc struct {
		count int

		singleCount       int
		relationshipTotal int
		onsOpenCount      int
		onsMaybeCount     int
		onsAnsweredTotal  int
		partyCount        int
		chillCount        int
		youngCount        int
		ageAnsweredTotal  int
	}

	acc := make(map[string]*venueAcc)
	var order []string

	for _, e := range events {
		a, ok := acc[e.VenueID]
		if !ok {
			a = &venueAcc{}
			acc[e.VenueID] = a
			order = append(order, e.VenueID)
		}

		a.count++

		// Ratios count only answered responses: non-answers are excluded
		// from both numerator and denominator
		if e.RelationshipStatus != nil {
			a.relationshipTotal++
			if *e.RelationshipStatus == models.RelationshipSingle {
				a.singleCount++
			}
		}
		if e.OnsIntent != nil {
			a.onsAnsweredTotal++
			switch *e.OnsIntent {
			case models.OnsOpen:
				a.onsOpenCount++
			case models.OnsMaybe:
				a.onsMaybeCount++
			}
		}
		if e.AgeBand != nil {
			a.ageAnsweredTotal++
			if *e.AgeBand == models.AgeBand18To25 {
				a.youngCount++
			}
		}

		switch e.Intent {
		case models.IntentParty:
			a.partyCount++
		case models.IntentChill:
			a.chillCount++
		}
	}

	sort.Strings(order)

	snapshots := make([]models.VenueActivitySnapshot, 0, len(order))
	for _, venueID := range order {
		a := acc[venueID]

		var onsIntensity float64
		if a.onsAnsweredTotal > 0 {
			onsIntensity = (1.0*float64(a.onsOpenCount) + 0.6*float64(a.onsMaybeCount)) / float64(a.onsAnsweredTotal)
		}

		snapshots = append(snapshots, models.VenueActivitySnapshot{
			VenueID:      venueID,
			Count:        a.count,
			SingleRatio:  stats.Ratio(a.singleCount, a.relationshipTotal),
			OnsRatio:     stats.Ratio(a.onsOpenCount+a.onsMaybeCount, a.onsAnsweredTotal),
			PartyRatio:   stats.Ratio(a.partyCount, a.count),
			ChillRatio:   stats.Ratio(a.chillCount, a.count),
			YoungRatio:   stats.Ratio(a.youngCount, a.ageAnsweredTotal),
			OnsIntensity: stats.Clamp01(onsIntensity),
		})
	}

	return snapshots
}

// DailyActivitySeries buckets events into calendar days. Every day in the
// requested period is pre-initialized to zero, so days with no activity are
// explicit zero points rather than gaps. The day boundary follows start's
// timezone consistently across the series.
func DailyActivitySeries(events []models.CheckInEvent, start time.Time, days int) []models.DailyActivityPoint {
	if days <= 0 {
		return nil
	}

	series := make([]models.DailyActivityPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		series[i] = models.DailyActivityPoint{Date: date}
		index[date] = i
	}

	for _, e := range events {
		date := e.CreatedAt.In(start.Location()).Format("2006-01-02")
		if i, ok := index[date]; ok {
			series[i].Visits++
		}
	}

	return series
}

// DailyIntentSeries buckets events into calendar days and counts intents
// per day, with the same zero-fill behavior as DailyActivitySeries
func DailyIntentSeries(events []models.CheckInEvent, start time.Time, days int) []models.DailyIntentPoint {
	if days <= 0 {
		return nil
	}

	series := make([]models.DailyIntentPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		series[i] = models.DailyIntentPoint{Date: date, Counts: make(map[models.Intent]int)}
		index[date] = i
	}

	for _, e := range events {
		date := e.CreatedAt.In(start.Location()).Format("2006-01-02")
		if i, ok := index[date]; ok {
			series[i].Counts[e.Intent]++
		}
	}

	return series
}
