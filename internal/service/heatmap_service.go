package service

import (
	"fmt"
	"math"
	"time"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/stats"
)

// HeatmapService converts activity snapshots into scored heatmap venues
type HeatmapService struct {
	activity  *ActivityService
	venueRepo *repository.VenueRepository
	tunables  config.Tunables
}

// NewHeatmapService creates a new heatmap service
func NewHeatmapService(activity *ActivityService, venueRepo *repository.VenueRepository, tunables config.Tunables) *HeatmapService {
	return &HeatmapService{
		activity:  activity,
		venueRepo: venueRepo,
		tunables:  tunables,
	}
}

// BuildHeatmap aggregates the live window and scores every active venue for
// the selected display mode
func (s *HeatmapService) BuildHeatmap(mode models.DisplayMode, window time.Duration) (*models.HeatmapResponse, error) {
	if !mode.Valid() {
		mode = models.DisplayActivity
	}
	if window <= 0 {
		window = s.tunables.LiveWindow
	}

	snapshots, err := s.activity.SnapshotsInWindow(window)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate activity: %w", err)
	}

	venues, err := s.venueRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch venues: %w", err)
	}

	scored := Score(snapshots, venues, mode, s.tunables)

	return &models.HeatmapResponse{
		Venues:      scored,
		Count:       len(scored),
		DisplayMode: mode,
		WindowMin:   int(window / time.Minute),
		GeneratedAt: time.Now().Format(time.RFC3339),
	}, nil
}

// Score turns activity snapshots into heatmap venues for one display mode.
// Venues without coordinates or without in-window events are never emitted.
// All weights are clamped to [0,1].
func Score(snapshots []models.VenueActivitySnapshot, venues []models.Venue, mode models.DisplayMode, t config.Tunables) []models.HeatmapVenue {
	venuesByID := make(map[string]models.Venue, len(venues))
	for _, v := range venues {
		venuesByID[v.ID] = v
	}

	// ons_boost normalizes against the max boost score in scope
	var boostScores []float64
	if mode == models.DisplayOnsBoost {
		boostScores = make([]float64, len(snapshots))
		for i, snap := range snapshots {
			boostScores[i] = BoostScore(snap)
		}
		boostScores = stats.Normalize(boostScores)
	}

	result := make([]models.HeatmapVenue, 0, len(snapshots))
	for i, snap := range snapshots {
		venue, ok := venuesByID[snap.VenueID]
		if !ok {
			continue
		}
		pos, ok := venue.Position()
		if !ok {
			continue
		}

		intensity := BaseIntensity(snap.Count, t.ActivitySaturation)

		var weight float64
		switch mode {
		case models.DisplaySingle:
			weight = math.Min(1, math.Sqrt(float64(snap.Count)/10)*snap.SingleRatio)
		case models.DisplayOns:
			weight = math.Min(1, math.Sqrt(float64(snap.Count)/10)*snap.OnsRatio)
		case models.DisplayOnsBoost:
			weight = math.Pow(boostScores[i], 0.7)
			if weight < t.BoostMinWeight {
				continue
			}
		case models.DisplayParty:
			weight = ratioWeight(snap.PartyRatio, intensity, t.WeightFloor)
		case models.DisplayChill:
			weight = ratioWeight(snap.ChillRatio, intensity, t.WeightFloor)
		default:
			weight = intensity
		}

		if weight <= 0 && mode != models.DisplayActivity {
			continue
		}

		result = append(result, models.HeatmapVenue{
			VenueID:   snap.VenueID,
			Name:      venue.Name,
			Category:  venue.Category,
			Latitude:  pos.Latitude,
			Longitude: pos.Longitude,
			Count:     snap.Count,
			Intensity: intensity,
			Weight:    stats.Clamp01(weight),
			Mode:      DeriveMode(snap, t),
		})
	}

	return result
}

// DeriveMode labels a venue's dominant character. The priority order is
// fixed and independent of the viewer's display mode: ons, singles, party,
// chill, neutral. First match wins.
func DeriveMode(snap models.VenueActivitySnapshot, t config.Tunables) models.VenueMode {
	switch {
	case snap.OnsRatio >= t.OnsThreshold:
		return models.ModeOns
	case snap.SingleRatio >= t.SinglesThreshold:
		return models.ModeSingles
	case snap.PartyRatio >= t.PartyChillThreshold && snap.PartyRatio >= snap.ChillRatio:
		return models.ModeParty
	case snap.ChillRatio >= t.PartyChillThreshold && snap.ChillRatio > snap.PartyRatio:
		return models.ModeChill
	default:
		return models.ModeNeutral
	}
}

// BaseIntensity maps an in-window check-in count onto [0,1]: zero events is
// 0, the saturation point and anything beyond is 1, linear in between
func BaseIntensity(count, saturation int) float64 {
	if saturation <= 0 {
		saturation = 20
	}
	return stats.Clamp01(float64(count) / float64(saturation))
}

// BoostScore is the raw ons_boost composite: openness intensity amplified
// by a mild single-ratio factor, plus a log-damped activity tiebreaker so a
// single very active venue cannot dominate purely on volume
func BoostScore(snap models.VenueActivitySnapshot) float64 {
	singleFactor := 1.0 + 0.5*snap.SingleRatio
	return snap.OnsIntensity*singleFactor*10 + math.Log2(float64(snap.Count)+1)*0.5
}

// ratioWeight doubles the party/chill ratio into a display weight once it
// clears the floor; below the floor the venue falls back to base intensity
func ratioWeight(ratio, intensity, floor float64) float64 {
	if ratio >= floor {
		return math.Min(1, ratio*2)
	}
	return intensity
}
