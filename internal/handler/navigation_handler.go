package handler

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/engine"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/routing"
	"github.com/nightpulse/nightpulse-backend-go/internal/spatial"
	"github.com/nightpulse/nightpulse-backend-go/pkg/response"
)

// NavigationHandler manages walking-route requests and the per-session
// arrival tracker that offers a check-in on arrival
type NavigationHandler struct {
	venueRepo *repository.VenueRepository
	router    *routing.Client
	tunables  config.Tunables

	mu       sync.Mutex
	trackers map[string]*engine.ArrivalTracker
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(venueRepo *repository.VenueRepository, router *routing.Client, tunables config.Tunables) *NavigationHandler {
	return &NavigationHandler{
		venueRepo: venueRepo,
		router:    router,
		tunables:  tunables,
		trackers:  make(map[string]*engine.ArrivalTracker),
	}
}

// startRequest begins a navigation session toward a venue
type startRequest struct {
	UserID  string  `json:"user_id" binding:"required"`
	VenueID string  `json:"venue_id" binding:"required"`
	FromLat float64 `json:"from_lat"`
	FromLng float64 `json:"from_lng"`
}

// Start handles POST /api/v1/navigation/start. Returns the walking route
// and resets the arrival tracker for the session.
func (h *NavigationHandler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid navigation payload")
		return
	}

	venue, err := h.venueRepo.GetByID(req.VenueID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if venue == nil {
		response.NotFound(c, "Venue not found")
		return
	}
	dest, ok := venue.Position()
	if !ok {
		response.BadRequest(c, "Venue has no coordinates")
		return
	}

	h.mu.Lock()
	if tracker, exists := h.trackers[req.UserID]; exists {
		tracker.Reset(dest)
	} else {
		h.trackers[req.UserID] = engine.NewArrivalTracker(dest, h.tunables.ArrivalThreshold)
	}
	h.mu.Unlock()

	from := models.GeoPosition{Latitude: req.FromLat, Longitude: req.FromLng}
	route, err := h.router.GetWalkingRoute(c.Request.Context(), from, dest)
	if err != nil {
		// The session still starts; the UI degrades to a straight-line view
		response.Success(c, gin.H{"route": nil, "route_error": err.Error()})
		return
	}

	response.Success(c, gin.H{"route": route})
}

// UpdatePosition handles POST /api/v1/navigation/position. Feeds the
// arrival tracker and reports its state so the caller knows when to offer
// the check-in prompt.
func (h *NavigationHandler) UpdatePosition(c *gin.Context) {
	userID := c.Query("userId")
	tracker := h.trackerFor(userID)
	if tracker == nil {
		response.NotFound(c, "No active navigation session")
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		response.BadRequest(c, "Invalid lat/lng parameters")
		return
	}

	position := models.GeoPosition{Latitude: lat, Longitude: lng}
	state := tracker.Update(position)

	dest := tracker.Destination()
	response.Success(c, gin.H{
		"arrival_state":   state,
		"distance_meters": spatial.DistanceMeters(position, dest),
		"bearing_degrees": spatial.Bearing(position, dest),
	})
}

// Acknowledge handles POST /api/v1/navigation/ack (prompt displayed)
func (h *NavigationHandler) Acknowledge(c *gin.Context) {
	h.transition(c, func(t *engine.ArrivalTracker) { t.Acknowledge() })
}

// Dismiss handles POST /api/v1/navigation/dismiss
func (h *NavigationHandler) Dismiss(c *gin.Context) {
	h.transition(c, func(t *engine.ArrivalTracker) { t.Dismiss() })
}

// Confirm handles POST /api/v1/navigation/confirm
func (h *NavigationHandler) Confirm(c *gin.Context) {
	h.transition(c, func(t *engine.ArrivalTracker) { t.Confirm() })
}

// Cancel handles POST /api/v1/navigation/cancel
func (h *NavigationHandler) Cancel(c *gin.Context) {
	h.transition(c, func(t *engine.ArrivalTracker) { t.Cancel() })
}

func (h *NavigationHandler) transition(c *gin.Context, apply func(*engine.ArrivalTracker)) {
	tracker := h.trackerFor(c.Query("userId"))
	if tracker == nil {
		response.NotFound(c, "No active navigation session")
		return
	}

	apply(tracker)
	response.Success(c, gin.H{"arrival_state": tracker.State()})
}

func (h *NavigationHandler) trackerFor(userID string) *engine.ArrivalTracker {
	if userID == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.trackers[userID]
}
