package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
	"github.com/nightpulse/nightpulse-backend-go/pkg/response"
)

// VenueHandler handles HTTP requests for venues
type VenueHandler struct {
	venueRepo *repository.VenueRepository
	tunables  config.Tunables
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(venueRepo *repository.VenueRepository, tunables config.Tunables) *VenueHandler {
	return &VenueHandler{
		venueRepo: venueRepo,
		tunables:  tunables,
	}
}

// List handles GET /api/v1/venues
func (h *VenueHandler) List(c *gin.Context) {
	venues, err := h.venueRepo.GetAll()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, venues)
}

// Get handles GET /api/v1/venues/:id
func (h *VenueHandler) Get(c *gin.Context) {
	venue, err := h.venueRepo.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if venue == nil {
		response.NotFound(c, "Venue not found")
		return
	}
	response.Success(c, venue)
}

// Create handles POST /api/v1/venues
func (h *VenueHandler) Create(c *gin.Context) {
	var venue models.Venue
	if err := c.ShouldBindJSON(&venue); err != nil {
		response.BadRequest(c, "Invalid venue payload")
		return
	}
	if venue.Name == "" {
		response.BadRequest(c, "Venue name is required")
		return
	}
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	if venue.Category == "" {
		venue.Category = "OTHER"
	}

	if err := h.venueRepo.Create(&venue); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, venue)
}

// Resolve handles GET /api/v1/venues/resolve. It applies the single
// venue-resolution policy: an explicit venueId wins, otherwise the nearest
// venue strictly within the geofence radius of lat/lng.
func (h *VenueHandler) Resolve(c *gin.Context) {
	venues, err := h.venueRepo.GetAll()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	explicitID := c.Query("venueId")

	var position *models.GeoPosition
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			response.BadRequest(c, "Invalid lat/lng parameters")
			return
		}
		position = &models.GeoPosition{Latitude: lat, Longitude: lng}
	}

	venue, dist := service.ResolveVenue(explicitID, position, venues, h.tunables.GeofenceRadius)
	if venue == nil {
		response.NotFound(c, "No venue resolved")
		return
	}

	response.Success(c, gin.H{
		"venue":           venue,
		"distance_meters": dist,
	})
}
