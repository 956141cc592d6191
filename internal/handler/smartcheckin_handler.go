package handler

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/engine"
	"github.com/nightpulse/nightpulse-backend-go/internal/geolocation"
	"github.com/nightpulse/nightpulse-backend-go/internal/middleware"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
	"github.com/nightpulse/nightpulse-backend-go/pkg/response"
)

// SmartCheckinHandler manages one geofenced check-in engine per user
// session and the device position feed that drives it
type SmartCheckinHandler struct {
	venueRepo      *repository.VenueRepository
	stateRepo      *repository.StateRepository
	checkinService *service.CheckinService
	feed           *geolocation.DeviceFeed
	tunables       config.Tunables

	mu      sync.Mutex
	engines map[string]*engine.SmartCheckin
}

// NewSmartCheckinHandler creates a new smart check-in handler
func NewSmartCheckinHandler(venueRepo *repository.VenueRepository, stateRepo *repository.StateRepository, checkinService *service.CheckinService, feed *geolocation.DeviceFeed, tunables config.Tunables) *SmartCheckinHandler {
	return &SmartCheckinHandler{
		venueRepo:      venueRepo,
		stateRepo:      stateRepo,
		checkinService: checkinService,
		feed:           feed,
		tunables:       tunables,
		engines:        make(map[string]*engine.SmartCheckin),
	}
}

// Enable handles POST /api/v1/smart-checkin/enable. The body carries the
// user's stored check-in defaults; the engine never reads ambient profile
// state.
func (h *SmartCheckinHandler) Enable(c *gin.Context) {
	var profile models.CheckinProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.BadRequest(c, "Invalid profile payload")
		return
	}

	if userID := middleware.UserID(c); userID != "" {
		profile.UserID = userID
	}
	if profile.UserID == "" {
		response.BadRequest(c, "A user id is required")
		return
	}
	if !profile.Intent.Valid() {
		profile.Intent = models.IntentSocial
	}

	eng := h.engineFor(profile)
	if err := eng.Enable(); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, eng.State())
}

// Disable handles POST /api/v1/smart-checkin/disable
func (h *SmartCheckinHandler) Disable(c *gin.Context) {
	userID := h.requestUserID(c)
	if userID == "" {
		response.BadRequest(c, "A user id is required")
		return
	}

	h.mu.Lock()
	eng, ok := h.engines[userID]
	h.mu.Unlock()

	if ok {
		eng.Disable()
		h.feed.Drop(userID)
	}

	response.Success(c, gin.H{"active": false})
}

// GetState handles GET /api/v1/smart-checkin/state. The state is exposed
// continuously so the UI can explain why auto check-in is inactive.
func (h *SmartCheckinHandler) GetState(c *gin.Context) {
	userID := h.requestUserID(c)
	if userID == "" {
		response.BadRequest(c, "A user id is required")
		return
	}

	h.mu.Lock()
	eng, ok := h.engines[userID]
	h.mu.Unlock()

	if !ok {
		response.Success(c, models.SmartCheckinState{Permission: models.PermissionPrompt})
		return
	}

	response.Success(c, eng.State())
}

// positionReport is the device's position payload
type positionReport struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
	Timestamp int64   `json:"timestamp"`
}

// ReportPosition handles POST /api/v1/location. Devices push samples on
// their own poll interval; the engine reads the latest on each tick.
func (h *SmartCheckinHandler) ReportPosition(c *gin.Context) {
	userID := h.requestUserID(c)
	if userID == "" {
		response.BadRequest(c, "A user id is required")
		return
	}

	var report positionReport
	if err := c.ShouldBindJSON(&report); err != nil {
		response.BadRequest(c, "Invalid position payload")
		return
	}

	at := time.Time{}
	if report.Timestamp > 0 {
		at = time.Unix(report.Timestamp, 0)
	}

	h.feed.Report(userID, models.GeoPosition{
		Latitude:  report.Latitude,
		Longitude: report.Longitude,
	}, at)

	response.Success(c, gin.H{"recorded": true})
}

// permissionReport is the device's permission state payload
type permissionReport struct {
	State models.PermissionState `json:"state" binding:"required"`
}

// ReportPermission handles POST /api/v1/location/permission
func (h *SmartCheckinHandler) ReportPermission(c *gin.Context) {
	userID := h.requestUserID(c)
	if userID == "" {
		response.BadRequest(c, "A user id is required")
		return
	}

	var report permissionReport
	if err := c.ShouldBindJSON(&report); err != nil {
		response.BadRequest(c, "Invalid permission payload")
		return
	}

	h.feed.ReportPermission(userID, report.State)
	response.Success(c, gin.H{"recorded": true})
}

func (h *SmartCheckinHandler) engineFor(profile models.CheckinProfile) *engine.SmartCheckin {
	h.mu.Lock()
	defer h.mu.Unlock()

	if eng, ok := h.engines[profile.UserID]; ok {
		// Re-enabling carries the freshly posted defaults; the engine must
		// not keep submitting with a stale profile
		eng.SetProfile(profile)
		return eng
	}

	eng := engine.NewSmartCheckin(profile, h.venueRepo, h.feed, h.checkinService, h.stateRepo, h.tunables)
	h.engines[profile.UserID] = eng
	return eng
}

func (h *SmartCheckinHandler) requestUserID(c *gin.Context) string {
	if userID := middleware.UserID(c); userID != "" {
		return userID
	}
	return c.Query("userId")
}
