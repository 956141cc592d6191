package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nightpulse/nightpulse-backend-go/internal/middleware"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
	"github.com/nightpulse/nightpulse-backend-go/pkg/response"
)

// CheckinHandler handles HTTP requests for check-ins
type CheckinHandler struct {
	checkinService *service.CheckinService
}

// NewCheckinHandler creates a new check-in handler
func NewCheckinHandler(checkinService *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{
		checkinService: checkinService,
	}
}

// Submit handles POST /api/v1/checkins
func (h *CheckinHandler) Submit(c *gin.Context) {
	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid check-in payload: "+err.Error())
		return
	}

	// A token-attributed user always wins over the body field
	if userID := middleware.UserID(c); userID != "" {
		req.UserID = userID
	}

	event, err := h.checkinService.Submit(&req)
	if err != nil {
		if errors.Is(err, service.ErrCooldownActive) {
			response.TooManyRequests(c, err.Error())
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, event)
}

// List handles GET /api/v1/checkins
func (h *CheckinHandler) List(c *gin.Context) {
	var filter models.CheckinFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.checkinService.List(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
