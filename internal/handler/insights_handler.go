package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
	"github.com/nightpulse/nightpulse-backend-go/pkg/response"
)

// InsightsHandler handles HTTP requests for venue insights
type InsightsHandler struct {
	insightsService *service.InsightsService
	activityService *service.ActivityService
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService *service.InsightsService, activityService *service.ActivityService) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
		activityService: activityService,
	}
}

// GetComparison handles GET /api/v1/insights/comparison
func (h *InsightsHandler) GetComparison(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	from, to := filterRange(filter)
	metrics, err := h.insightsService.CompareVenue(filter.VenueID, from, to)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if metrics == nil {
		response.NotFound(c, "No activity for this venue in the requested period")
		return
	}

	response.Success(c, metrics)
}

// GetKPIDeltas handles GET /api/v1/insights/kpis
func (h *InsightsHandler) GetKPIDeltas(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	from, to := filterRange(filter)
	deltas, err := h.insightsService.KPIDeltas(filter.VenueID, from, to)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, deltas)
}

// GetDailyActivity handles GET /api/v1/insights/daily-activity
func (h *InsightsHandler) GetDailyActivity(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	series, err := h.activityService.DailyActivity(filter.VenueID, filter.Days)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, series)
}

// GetDailyIntents handles GET /api/v1/insights/daily-intents
func (h *InsightsHandler) GetDailyIntents(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	series, err := h.activityService.DailyIntents(filter.VenueID, filter.Days)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, series)
}

func (h *InsightsHandler) bindFilter(c *gin.Context) (models.InsightsFilter, bool) {
	var filter models.InsightsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: venueId is required")
		return filter, false
	}
	return filter, true
}

// filterRange resolves the requested period, defaulting to the last 7 days
func filterRange(filter models.InsightsFilter) (time.Time, time.Time) {
	to := time.Now()
	if filter.EndTime > 0 {
		to = time.Unix(filter.EndTime, 0)
	}

	from := to.AddDate(0, 0, -7)
	if filter.StartTime > 0 {
		from = time.Unix(filter.StartTime, 0)
	}

	return from, to
}
