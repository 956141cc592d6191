package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightpulse/nightpulse-backend-go/internal/engine"
	"github.com/nightpulse/nightpulse-backend-go/internal/models"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
	"github.com/nightpulse/nightpulse-backend-go/internal/spatial"
	"github.com/nightpulse/nightpulse-backend-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for the live heatmap
type HeatmapHandler struct {
	heatmapService *service.HeatmapService
	refresher      *engine.Refresher
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(heatmapService *service.HeatmapService, refresher *engine.Refresher) *HeatmapHandler {
	return &HeatmapHandler{
		heatmapService: heatmapService,
		refresher:      refresher,
	}
}

// GetHeatmap handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	var filter models.HeatmapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	mode := models.DisplayMode(filter.DisplayMode)
	if filter.DisplayMode == "" {
		mode = models.DisplayActivity
	}
	if !mode.Valid() {
		response.BadRequest(c, "Unknown display mode: "+filter.DisplayMode)
		return
	}

	// The default view is recomputed on a timer; serve the cached copy and
	// fall through to a live computation for custom lenses
	if mode == models.DisplayActivity && filter.WindowMinutes == 0 {
		if view := h.refresher.View(); view != nil {
			response.Success(c, view)
			return
		}
	}

	window := time.Duration(filter.WindowMinutes) * time.Minute
	view, err := h.heatmapService.BuildHeatmap(mode, window)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, view)
}

// GetCenter handles GET /api/v1/heatmap/center. Returns the activity-
// weighted centroid of the current view, used as the initial map center.
func (h *HeatmapHandler) GetCenter(c *gin.Context) {
	view := h.refresher.View()
	if view == nil || len(view.Venues) == 0 {
		response.NotFound(c, "No heatmap data available yet")
		return
	}

	positions := make([]models.GeoPosition, len(view.Venues))
	weights := make([]float64, len(view.Venues))
	for i, v := range view.Venues {
		positions[i] = models.GeoPosition{Latitude: v.Latitude, Longitude: v.Longitude}
		weights[i] = float64(v.Count)
	}

	response.Success(c, spatial.WeightedCentroid(positions, weights))
}
