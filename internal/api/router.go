package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/database"
	"github.com/nightpulse/nightpulse-backend-go/internal/engine"
	"github.com/nightpulse/nightpulse-backend-go/internal/geolocation"
	"github.com/nightpulse/nightpulse-backend-go/internal/handler"
	"github.com/nightpulse/nightpulse-backend-go/internal/middleware"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/routing"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
)

// SetupRouter wires repositories, services, engines and handlers
func SetupRouter(cfg *config.Config, refresher *engine.Refresher, feed *geolocation.DeviceFeed) *gin.Engine {
	db := database.GetDB()

	checkinRepo := repository.NewCheckinRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	stateRepo := repository.NewStateRepository(db)

	activityService := service.NewActivityService(checkinRepo, cfg.Tunables)
	heatmapService := service.NewHeatmapService(activityService, venueRepo, cfg.Tunables)
	insightsService := service.NewInsightsService(activityService)
	checkinService := service.NewCheckinService(checkinRepo, venueRepo, cfg.Tunables)

	routeClient := routing.NewClient(cfg.OSRMURL)

	checkinHandler := handler.NewCheckinHandler(checkinService)
	heatmapHandler := handler.NewHeatmapHandler(heatmapService, refresher)
	insightsHandler := handler.NewInsightsHandler(insightsService, activityService)
	venueHandler := handler.NewVenueHandler(venueRepo, cfg.Tunables)
	smartHandler := handler.NewSmartCheckinHandler(venueRepo, stateRepo, checkinService, feed, cfg.Tunables)
	navHandler := handler.NewNavigationHandler(venueRepo, routeClient, cfg.Tunables)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Attribution(cfg.JWTSecret))
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Nightpulse API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		venues := api.Group("/venues")
		{
			venues.GET("", venueHandler.List)
			venues.GET("/resolve", venueHandler.Resolve)
			venues.GET("/:id", venueHandler.Get)
			venues.POST("", venueHandler.Create)
		}

		checkins := api.Group("/checkins")
		{
			checkins.GET("", checkinHandler.List)
			checkins.POST("", checkinHandler.Submit)
		}

		heatmap := api.Group("/heatmap")
		{
			heatmap.GET("", heatmapHandler.GetHeatmap)
			heatmap.GET("/center", heatmapHandler.GetCenter)
		}

		insights := api.Group("/insights")
		{
			insights.GET("/comparison", insightsHandler.GetComparison)
			insights.GET("/kpis", insightsHandler.GetKPIDeltas)
			insights.GET("/daily-activity", insightsHandler.GetDailyActivity)
			insights.GET("/daily-intents", insightsHandler.GetDailyIntents)
		}

		smart := api.Group("/smart-checkin")
		{
			smart.POST("/enable", smartHandler.Enable)
			smart.POST("/disable", smartHandler.Disable)
			smart.GET("/state", smartHandler.GetState)
		}

		location := api.Group("/location")
		{
			location.POST("", smartHandler.ReportPosition)
			location.POST("/permission", smartHandler.ReportPermission)
		}

		navigation := api.Group("/navigation")
		{
			navigation.POST("/start", navHandler.Start)
			navigation.POST("/position", navHandler.UpdatePosition)
			navigation.POST("/ack", navHandler.Acknowledge)
			navigation.POST("/dismiss", navHandler.Dismiss)
			navigation.POST("/confirm", navHandler.Confirm)
			navigation.POST("/cancel", navHandler.Cancel)
		}
	}

	return r
}
