package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/nightpulse/nightpulse-backend-go/internal/api"
	"github.com/nightpulse/nightpulse-backend-go/internal/config"
	"github.com/nightpulse/nightpulse-backend-go/internal/database"
	"github.com/nightpulse/nightpulse-backend-go/internal/engine"
	"github.com/nightpulse/nightpulse-backend-go/internal/geolocation"
	"github.com/nightpulse/nightpulse-backend-go/internal/repository"
	"github.com/nightpulse/nightpulse-backend-go/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// Background refresh loops for the live heatmap
	db := database.GetDB()
	checkinRepo := repository.NewCheckinRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	activityService := service.NewActivityService(checkinRepo, cfg.Tunables)
	heatmapService := service.NewHeatmapService(activityService, venueRepo, cfg.Tunables)

	refresher := engine.NewRefresher(activityService, heatmapService, cfg.Tunables)
	refresher.Start()
	defer refresher.Stop()

	// Device position feed shared by the smart check-in engines
	feed := geolocation.NewDeviceFeed()

	router := api.SetupRouter(cfg, refresher, feed)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
