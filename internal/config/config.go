package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	OSRMURL   string // Base URL of the walking-route provider
	Tunables  Tunables
}

// Tunables are the engine constants. Every value has a production default
// and can be overridden through the environment for experiments.
type Tunables struct {
	LiveWindow          time.Duration // Rolling window for the live heatmap
	ActivitySaturation  int           // Check-ins in-window that map to intensity 1.0
	GeofenceRadius      float64       // Meters; venues at or beyond are excluded
	SmartCooldown       time.Duration // Per-venue autonomous check-in cooldown
	ManualCooldown      time.Duration // Per-venue manual check-in cooldown
	ArrivalThreshold    float64       // Meters; navigation arrival detection
	OnsThreshold        float64       // Ons ratio for mode derivation
	SinglesThreshold    float64       // Single ratio for mode derivation
	PartyChillThreshold float64       // Party/chill ratio for mode derivation
	WeightFloor         float64       // Party/chill ratio below which weight falls back to intensity
	BoostMinWeight      float64       // Minimum ons_boost weight to emit a venue
	DataRefresh         time.Duration // Check-in re-pull interval
	HeatmapRefresh      time.Duration // Heatmap recompute interval
	GeoPollInterval     time.Duration // Geolocation poll interval
}

// Load loads configuration from the environment
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/nightpulse.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	osrmURL := os.Getenv("OSRM_URL")
	if osrmURL == "" {
		osrmURL = "https://router.project-osrm.org"
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		OSRMURL:   osrmURL,
		Tunables:  LoadTunables(),
	}
}

// LoadTunables returns the engine constants with any environment overrides
func LoadTunables() Tunables {
	return Tunables{
		LiveWindow:          envDuration("LIVE_WINDOW_MIN", 90) * time.Minute,
		ActivitySaturation:  envInt("ACTIVITY_SATURATION", 20),
		GeofenceRadius:      envFloat("GEOFENCE_RADIUS_M", 70),
		SmartCooldown:       envDuration("SMART_COOLDOWN_MIN", 45) * time.Minute,
		ManualCooldown:      envDuration("MANUAL_COOLDOWN_MIN", 180) * time.Minute,
		ArrivalThreshold:    envFloat("ARRIVAL_THRESHOLD_M", 35),
		OnsThreshold:        envFloat("ONS_THRESHOLD", 0.4),
		SinglesThreshold:    envFloat("SINGLES_THRESHOLD", 0.5),
		PartyChillThreshold: envFloat("PARTY_CHILL_THRESHOLD", 0.3),
		WeightFloor:         envFloat("WEIGHT_FLOOR", 0.2),
		BoostMinWeight:      envFloat("BOOST_MIN_WEIGHT", 0.05),
		DataRefresh:         envDuration("DATA_REFRESH_SEC", 30) * time.Second,
		HeatmapRefresh:      envDuration("HEATMAP_REFRESH_SEC", 60) * time.Second,
		GeoPollInterval:     envDuration("GEO_POLL_SEC", 30) * time.Second,
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
