package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisAddr   string
	Port        string

	SeedPath        string
	RoadNetworkPath string
	ORSAPIKey       string
	ORSProfile      string

	DistanceCacheTTL   time.Duration
	PlannerWorkers     int
	ActivityCostWeight float64

	LatenessSlack       float64
	LatenessPerTimeUnit float64
}

// LoadDotEnv reads .env when present; a missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the service configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisAddr:       Get("REDIS_ADDR", ""),
		Port:            Get("PORT", "8080"),
		SeedPath:        Get("SEED_PATH", "data/seeds/shipments.json"),
		RoadNetworkPath: Get("ROAD_NETWORK_PATH", ""),
		ORSAPIKey:       Get("ORS_API_KEY", ""),
		ORSProfile:      Get("ORS_PROFILE", "driving-car"),
	}

	var err error
	if cfg.DistanceCacheTTL, err = time.ParseDuration(Get("DISTANCE_CACHE_TTL", "24h")); err != nil {
		return Config{}, fmt.Errorf("config: DISTANCE_CACHE_TTL: %w", err)
	}
	if cfg.PlannerWorkers, err = strconv.Atoi(Get("PLANNER_WORKERS", "4")); err != nil {
		return Config{}, fmt.Errorf("config: PLANNER_WORKERS: %w", err)
	}
	if cfg.ActivityCostWeight, err = strconv.ParseFloat(Get("ACTIVITY_COST_WEIGHT", "1"), 64); err != nil {
		return Config{}, fmt.Errorf("config: ACTIVITY_COST_WEIGHT: %w", err)
	}
	if cfg.LatenessSlack, err = strconv.ParseFloat(Get("LATENESS_SLACK", "0"), 64); err != nil {
		return Config{}, fmt.Errorf("config: LATENESS_SLACK: %w", err)
	}
	if cfg.LatenessPerTimeUnit, err = strconv.ParseFloat(Get("LATENESS_PER_TIME_UNIT", "0"), 64); err != nil {
		return Config{}, fmt.Errorf("config: LATENESS_PER_TIME_UNIT: %w", err)
	}

	if cfg.PlannerWorkers < 1 {
		return Config{}, errors.New("config: PLANNER_WORKERS must be at least 1")
	}
	if cfg.ActivityCostWeight < 0 {
		return Config{}, errors.New("config: ACTIVITY_COST_WEIGHT must be non-negative")
	}
	return cfg, nil
}
