package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"route-insertion-service/internal/adapters/cache"
	"route-insertion-service/internal/adapters/distance"
	"route-insertion-service/internal/adapters/repositories"
	"route-insertion-service/internal/api"
	"route-insertion-service/internal/config"
	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/platform/db"
	"route-insertion-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

	source, err := matrixSource(ctx, cfg, conn)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLShipmentRepository(conn)
	router := api.NewRouter(repo, source, api.Options{
		Workers:             cfg.PlannerWorkers,
		ActivityCostWeight:  cfg.ActivityCostWeight,
		LatenessSlack:       cfg.LatenessSlack,
		LatenessPerTimeUnit: cfg.LatenessPerTimeUnit,
	})

	// Timeouts are tuned for cold-cache planning (external matrix latency).
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// matrixSource prefers a local road network; otherwise ORS behind the Postgres
// travel_matrix and, when configured, a Redis tier in front of it.
func matrixSource(ctx context.Context, cfg config.Config, conn *sql.DB) (costs.MatrixSource, error) {
	if cfg.RoadNetworkPath != "" {
		roads, err := costs.LoadRoads(cfg.RoadNetworkPath)
		if err != nil {
			return nil, err
		}
		log.Printf("matrix source=road_network roads=%d", len(roads))
		return costs.RoadNetworkSource{Roads: roads}, nil
	}

	if cfg.ORSAPIKey == "" {
		return nil, errors.New("either ROAD_NETWORK_PATH or ORS_API_KEY is required")
	}
	profile, err := distance.ParseORSProfile(cfg.ORSProfile)
	if err != nil {
		return nil, fmt.Errorf("ORS_PROFILE: %w", err)
	}
	ors, err := distance.NewORSMatrixProvider(cfg.ORSAPIKey, repositories.NewSQLLocationRepository(conn), distance.WithProfile(profile))
	if err != nil {
		return nil, err
	}
	var provider ports.DistanceProvider
	provider, err = cache.NewCachedProvider(ors, cache.NewSQLDistanceCache(conn))
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		client, err := db.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		provider, err = cache.NewCachedProvider(provider, cache.NewRedisDistanceCache(client, cfg.DistanceCacheTTL))
		if err != nil {
			return nil, err
		}
	}

	log.Printf("matrix source=ors profile=%s redis=%t workers=%d", profile, cfg.RedisAddr != "", cfg.PlannerWorkers)
	return costs.ProviderSource{Provider: provider, Workers: cfg.PlannerWorkers}, nil
}
