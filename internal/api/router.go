package api

import (
	"net/http"

	"route-insertion-service/internal/api/handlers"
	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/ports"
)

// Options carries planner tuning from configuration into the handlers.
type Options struct {
	Workers             int
	ActivityCostWeight  float64
	LatenessSlack       float64
	LatenessPerTimeUnit float64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(repo ports.ShipmentRepository, source costs.MatrixSource, opts Options) http.Handler {
	mux := http.NewServeMux()

	shipmentHandler := &handlers.ShipmentHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{
		Repo:                repo,
		Source:              source,
		Workers:             opts.Workers,
		ActivityCostWeight:  opts.ActivityCostWeight,
		LatenessSlack:       opts.LatenessSlack,
		LatenessPerTimeUnit: opts.LatenessPerTimeUnit,
	}
	insertionHandler := &handlers.InsertionHandler{
		Source:             source,
		ActivityCostWeight: opts.ActivityCostWeight,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/shipments", shipmentHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/insertions/evaluate", insertionHandler.Evaluate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
