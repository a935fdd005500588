package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"route-insertion-service/internal/api/dto"
	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
	"route-insertion-service/internal/services"
)

const maxVehicles = 50

type PlanHandler struct {
	Repo   ports.ShipmentRepository
	Source costs.MatrixSource

	Workers             int
	ActivityCostWeight  float64
	LatenessSlack       float64
	LatenessPerTimeUnit float64
}

// Plan builds routes for the posted fleet over the posted or stored shipments.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	if len(req.Vehicles) < 1 || len(req.Vehicles) > maxVehicles {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("vehicles must contain between 1 and %d entries", maxVehicles))
		return
	}
	vehicles := make([]*domain.Vehicle, 0, len(req.Vehicles))
	for i, vr := range req.Vehicles {
		v, err := vr.ToDomain()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("vehicles[%d]: %v", i, err))
			return
		}
		vehicles = append(vehicles, v)
	}

	var shipments []*domain.Shipment
	if req.Shipments != nil {
		shipments = make([]*domain.Shipment, 0, len(req.Shipments))
		for i, sr := range req.Shipments {
			s, err := sr.ToDomain()
			if err != nil {
				writeError(w, r, http.StatusBadRequest, fmt.Sprintf("shipments[%d]: %v", i, err))
				return
			}
			shipments = append(shipments, s)
		}
	}

	svcReq := services.PlanDeliveriesRequest{
		Vehicles:            vehicles,
		Shipments:           shipments,
		Workers:             h.Workers,
		ActivityCostWeight:  h.ActivityCostWeight,
		LatenessSlack:       h.LatenessSlack,
		LatenessPerTimeUnit: h.LatenessPerTimeUnit,
	}

	plan, err := services.PlanDeliveries(r.Context(), svcReq, h.Repo, h.Source)
	if errors.Is(err, services.ErrInvalidRequest) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("plan deliveries failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.PlanResponse{
		Routes:      make([]dto.RouteResponse, 0, len(plan.Routes)),
		Unassigned:  plan.Unassigned,
		TotalCost:   plan.TotalCost,
		Evaluations: plan.Evaluations,
	}
	for _, route := range plan.Routes {
		res.Routes = append(res.Routes, dto.NewRouteResponse(route))
	}

	writeJSON(w, r, http.StatusOK, res)
}
