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
	"route-insertion-service/internal/services"
)

var constraintNames = []string{"time_window", "load"}

type InsertionHandler struct {
	Source             costs.MatrixSource
	ActivityCostWeight float64
}

// Evaluate checks one insertion position for a posted route snapshot.
func (h *InsertionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.EvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	vehicle, err := req.Vehicle.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("vehicle: %v", err))
		return
	}
	acts := make([]*domain.Activity, 0, len(req.Activities))
	for i, ar := range req.Activities {
		a, err := ar.ToDomain()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("activities[%d]: %v", i, err))
			return
		}
		acts = append(acts, a)
	}
	act, err := req.Activity.ToDomain()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("activity: %v", err))
		return
	}
	if req.Position < 0 || req.Position > len(acts) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("position must be between 0 and %d", len(acts)))
		return
	}
	if req.CompletenessRatio < 0 || req.CompletenessRatio > 1 {
		writeError(w, r, http.StatusBadRequest, "completeness_ratio must be between 0 and 1")
		return
	}
	calc := services.CostCalculatorKind(req.Calculator)
	if calc != "" && calc != services.LocalCalculator && calc != services.VariableCalculator {
		writeError(w, r, http.StatusBadRequest, "calculator must be \"local\" or \"variable\"")
		return
	}

	ev, err := services.EvaluateInsertion(r.Context(), services.EvaluateRequest{
		Vehicle:            vehicle,
		Activities:         acts,
		Activity:           act,
		Position:           req.Position,
		CompletenessRatio:  req.CompletenessRatio,
		Calculator:         calc,
		ActivityCostWeight: h.ActivityCostWeight,
	}, h.Source)
	if errors.Is(err, services.ErrInvalidRequest) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("evaluate insertion failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.EvaluateResponse{Status: ev.Status.String()}
	if ev.Feasible() {
		cost := ev.Cost
		res.Cost = &cost
	} else if ev.FailedConstraint >= 0 && ev.FailedConstraint < len(constraintNames) {
		res.FailedConstraint = constraintNames[ev.FailedConstraint]
	}

	writeJSON(w, r, http.StatusOK, res)
}
