package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/insertion"
	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/state"
)

type CostCalculatorKind string

const (
	LocalCalculator    CostCalculatorKind = "local"
	VariableCalculator CostCalculatorKind = "variable"
)

// EvaluateRequest describes one candidate position: Activity would be placed
// before Activities[Position] (Position == len(Activities) appends).
type EvaluateRequest struct {
	Vehicle           *domain.Vehicle
	Activities        []*domain.Activity
	Activity          *domain.Activity
	Position          int
	CompletenessRatio float64
	Calculator        CostCalculatorKind

	ActivityCostWeight float64
}

// EvaluateInsertion schedules the given route, computes its aggregates and
// evaluates the candidate position against the time-window and load constraints.
func EvaluateInsertion(ctx context.Context, req EvaluateRequest, source costs.MatrixSource) (_ insertion.Evaluation, err error) {
	defer obs.Time(ctx, "services.EvaluateInsertion")(&err)

	if req.Activity == nil {
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: activity is required", ErrInvalidRequest)
	}
	if req.Position < 0 || req.Position > len(req.Activities) {
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: position %d outside [0,%d]", ErrInvalidRequest, req.Position, len(req.Activities))
	}
	switch req.Calculator {
	case "", LocalCalculator, VariableCalculator:
	default:
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: unknown calculator %q", ErrInvalidRequest, req.Calculator)
	}

	route, err := domain.NewRoute(uuid.NewString(), req.Vehicle, nil)
	if err != nil {
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: %w", ErrInvalidRequest, err)
	}
	for _, a := range append(slices.Clone(req.Activities), req.Activity) {
		if a == nil || a.Location.IsZero() {
			return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: every activity needs a location", ErrInvalidRequest)
		}
		if err := req.Vehicle.CheckSize(a.Size); err != nil {
			return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: activity %s: %w", ErrInvalidRequest, a.ID, err)
		}
	}
	for _, a := range req.Activities {
		route.Insert(route.Len(), a.Clone())
	}

	ids := []string{req.Vehicle.StartLocation.ID, req.Vehicle.EndAt().ID, req.Activity.Location.ID}
	for _, a := range route.Activities {
		ids = append(ids, a.Location.ID)
	}
	matrix, err := source.Build(ctx, ids)
	if err != nil {
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: build matrix: %w", err)
	}
	model := costs.Default(matrix)

	store := state.NewStore()
	if err := state.NewUpdater(store, model).Update(route); err != nil {
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w", err)
	}

	ic, err := insertion.NewContext(route, nil, nil, req.Activity, req.CompletenessRatio)
	if err != nil {
		if errors.Is(err, insertion.ErrInvalidContext) {
			return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w: %w", ErrInvalidRequest, err)
		}
		return insertion.Evaluation{}, fmt.Errorf("evaluate insertion: %w", err)
	}

	var calc insertion.CostCalculator
	switch req.Calculator {
	case "", LocalCalculator:
		local := insertion.NewLocalCostCalculator(model, store)
		if req.ActivityCostWeight > 0 {
			local.ActivityCostWeight = req.ActivityCostWeight
		}
		calc = local
	case VariableCalculator:
		calc = insertion.NewVariableTransportCostCalculator(model)
	}

	eval := insertion.NewEvaluator(calc,
		insertion.NewTimeWindowConstraint(store, model),
		insertion.NewLoadConstraint(store),
	)
	prev, next := route.Neighbors(req.Position)
	return eval.Evaluate(ic, prev, req.Activity, next, prev.EndTime), nil
}
