package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
)

type PlanDeliveriesRequest struct {
	Vehicles []*domain.Vehicle
	// Shipments to plan; nil plans every stored shipment.
	Shipments []*domain.Shipment

	Workers            int
	ActivityCostWeight float64

	// A positive LatenessPerTimeUnit charges starts within LatenessSlack of a window's close.
	LatenessSlack       float64
	LatenessPerTimeUnit float64
}

// PlanDeliveries loads shipments, builds the travel matrix for every location
// involved and runs the cheapest-insertion planner over the given fleet.
func PlanDeliveries(
	ctx context.Context,
	req PlanDeliveriesRequest,
	repo ports.ShipmentRepository,
	source costs.MatrixSource,
) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "services.PlanDeliveries")(&err)

	if len(req.Vehicles) == 0 {
		return nil, fmt.Errorf("plan deliveries: %w: at least one vehicle is required", ErrInvalidRequest)
	}
	if source == nil {
		return nil, errors.New("plan deliveries: matrix source is nil")
	}

	shipments := req.Shipments
	if shipments == nil {
		if repo == nil {
			return nil, errors.New("plan deliveries: no shipments given and repository is nil")
		}
		shipments, err = repo.ListShipments(ctx)
		if err != nil {
			return nil, fmt.Errorf("plan deliveries: list shipments: %w", err)
		}
	}

	if err := validatePlan(PlanRequest{Vehicles: req.Vehicles, Shipments: shipments}); err != nil {
		return nil, fmt.Errorf("plan deliveries: %w: %w", ErrInvalidRequest, err)
	}

	matrix, err := source.Build(ctx, locationIDs(req.Vehicles, shipments))
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: build matrix: %w", err)
	}

	planner := NewPlanner(costModel(matrix, req.LatenessSlack, req.LatenessPerTimeUnit))
	if req.Workers > 0 {
		planner.Workers = req.Workers
	}
	if req.ActivityCostWeight > 0 {
		planner.ActivityCostWeight = req.ActivityCostWeight
	}

	res, err := planner.Plan(ctx, PlanRequest{Vehicles: req.Vehicles, Shipments: shipments})
	if err != nil {
		return nil, fmt.Errorf("plan deliveries: %w", err)
	}

	log.Printf(
		"req_id=%s plan: vehicles=%d shipments=%d routes=%d unassigned=%d evaluations=%d cost=%.2f",
		obs.RequestID(ctx), len(req.Vehicles), len(shipments), len(res.Routes), len(res.Unassigned), res.Evaluations, res.TotalCost,
	)
	return res, nil
}

func costModel(matrix *costs.Matrix, slack, perTimeUnit float64) ports.CostModel {
	model := costs.Default(matrix)
	if perTimeUnit > 0 {
		model.SoftWindow = costs.LatenessPenalty{
			Transport:   matrix,
			Setup:       model.Setup,
			Slack:       slack,
			PerTimeUnit: perTimeUnit,
		}
	}
	return model
}

// locationIDs lists every vehicle depot and shipment stop once, in first-seen order.
func locationIDs(vehicles []*domain.Vehicle, shipments []*domain.Shipment) []string {
	seen := map[string]struct{}{}
	ids := make([]string, 0, 2*len(vehicles)+2*len(shipments))
	add := func(l domain.Location) {
		if l.IsZero() {
			return
		}
		if _, ok := seen[l.ID]; ok {
			return
		}
		seen[l.ID] = struct{}{}
		ids = append(ids, l.ID)
	}
	for _, v := range vehicles {
		add(v.StartLocation)
		add(v.EndAt())
	}
	for _, s := range shipments {
		add(s.PickupLocation)
		add(s.DeliveryLocation)
	}
	return ids
}
