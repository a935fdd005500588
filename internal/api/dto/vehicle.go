package dto

import (
	"errors"
	"math"

	"route-insertion-service/internal/domain"
)

type CostParamsRequest struct {
	Fixed                float64 `json:"fixed"`
	PerDistanceUnit      float64 `json:"per_distance_unit"`
	PerTransportTimeUnit float64 `json:"per_transport_time_unit"`
	PerServiceTimeUnit   float64 `json:"per_service_time_unit"`
	PerWaitingTimeUnit   float64 `json:"per_waiting_time_unit"`
	PerSetupTimeUnit     float64 `json:"per_setup_time_unit"`
}

type VehicleRequest struct {
	VehicleID     string            `json:"vehicle_id"`
	TypeID        string            `json:"type_id"`
	Capacity      []int             `json:"capacity"`
	Costs         CostParamsRequest `json:"costs"`
	StartLocation string            `json:"start_location"`
	EndLocation   string            `json:"end_location"`
	EarliestStart float64           `json:"earliest_start"`
	// LatestArrival defaults to an unbounded shift.
	LatestArrival *float64 `json:"latest_arrival"`
	// ReturnToDepot defaults to true.
	ReturnToDepot    *bool    `json:"return_to_depot"`
	InitialLoad      []int    `json:"initial_load"`
	MaxRouteDuration *float64 `json:"max_route_duration"`
	Skills           []string `json:"skills"`
}

func (v VehicleRequest) ToDomain() (*domain.Vehicle, error) {
	if v.TypeID == "" {
		v.TypeID = "default"
	}
	if len(v.Capacity) == 0 {
		return nil, errors.New("vehicle capacity is required")
	}

	latest := math.MaxFloat64
	if v.LatestArrival != nil {
		latest = *v.LatestArrival
	}
	returnToDepot := true
	if v.ReturnToDepot != nil {
		returnToDepot = *v.ReturnToDepot
	}

	out := &domain.Vehicle{
		VehicleID: v.VehicleID,
		Type: &domain.VehicleType{
			TypeID:     v.TypeID,
			Capacity:   domain.NewCapacity(v.Capacity...),
			CostParams: domain.CostParams(v.Costs),
		},
		StartLocation:    domain.NewLocation(v.StartLocation),
		EarliestStart:    v.EarliestStart,
		LatestArrival:    latest,
		ReturnToDepot:    returnToDepot,
		MaxRouteDuration: v.MaxRouteDuration,
		Skills:           domain.NewSkills(v.Skills...),
	}
	if v.EndLocation != "" {
		out.EndLocation = domain.NewLocation(v.EndLocation)
	}
	if v.InitialLoad != nil {
		out.InitialLoad = domain.NewCapacity(v.InitialLoad...)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
