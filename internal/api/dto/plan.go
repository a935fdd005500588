package dto

import "route-insertion-service/internal/domain"

type PlanRequest struct {
	Vehicles []VehicleRequest `json:"vehicles"`
	// Shipments overrides the stored shipments when present.
	Shipments []ShipmentRequest `json:"shipments"`
}

type PlanStopResponse struct {
	ActivityID string  `json:"activity_id"`
	JobID      string  `json:"job_id"`
	Kind       string  `json:"kind"`
	Location   string  `json:"location"`
	ArriveAt   float64 `json:"arrive_at"`
	ReadyAt    float64 `json:"ready_at"`
	DepartAt   float64 `json:"depart_at"`
}

type RouteResponse struct {
	RouteID   string             `json:"route_id"`
	VehicleID string             `json:"vehicle_id"`
	DepartAt  float64            `json:"depart_at"`
	Stops     []PlanStopResponse `json:"stops"`
}

type PlanResponse struct {
	Routes      []RouteResponse `json:"routes"`
	Unassigned  []string        `json:"unassigned"`
	TotalCost   float64         `json:"total_cost"`
	Evaluations int64           `json:"evaluations"`
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	stops := make([]PlanStopResponse, 0, r.Len())
	for _, a := range r.Activities {
		stops = append(stops, PlanStopResponse{
			ActivityID: a.ID,
			JobID:      a.JobID,
			Kind:       a.Kind.String(),
			Location:   a.Location.ID,
			ArriveAt:   a.ArrivalTime,
			ReadyAt:    a.ReadyTime,
			DepartAt:   a.EndTime,
		})
	}
	return RouteResponse{
		RouteID:   r.RouteID,
		VehicleID: r.Vehicle.VehicleID,
		DepartAt:  r.Start.EndTime,
		Stops:     stops,
	}
}
