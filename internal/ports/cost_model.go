package ports

import "route-insertion-service/internal/domain"

// Contract for travel costs and times between locations.
// Times are absolute; departure and arrival times let providers model time-dependent travel.
type TransportCosts interface {
	TransportCost(from, to domain.Location, departureTime float64, driver *domain.Driver, vehicle *domain.Vehicle) float64
	TransportTime(from, to domain.Location, departureTime float64, driver *domain.Driver, vehicle *domain.Vehicle) float64
	// Travel time for a trip from -> to that must arrive at arrivalTime.
	// Implementations are free to be asymmetric with TransportTime.
	BackwardTransportTime(from, to domain.Location, arrivalTime float64, driver *domain.Driver, vehicle *domain.Vehicle) float64
}

// Contract for time spent and cost incurred while performing an activity.
type ActivityCosts interface {
	ActivityDuration(act *domain.Activity, readyTime float64, driver *domain.Driver, vehicle *domain.Vehicle) float64
	ActivityCost(act *domain.Activity, readyTime float64, driver *domain.Driver, vehicle *domain.Vehicle) float64
}

// Contract for changeover overhead between successive activities.
type SetupCosts interface {
	// Setup time needed before next can start when coming from prev.
	SetupTime(prev, next *domain.Activity, vehicle *domain.Vehicle) float64
	// Setup time needed before act can start when arriving from a different location.
	SetupTimeAt(act *domain.Activity, vehicle *domain.Vehicle) float64
	SetupCost(duration float64, vehicle *domain.Vehicle) float64
}

// Contract for penalising (rather than rejecting) late or early service.
type SoftTimeWindowCosts interface {
	SoftTimeWindowCost(route *domain.Route, prevAct, newAct, nextAct *domain.Activity, departureTime float64) float64
}

// CostModel bundles every cost oracle the insertion engine consumes.
type CostModel struct {
	Transport  TransportCosts
	Activity   ActivityCosts
	Setup      SetupCosts
	SoftWindow SoftTimeWindowCosts
}
