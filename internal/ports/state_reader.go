package ports

import "route-insertion-service/internal/domain"

// Read-only view over cached route and activity aggregates.
// A false second return means nothing has been computed yet for that key;
// callers resolve absence through their own fallbacks.
type StateReader interface {
	RouteState(route *domain.Route) (domain.RouteState, bool)
	ActivityState(act *domain.Activity, vehicle *domain.Vehicle) (domain.ActivityState, bool)
}
