package state

import (
	"sync"

	"route-insertion-service/internal/domain"
)

type timeKey struct {
	activityID string
	vehicleID  string
}

type timeState struct {
	latestOperationStart *float64
	futureWaiting        *float64
}

// Store caches the aggregates produced by Updater. Load aggregates are keyed by
// activity; time aggregates by activity and vehicle, since the latest feasible start
// depends on who drives. Reads may run concurrently; writes belong to the
// propagation phase between search iterations.
type Store struct {
	mu     sync.RWMutex
	routes map[string]domain.RouteState
	loads  map[string]domain.ActivityState
	times  map[timeKey]timeState
}

func NewStore() *Store {
	return &Store{
		routes: make(map[string]domain.RouteState),
		loads:  make(map[string]domain.ActivityState),
		times:  make(map[timeKey]timeState),
	}
}

func (s *Store) RouteState(route *domain.Route) (domain.RouteState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs, ok := s.routes[route.RouteID]
	return rs, ok
}

func (s *Store) ActivityState(act *domain.Activity, vehicle *domain.Vehicle) (domain.ActivityState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, found := s.loads[act.ID]
	if vehicle != nil {
		if ts, ok := s.times[timeKey{activityID: act.ID, vehicleID: vehicle.VehicleID}]; ok {
			st.LatestOperationStart = ts.latestOperationStart
			st.FutureWaiting = ts.futureWaiting
			found = true
		}
	}
	return st, found
}

func (s *Store) PutRoute(route *domain.Route, rs domain.RouteState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route.RouteID] = rs
}

// PutLoads stores the vehicle-independent load aggregates of act.
func (s *Store) PutLoads(act *domain.Activity, st domain.ActivityState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads[act.ID] = domain.ActivityState{
		Load:          st.Load,
		PastMaxLoad:   st.PastMaxLoad,
		PastMinLoad:   st.PastMinLoad,
		FutureMaxLoad: st.FutureMaxLoad,
		FutureMinLoad: st.FutureMinLoad,
	}
}

// PutTimes stores the time aggregates of act valid for vehicle. Nil values are kept as absent.
func (s *Store) PutTimes(act *domain.Activity, vehicle *domain.Vehicle, latestStart, futureWaiting *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := timeKey{activityID: act.ID, vehicleID: vehicle.VehicleID}
	ts := s.times[k]
	if latestStart != nil {
		ts.latestOperationStart = latestStart
	}
	if futureWaiting != nil {
		ts.futureWaiting = futureWaiting
	}
	s.times[k] = ts
}

// Forget drops everything cached for route and its activities.
func (s *Store) Forget(route *domain.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.routes, route.RouteID)
	for _, act := range route.Sequence() {
		delete(s.loads, act.ID)
		for k := range s.times {
			if k.activityID == act.ID {
				delete(s.times, k)
			}
		}
	}
}
