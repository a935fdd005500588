package state

import (
	"errors"
	"fmt"
	"math"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// Updater is the propagation pass: it schedules a route and recomputes every
// aggregate the insertion engine reads. It must not run while evaluations
// against the same route are in flight.
type Updater struct {
	store *Store
	costs ports.CostModel
}

func NewUpdater(store *Store, costs ports.CostModel) *Updater {
	return &Updater{store: store, costs: costs}
}

// Update schedules route with its own vehicle, then stores load aggregates, future
// waiting times and latest operation start times. Latest start times are also
// computed for each of the alternative vehicles so insertion can be evaluated for
// a vehicle switch.
func (u *Updater) Update(route *domain.Route, alternatives ...*domain.Vehicle) error {
	if route == nil {
		return errors.New("update state: route must be non-nil")
	}
	if err := route.Vehicle.Validate(); err != nil {
		return fmt.Errorf("update state: route %s: %w", route.RouteID, err)
	}

	for _, act := range route.Activities {
		if err := route.Vehicle.CheckSize(act.Size); err != nil {
			return fmt.Errorf("update state: route %s activity %s: %w", route.RouteID, act.ID, err)
		}
	}

	waiting := u.schedule(route)
	u.updateLoads(route)
	u.updateFutureWaiting(route, waiting)

	u.updateLatestStarts(route, route.Vehicle)
	for _, v := range alternatives {
		if v == nil || v.VehicleID == route.Vehicle.VehicleID {
			continue
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("update state: route %s alternative: %w", route.RouteID, err)
		}
		u.updateLatestStarts(route, v)
	}
	return nil
}

// schedule fills arrival, ready and end times and returns the idle time before
// each activity.
func (u *Updater) schedule(route *domain.Route) []float64 {
	v, d := route.Vehicle, route.Driver
	start := route.Start
	start.ArrivalTime, start.ReadyTime, start.EndTime = v.EarliestStart, v.EarliestStart, v.EarliestStart

	waiting := make([]float64, len(route.Activities))
	prev := start
	for i, act := range route.Activities {
		dep := prev.EndTime
		act.ArrivalTime = dep + u.costs.Transport.TransportTime(prev.Location, act.Location, dep, d, v)
		act.ReadyTime = act.ArrivalTime + u.costs.Setup.SetupTime(prev, act, v)
		waiting[i] = math.Max(0, act.EarliestStart-act.ReadyTime)
		act.EndTime = math.Max(act.ReadyTime, act.EarliestStart) + u.costs.Activity.ActivityDuration(act, act.ReadyTime, d, v)
		prev = act
	}

	end := route.End
	if v.ReturnToDepot {
		end.ArrivalTime = prev.EndTime + u.costs.Transport.TransportTime(prev.Location, end.Location, prev.EndTime, d, v)
	} else {
		end.ArrivalTime = prev.EndTime
	}
	end.ReadyTime, end.EndTime = end.ArrivalTime, end.ArrivalTime
	return waiting
}

func (u *Updater) updateLoads(route *domain.Route) {
	acts := route.Activities

	pickedUp := map[string]bool{}
	for _, a := range acts {
		if a.Kind == domain.KindPickup {
			pickedUp[a.JobID] = true
		}
	}
	// Deliveries whose pickup is not part of the route leave the depot on board.
	atBeginning := route.Vehicle.InitialLoad.Clone()
	for _, a := range acts {
		if a.Kind == domain.KindDelivery && !pickedUp[a.JobID] {
			atBeginning = atBeginning.Add(a.Size)
		}
	}
	if atBeginning == nil {
		atBeginning = make(domain.Capacity, route.Vehicle.Capacity().Dims())
	}

	states := make([]domain.ActivityState, len(acts))
	load, pastMax, pastMin := atBeginning, atBeginning, atBeginning
	for i, a := range acts {
		load = load.Add(a.LoadDelta())
		pastMax, pastMin = pastMax.Max(load), pastMin.Min(load)
		states[i] = domain.ActivityState{Load: load, PastMaxLoad: pastMax, PastMinLoad: pastMin}
	}
	loadAtEnd := load

	futureMax, futureMin := loadAtEnd, loadAtEnd
	for i := len(acts) - 1; i >= 0; i-- {
		futureMax, futureMin = futureMax.Max(states[i].Load), futureMin.Min(states[i].Load)
		states[i].FutureMaxLoad, states[i].FutureMinLoad = futureMax, futureMin
		u.store.PutLoads(acts[i], states[i])
	}

	routeMax, routeMin := atBeginning, atBeginning
	if len(acts) > 0 {
		routeMax, routeMin = routeMax.Max(states[0].FutureMaxLoad), routeMin.Min(states[0].FutureMinLoad)
	}
	u.store.PutRoute(route, domain.RouteState{
		LoadAtBeginning: atBeginning,
		LoadAtEnd:       loadAtEnd,
		MaxLoad:         routeMax,
		MinLoad:         routeMin,
	})
}

// updateFutureWaiting stores, per activity, the idle time scheduled after it. An
// activity's own waiting is excluded: a delay that it absorbs already shows in its
// activity cost.
func (u *Updater) updateFutureWaiting(route *domain.Route, waiting []float64) {
	total := 0.0
	for i := len(route.Activities) - 1; i >= 0; i-- {
		fw := total
		u.store.PutTimes(route.Activities[i], route.Vehicle, nil, &fw)
		total += waiting[i]
	}
}

// updateLatestStarts propagates the vehicle's latest arrival backwards through the route.
func (u *Updater) updateLatestStarts(route *domain.Route, v *domain.Vehicle) {
	d := route.Driver
	next := route.End
	latestAtNext := v.LatestArrival
	nextLocation := v.EndAt()

	for i := len(route.Activities) - 1; i >= 0; i-- {
		act := route.Activities[i]
		latest := act.LatestStart
		if !next.IsEnd() || v.ReturnToDepot {
			setup := 0.0
			if !act.Location.Equal(nextLocation) && !next.IsEnd() {
				setup = u.costs.Setup.SetupTimeAt(next, v)
			}
			back := u.costs.Transport.BackwardTransportTime(act.Location, nextLocation, latestAtNext, d, v)
			latest = math.Min(latest, latestAtNext-setup-back-u.costs.Activity.ActivityDuration(act, act.ReadyTime, d, v))
		}
		l := latest
		u.store.PutTimes(act, v, &l, nil)

		next, latestAtNext, nextLocation = act, latest, act.Location
	}
}
