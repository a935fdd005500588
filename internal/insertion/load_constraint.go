package insertion

import (
	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// LoadConstraint keeps every load along the route within [0, capacity] when a
// pickup or delivery is inserted. It reads precomputed past/future load extremes
// at prevAct, so the check is O(1) regardless of route length.
//
// When the vehicle declares no initial load, the load at the depot is not fixed:
// goods a delivery removes may have been on board since the depot, and goods a
// pickup adds may stand for goods that were never loaded there. A position whose
// future extreme overflows is therefore still accepted when re-reading the load
// history that way keeps the depot load and the past extreme inside bounds.
type LoadConstraint struct {
	states ports.StateReader
}

func NewLoadConstraint(states ports.StateReader) *LoadConstraint {
	return &LoadConstraint{states: states}
}

// loadBounds are the aggregates the check needs, resolved relative to prevAct.
type loadBounds struct {
	atDepot   domain.Capacity
	futureMax domain.Capacity
	futureMin domain.Capacity
	pastMax   domain.Capacity
	pastMin   domain.Capacity
}

func (c *LoadConstraint) Fulfilled(ic *Context, prevAct, newAct, nextAct *domain.Activity, _ float64) Status {
	if !newAct.Kind.ChangesLoad() {
		return Fulfilled
	}

	b := c.resolve(ic, prevAct)
	vehicle := ic.NewVehicle
	capacity := vehicle.Capacity()
	delta := newAct.LoadDelta()

	switch newAct.Kind {
	case domain.KindPickup:
		if b.futureMax.Add(delta).LessOrEqual(capacity) {
			return Fulfilled
		}
		if vehicle.HasInitialLoad() ||
			!b.atDepot.Subtract(delta).GreaterOrEqual(nil) ||
			!b.pastMin.Subtract(delta).GreaterOrEqual(nil) {
			return NotFulfilled
		}
	case domain.KindDelivery:
		if b.futureMin.Add(delta).GreaterOrEqual(nil) {
			return Fulfilled
		}
		if vehicle.HasInitialLoad() ||
			!b.atDepot.Subtract(delta).LessOrEqual(capacity) ||
			!b.pastMax.Subtract(delta).LessOrEqual(capacity) {
			return NotFulfilled
		}
	}
	return Fulfilled
}

func (c *LoadConstraint) resolve(ic *Context, prevAct *domain.Activity) loadBounds {
	initial := ic.NewVehicle.InitialLoad

	var b loadBounds
	rs, hasRoute := c.states.RouteState(ic.Route)
	b.atDepot = orDefault(rs.LoadAtBeginning, hasRoute, initial)

	if prevAct.IsStart() {
		b.futureMax = orDefault(rs.MaxLoad, hasRoute, initial)
		b.futureMin = orDefault(rs.MinLoad, hasRoute, initial)
		b.pastMax = b.atDepot
		b.pastMin = b.atDepot
		return b
	}

	as, hasAct := c.states.ActivityState(prevAct, ic.NewVehicle)
	b.futureMax = orDefault(as.FutureMaxLoad, hasAct, b.atDepot)
	b.futureMin = orDefault(as.FutureMinLoad, hasAct, b.atDepot)
	b.pastMax = orDefault(as.PastMaxLoad, hasAct, b.atDepot)
	b.pastMin = orDefault(as.PastMinLoad, hasAct, b.atDepot)
	return b
}

// orDefault returns v when it was computed, otherwise fallback (nil is the zero vector).
func orDefault(v domain.Capacity, present bool, fallback domain.Capacity) domain.Capacity {
	if present && v != nil {
		return v
	}
	return fallback
}
