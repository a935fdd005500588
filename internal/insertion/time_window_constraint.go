package insertion

import (
	"math"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// TimeWindowConstraint checks that inserting newAct keeps newAct and every
// downstream activity inside its time window for the candidate vehicle. The
// downstream part is read from the cached latest operation start at nextAct.
//
// NotFulfilledBreak is returned only for structural impossibilities that no later
// position of the same scan can repair: the vehicle's window ends before one of
// the three activities can start, newAct must start before prevAct can, or the
// vehicle is already too late at nextAct without any detour.
type TimeWindowConstraint struct {
	states ports.StateReader
	costs  ports.CostModel
}

func NewTimeWindowConstraint(states ports.StateReader, costs ports.CostModel) *TimeWindowConstraint {
	return &TimeWindowConstraint{states: states, costs: costs}
}

func (c *TimeWindowConstraint) Fulfilled(ic *Context, prevAct, newAct, nextAct *domain.Activity, depTimeAtPrev float64) Status {
	vehicle, driver := ic.NewVehicle, ic.NewDriver
	latestVehicleArrival := vehicle.LatestArrival

	var (
		latestReadyAtNext float64
		nextLocation      domain.Location
		setupAtNext       float64
	)
	if nextAct.IsEnd() {
		latestReadyAtNext = latestVehicleArrival
		nextLocation = vehicle.EndAt()
		if !vehicle.ReturnToDepot {
			nextLocation = newAct.Location
		}
	} else {
		latestReadyAtNext = nextAct.LatestStart
		if st, ok := c.states.ActivityState(nextAct, vehicle); ok && st.LatestOperationStart != nil {
			latestReadyAtNext = *st.LatestOperationStart
		}
		nextLocation = nextAct.Location
		setupAtNext = c.costs.Setup.SetupTimeAt(nextAct, vehicle)
	}

	//  |--- vehicle operating time ---|
	//                                    |--- prevAct, newAct or nextAct ---|
	if latestVehicleArrival < prevAct.EarliestStart ||
		latestVehicleArrival < newAct.EarliestStart ||
		latestVehicleArrival < nextAct.EarliestStart {
		return NotFulfilledBreak
	}

	//                  |--- prevAct ---|
	//  |--- newAct ---|
	if newAct.LatestStart < prevAct.EarliestStart {
		return NotFulfilledBreak
	}

	// Already too late at nextAct on the direct way.
	setupPrevToNext := 0.0
	if !prevAct.Location.Equal(nextLocation) {
		setupPrevToNext = setupAtNext
	}
	directReady := depTimeAtPrev +
		c.costs.Transport.TransportTime(prevAct.Location, nextLocation, depTimeAtPrev, driver, vehicle) +
		setupPrevToNext
	if directReady > latestReadyAtNext {
		return NotFulfilledBreak
	}

	//                   |--- newAct ---|
	//  |--- nextAct ---|
	if newAct.EarliestStart > nextAct.LatestStart {
		return NotFulfilled
	}

	setupPrevToNew := c.costs.Setup.SetupTime(prevAct, newAct, vehicle)
	readyAtNew := depTimeAtPrev +
		c.costs.Transport.TransportTime(prevAct.Location, newAct.Location, depTimeAtPrev, driver, vehicle) +
		setupPrevToNew
	durationAtNew := c.costs.Activity.ActivityDuration(newAct, readyAtNew, driver, vehicle)
	endAtNew := math.Max(readyAtNew, newAct.EarliestStart) + durationAtNew

	setupNewToNext := 0.0
	if !newAct.Location.Equal(nextLocation) {
		setupNewToNext = setupAtNext
	}
	latestReadyAtNew := math.Min(
		newAct.LatestStart,
		latestReadyAtNext-setupNewToNext-
			c.costs.Transport.BackwardTransportTime(newAct.Location, nextLocation, latestReadyAtNext, driver, vehicle)-
			durationAtNew,
	)
	if readyAtNew > latestReadyAtNew {
		return NotFulfilled
	}

	if isOpenRouteEnd(ic, nextAct) {
		return Fulfilled
	}

	readyAtNext := endAtNew +
		c.costs.Transport.TransportTime(newAct.Location, nextLocation, endAtNew, driver, vehicle) +
		setupNewToNext
	if readyAtNext > latestReadyAtNext {
		return NotFulfilled
	}
	return Fulfilled
}
