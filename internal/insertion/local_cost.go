package insertion

import (
	"math"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// leg is the outcome of driving to an activity and performing it.
type leg struct {
	transportCost float64
	setupCost     float64
	arrival       float64
	ready         float64
	end           float64
}

// driveTo prices travelling from prev (departing at dep) to act and serving it.
func driveTo(costs ports.CostModel, prev, act *domain.Activity, dep float64, driver *domain.Driver, vehicle *domain.Vehicle) leg {
	setupTime := costs.Setup.SetupTime(prev, act, vehicle)
	l := leg{
		transportCost: costs.Transport.TransportCost(prev.Location, act.Location, dep, driver, vehicle),
		setupCost:     costs.Setup.SetupCost(setupTime, vehicle),
	}
	l.arrival = dep + costs.Transport.TransportTime(prev.Location, act.Location, dep, driver, vehicle)
	l.ready = l.arrival + setupTime
	l.end = math.Max(l.ready, act.EarliestStart) + costs.Activity.ActivityDuration(act, l.ready, driver, vehicle)
	return l
}

// isOpenRouteEnd reports whether nextAct closes a route whose vehicle stays where it stops.
func isOpenRouteEnd(ic *Context, nextAct *domain.Activity) bool {
	return nextAct.IsEnd() && !ic.NewVehicle.ReturnToDepot
}

// LocalCostCalculator computes the marginal cost of inserting newAct between
// prevAct and nextAct as c(prev,new) + c(new,next) - c(prev,next), including setup,
// soft time-window penalties and damped activity costs. Idle time downstream of
// nextAct that the insertion would consume is credited back using the cached
// future waiting time.
type LocalCostCalculator struct {
	costs  ports.CostModel
	states ports.StateReader

	// ActivityCostWeight scales activity costs before completeness damping.
	ActivityCostWeight float64
}

func NewLocalCostCalculator(costs ports.CostModel, states ports.StateReader) *LocalCostCalculator {
	return &LocalCostCalculator{costs: costs, states: states, ActivityCostWeight: 1}
}

func (c *LocalCostCalculator) Cost(ic *Context, prevAct, nextAct, newAct *domain.Activity, depTimeAtPrev float64) float64 {
	vehicle, driver := ic.NewVehicle, ic.NewDriver
	toNew := driveTo(c.costs, prevAct, newAct, depTimeAtPrev, driver, vehicle)
	actCostNew := c.costs.Activity.ActivityCost(newAct, toNew.ready, driver, vehicle)

	if isOpenRouteEnd(ic, nextAct) {
		return toNew.transportCost
	}

	toNext := driveTo(c.costs, newAct, nextAct, toNew.end, driver, vehicle)
	actCostNext := c.costs.Activity.ActivityCost(nextAct, toNext.ready, driver, vehicle)
	softCost := c.costs.SoftWindow.SoftTimeWindowCost(ic.Route, prevAct, newAct, nextAct, depTimeAtPrev)
	weight := ic.CompletenessRatio * c.ActivityCostWeight

	newCost := toNew.transportCost + toNext.transportCost +
		toNew.setupCost + toNext.setupCost +
		softCost +
		weight*(actCostNew+actCostNext)

	return newCost - c.oldCost(ic, prevAct, nextAct, depTimeAtPrev, toNext.end, weight)
}

// oldCost prices the direct prev -> next stretch the insertion replaces.
func (c *LocalCostCalculator) oldCost(ic *Context, prevAct, nextAct *domain.Activity, depTimeAtPrev, newEndAtNext, weight float64) float64 {
	if ic.Route.IsEmpty() {
		return c.costs.Transport.TransportCost(prevAct.Location, nextAct.Location, depTimeAtPrev, ic.NewDriver, ic.NewVehicle)
	}

	// Setup on the replaced stretch depends on the vehicle that would serve it.
	setupTime := c.costs.Setup.SetupTime(prevAct, nextAct, ic.NewVehicle)
	setupCost := c.costs.Setup.SetupCost(setupTime, ic.NewVehicle)
	vehicle, driver := ic.routeVehicle(), ic.routeDriver()
	tpCost := c.costs.Transport.TransportCost(prevAct.Location, nextAct.Location, prevAct.EndTime, driver, vehicle)
	tpTime := c.costs.Transport.TransportTime(prevAct.Location, nextAct.Location, prevAct.EndTime, driver, vehicle)

	ready := depTimeAtPrev + tpTime + setupTime
	oldEnd := math.Max(ready, nextAct.EarliestStart) + c.costs.Activity.ActivityDuration(nextAct, ready, driver, vehicle)
	actCost := c.costs.Activity.ActivityCost(nextAct, ready, driver, vehicle)

	// Pushing nextAct later first consumes idle time already in the schedule;
	// that idle time was paid for and is credited back.
	delay := math.Max(0, newEndAtNext-oldEnd)
	futureWaiting := 0.0
	if st, ok := c.states.ActivityState(nextAct, vehicle); ok && st.FutureWaiting != nil {
		futureWaiting = *st.FutureWaiting
	}
	waitingSavings := math.Min(futureWaiting, delay) * vehicle.Type.CostParams.PerWaitingTimeUnit

	return tpCost + setupCost + weight*actCost + weight*waitingSavings
}
