package insertion

import (
	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// VariableTransportCostCalculator is the cheap variant of LocalCostCalculator:
// transport, setup and soft time-window deltas only. Activity costs and waiting
// time are left to whoever accounts for them elsewhere.
type VariableTransportCostCalculator struct {
	costs ports.CostModel
}

func NewVariableTransportCostCalculator(costs ports.CostModel) *VariableTransportCostCalculator {
	return &VariableTransportCostCalculator{costs: costs}
}

func (c *VariableTransportCostCalculator) Cost(ic *Context, prevAct, nextAct, newAct *domain.Activity, depTimeAtPrev float64) float64 {
	vehicle, driver := ic.NewVehicle, ic.NewDriver
	toNew := driveTo(c.costs, prevAct, newAct, depTimeAtPrev, driver, vehicle)

	if isOpenRouteEnd(ic, nextAct) {
		return toNew.transportCost
	}

	setupTime := c.costs.Setup.SetupTime(newAct, nextAct, vehicle)
	newCost := toNew.transportCost + toNew.setupCost +
		c.costs.Transport.TransportCost(newAct.Location, nextAct.Location, toNew.end, driver, vehicle) +
		c.costs.Setup.SetupCost(setupTime, vehicle) +
		c.costs.SoftWindow.SoftTimeWindowCost(ic.Route, prevAct, newAct, nextAct, depTimeAtPrev)

	var oldCost float64
	if ic.Route.IsEmpty() {
		oldCost = c.costs.Transport.TransportCost(prevAct.Location, nextAct.Location, depTimeAtPrev, driver, vehicle)
	} else {
		oldCost = c.costs.Transport.TransportCost(prevAct.Location, nextAct.Location, prevAct.EndTime, ic.routeDriver(), ic.routeVehicle()) +
			c.costs.Setup.SetupCost(c.costs.Setup.SetupTime(prevAct, nextAct, vehicle), vehicle)
	}
	return newCost - oldCost
}
