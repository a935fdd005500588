package insertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-insertion-service/internal/domain"
)

func TestLocalCostEmptyRoundTrip(t *testing.T) {
	v := testVehicle()
	route := emptyRoute(t, v)
	calc := NewLocalCostCalculator(testModel(), newFakeStates())
	act := activity("p", domain.KindPickup, "A", 1)
	act.ServiceDuration = 2

	// depot->A (10) + A->depot (10) + pickup service 2 at rate 1.
	assert.InDelta(t, 22.0, calc.Cost(newContext(t, route, act, 1), route.Start, route.End, act, 0), 1e-9)
	// Activity costs are damped by how complete the solution is.
	assert.InDelta(t, 21.0, calc.Cost(newContext(t, route, act, 0.5), route.Start, route.End, act, 0), 1e-9)
}

func TestLocalCostOpenRouteChargesOnlyTheWayThere(t *testing.T) {
	v := testVehicle()
	v.ReturnToDepot = false
	route := emptyRoute(t, v)
	calc := NewLocalCostCalculator(testModel(), newFakeStates())
	act := activity("p", domain.KindPickup, "A", 1)
	act.ServiceDuration = 2

	assert.InDelta(t, 10.0, calc.Cost(newContext(t, route, act, 1), route.Start, route.End, act, 0), 1e-9)
}

func TestLocalCostColocatedActivityCostsItsService(t *testing.T) {
	v := testVehicle()
	route := emptyRoute(t, v)
	calc := NewLocalCostCalculator(testModel(), newFakeStates())
	act := activity("s", domain.KindService, "depot", 0)
	act.ServiceDuration = 2

	assert.InDelta(t, 2.0, calc.Cost(newContext(t, route, act, 1), route.Start, route.End, act, 0), 1e-9)
	assert.InDelta(t, 0.0, calc.Cost(newContext(t, route, act, 0), route.Start, route.End, act, 0), 1e-9)
}

func TestLocalCostActivityCostWeight(t *testing.T) {
	v := testVehicle()
	route := emptyRoute(t, v)
	calc := NewLocalCostCalculator(testModel(), newFakeStates())
	calc.ActivityCostWeight = 3
	act := activity("s", domain.KindService, "depot", 0)
	act.ServiceDuration = 2

	assert.InDelta(t, 6.0, calc.Cost(newContext(t, route, act, 1), route.Start, route.End, act, 0), 1e-9)
}

func TestLocalCostIncludesSetup(t *testing.T) {
	v := testVehicle()
	v.Type.CostParams.PerSetupTimeUnit = 2
	route := emptyRoute(t, v)
	calc := NewLocalCostCalculator(testModel(), newFakeStates())
	act := activity("s", domain.KindService, "A", 0)
	act.SetupDuration = 3

	// 20 transport + 3 setup units at rate 2 on arrival at A.
	assert.InDelta(t, 26.0, calc.Cost(newContext(t, route, act, 1), route.Start, route.End, act, 0), 1e-9)
}

func TestReplacedLegSetupIsPricedForTheCandidateVehicle(t *testing.T) {
	route := emptyRoute(t, testVehicle())
	next := activity("next", domain.KindService, "A", 0)
	next.SetupDuration = 3
	route.Insert(0, next)

	candidate := testVehicle()
	candidate.VehicleID = "v2"
	candidate.Type = &domain.VehicleType{
		TypeID:     "crane",
		Capacity:   domain.NewCapacity(10),
		CostParams: domain.CostParams{PerDistanceUnit: 1, PerSetupTimeUnit: 2},
	}
	act := activity("s", domain.KindService, "B", 0)
	ic, err := NewContext(route, candidate, nil, act, 1)
	require.NoError(t, err)

	// depot->B (12) + B->A (5) + setup at A (6) - depot->A (10) - setup at A (6).
	local := NewLocalCostCalculator(testModel(), newFakeStates())
	assert.InDelta(t, 7.0, local.Cost(ic, route.Start, next, act, 0), 1e-9)
	variable := NewVariableTransportCostCalculator(testModel())
	assert.InDelta(t, 7.0, variable.Cost(ic, route.Start, next, act, 0), 1e-9)
}

func TestLocalCostNonEmptyRouteSubtractsReplacedLeg(t *testing.T) {
	v := testVehicle()
	route := emptyRoute(t, v)
	next := activity("next", domain.KindService, "A", 0)
	route.Insert(0, next)
	calc := NewLocalCostCalculator(testModel(), newFakeStates())
	act := activity("s", domain.KindService, "B", 0)

	// depot->B (12) + B->A (5) - depot->A (10).
	assert.InDelta(t, 7.0, calc.Cost(newContext(t, route, act, 1), route.Start, next, act, 0), 1e-9)
}

func TestLocalCostCreditsRecapturedWaiting(t *testing.T) {
	v := testVehicle()
	v.Type.CostParams.PerWaitingTimeUnit = 1
	v.Type.CostParams.PerServiceTimeUnit = 0
	route := emptyRoute(t, v)
	next := activity("next", domain.KindService, "A", 0)
	next.EarliestStart = 20
	route.Insert(0, next)
	act := activity("s", domain.KindService, "B", 0)
	act.ServiceDuration = 10

	costWith := func(futureWaiting float64) float64 {
		states := newFakeStates()
		states.acts[next.ID] = domain.ActivityState{FutureWaiting: ptr(futureWaiting)}
		calc := NewLocalCostCalculator(testModel(), states)
		return calc.Cost(newContext(t, route, act, 1), route.Start, next, act, 0)
	}

	// Without the insertion next ends at 20; with it at 27, a delay of 7.
	base := costWith(0)
	assert.InDelta(t, 4.0, base-costWith(4), 1e-9)
	assert.InDelta(t, 7.0, base-costWith(100), 1e-9, "credit is capped by the delay")
}

func TestVariableTransportCost(t *testing.T) {
	v := testVehicle()
	calc := NewVariableTransportCostCalculator(testModel())

	route := emptyRoute(t, v)
	act := activity("s", domain.KindService, "A", 0)
	act.ServiceDuration = 50
	assert.InDelta(t, 20.0, calc.Cost(newContext(t, route, act, 1), route.Start, route.End, act, 0), 1e-9,
		"activity costs are not part of the variable cost")

	next := activity("next", domain.KindService, "A", 0)
	route.Insert(0, next)
	onB := activity("b", domain.KindService, "B", 0)
	assert.InDelta(t, 7.0, calc.Cost(newContext(t, route, onB, 1), route.Start, next, onB, 0), 1e-9)

	open := testVehicle()
	open.ReturnToDepot = false
	openRoute := emptyRoute(t, open)
	assert.InDelta(t, 10.0, calc.Cost(newContext(t, openRoute, act, 1), openRoute.Start, openRoute.End, act, 0), 1e-9)
}
