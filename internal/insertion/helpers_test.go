package insertion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// fakeStates serves aggregates set directly by a test.
type fakeStates struct {
	routes map[string]domain.RouteState
	acts   map[string]domain.ActivityState
}

func newFakeStates() *fakeStates {
	return &fakeStates{routes: map[string]domain.RouteState{}, acts: map[string]domain.ActivityState{}}
}

func (f *fakeStates) RouteState(route *domain.Route) (domain.RouteState, bool) {
	rs, ok := f.routes[route.RouteID]
	return rs, ok
}

func (f *fakeStates) ActivityState(act *domain.Activity, _ *domain.Vehicle) (domain.ActivityState, bool) {
	st, ok := f.acts[act.ID]
	return st, ok
}

func ptr(v float64) *float64 { return &v }

// testModel: depot-A 10, A-B 5, depot-B 12, symmetric, distance equal to time.
func testModel() ports.CostModel {
	m := costs.NewMatrix()
	m.SetSymmetric("depot", "A", 10, 10)
	m.SetSymmetric("A", "B", 5, 5)
	m.SetSymmetric("depot", "B", 12, 12)
	return costs.Default(m)
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		VehicleID: "v1",
		Type: &domain.VehicleType{
			TypeID:     "van",
			Capacity:   domain.NewCapacity(10),
			CostParams: domain.CostParams{PerDistanceUnit: 1, PerServiceTimeUnit: 1},
		},
		StartLocation: domain.NewLocation("depot"),
		EarliestStart: 0,
		LatestArrival: 100,
		ReturnToDepot: true,
	}
}

func emptyRoute(t *testing.T, v *domain.Vehicle) *domain.Route {
	t.Helper()
	route, err := domain.NewRoute("r1", v, nil)
	require.NoError(t, err)
	return route
}

func newContext(t *testing.T, route *domain.Route, act *domain.Activity, ratio float64) *Context {
	t.Helper()
	ic, err := NewContext(route, nil, nil, act, ratio)
	require.NoError(t, err)
	return ic
}

func activity(id string, kind domain.ActivityKind, loc string, size int) *domain.Activity {
	return &domain.Activity{
		ID:            id,
		JobID:         id,
		Kind:          kind,
		Location:      domain.NewLocation(loc),
		Size:          domain.NewCapacity(size),
		EarliestStart: 0,
		LatestStart:   math.MaxFloat64,
	}
}
