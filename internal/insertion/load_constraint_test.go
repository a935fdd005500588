package insertion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"route-insertion-service/internal/domain"
)

func TestLoadConstraintEmptyRouteFitsIffSizeFitsCapacity(t *testing.T) {
	v := testVehicle()
	route := emptyRoute(t, v)
	c := NewLoadConstraint(newFakeStates())

	for _, kind := range []domain.ActivityKind{domain.KindPickup, domain.KindDelivery} {
		for size := 0; size <= 12; size++ {
			act := activity("x", kind, "A", size)
			ic := newContext(t, route, act, 0)

			got := c.Fulfilled(ic, route.Start, act, route.End, 0)

			want := NotFulfilled
			if size <= 10 {
				want = Fulfilled
			}
			assert.Equal(t, want, got, "%s of size %d", kind, size)
		}
	}
}

func TestLoadConstraintIgnoresActivitiesWithoutLoadChange(t *testing.T) {
	v := testVehicle()
	route := emptyRoute(t, v)
	c := NewLoadConstraint(newFakeStates())

	act := activity("svc", domain.KindService, "A", 50)
	ic := newContext(t, route, act, 0)

	assert.Equal(t, Fulfilled, c.Fulfilled(ic, route.Start, act, route.End, 0))
}

// prevWithState puts an existing activity into route and gives it the supplied aggregates.
func prevWithState(t *testing.T, states *fakeStates, atDepot domain.Capacity, st domain.ActivityState) (*domain.Route, *domain.Activity) {
	t.Helper()
	route := emptyRoute(t, testVehicle())
	prev := activity("prev", domain.KindService, "A", 0)
	route.Insert(0, prev)
	states.routes[route.RouteID] = domain.RouteState{LoadAtBeginning: atDepot}
	states.acts[prev.ID] = st
	return route, prev
}

func TestLoadConstraintDeliveryRejectedWhenPastMaxWouldOverflow(t *testing.T) {
	states := newFakeStates()
	route, prev := prevWithState(t, states, domain.NewCapacity(2), domain.ActivityState{
		FutureMinLoad: domain.NewCapacity(3),
		FutureMaxLoad: domain.NewCapacity(5),
		PastMaxLoad:   domain.NewCapacity(5),
		PastMinLoad:   domain.NewCapacity(2),
	})
	c := NewLoadConstraint(states)
	delivery := activity("d", domain.KindDelivery, "B", 6)
	ic := newContext(t, route, delivery, 0)

	assert.Equal(t, NotFulfilled, c.Fulfilled(ic, prev, delivery, route.End, 0))
}

func TestLoadConstraintDeliveryAcceptedWhenDepotCanHoldIt(t *testing.T) {
	states := newFakeStates()
	route, prev := prevWithState(t, states, domain.NewCapacity(2), domain.ActivityState{
		FutureMinLoad: domain.NewCapacity(3),
		FutureMaxLoad: domain.NewCapacity(4),
		PastMaxLoad:   domain.NewCapacity(4),
		PastMinLoad:   domain.NewCapacity(2),
	})
	c := NewLoadConstraint(states)
	delivery := activity("d", domain.KindDelivery, "B", 6)
	ic := newContext(t, route, delivery, 0)

	assert.Equal(t, Fulfilled, c.Fulfilled(ic, prev, delivery, route.End, 0))
}

func TestLoadConstraintDeclaredInitialLoadIsNotReinterpreted(t *testing.T) {
	states := newFakeStates()
	route, prev := prevWithState(t, states, domain.NewCapacity(2), domain.ActivityState{
		FutureMinLoad: domain.NewCapacity(3),
		FutureMaxLoad: domain.NewCapacity(4),
		PastMaxLoad:   domain.NewCapacity(4),
		PastMinLoad:   domain.NewCapacity(2),
	})
	route.Vehicle.InitialLoad = domain.NewCapacity(2)
	c := NewLoadConstraint(states)
	delivery := activity("d", domain.KindDelivery, "B", 6)
	ic := newContext(t, route, delivery, 0)

	assert.Equal(t, NotFulfilled, c.Fulfilled(ic, prev, delivery, route.End, 0))
}

func TestLoadConstraintPickupOverflowingFuture(t *testing.T) {
	tests := []struct {
		name    string
		atDepot domain.Capacity
		pastMin domain.Capacity
		want    Status
	}{
		{name: "depot load cannot absorb", atDepot: domain.NewCapacity(2), pastMin: domain.NewCapacity(2), want: NotFulfilled},
		{name: "past minimum cannot absorb", atDepot: domain.NewCapacity(5), pastMin: domain.NewCapacity(3), want: NotFulfilled},
		{name: "both absorb", atDepot: domain.NewCapacity(5), pastMin: domain.NewCapacity(4), want: Fulfilled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			states := newFakeStates()
			route, prev := prevWithState(t, states, tt.atDepot, domain.ActivityState{
				FutureMaxLoad: domain.NewCapacity(8),
				FutureMinLoad: domain.NewCapacity(4),
				PastMaxLoad:   domain.NewCapacity(8),
				PastMinLoad:   tt.pastMin,
			})
			c := NewLoadConstraint(states)
			pickup := activity("p", domain.KindPickup, "B", 4)
			ic := newContext(t, route, pickup, 0)

			assert.Equal(t, tt.want, c.Fulfilled(ic, prev, pickup, route.End, 0))
		})
	}
}

func TestLoadConstraintUsesRouteExtremesAtStart(t *testing.T) {
	states := newFakeStates()
	route, _ := prevWithState(t, states, domain.NewCapacity(0), domain.ActivityState{})
	states.routes[route.RouteID] = domain.RouteState{
		LoadAtBeginning: domain.NewCapacity(0),
		MaxLoad:         domain.NewCapacity(7),
		MinLoad:         domain.NewCapacity(0),
	}
	route.Vehicle.InitialLoad = domain.NewCapacity(0)
	c := NewLoadConstraint(states)
	next := route.Activities[0]

	fits := activity("p1", domain.KindPickup, "B", 3)
	assert.Equal(t, Fulfilled, c.Fulfilled(newContext(t, route, fits, 0), route.Start, fits, next, 0))

	tooBig := activity("p2", domain.KindPickup, "B", 4)
	assert.Equal(t, NotFulfilled, c.Fulfilled(newContext(t, route, tooBig, 0), route.Start, tooBig, next, 0))
}
