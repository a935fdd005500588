package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteBuildsBoundaryMarkers(t *testing.T) {
	v := testVehicle("v1")
	route, err := NewRoute("r1", v, nil)
	require.NoError(t, err)

	assert.True(t, route.IsEmpty())
	assert.Equal(t, NoDriver, route.Driver)
	assert.Equal(t, KindStart, route.Start.Kind)
	assert.Equal(t, KindEnd, route.End.Kind)
	assert.Equal(t, 480.0, route.End.LatestStart)
	assert.True(t, route.Start.Size.IsZero())
}

func TestNewRouteRejectsInvalidVehicle(t *testing.T) {
	v := testVehicle("v1")
	v.Type = nil

	_, err := NewRoute("r1", v, nil)
	require.Error(t, err)
}

func TestRouteInsertAndNeighbors(t *testing.T) {
	route, err := NewRoute("r1", testVehicle("v1"), nil)
	require.NoError(t, err)

	s := &Shipment{ShipmentID: "s1", Size: Capacity{2}, PickupLocation: NewLocation("a"), DeliveryLocation: NewLocation("b"), PickupWindow: OpenWindow(), DeliveryWindow: OpenWindow()}
	require.NoError(t, s.Validate())
	pickup, delivery := s.Activities()

	route.Insert(0, pickup)
	route.Insert(1, delivery)

	prev, next := route.Neighbors(1)
	assert.Same(t, pickup, prev)
	assert.Same(t, delivery, next)

	prev, next = route.Neighbors(2)
	assert.Same(t, delivery, prev)
	assert.Same(t, route.End, next)

	assert.Equal(t, []string{"s1"}, route.JobIDs())
	assert.Len(t, route.Sequence(), 4)
	assert.Panics(t, func() { route.Neighbors(3) })
}

func TestActivityLoadDelta(t *testing.T) {
	s := &Shipment{ShipmentID: "s1", Size: Capacity{4}}
	pickup, delivery := s.Activities()

	assert.Equal(t, Capacity{4}, pickup.LoadDelta())
	assert.Equal(t, Capacity{-4}, delivery.LoadDelta())
	assert.Nil(t, NewService("x", NewLocation("a"), 0, 10, 1).LoadDelta())
	assert.True(t, KindPickup.ChangesLoad())
	assert.False(t, KindEnd.ChangesLoad())
}
