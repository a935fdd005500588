package costs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-insertion-service/internal/adapters/distance"
	"route-insertion-service/internal/domain"
)

func vehicleWithRates(perDistance, perTime float64) *domain.Vehicle {
	return &domain.Vehicle{
		VehicleID: "v1",
		Type: &domain.VehicleType{
			TypeID:     "van",
			Capacity:   domain.NewCapacity(10),
			CostParams: domain.CostParams{PerDistanceUnit: perDistance, PerTransportTimeUnit: perTime},
		},
		StartLocation: domain.NewLocation("depot"),
		LatestArrival: 100,
	}
}

func TestMatrixCostAndTime(t *testing.T) {
	m := NewMatrix()
	m.Set("A", "B", 100, 60)
	m.Set("B", "A", 120, 90)
	a, b := domain.NewLocation("A"), domain.NewLocation("B")

	assert.Equal(t, 100*0.5+60*2.0, m.TransportCost(a, b, 0, nil, vehicleWithRates(0.5, 2)))
	assert.Equal(t, 100.0, m.TransportCost(a, b, 0, nil, nil), "no vehicle prices raw distance")
	assert.Equal(t, 60.0, m.TransportTime(a, b, 0, nil, nil))
	assert.Equal(t, 90.0, m.BackwardTransportTime(b, a, 500, nil, nil), "no symmetry assumed")
	assert.Zero(t, m.TransportCost(a, a, 0, nil, vehicleWithRates(1, 1)))
	assert.Equal(t, 2, m.Len())
}

func TestMatrixMissingPairPanics(t *testing.T) {
	m := NewMatrix()
	assert.Panics(t, func() {
		m.TransportTime(domain.NewLocation("A"), domain.NewLocation("Z"), 0, nil, nil)
	})
	_, _, ok := m.Lookup("A", "Z")
	assert.False(t, ok)
}

func TestMatrixFromProviderFillsEveryOrderedPair(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "A", To: "B", Meters: 100, Seconds: 10},
		{From: "B", To: "A", Meters: 110, Seconds: 11},
		{From: "A", To: "C", Meters: 200, Seconds: 20},
		{From: "C", To: "A", Meters: 210, Seconds: 21},
		{From: "B", To: "C", Meters: 300, Seconds: 30},
		{From: "C", To: "B", Meters: 310, Seconds: 31},
	})

	m, err := NewMatrixFromProvider(context.Background(), provider, []string{"C", "A", "B", "A"}, 2)
	require.NoError(t, err)

	assert.Equal(t, 6, m.Len())
	d, tt, ok := m.Lookup("C", "B")
	require.True(t, ok)
	assert.Equal(t, 310.0, d)
	assert.Equal(t, 31.0, tt)
	assert.Equal(t, int64(3), provider.Calls(), "one batched lookup per origin")
}

func TestMatrixFromProviderPropagatesMissingPairs(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{{From: "A", To: "B", Meters: 1, Seconds: 1}})

	_, err := NewMatrixFromProvider(context.Background(), provider, []string{"A", "B"}, 1)
	assert.Error(t, err)

	_, err = NewMatrixFromProvider(context.Background(), nil, []string{"A"}, 1)
	assert.Error(t, err)
}

func TestMatrixSources(t *testing.T) {
	provider := distance.NewSymmetricMockDistanceProvider([]distance.MockPair{{From: "A", To: "B", Meters: 1, Seconds: 1}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RoadNetworkSource{Roads: []Road{{From: "A", To: "B", Meters: 1, Seconds: 1}}}.Build(ctx, []string{"A", "B"})
	assert.ErrorIs(t, err, context.Canceled)

	m, err := ProviderSource{Provider: provider, Workers: 1}.Build(context.Background(), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
}
