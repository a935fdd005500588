package services

import (
	"context"
	"math"

	"route-insertion-service/internal/adapters/distance"
	"route-insertion-service/internal/costs"
	"route-insertion-service/internal/domain"
)

func testPairs() []distance.MockPair {
	return []distance.MockPair{
		{From: "depot", To: "A", Meters: 10, Seconds: 10},
		{From: "A", To: "B", Meters: 5, Seconds: 5},
		{From: "depot", To: "B", Meters: 12, Seconds: 12},
	}
}

func testSource() costs.MatrixSource {
	return costs.ProviderSource{Provider: distance.NewSymmetricMockDistanceProvider(testPairs()), Workers: 2}
}

func testMatrix() *costs.Matrix {
	m := costs.NewMatrix()
	for _, p := range testPairs() {
		m.SetSymmetric(p.From, p.To, float64(p.Meters), float64(p.Seconds))
	}
	return m
}

func testVehicle(id string) *domain.Vehicle {
	return &domain.Vehicle{
		VehicleID: id,
		Type: &domain.VehicleType{
			TypeID:     "van",
			Capacity:   domain.NewCapacity(10),
			CostParams: domain.CostParams{PerDistanceUnit: 1},
		},
		StartLocation: domain.NewLocation("depot"),
		EarliestStart: 0,
		LatestArrival: 1000,
		ReturnToDepot: true,
	}
}

func testShipment(id string, size int) *domain.Shipment {
	return &domain.Shipment{
		ShipmentID:       id,
		Size:             domain.NewCapacity(size),
		PickupLocation:   domain.NewLocation("A"),
		DeliveryLocation: domain.NewLocation("B"),
		PickupWindow:     domain.TimeWindow{Earliest: 0, Latest: math.MaxFloat64},
		DeliveryWindow:   domain.TimeWindow{Earliest: 0, Latest: math.MaxFloat64},
	}
}

type fakeRepo struct {
	shipments []*domain.Shipment
	err       error
}

func (r *fakeRepo) ListShipments(context.Context) ([]*domain.Shipment, error) {
	return r.shipments, r.err
}
