package dto

import (
	"math"

	"route-insertion-service/internal/domain"
)

type ShipmentRequest struct {
	ShipmentID       string   `json:"shipment_id"`
	Size             []int    `json:"size"`
	PickupLocation   string   `json:"pickup_location"`
	DeliveryLocation string   `json:"delivery_location"`
	PickupEarliest   float64  `json:"pickup_earliest"`
	PickupLatest     *float64 `json:"pickup_latest"`
	DeliveryEarliest float64  `json:"delivery_earliest"`
	DeliveryLatest   *float64 `json:"delivery_latest"`
	PickupDuration   float64  `json:"pickup_duration"`
	DeliveryDuration float64  `json:"delivery_duration"`
	RequiredSkills   []string `json:"required_skills"`
}

func (s ShipmentRequest) ToDomain() (*domain.Shipment, error) {
	out := &domain.Shipment{
		ShipmentID:       s.ShipmentID,
		Size:             domain.NewCapacity(s.Size...),
		PickupLocation:   domain.NewLocation(s.PickupLocation),
		DeliveryLocation: domain.NewLocation(s.DeliveryLocation),
		PickupWindow:     domain.TimeWindow{Earliest: s.PickupEarliest, Latest: orOpen(s.PickupLatest)},
		DeliveryWindow:   domain.TimeWindow{Earliest: s.DeliveryEarliest, Latest: orOpen(s.DeliveryLatest)},
		PickupDuration:   s.PickupDuration,
		DeliveryDuration: s.DeliveryDuration,
		RequiredSkills:   domain.NewSkills(s.RequiredSkills...),
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

type LocationResponse struct {
	LocationID string  `json:"location_id"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
}

type ShipmentResponse struct {
	ShipmentID string           `json:"shipment_id"`
	Size       []int            `json:"size"`
	Pickup     LocationResponse `json:"pickup"`
	Delivery   LocationResponse `json:"delivery"`
	Skills     []string         `json:"required_skills"`
}

type ListShipmentsResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
}

func NewShipmentResponse(s *domain.Shipment) ShipmentResponse {
	loc := func(l domain.Location) LocationResponse {
		return LocationResponse{LocationID: l.ID, Lon: l.Coords.Lon, Lat: l.Coords.Lat}
	}
	size := []int(s.Size.Clone())
	if size == nil {
		size = []int{}
	}
	return ShipmentResponse{
		ShipmentID: s.ShipmentID,
		Size:       size,
		Pickup:     loc(s.PickupLocation),
		Delivery:   loc(s.DeliveryLocation),
		Skills:     s.RequiredSkills.Values(),
	}
}

func orOpen(v *float64) float64 {
	if v == nil {
		return math.MaxFloat64
	}
	return *v
}
