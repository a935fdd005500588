package domain

import (
	"errors"
	"fmt"
	"math"
)

// TimeWindow bounds when an operation may start.
type TimeWindow struct {
	Earliest float64
	Latest   float64
}

// OpenWindow accepts any start time.
func OpenWindow() TimeWindow { return TimeWindow{Earliest: 0, Latest: math.MaxFloat64} }

func (w TimeWindow) Valid() bool { return w.Earliest <= w.Latest }

// Represents a unit of freight picked up at one location and delivered to another.
// Activities are materialised per insertion attempt; the shipment itself holds no
// schedule data.
type Shipment struct {
	ShipmentID       string
	Size             Capacity
	PickupLocation   Location
	DeliveryLocation Location
	PickupWindow     TimeWindow
	DeliveryWindow   TimeWindow
	PickupDuration   float64
	DeliveryDuration float64
	RequiredSkills   Skills
}

func (s *Shipment) Validate() error {
	if s.ShipmentID == "" {
		return errors.New("shipment: id must be non-empty")
	}
	if s.PickupLocation.IsZero() || s.DeliveryLocation.IsZero() {
		return fmt.Errorf("shipment %s: pickup and delivery locations are required", s.ShipmentID)
	}
	if !s.PickupWindow.Valid() || !s.DeliveryWindow.Valid() {
		return fmt.Errorf("shipment %s: inverted time window", s.ShipmentID)
	}
	if !s.Size.GreaterOrEqual(nil) {
		return fmt.Errorf("shipment %s: size %s must be non-negative", s.ShipmentID, s.Size)
	}
	return nil
}

// Activities returns fresh pickup and delivery activities for the shipment.
func (s *Shipment) Activities() (pickup *Activity, delivery *Activity) {
	pickup = &Activity{
		ID:              s.ShipmentID + "/pickup",
		JobID:           s.ShipmentID,
		Kind:            KindPickup,
		Location:        s.PickupLocation,
		Size:            s.Size.Clone(),
		EarliestStart:   s.PickupWindow.Earliest,
		LatestStart:     s.PickupWindow.Latest,
		ServiceDuration: s.PickupDuration,
		RequiredSkills:  s.RequiredSkills,
	}
	delivery = &Activity{
		ID:              s.ShipmentID + "/delivery",
		JobID:           s.ShipmentID,
		Kind:            KindDelivery,
		Location:        s.DeliveryLocation,
		Size:            s.Size.Clone(),
		EarliestStart:   s.DeliveryWindow.Earliest,
		LatestStart:     s.DeliveryWindow.Latest,
		ServiceDuration: s.DeliveryDuration,
		RequiredSkills:  s.RequiredSkills,
	}
	return pickup, delivery
}
