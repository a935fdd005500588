package domain

import (
	"errors"
	"fmt"
)

// Per-unit cost rates applied to a vehicle's route.
type CostParams struct {
	Fixed                float64
	PerDistanceUnit      float64
	PerTransportTimeUnit float64
	PerServiceTimeUnit   float64
	PerWaitingTimeUnit   float64
	PerSetupTimeUnit     float64
}

// VehicleType groups vehicles sharing capacity dimensions and cost rates.
type VehicleType struct {
	TypeID     string
	Capacity   Capacity
	CostParams CostParams
}

// Delivery vehicle available to the planner.
// InitialLoad is nil when the vehicle leaves the depot without a declared load.
type Vehicle struct {
	VehicleID        string
	Type             *VehicleType
	StartLocation    Location
	EndLocation      Location
	EarliestStart    float64
	LatestArrival    float64
	ReturnToDepot    bool
	InitialLoad      Capacity
	MaxRouteDuration *float64
	Skills           Skills
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return errors.New("vehicle: must be non-nil")
	}
	if v.VehicleID == "" {
		return errors.New("vehicle: id must be non-empty")
	}
	if v.Type == nil {
		return fmt.Errorf("vehicle %s: type is required", v.VehicleID)
	}
	if v.StartLocation.IsZero() {
		return fmt.Errorf("vehicle %s: start location is required", v.VehicleID)
	}
	if v.EarliestStart > v.LatestArrival {
		return fmt.Errorf("vehicle %s: earliest start %.2f after latest arrival %.2f", v.VehicleID, v.EarliestStart, v.LatestArrival)
	}
	if v.InitialLoad != nil && v.InitialLoad.Dims() != v.Type.Capacity.Dims() {
		return fmt.Errorf("vehicle %s: initial load %s does not match capacity %s: %w", v.VehicleID, v.InitialLoad, v.Type.Capacity, ErrDimensionMismatch)
	}
	return nil
}

// Capacity returns the capacity dimensions of the vehicle's type.
func (v *Vehicle) Capacity() Capacity { return v.Type.Capacity }

func (v *Vehicle) HasInitialLoad() bool { return v.InitialLoad != nil }

// CheckSize returns an error wrapping ErrDimensionMismatch when size cannot be
// loaded onto v because its dimensions differ from the vehicle's capacity.
func (v *Vehicle) CheckSize(size Capacity) error {
	if !size.Compatible(v.Capacity()) {
		return fmt.Errorf("vehicle %s: size %s does not match capacity %s: %w", v.VehicleID, size, v.Capacity(), ErrDimensionMismatch)
	}
	return nil
}

// EndAt returns the location the route closes at. Vehicles that do not
// return to the depot fall back to their start location for bookkeeping.
func (v *Vehicle) EndAt() Location {
	if v.EndLocation.IsZero() {
		return v.StartLocation
	}
	return v.EndLocation
}

// Key returns the equivalence key used to recognise interchangeable vehicles.
func (v *Vehicle) Key() VehicleTypeKey {
	return NewVehicleTypeKey(v.Type.TypeID, v.StartLocation, v.EndAt(), v.EarliestStart, v.LatestArrival, v.Skills, v.ReturnToDepot, v.MaxRouteDuration)
}

// Driver operating a vehicle. Cost models may price drivers differently.
type Driver struct {
	DriverID string
}

// NoDriver is used when routes are not bound to a particular person.
var NoDriver = &Driver{DriverID: "noDriver"}
