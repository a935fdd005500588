package costs

import (
	"math"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

// WaitingTimeCosts charges idle time before an activity's window opens and the
// service time itself. Route boundary markers are free.
type WaitingTimeCosts struct{}

func (WaitingTimeCosts) ActivityDuration(act *domain.Activity, _ float64, _ *domain.Driver, _ *domain.Vehicle) float64 {
	if act.Kind.IsBoundary() {
		return 0
	}
	return act.ServiceDuration
}

func (c WaitingTimeCosts) ActivityCost(act *domain.Activity, readyTime float64, driver *domain.Driver, vehicle *domain.Vehicle) float64 {
	if act.Kind.IsBoundary() || vehicle == nil || vehicle.Type == nil {
		return 0
	}
	p := vehicle.Type.CostParams
	waiting := math.Max(0, act.EarliestStart-readyTime)
	return waiting*p.PerWaitingTimeUnit + c.ActivityDuration(act, readyTime, driver, vehicle)*p.PerServiceTimeUnit
}

// DefaultSetup charges an activity's setup duration whenever the vehicle arrives
// from a different location.
type DefaultSetup struct{}

func (DefaultSetup) SetupTime(prev, next *domain.Activity, _ *domain.Vehicle) float64 {
	if prev.Location.Equal(next.Location) {
		return 0
	}
	return next.SetupDuration
}

func (DefaultSetup) SetupTimeAt(act *domain.Activity, _ *domain.Vehicle) float64 {
	return act.SetupDuration
}

func (DefaultSetup) SetupCost(duration float64, vehicle *domain.Vehicle) float64 {
	if vehicle == nil || vehicle.Type == nil {
		return 0
	}
	return duration * vehicle.Type.CostParams.PerSetupTimeUnit
}

// NoSoftCosts disables soft time-window penalties.
type NoSoftCosts struct{}

func (NoSoftCosts) SoftTimeWindowCost(*domain.Route, *domain.Activity, *domain.Activity, *domain.Activity, float64) float64 {
	return 0
}

// LatenessPenalty treats the last Slack time units of every hard window as
// undesirable: starting newAct inside that band costs PerTimeUnit per unit.
type LatenessPenalty struct {
	Transport   ports.TransportCosts
	Setup       ports.SetupCosts
	Slack       float64
	PerTimeUnit float64
}

func (p LatenessPenalty) SoftTimeWindowCost(route *domain.Route, prevAct, newAct, _ *domain.Activity, departureTime float64) float64 {
	var vehicle *domain.Vehicle
	driver := domain.NoDriver
	if route != nil {
		vehicle, driver = route.Vehicle, route.Driver
	}
	ready := departureTime +
		p.Transport.TransportTime(prevAct.Location, newAct.Location, departureTime, driver, vehicle) +
		p.Setup.SetupTime(prevAct, newAct, vehicle)
	start := math.Max(ready, newAct.EarliestStart)
	return p.PerTimeUnit * math.Max(0, start-(newAct.LatestStart-p.Slack))
}

// Default assembles a cost model around transport with waiting-time activity costs,
// location-change setup and no soft penalties.
func Default(transport ports.TransportCosts) ports.CostModel {
	return ports.CostModel{
		Transport:  transport,
		Activity:   WaitingTimeCosts{},
		Setup:      DefaultSetup{},
		SoftWindow: NoSoftCosts{},
	}
}
