package insertion

import (
	"errors"
	"fmt"

	"route-insertion-service/internal/domain"
)

var ErrInvalidContext = errors.New("insertion context: invalid")

// Context is an immutable snapshot of one proposed move: the candidate route,
// the vehicle and driver that would serve it afterwards, the activity being
// inserted and how complete the overall solution currently is.
type Context struct {
	Route      *domain.Route
	NewVehicle *domain.Vehicle
	NewDriver  *domain.Driver
	Activity   *domain.Activity

	// CompletenessRatio in [0,1] damps activity-cost weight while the solution is partial.
	CompletenessRatio float64
}

func NewContext(
	route *domain.Route,
	vehicle *domain.Vehicle,
	driver *domain.Driver,
	act *domain.Activity,
	completenessRatio float64,
) (*Context, error) {
	if route == nil {
		return nil, fmt.Errorf("%w: route must be non-nil", ErrInvalidContext)
	}
	if vehicle == nil {
		vehicle = route.Vehicle
	}
	if err := vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContext, err)
	}
	if act == nil {
		return nil, fmt.Errorf("%w: activity must be non-nil", ErrInvalidContext)
	}
	if act.Location.IsZero() {
		return nil, fmt.Errorf("%w: activity %s has no location", ErrInvalidContext, act.ID)
	}
	if err := vehicle.CheckSize(act.Size); err != nil {
		return nil, fmt.Errorf("%w: activity %s: %w", ErrInvalidContext, act.ID, err)
	}
	if completenessRatio < 0 || completenessRatio > 1 {
		return nil, fmt.Errorf("%w: completeness ratio %.3f outside [0,1]", ErrInvalidContext, completenessRatio)
	}
	if driver == nil {
		driver = route.Driver
	}

	return &Context{
		Route:             route,
		NewVehicle:        vehicle,
		NewDriver:         driver,
		Activity:          act,
		CompletenessRatio: completenessRatio,
	}, nil
}

// routeVehicle is the vehicle currently bound to the route, used to price the
// schedule being replaced.
func (c *Context) routeVehicle() *domain.Vehicle {
	if c.Route.Vehicle != nil {
		return c.Route.Vehicle
	}
	return c.NewVehicle
}

func (c *Context) routeDriver() *domain.Driver {
	if c.Route.Driver != nil {
		return c.Route.Driver
	}
	return c.NewDriver
}
