package domain

import (
	"fmt"
	"slices"
)

// Represents the ordered activities served by one vehicle/driver pairing.
// Start and End are boundary markers carrying the vehicle's location and time window.
// Routes are mutated only by the search loop; evaluation code reads them.
type Route struct {
	RouteID    string
	Vehicle    *Vehicle
	Driver     *Driver
	Start      *Activity
	End        *Activity
	Activities []*Activity
}

func NewRoute(id string, vehicle *Vehicle, driver *Driver) (*Route, error) {
	if err := vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("new route: %w", err)
	}
	if driver == nil {
		driver = NoDriver
	}

	start := &Activity{
		ID:            id + "/start",
		Kind:          KindStart,
		Location:      vehicle.StartLocation,
		EarliestStart: vehicle.EarliestStart,
		LatestStart:   vehicle.LatestArrival,
		ArrivalTime:   vehicle.EarliestStart,
		ReadyTime:     vehicle.EarliestStart,
		EndTime:       vehicle.EarliestStart,
	}
	end := &Activity{
		ID:            id + "/end",
		Kind:          KindEnd,
		Location:      vehicle.EndAt(),
		EarliestStart: vehicle.EarliestStart,
		LatestStart:   vehicle.LatestArrival,
	}

	return &Route{
		RouteID: id,
		Vehicle: vehicle,
		Driver:  driver,
		Start:   start,
		End:     end,
	}, nil
}

func (r *Route) IsEmpty() bool { return len(r.Activities) == 0 }

func (r *Route) Len() int { return len(r.Activities) }

// Neighbors returns the activities surrounding insertion index i, where i ranges
// over [0, Len()]: index 0 sits right after Start, index Len() right before End.
func (r *Route) Neighbors(i int) (prev *Activity, next *Activity) {
	if i < 0 || i > len(r.Activities) {
		panic(fmt.Sprintf("route %s: insertion index %d out of range [0,%d]", r.RouteID, i, len(r.Activities)))
	}
	prev = r.Start
	if i > 0 {
		prev = r.Activities[i-1]
	}
	next = r.End
	if i < len(r.Activities) {
		next = r.Activities[i]
	}
	return prev, next
}

// Insert places act at index i (see Neighbors for the index convention).
func (r *Route) Insert(i int, act *Activity) {
	if i < 0 || i > len(r.Activities) {
		panic(fmt.Sprintf("route %s: insertion index %d out of range [0,%d]", r.RouteID, i, len(r.Activities)))
	}
	r.Activities = slices.Insert(r.Activities, i, act)
}

// Sequence returns Start, the activities, and End in visiting order.
func (r *Route) Sequence() []*Activity {
	seq := make([]*Activity, 0, len(r.Activities)+2)
	seq = append(seq, r.Start)
	seq = append(seq, r.Activities...)
	return append(seq, r.End)
}

// JobIDs lists distinct job IDs served by the route in first-visit order.
func (r *Route) JobIDs() []string {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, a := range r.Activities {
		if _, ok := seen[a.JobID]; ok {
			continue
		}
		seen[a.JobID] = struct{}{}
		ids = append(ids, a.JobID)
	}
	return ids
}

// Clone deep-copies the route's activities so the copy can be mutated independently.
func (r *Route) Clone() *Route {
	c := *r
	c.Start = r.Start.Clone()
	c.End = r.End.Clone()
	c.Activities = make([]*Activity, len(r.Activities))
	for i, a := range r.Activities {
		c.Activities[i] = a.Clone()
	}
	return &c
}
