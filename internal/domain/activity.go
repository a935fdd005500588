package domain

import "fmt"

// ActivityKind tags the role an activity plays in a route.
type ActivityKind int

const (
	KindService ActivityKind = iota
	KindPickup
	KindDelivery
	KindStart
	KindEnd
)

func (k ActivityKind) String() string {
	switch k {
	case KindService:
		return "service"
	case KindPickup:
		return "pickup"
	case KindDelivery:
		return "delivery"
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("ActivityKind(%d)", int(k))
	}
}

// ParseActivityKind is the inverse of String.
func ParseActivityKind(s string) (ActivityKind, error) {
	for k := KindService; k <= KindEnd; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("parse activity kind: unknown kind %q", s)
}

// ChangesLoad reports whether visiting an activity of this kind alters the onboard load.
func (k ActivityKind) ChangesLoad() bool { return k == KindPickup || k == KindDelivery }

func (k ActivityKind) IsBoundary() bool { return k == KindStart || k == KindEnd }

// Represents a single visit performed by a vehicle.
// The theoretical window [EarliestStart, LatestStart] bounds when the operation may begin;
// ArrivalTime, ReadyTime and EndTime are filled in by the scheduling pass once the
// activity is part of a route. Size is always stored as a positive quantity;
// LoadDelta applies the sign implied by Kind.
type Activity struct {
	ID              string
	JobID           string
	Kind            ActivityKind
	Location        Location
	Size            Capacity
	EarliestStart   float64
	LatestStart     float64
	ServiceDuration float64
	SetupDuration   float64
	RequiredSkills  Skills

	ArrivalTime float64
	ReadyTime   float64
	EndTime     float64
}

func (a *Activity) IsStart() bool { return a.Kind == KindStart }

func (a *Activity) IsEnd() bool { return a.Kind == KindEnd }

// LoadDelta is the change in onboard load caused by performing a.
func (a *Activity) LoadDelta() Capacity {
	switch a.Kind {
	case KindPickup:
		return a.Size.Clone()
	case KindDelivery:
		return a.Size.Negate()
	default:
		return nil
	}
}

// Clone returns a copy with schedule fields preserved.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Size = a.Size.Clone()
	return &c
}

func (a *Activity) String() string {
	return fmt.Sprintf("%s(%s@%s)", a.Kind, a.ID, a.Location.ID)
}

// NewService creates a standalone visit that does not alter the load.
func NewService(id string, loc Location, earliest, latest, duration float64) *Activity {
	return &Activity{
		ID:              id,
		JobID:           id,
		Kind:            KindService,
		Location:        loc,
		EarliestStart:   earliest,
		LatestStart:     latest,
		ServiceDuration: duration,
	}
}
