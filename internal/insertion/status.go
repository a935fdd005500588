package insertion

import (
	"fmt"

	"route-insertion-service/internal/domain"
)

// Status is the verdict of a hard constraint for one insertion position.
type Status int

const (
	Fulfilled Status = iota
	// NotFulfilled rejects this position only.
	NotFulfilled
	// NotFulfilledBreak rejects this position and every later position of the same scan.
	NotFulfilledBreak
)

func (s Status) String() string {
	switch s {
	case Fulfilled:
		return "FULFILLED"
	case NotFulfilled:
		return "NOT_FULFILLED"
	case NotFulfilledBreak:
		return "NOT_FULFILLED_BREAK"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ActivityConstraint is a hard constraint checked per insertion position.
type ActivityConstraint interface {
	Fulfilled(ic *Context, prevAct, newAct, nextAct *domain.Activity, depTimeAtPrev float64) Status
}

// CostCalculator prices inserting newAct between prevAct and nextAct.
// The result may be negative.
type CostCalculator interface {
	Cost(ic *Context, prevAct, nextAct, newAct *domain.Activity, depTimeAtPrev float64) float64
}
