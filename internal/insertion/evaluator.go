package insertion

import "route-insertion-service/internal/domain"

// Evaluation is the outcome of evaluating one insertion position.
type Evaluation struct {
	Status Status
	Cost   float64
	// FailedConstraint is the index of the first constraint that rejected the
	// position, or -1.
	FailedConstraint int
}

func (e Evaluation) Feasible() bool { return e.Status == Fulfilled }

// Evaluator runs hard constraints in order and prices the position only when all
// of them are fulfilled. Cheap constraints should come first.
type Evaluator struct {
	constraints []ActivityConstraint
	calculator  CostCalculator
}

func NewEvaluator(calculator CostCalculator, constraints ...ActivityConstraint) *Evaluator {
	return &Evaluator{constraints: constraints, calculator: calculator}
}

func (e *Evaluator) Evaluate(ic *Context, prevAct, newAct, nextAct *domain.Activity, depTimeAtPrev float64) Evaluation {
	for i, c := range e.constraints {
		if status := c.Fulfilled(ic, prevAct, newAct, nextAct, depTimeAtPrev); status != Fulfilled {
			return Evaluation{Status: status, FailedConstraint: i}
		}
	}
	return Evaluation{
		Status:           Fulfilled,
		Cost:             e.calculator.Cost(ic, prevAct, nextAct, newAct, depTimeAtPrev),
		FailedConstraint: -1,
	}
}
