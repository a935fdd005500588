// Package insertion evaluates whether a single activity can be spliced between two
// adjacent activities of a route, and what the splice costs.
//
// Every evaluation is a pure function of its inputs: the insertion Context, the
// cost model and a read-only view of the cached route/activity aggregates. Nothing
// here mutates a route or the state cache, so evaluations over a frozen route
// snapshot may run concurrently.
//
// The search loop is expected to run the hard constraints first and only price
// positions that pass them:
//
//	if tw.Fulfilled(ic, prev, act, next, dep) == insertion.Fulfilled &&
//		load.Fulfilled(ic, prev, act, next, dep) == insertion.Fulfilled {
//		delta := calc.Cost(ic, prev, next, act, dep)
//	}
//
// Evaluator packages that sequence.
package insertion
