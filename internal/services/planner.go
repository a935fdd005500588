package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/insertion"
	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
	"route-insertion-service/internal/state"
)

// ErrInvalidRequest marks errors caused by the caller's input rather than by
// the service or its dependencies.
var ErrInvalidRequest = errors.New("invalid request")

type PlanRequest struct {
	Vehicles  []*domain.Vehicle
	Shipments []*domain.Shipment
}

type PlanResult struct {
	Routes      []*domain.Route
	Unassigned  []string
	TotalCost   float64
	Evaluations int64
}

// Planner builds routes by cheapest insertion: shipments are taken one at a time
// and placed at the pickup/delivery positions with the lowest marginal cost over
// all vehicles. It owns the search loop and the state cache; the insertion
// package only evaluates positions.
type Planner struct {
	costs ports.CostModel

	// ActivityCostWeight is forwarded to the local cost calculator.
	ActivityCostWeight float64
	// Workers bounds how many routes are evaluated concurrently.
	Workers int

	evaluations atomic.Int64
}

func NewPlanner(costs ports.CostModel) *Planner {
	return &Planner{costs: costs, ActivityCostWeight: 1, Workers: 4}
}

type insertionOption struct {
	routeIdx    int
	pickupIdx   int
	deliveryIdx int
	cost        float64
}

func (p *Planner) Plan(ctx context.Context, req PlanRequest) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "planner.Plan")(&err)

	if len(req.Vehicles) == 0 {
		return nil, fmt.Errorf("plan: %w: vehicle list must not be empty", ErrInvalidRequest)
	}
	if err := validatePlan(req); err != nil {
		return nil, fmt.Errorf("plan: %w: %w", ErrInvalidRequest, err)
	}

	store := state.NewStore()
	updater := state.NewUpdater(store, p.costs)

	routes := make([]*domain.Route, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		route, err := domain.NewRoute(uuid.NewString(), v, nil)
		if err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
		if err := updater.Update(route); err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
		routes = append(routes, route)
	}

	shipments := slices.Clone(req.Shipments)
	slices.SortFunc(shipments, func(a, b *domain.Shipment) int {
		if a.ShipmentID < b.ShipmentID {
			return -1
		}
		if a.ShipmentID > b.ShipmentID {
			return 1
		}
		return 0
	})

	start := p.evaluations.Load()
	res := &PlanResult{Unassigned: []string{}}
	for n, s := range shipments {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan: %w", err)
		}
		ratio := float64(n) / float64(len(shipments))
		best, ok, err := p.bestInsertion(ctx, routes, store, s, ratio)
		if err != nil {
			return nil, fmt.Errorf("plan: shipment %s: %w", s.ShipmentID, err)
		}
		if !ok {
			log.Printf("plan: shipment=%s unassigned (no feasible position)", s.ShipmentID)
			res.Unassigned = append(res.Unassigned, s.ShipmentID)
			continue
		}

		route := routes[best.routeIdx]
		pickup, delivery := s.Activities()
		route.Insert(best.pickupIdx, pickup)
		route.Insert(best.deliveryIdx, delivery)
		if err := updater.Update(route); err != nil {
			return nil, fmt.Errorf("plan: shipment %s: %w", s.ShipmentID, err)
		}
	}

	for _, r := range routes {
		if r.IsEmpty() {
			continue
		}
		res.Routes = append(res.Routes, r)
		res.TotalCost += RouteCost(p.costs, r)
	}
	res.Evaluations = p.evaluations.Load() - start
	return res, nil
}

// validatePlan checks every vehicle and shipment up front, including that each
// shipment's size can be combined with every vehicle's capacity.
func validatePlan(req PlanRequest) error {
	for _, v := range req.Vehicles {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	for _, s := range req.Shipments {
		if s == nil {
			return errors.New("shipment must be non-nil")
		}
		if err := s.Validate(); err != nil {
			return err
		}
		for _, v := range req.Vehicles {
			if err := v.CheckSize(s.Size); err != nil {
				return fmt.Errorf("shipment %s: %w", s.ShipmentID, err)
			}
		}
	}
	return nil
}

// bestInsertion evaluates every route against a frozen snapshot. Empty routes of
// interchangeable vehicles yield identical results, so only the first of each
// equivalence class is evaluated.
func (p *Planner) bestInsertion(
	ctx context.Context,
	routes []*domain.Route,
	store *state.Store,
	s *domain.Shipment,
	ratio float64,
) (insertionOption, bool, error) {
	candidates := make([]int, 0, len(routes))
	seenEmpty := map[domain.VehicleTypeKey]struct{}{}
	for i, r := range routes {
		if !r.Vehicle.Skills.ContainsAll(s.RequiredSkills) {
			continue
		}
		if r.IsEmpty() {
			key := r.Vehicle.Key()
			if _, dup := seenEmpty[key]; dup {
				continue
			}
			seenEmpty[key] = struct{}{}
		}
		candidates = append(candidates, i)
	}

	results := make([]insertionOption, len(candidates))
	found := make([]bool, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.Workers))
	for k, idx := range candidates {
		k, idx := k, idx
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			opt, ok, err := p.bestForRoute(routes[idx], store, s, ratio)
			if err != nil {
				return err
			}
			opt.routeIdx = idx
			results[k], found[k] = opt, ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return insertionOption{}, false, err
	}

	best := insertionOption{cost: math.Inf(1)}
	ok := false
	for k := range candidates {
		if found[k] && results[k].cost < best.cost {
			best, ok = results[k], true
		}
	}
	return best, ok, nil
}

func (p *Planner) evaluator(states ports.StateReader) *insertion.Evaluator {
	calc := insertion.NewLocalCostCalculator(p.costs, states)
	calc.ActivityCostWeight = p.ActivityCostWeight
	return insertion.NewEvaluator(
		calc,
		insertion.NewTimeWindowConstraint(states, p.costs),
		insertion.NewLoadConstraint(states),
	)
}

// bestForRoute scans pickup positions on route, then delivery positions on a
// copy of route holding the pickup, whose aggregates are recomputed in a scratch
// store so the delivery sees the pickup's load and delay.
func (p *Planner) bestForRoute(route *domain.Route, store *state.Store, s *domain.Shipment, ratio float64) (insertionOption, bool, error) {
	pickup, delivery := s.Activities()
	eval := p.evaluator(store)

	pickupCtx, err := insertion.NewContext(route, route.Vehicle, route.Driver, pickup, ratio)
	if err != nil {
		return insertionOption{}, false, err
	}

	best := insertionOption{cost: math.Inf(1)}
	found := false
	for i := 0; i <= route.Len(); i++ {
		prev, next := route.Neighbors(i)
		pe := eval.Evaluate(pickupCtx, prev, pickup, next, prev.EndTime)
		p.evaluations.Inc()
		if pe.Status == insertion.NotFulfilledBreak {
			break
		}
		if !pe.Feasible() {
			continue
		}

		withPickup := route.Clone()
		withPickup.Insert(i, pickup.Clone())
		scratch := state.NewStore()
		if err := state.NewUpdater(scratch, p.costs).Update(withPickup); err != nil {
			return insertionOption{}, false, err
		}
		deliveryEval := p.evaluator(scratch)
		deliveryCtx, err := insertion.NewContext(withPickup, route.Vehicle, route.Driver, delivery, ratio)
		if err != nil {
			return insertionOption{}, false, err
		}

		for j := i + 1; j <= withPickup.Len(); j++ {
			prevD, nextD := withPickup.Neighbors(j)
			de := deliveryEval.Evaluate(deliveryCtx, prevD, delivery, nextD, prevD.EndTime)
			p.evaluations.Inc()
			if de.Status == insertion.NotFulfilledBreak {
				break
			}
			if !de.Feasible() {
				continue
			}

			total := pe.Cost + de.Cost
			if route.IsEmpty() {
				total += route.Vehicle.Type.CostParams.Fixed
			}
			if total < best.cost {
				best = insertionOption{pickupIdx: i, deliveryIdx: j, cost: total}
				found = true
			}
		}
	}
	return best, found, nil
}

// RouteCost is the full cost of a scheduled route: fixed cost, transport, setup and
// activity costs. Open routes are not charged for a trip back to the depot.
func RouteCost(costs ports.CostModel, route *domain.Route) float64 {
	if route.IsEmpty() {
		return 0
	}
	v, d := route.Vehicle, route.Driver
	total := v.Type.CostParams.Fixed

	prev := route.Start
	for _, act := range route.Activities {
		total += costs.Transport.TransportCost(prev.Location, act.Location, prev.EndTime, d, v)
		total += costs.Setup.SetupCost(costs.Setup.SetupTime(prev, act, v), v)
		total += costs.Activity.ActivityCost(act, act.ReadyTime, d, v)
		prev = act
	}
	if v.ReturnToDepot {
		total += costs.Transport.TransportCost(prev.Location, route.End.Location, prev.EndTime, d, v)
	}
	return total
}
