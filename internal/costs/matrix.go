package costs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/ports"
)

type matrixEntry struct {
	distance float64
	duration float64
}

// Matrix is a static, possibly asymmetric travel table keyed by location ID pairs.
// Cost is distance × PerDistanceUnit + time × PerTransportTimeUnit of the vehicle type.
// It is immutable after construction and safe for concurrent reads.
type Matrix struct {
	entries map[string]matrixEntry
}

func NewMatrix() *Matrix { return &Matrix{entries: make(map[string]matrixEntry)} }

// Set stores the one-way entry origin -> destination.
func (m *Matrix) Set(origin, destination string, distance, duration float64) {
	m.entries[ports.PairKey(origin, destination)] = matrixEntry{distance: distance, duration: duration}
}

// SetSymmetric stores both directions.
func (m *Matrix) SetSymmetric(a, b string, distance, duration float64) {
	m.Set(a, b, distance, duration)
	m.Set(b, a, distance, duration)
}

func (m *Matrix) Len() int { return len(m.entries) }

// Lookup returns the entry for origin -> destination; colocated pairs are free.
func (m *Matrix) Lookup(origin, destination string) (distance, duration float64, ok bool) {
	if origin == destination {
		return 0, 0, true
	}
	e, ok := m.entries[ports.PairKey(origin, destination)]
	return e.distance, e.duration, ok
}

func (m *Matrix) mustLookup(from, to domain.Location) matrixEntry {
	d, t, ok := m.Lookup(from.ID, to.ID)
	if !ok {
		panic(fmt.Sprintf("matrix: no entry %q -> %q", from.ID, to.ID))
	}
	return matrixEntry{distance: d, duration: t}
}

func (m *Matrix) TransportCost(from, to domain.Location, _ float64, _ *domain.Driver, vehicle *domain.Vehicle) float64 {
	e := m.mustLookup(from, to)
	if vehicle == nil || vehicle.Type == nil {
		return e.distance
	}
	p := vehicle.Type.CostParams
	return e.distance*p.PerDistanceUnit + e.duration*p.PerTransportTimeUnit
}

func (m *Matrix) TransportTime(from, to domain.Location, _ float64, _ *domain.Driver, _ *domain.Vehicle) float64 {
	return m.mustLookup(from, to).duration
}

// BackwardTransportTime reads the from -> to entry on its own; the table is not
// assumed to be symmetric.
func (m *Matrix) BackwardTransportTime(from, to domain.Location, _ float64, _ *domain.Driver, _ *domain.Vehicle) float64 {
	return m.mustLookup(from, to).duration
}

// NewMatrixFromProvider fills a matrix for every ordered pair of locationIDs.
// Batched lookups are preferred when the provider supports them; origins are
// fetched concurrently with at most workers requests in flight.
func NewMatrixFromProvider(ctx context.Context, provider ports.DistanceProvider, locationIDs []string, workers int) (*Matrix, error) {
	if provider == nil {
		return nil, errors.New("matrix from provider: provider must be non-nil")
	}
	if workers < 1 {
		workers = 1
	}

	ids := slices.Clone(locationIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	m := NewMatrix()
	var mu sync.Mutex

	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, origin := range ids {
		targets := make([]string, 0, len(ids)-1)
		for _, t := range ids {
			if t != origin {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}

		origin := origin
		g.Go(func() error {
			var res map[string]ports.DistanceResult
			if hasMatrix {
				var err error
				res, err = mp.GetDistances(ctx, origin, targets)
				if err != nil {
					return fmt.Errorf("matrix from provider: get distances from %q: %w", origin, err)
				}
			} else {
				res = make(map[string]ports.DistanceResult, len(targets))
				for _, t := range targets {
					r, err := provider.GetDistance(ctx, origin, t)
					if err != nil {
						return fmt.Errorf("matrix from provider: get distance from %q to %q: %w", origin, t, err)
					}
					res[t] = r
				}
			}

			mu.Lock()
			defer mu.Unlock()
			for _, t := range targets {
				r, ok := res[t]
				if !ok {
					return fmt.Errorf("matrix from provider: missing distance from %q to %q", origin, t)
				}
				m.Set(origin, t, float64(r.DistanceMeters), float64(r.DurationSeconds))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
