package cache

import (
	"context"
	"errors"
	"fmt"
	"log"

	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
)

// CachedProvider consults a DistanceCache before its inner provider and writes
// fetched results back. Cache write failures are logged and do not fail the lookup.
type CachedProvider struct {
	inner ports.DistanceProvider
	cache ports.DistanceCache
}

func NewCachedProvider(inner ports.DistanceProvider, cache ports.DistanceCache) (*CachedProvider, error) {
	if inner == nil {
		return nil, errors.New("cached provider: inner provider is nil")
	}
	if cache == nil {
		return nil, errors.New("cached provider: cache is nil")
	}
	return &CachedProvider{inner: inner, cache: cache}, nil
}

func (p *CachedProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	results, err := p.GetDistances(ctx, origin, []string{destination})
	if err != nil {
		return ports.DistanceResult{}, err
	}
	r, ok := results[destination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("cached provider: no distance result for %q -> %q", origin, destination)
	}
	return r, nil
}

func (p *CachedProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cached.GetDistances")(&err)

	dests := uniqueNonEmpty(destinations)
	if len(dests) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	hits, err := p.cache.GetMany(ctx, origin, dests)
	if err != nil {
		return nil, fmt.Errorf("cached provider: read cache: %w", err)
	}

	misses := make([]string, 0, len(dests))
	for _, d := range dests {
		if _, ok := hits[d]; !ok {
			misses = append(misses, d)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	fetched, err := p.fetch(ctx, origin, misses)
	if err != nil {
		return nil, fmt.Errorf("cached provider: %w", err)
	}
	if err := p.cache.PutMany(ctx, origin, fetched); err != nil {
		log.Printf("distance cache write failed: origin=%s err=%v", origin, err)
	}

	out := make(map[string]ports.DistanceResult, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

func (p *CachedProvider) fetch(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	if mp, ok := p.inner.(ports.DistanceMatrixProvider); ok {
		res, err := mp.GetDistances(ctx, origin, destinations)
		if err != nil {
			return nil, fmt.Errorf("get distances from %q: %w", origin, err)
		}
		for _, d := range destinations {
			if _, ok := res[d]; !ok {
				return nil, fmt.Errorf("provider did not return %q -> %q", origin, d)
			}
		}
		return res, nil
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, err := p.inner.GetDistance(ctx, origin, d)
		if err != nil {
			return nil, fmt.Errorf("get distance %q -> %q: %w", origin, d, err)
		}
		out[d] = r
	}
	return out, nil
}
