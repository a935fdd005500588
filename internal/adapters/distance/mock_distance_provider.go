package distance

import (
	"context"
	"fmt"

	"go.uber.org/atomic"

	"route-insertion-service/internal/ports"
)

type MockPair struct {
	From, To string
	Meters   int
	Seconds  int
}

// MockDistanceProvider answers lookups from a fixed table and counts calls,
// which lets tests assert on cache behaviour.
type MockDistanceProvider struct {
	m     map[string]ports.DistanceResult
	calls atomic.Int64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[ports.PairKey(p.From, p.To)] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &MockDistanceProvider{m: m}
}

// NewSymmetricMockDistanceProvider registers every pair in both directions.
func NewSymmetricMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	all := make([]MockPair, 0, 2*len(pairs))
	for _, p := range pairs {
		all = append(all, p, MockPair{From: p.To, To: p.From, Meters: p.Meters, Seconds: p.Seconds})
	}
	return NewMockDistanceProvider(all)
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	p.calls.Inc()
	r, ok := p.m[ports.PairKey(origin, destination)]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q", origin, destination)
	}

	return r, nil
}

func (p *MockDistanceProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	p.calls.Inc()
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, ok := p.m[ports.PairKey(origin, d)]
		if !ok {
			return nil, fmt.Errorf("missing pair %q -> %q", origin, d)
		}
		out[d] = r
	}
	return out, nil
}

// Calls reports how many lookups reached the provider.
func (p *MockDistanceProvider) Calls() int64 { return p.calls.Load() }
