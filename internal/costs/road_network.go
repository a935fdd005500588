package costs

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dijkstra"
)

// Road is a directed road segment between two network nodes.
type Road struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Meters  int64  `json:"meters"`
	Seconds int64  `json:"seconds"`
}

// NewRoadNetworkMatrix derives a travel matrix between locationIDs from a road
// network. Durations are fastest-path times and distances shortest-path lengths;
// each is computed on its own weighted graph. Every location must be a node of
// the network and every pair must be reachable.
func NewRoadNetworkMatrix(roads []Road, locationIDs []string) (*Matrix, error) {
	if len(roads) == 0 {
		return nil, errors.New("road network matrix: no roads")
	}

	byTime := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	byLength := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	for i, r := range roads {
		if r.Meters < 0 || r.Seconds < 0 {
			return nil, fmt.Errorf("road network matrix: road #%d %s->%s has negative weight", i+1, r.From, r.To)
		}
		if _, err := byTime.AddEdge(r.From, r.To, r.Seconds); err != nil {
			return nil, fmt.Errorf("road network matrix: add road #%d %s->%s: %w", i+1, r.From, r.To, err)
		}
		if _, err := byLength.AddEdge(r.From, r.To, r.Meters); err != nil {
			return nil, fmt.Errorf("road network matrix: add road #%d %s->%s: %w", i+1, r.From, r.To, err)
		}
	}

	m := NewMatrix()
	for _, origin := range locationIDs {
		if !byTime.HasVertex(origin) {
			return nil, fmt.Errorf("road network matrix: location %q is not on the network", origin)
		}

		times, _, err := dijkstra.Dijkstra(byTime, dijkstra.Source(origin))
		if err != nil {
			return nil, fmt.Errorf("road network matrix: times from %q: %w", origin, err)
		}
		lengths, _, err := dijkstra.Dijkstra(byLength, dijkstra.Source(origin))
		if err != nil {
			return nil, fmt.Errorf("road network matrix: lengths from %q: %w", origin, err)
		}

		for _, dest := range locationIDs {
			if dest == origin {
				continue
			}
			t, okT := times[dest]
			l, okL := lengths[dest]
			if !okT || !okL || t == math.MaxInt64 || l == math.MaxInt64 {
				return nil, fmt.Errorf("road network matrix: %q unreachable from %q", dest, origin)
			}
			m.Set(origin, dest, float64(l), float64(t))
		}
	}
	return m, nil
}
