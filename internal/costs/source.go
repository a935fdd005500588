package costs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"route-insertion-service/internal/ports"
)

// MatrixSource builds the travel matrix between the given location ids.
type MatrixSource interface {
	Build(ctx context.Context, locationIDs []string) (*Matrix, error)
}

// ProviderSource fills the matrix from a DistanceProvider.
type ProviderSource struct {
	Provider ports.DistanceProvider
	Workers  int
}

func (s ProviderSource) Build(ctx context.Context, locationIDs []string) (*Matrix, error) {
	return NewMatrixFromProvider(ctx, s.Provider, locationIDs, s.Workers)
}

// RoadNetworkSource derives the matrix from shortest paths over a road list.
type RoadNetworkSource struct {
	Roads []Road
}

func (s RoadNetworkSource) Build(ctx context.Context, locationIDs []string) (*Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewRoadNetworkMatrix(s.Roads, locationIDs)
}

// LoadRoads reads a JSON array of roads from path.
func LoadRoads(path string) ([]Road, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load roads: read %q: %w", path, err)
	}
	var roads []Road
	if err := json.Unmarshal(b, &roads); err != nil {
		return nil, fmt.Errorf("load roads: parse %q: %w", path, err)
	}
	return roads, nil
}
