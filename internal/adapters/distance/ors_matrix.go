package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
)

// ORSMatrixProvider implements DistanceMatrixProvider with the OpenRouteService
// matrix endpoint. Location IDs are resolved to coordinates through a
// LocationDirectory; caching is left to cache.CachedProvider.
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session   *http.Client
	apiKey    string
	baseURL   string
	profile   ORSProfile
	locations ports.LocationDirectory

	attempts int
	backoff  time.Duration
}

type ORSOption func(*ORSMatrixProvider)

// WithProfile computes matrices on the given routing graph, e.g. driving-hgv for trucks.
func WithProfile(p ORSProfile) ORSOption {
	return func(o *ORSMatrixProvider) { o.profile = p }
}

func WithBaseURL(u string) ORSOption {
	return func(o *ORSMatrixProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithRetry sets how many times a request is sent and the first backoff between tries.
func WithRetry(attempts int, backoff time.Duration) ORSOption {
	return func(o *ORSMatrixProvider) { o.attempts, o.backoff = attempts, backoff }
}

func NewORSMatrixProvider(apiKey string, locations ports.LocationDirectory, opts ...ORSOption) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}
	if locations == nil {
		return nil, errors.New("ORS location directory is nil")
	}

	o := &ORSMatrixProvider{
		session:   &http.Client{Timeout: 10 * time.Second},
		apiKey:    apiKey,
		baseURL:   "https://api.openrouteservice.org",
		profile:   ProfileDrivingCar,
		locations: locations,
		attempts:  4,
		backoff:   200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}
	if _, err := ParseORSProfile(string(o.profile)); err != nil {
		return nil, err
	}
	if o.attempts < 1 {
		return nil, fmt.Errorf("ORS retry attempts must be at least 1, got %d", o.attempts)
	}
	return o, nil
}

// matrixRequest is the body of POST /v2/matrix/{profile}. Only the first location
// is a source; distances come back in meters, durations in seconds.
type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Sources      []int       `json:"sources"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Units        string      `json:"units"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

func (o *ORSMatrixProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	if origin == "" || destination == "" {
		return ports.DistanceResult{}, errors.New("get ORS distance: origin and destination must be non-empty")
	}

	results, err := o.GetDistances(ctx, origin, []string{destination})
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("get ORS distance %q -> %q: %w", origin, destination, err)
	}
	r, ok := results[destination]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("no distance result for %q -> %q", origin, destination)
	}
	return r, nil
}

// GetDistances fetches one matrix row from origin to every destination.
func (o *ORSMatrixProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	if origin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	dests := make([]string, 0, len(destinations))
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		if d == origin {
			out[d] = ports.DistanceResult{}
			continue
		}
		dests = append(dests, d)
	}
	if len(dests) == 0 {
		return out, nil
	}

	coords, err := o.locations.Coordinates(ctx, append([]string{origin}, dests...))
	if err != nil {
		return nil, fmt.Errorf("resolve coordinates: %w", err)
	}
	originCoord, ok := coords[origin]
	if !ok {
		return nil, fmt.Errorf("missing coordinate for origin %q", origin)
	}
	destCoords := make([]domain.Coordinates, 0, len(dests))
	for _, d := range dests {
		c, ok := coords[d]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for destination %q", d)
		}
		destCoords = append(destCoords, c)
	}

	row, err := o.fetchMatrixRow(ctx, originCoord, dests, destCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}
	for k, v := range row {
		out[k] = v
	}
	return out, nil
}

func (o *ORSMatrixProvider) fetchMatrixRow(
	ctx context.Context,
	originCoord domain.Coordinates,
	destinations []string,
	destinationCoords []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	locations := make([][]float64, 0, 1+len(destinationCoords))
	locations = append(locations, originCoord.CoordsToList())
	destIdx := make([]int, 0, len(destinationCoords))
	for i, c := range destinationCoords {
		locations = append(locations, c.CoordsToList())
		destIdx = append(destIdx, i+1)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Sources:      []int{0},
		Destinations: destIdx,
		Metrics:      []string{"distance", "duration"},
		Units:        "m",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.postJSON(ctx, "/v2/matrix/"+string(o.profile), payload)
	if err != nil {
		return nil, fmt.Errorf("matrix request (%s): %w", o.profile, err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}
	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got distances=%d durations=%d", len(mr.Distances), len(mr.Durations))
	}
	rowDistances, rowDurations := mr.Distances[0], mr.Durations[0]
	if len(rowDistances) != len(destinations) || len(rowDurations) != len(destinations) {
		return nil, fmt.Errorf(
			"row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			len(rowDistances), len(rowDurations), len(destinations),
		)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for i, dest := range destinations {
		if rowDistances[i] == nil || rowDurations[i] == nil {
			return nil, fmt.Errorf("matrix returned no route to %q", dest)
		}
		// ORS metrics are floats; the matrix stores whole meters and seconds.
		out[dest] = ports.DistanceResult{
			DistanceMeters:  int(math.Round(*rowDistances[i])),
			DurationSeconds: int(math.Round(*rowDurations[i])),
		}
	}
	return out, nil
}
