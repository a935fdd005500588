package distance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"route-insertion-service/internal/domain"
)

type staticDirectory map[string]domain.Coordinates

func (d staticDirectory) Coordinates(_ context.Context, ids []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, len(ids))
	for _, id := range ids {
		if c, ok := d[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func newTestORS(t *testing.T, handler http.HandlerFunc, opts ...ORSOption) *ORSMatrixProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]ORSOption{WithBaseURL(srv.URL), WithRetry(4, time.Millisecond)}, opts...)
	p, err := NewORSMatrixProvider("test-key", staticDirectory{
		"depot":  {Lon: 1, Lat: 2},
		"market": {Lon: 3, Lat: 4},
		"clinic": {Lon: 5, Lat: 6},
	}, opts...)
	require.NoError(t, err)
	return p
}

func TestORSMatrixProviderFetchesRow(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/matrix/driving-car", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		var req matrixRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, [][]float64{{1, 2}, {3, 4}, {5, 6}}, req.Locations)
		assert.Equal(t, []int{0}, req.Sources)
		assert.Equal(t, []int{1, 2}, req.Destinations)
		assert.Equal(t, []string{"distance", "duration"}, req.Metrics)
		assert.Equal(t, "m", req.Units)

		_, _ = w.Write([]byte(`{"distances":[[1200.4,800.6]],"durations":[[180.2,95.5]]}`))
	})

	got, err := p.GetDistances(context.Background(), "depot", []string{"market", "clinic", "depot"})
	require.NoError(t, err)
	assert.Equal(t, 1200, got["market"].DistanceMeters)
	assert.Equal(t, 801, got["clinic"].DistanceMeters)
	assert.Equal(t, 96, got["clinic"].DurationSeconds)
	assert.Zero(t, got["depot"].DistanceMeters)
}

func TestORSMatrixProviderRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int64
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Inc() == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"distances":[[10]],"durations":[[2]]}`))
	})

	r, err := p.GetDistance(context.Background(), "depot", "market")
	require.NoError(t, err)
	assert.Equal(t, 10, r.DistanceMeters)
	assert.Equal(t, int64(2), calls.Load())
}

func TestORSMatrixProviderDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Inc()
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, err := p.GetDistance(context.Background(), "depot", "market")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Equal(t, int64(1), calls.Load())
}

func TestORSMatrixProviderUsesConfiguredProfile(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/matrix/driving-hgv", r.URL.Path)
		_, _ = w.Write([]byte(`{"distances":[[10]],"durations":[[2]]}`))
	}, WithProfile(ProfileDrivingHGV))

	_, err := p.GetDistance(context.Background(), "depot", "market")
	require.NoError(t, err)
}

func TestORSMatrixProviderHonorsRetryAfter(t *testing.T) {
	var calls atomic.Int64
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Inc() == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Rate Limit Exceeded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"distances":[[10]],"durations":[[2]]}`))
	}, WithRetry(2, time.Hour))

	_, err := p.GetDistance(context.Background(), "depot", "market")
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestORSMatrixProviderReportsRequestErrorsWithoutRetry(t *testing.T) {
	var calls atomic.Int64
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Inc()
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":6004,"message":"Request parameters exceed the server configuration limits."}}`))
	})

	_, err := p.GetDistance(context.Background(), "depot", "market")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 6004")
	assert.Contains(t, err.Error(), "exceed the server configuration limits")
	assert.Equal(t, int64(1), calls.Load())
}

func TestORSErrorTransience(t *testing.T) {
	assert.True(t, (&orsError{Status: http.StatusInternalServerError}).transient())
	assert.True(t, (&orsError{Status: http.StatusInternalServerError, Code: orsUnknownError}).transient())
	assert.False(t, (&orsError{Status: http.StatusInternalServerError, Code: 6003}).transient())
	assert.True(t, (&orsError{Status: http.StatusGatewayTimeout}).transient())
	assert.False(t, (&orsError{Status: http.StatusNotFound}).transient())
}

func TestNewORSMatrixProviderValidatesOptions(t *testing.T) {
	dir := staticDirectory{}

	_, err := NewORSMatrixProvider("k", dir, WithProfile("driving-tank"))
	assert.ErrorContains(t, err, "unknown ORS profile")

	_, err = NewORSMatrixProvider("k", dir, WithRetry(0, time.Second))
	assert.Error(t, err)

	_, err = NewORSMatrixProvider("", dir)
	assert.Error(t, err)
}

func TestParseORSProfile(t *testing.T) {
	p, err := ParseORSProfile(" Driving-HGV ")
	require.NoError(t, err)
	assert.Equal(t, ProfileDrivingHGV, p)

	_, err = ParseORSProfile("hovercraft")
	assert.Error(t, err)
}

func TestORSMatrixProviderRejectsUnroutablePairs(t *testing.T) {
	p := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"distances":[[null]],"durations":[[null]]}`))
	})

	_, err := p.GetDistance(context.Background(), "depot", "market")
	assert.Error(t, err)

	_, err = p.GetDistance(context.Background(), "depot", "unknown")
	assert.ErrorContains(t, err, "missing coordinate")
}

func TestMockDistanceProvider(t *testing.T) {
	p := NewSymmetricMockDistanceProvider([]MockPair{{From: "A", To: "B", Meters: 5, Seconds: 1}})

	r, err := p.GetDistance(context.Background(), "B", "A")
	require.NoError(t, err)
	assert.Equal(t, 5, r.DistanceMeters)

	_, err = p.GetDistances(context.Background(), "A", []string{"C"})
	assert.Error(t, err)
	assert.Equal(t, int64(2), p.Calls())
}
