package ports

import "context"

// Travel distance and duration between two location IDs.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving road distance and duration between locations.
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin string, destination string) (DistanceResult, error)
}

// Optional extension of DistanceProvider answering one-to-many lookups in a single call.
type DistanceMatrixProvider interface {
	DistanceProvider
	GetDistances(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
}

// PairKey is the "origin|destination" key used by matrices and caches.
func PairKey(origin, destination string) string { return origin + "|" + destination }

// Persistent or shared storage for distance results of one origin to many destinations.
// Missing pairs are simply absent from the returned map.
type DistanceCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]DistanceResult) error
}
