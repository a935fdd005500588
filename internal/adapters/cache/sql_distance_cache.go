package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
)

// SQLDistanceCache is the Postgres-backed DistanceCache over the travel_matrix
// table. Rows never expire; it is the long-lived tier behind Redis.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

func (s *SQLDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.sql.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("sql distance cache: db is nil")
	}
	if origin == "" {
		return nil, errors.New("sql distance cache: origin must not be empty")
	}
	uniq := uniqueNonEmpty(destinations)
	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT destination, distance_meters, duration_seconds
	FROM travel_matrix
	WHERE origin = $1
		AND destination = ANY($2::text[]);
	`, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("sql distance cache: query travel_matrix: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.DistanceResult, len(uniq))
	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("sql distance cache: scan row: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sql distance cache: row iteration: %w", err)
	}
	return out, nil
}

// PutMany upserts results for origin in one transaction.
func (s *SQLDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if s.DB == nil {
		return errors.New("sql distance cache: db is nil")
	}
	if origin == "" {
		return errors.New("sql distance cache: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sql distance cache: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_matrix (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)
	if err != nil {
		return fmt.Errorf("sql distance cache: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("sql distance cache: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("sql distance cache: upsert %q -> %q: %w", origin, dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sql distance cache: commit tx: %w", err)
	}
	return nil
}
