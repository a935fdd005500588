package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/platform/obs"
)

// SQLLocationRepository resolves location ids to coordinates (LocationDirectory port).
type SQLLocationRepository struct{ DB *sql.DB }

func NewSQLLocationRepository(db *sql.DB) *SQLLocationRepository {
	return &SQLLocationRepository{DB: db}
}

// Coordinates returns the known coordinates for ids; unknown ids are absent.
func (r *SQLLocationRepository) Coordinates(
	ctx context.Context,
	locationIDs []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "locations.Coordinates")(&err)

	if r.DB == nil {
		return nil, errors.New("sql location repository: DB is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(locationIDs))
	for _, id := range locationIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT location_id, lon, lat
	FROM locations
	WHERE location_id = ANY($1::text[]);
	`, uniq)
	if err != nil {
		return nil, fmt.Errorf("location coordinates: query locations table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var id string
		var c domain.Coordinates
		if err := rows.Scan(&id, &c.Lon, &c.Lat); err != nil {
			return nil, fmt.Errorf("location coordinates: scan row: %w", err)
		}
		out[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("location coordinates: row iteration: %w", err)
	}

	return out, nil
}
