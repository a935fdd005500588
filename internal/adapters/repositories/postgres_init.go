package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the Postgres tables used by the service.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		shipment_id TEXT PRIMARY KEY,
		size TEXT NOT NULL,
		pickup_location TEXT NOT NULL REFERENCES locations(location_id),
		delivery_location TEXT NOT NULL REFERENCES locations(location_id),
		pickup_earliest DOUBLE PRECISION NOT NULL DEFAULT 0,
		pickup_latest DOUBLE PRECISION,
		delivery_earliest DOUBLE PRECISION NOT NULL DEFAULT 0,
		delivery_latest DOUBLE PRECISION,
		pickup_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
		delivery_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
		required_skills TEXT NOT NULL DEFAULT ''
	);
	`

	createTravelMatrixQuery := `
	CREATE TABLE IF NOT EXISTS travel_matrix (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_travel_matrix_destination_origin
	ON travel_matrix(destination, origin);
	`

	statements := []string{
		createLocationsQuery,
		createShipmentsQuery,
		createTravelMatrixQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	LocationID string  `json:"location_id"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
}

// ShipmentSeed mirrors a shipments row; a nil latest bound means an open window.
type ShipmentSeed struct {
	ShipmentID       string   `json:"shipment_id"`
	Size             []int    `json:"size"`
	PickupLocation   string   `json:"pickup_location"`
	DeliveryLocation string   `json:"delivery_location"`
	PickupEarliest   float64  `json:"pickup_earliest"`
	PickupLatest     *float64 `json:"pickup_latest"`
	DeliveryEarliest float64  `json:"delivery_earliest"`
	DeliveryLatest   *float64 `json:"delivery_latest"`
	PickupDuration   float64  `json:"pickup_duration"`
	DeliveryDuration float64  `json:"delivery_duration"`
	RequiredSkills   []string `json:"required_skills"`
}

type Seed struct {
	Locations []LocationSeed `json:"locations"`
	Shipments []ShipmentSeed `json:"shipments"`
}

func (s Seed) validate() error {
	known := make(map[string]struct{}, len(s.Locations))
	for i, l := range s.Locations {
		if strings.TrimSpace(l.LocationID) == "" {
			return fmt.Errorf("location at index %d: id cannot be empty", i+1)
		}
		known[l.LocationID] = struct{}{}
	}
	for i, sh := range s.Shipments {
		if strings.TrimSpace(sh.ShipmentID) == "" {
			return fmt.Errorf("shipment at index %d: id cannot be empty", i+1)
		}
		for _, loc := range []string{sh.PickupLocation, sh.DeliveryLocation} {
			if _, ok := known[loc]; !ok {
				return fmt.Errorf("shipment %s: unknown location %q", sh.ShipmentID, loc)
			}
		}
		for _, v := range sh.Size {
			if v < 0 {
				return fmt.Errorf("shipment %s: negative size %v", sh.ShipmentID, sh.Size)
			}
		}
	}
	return nil
}

// SeedFromJSON upserts the locations and shipments listed in a JSON seed file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}
	if err := data.validate(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range data.Locations {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO locations (location_id, lon, lat)
		VALUES ($1, $2, $3)
		ON CONFLICT (location_id) DO UPDATE
		SET lon = EXCLUDED.lon, lat = EXCLUDED.lat;
		`, l.LocationID, l.Lon, l.Lat); err != nil {
			return fmt.Errorf("seed: insert location_id=%s: %w", l.LocationID, err)
		}
	}

	for _, s := range data.Shipments {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO shipments (
			shipment_id, size, pickup_location, delivery_location,
			pickup_earliest, pickup_latest, delivery_earliest, delivery_latest,
			pickup_duration, delivery_duration, required_skills
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (shipment_id) DO UPDATE
		SET size = EXCLUDED.size,
			pickup_location = EXCLUDED.pickup_location,
			delivery_location = EXCLUDED.delivery_location,
			pickup_earliest = EXCLUDED.pickup_earliest,
			pickup_latest = EXCLUDED.pickup_latest,
			delivery_earliest = EXCLUDED.delivery_earliest,
			delivery_latest = EXCLUDED.delivery_latest,
			pickup_duration = EXCLUDED.pickup_duration,
			delivery_duration = EXCLUDED.delivery_duration,
			required_skills = EXCLUDED.required_skills;
		`,
			s.ShipmentID, sizeColumn(s.Size), s.PickupLocation, s.DeliveryLocation,
			s.PickupEarliest, s.PickupLatest, s.DeliveryEarliest, s.DeliveryLatest,
			s.PickupDuration, s.DeliveryDuration, strings.Join(s.RequiredSkills, ","),
		); err != nil {
			return fmt.Errorf("seed: insert shipment_id=%s: %w", s.ShipmentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
