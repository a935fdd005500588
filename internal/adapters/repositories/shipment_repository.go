package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"route-insertion-service/internal/domain"
	"route-insertion-service/internal/platform/obs"
)

// Postgres-backed implementation of the ShipmentRepository port.
type SQLShipmentRepository struct{ DB *sql.DB }

func NewSQLShipmentRepository(db *sql.DB) *SQLShipmentRepository {
	return &SQLShipmentRepository{DB: db}
}

// ListShipments returns every stored shipment ordered by id, with coordinates
// joined from the locations table.
func (r *SQLShipmentRepository) ListShipments(ctx context.Context) (_ []*domain.Shipment, err error) {
	defer obs.Time(ctx, "shipments.List")(&err)

	if r.DB == nil {
		return nil, errors.New("sql shipment repository: DB is nil")
	}

	query := `
	SELECT
		s.shipment_id, s.size,
		s.pickup_location, pl.lon, pl.lat,
		s.delivery_location, dl.lon, dl.lat,
		s.pickup_earliest, s.pickup_latest,
		s.delivery_earliest, s.delivery_latest,
		s.pickup_duration, s.delivery_duration,
		s.required_skills
	FROM shipments s
	JOIN locations pl ON pl.location_id = s.pickup_location
	JOIN locations dl ON dl.location_id = s.delivery_location
	ORDER BY s.shipment_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shipments: query shipments table: %w", err)
	}
	defer rows.Close()

	shipments := make([]*domain.Shipment, 0, 64)
	for rows.Next() {
		var (
			s                            domain.Shipment
			size, skills                 string
			pickupLatest, deliveryLatest sql.NullFloat64
		)
		if err := rows.Scan(
			&s.ShipmentID, &size,
			&s.PickupLocation.ID, &s.PickupLocation.Coords.Lon, &s.PickupLocation.Coords.Lat,
			&s.DeliveryLocation.ID, &s.DeliveryLocation.Coords.Lon, &s.DeliveryLocation.Coords.Lat,
			&s.PickupWindow.Earliest, &pickupLatest,
			&s.DeliveryWindow.Earliest, &deliveryLatest,
			&s.PickupDuration, &s.DeliveryDuration,
			&skills,
		); err != nil {
			return nil, fmt.Errorf("list shipments: scan row: %w", err)
		}

		s.Size, err = domain.ParseCapacity(size)
		if err != nil {
			return nil, fmt.Errorf("list shipments: shipment_id=%s: %w", s.ShipmentID, err)
		}
		s.PickupWindow.Latest = latestOrOpen(pickupLatest)
		s.DeliveryWindow.Latest = latestOrOpen(deliveryLatest)
		if skills != "" {
			s.RequiredSkills = domain.NewSkills(strings.Split(skills, ",")...)
		}
		shipments = append(shipments, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shipments: row iteration: %w", err)
	}

	return shipments, nil
}

func latestOrOpen(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.MaxFloat64
	}
	return v.Float64
}

func sizeColumn(size []int) string {
	return domain.NewCapacity(size...).String()
}
