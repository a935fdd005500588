package ports

import (
	"context"

	"route-insertion-service/internal/domain"
)

// Port: a boundary for retrieving Shipment entities from a data source.
type ShipmentRepository interface {
	// Retrieve all shipments waiting to be routed.
	ListShipments(ctx context.Context) ([]*domain.Shipment, error)
}

// Port: resolves location IDs to coordinates for providers that route on coordinates.
type LocationDirectory interface {
	Coordinates(ctx context.Context, locationIDs []string) (map[string]domain.Coordinates, error)
}
