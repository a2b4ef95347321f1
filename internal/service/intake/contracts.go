package intake

import (
	"context"

	"fleetops/internal/domain"
)

// OrderPort abstracts the subset of order storage operations needed by
// Processor when handling intake events
type OrderPort interface {
	Create(ctx context.Context, o *domain.Order) error
}

// VehiclePort abstracts vehicle lookup for validating assigned vehicles
type VehiclePort interface {
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
}
