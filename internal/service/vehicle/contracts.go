package vehicle

import (
	"context"

	"fleetops/internal/domain"
)

// vehicleRepository defines storage operations required by the business layer.
type vehicleRepository interface {
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context, f domain.VehicleFilter, limit, offset *int) ([]domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error)
	UpdateDriver(ctx context.Context, id, driverID int64) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// driverResolver resolves a user ID to a user with role=driver, or nil.
type driverResolver interface {
	GetDriver(ctx context.Context, id int64) (*domain.User, error)
}
