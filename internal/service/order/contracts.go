package order

import (
	"context"

	"fleetops/internal/domain"
)

type orderRepository interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter, limit, offset *int) ([]domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type vehicleResolver interface {
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
}
