package handlers

import (
	"context"

	"fleetops/internal/domain"
	"fleetops/internal/service/order"
	"fleetops/internal/service/user"
	"fleetops/internal/service/vehicle"
)

type userUsecase interface {
	Register(ctx context.Context, in user.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset *int) ([]domain.User, error)
	ChangePassword(ctx context.Context, actor *domain.User, oldPassword, newPassword string) error
	ChangeRole(ctx context.Context, actor *domain.User, targetID int64, role domain.Role) (*domain.User, error)
	DeleteSelf(ctx context.Context, actor *domain.User, password string) error
	DeleteByID(ctx context.Context, actor *domain.User, targetID int64) error
}

// NewUserUsecase wires a user Service into a userUsecase.
func NewUserUsecase(svc *user.Service) userUsecase {
	return svc
}

type vehicleUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context, f domain.VehicleFilter, limit, offset *int) ([]domain.Vehicle, error)
	Create(ctx context.Context, actor *domain.User, v *domain.Vehicle) (*domain.Vehicle, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id int64, status domain.VehicleStatus) (*domain.Vehicle, error)
	ChangeDriver(ctx context.Context, actor *domain.User, id, driverID int64) (*domain.Vehicle, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

// NewVehicleUsecase wires a vehicle Service into a vehicleUsecase.
func NewVehicleUsecase(svc *vehicle.Service) vehicleUsecase {
	return svc
}

type orderUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter, limit, offset *int) ([]domain.Order, error)
	Create(ctx context.Context, actor *domain.User, o *domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id int64, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

// NewOrderUsecase wires an order Service into an orderUsecase.
func NewOrderUsecase(svc *order.Service) orderUsecase {
	return svc
}
