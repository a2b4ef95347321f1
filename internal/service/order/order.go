package order

import (
	"context"
	"fmt"
	"time"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

// ErrVehicleNotFound distinguishes a missing assigned vehicle from a missing
// order within the same operation.
var ErrVehicleNotFound = fmt.Errorf("vehicle: %w", apperr.ErrNotFound)

// StatusAlreadySetError rejects a no-op status transition. Its message is the
// user-facing detail.
type StatusAlreadySetError struct {
	Status domain.OrderStatus
}

func (e *StatusAlreadySetError) Error() string {
	return fmt.Sprintf("Order status is already set to '%s'.", e.Status)
}

func (e *StatusAlreadySetError) Unwrap() error { return apperr.ErrInvalidState }

// Service coordinates order business logic and orchestrates repository calls.
type Service struct {
	repo             orderRepository
	vehicles         vehicleResolver
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates and configures an order Service.
func NewService(r orderRepository, vehicles vehicleResolver, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, vehicles: vehicles, logger: logger, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates an order for creation. The delivery window bounds
// are not ordered against each other.
func validateCreate(o *domain.Order) error {
	if o == nil {
		return apperr.ErrInvalid
	}
	if len(o.Destination) < 3 {
		return apperr.ErrInvalid
	}
	if !o.Size.Valid() {
		return apperr.ErrInvalid
	}
	if !o.Status.Valid() {
		return apperr.ErrInvalid
	}
	if o.DeliveryWindowStart.IsZero() || o.DeliveryWindowEnd.IsZero() {
		return apperr.ErrInvalid
	}
	if o.VehicleID != nil && *o.VehicleID <= 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves an order by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	return o, nil
}

// List returns orders matching the filter, with optional pagination
func (s *Service) List(ctx context.Context, f domain.OrderFilter, limit, offset *int) ([]domain.Order, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f, limit, offset)
}

// Create persists a new order. Admin only. An assigned vehicle must exist;
// its current status is not checked.
func (s *Service) Create(ctx context.Context, actor *domain.User, o *domain.Order) (*domain.Order, error) {
	if err := validateCreate(o); err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.ActionOrderCreate) {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if o.VehicleID != nil {
		v, err := s.vehicles.Get(ctx, *o.VehicleID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, ErrVehicleNotFound
		}
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order created",
		logx.Int64("order_id", o.ID),
		logx.String("status", string(o.Status)),
	)
	return o, nil
}

// UpdateStatus transitions an order to a new status. Admin only. Any distinct
// status value is legal; setting the current value is rejected.
func (s *Service) UpdateStatus(ctx context.Context, actor *domain.User, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	if !auth.CanPerform(actor.Role, auth.ActionOrderStatusChange) {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.ErrNotFound
	}
	if o.Status == status {
		return nil, &StatusAlreadySetError{Status: o.Status}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	s.logger.Info("order status changed",
		logx.Int64("order_id", updated.ID),
		logx.String("status", string(updated.Status)),
	)
	return updated, nil
}

// Delete removes an order. Admin only.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !auth.CanPerform(actor.Role, auth.ActionOrderDelete) {
		return apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	s.logger.Info("order deleted",
		logx.Int64("order_id", id),
		logx.Int64("actor_id", actor.ID),
	)
	return nil
}
