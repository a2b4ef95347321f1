package vehicle

import (
	"context"
	"fmt"
	"time"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

// ErrDriverNotFound distinguishes a missing driver from a missing vehicle
// within the same operation.
var ErrDriverNotFound = fmt.Errorf("driver: %w", apperr.ErrNotFound)

// ErrSameDriver is returned when reassigning a vehicle to its current driver.
var ErrSameDriver = fmt.Errorf("same driver: %w", apperr.ErrInvalidState)

// StatusAlreadySetError rejects a no-op status transition. Its message is the
// user-facing detail.
type StatusAlreadySetError struct {
	Status domain.VehicleStatus
}

func (e *StatusAlreadySetError) Error() string {
	return fmt.Sprintf("Vehicle status is already set to '%s'.", e.Status)
}

func (e *StatusAlreadySetError) Unwrap() error { return apperr.ErrInvalidState }

// Service coordinates vehicle business logic and orchestrates repository calls.
type Service struct {
	repo             vehicleRepository
	drivers          driverResolver
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates and configures a vehicle Service.
func NewService(r vehicleRepository, drivers driverResolver, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, drivers: drivers, logger: logger, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a vehicle for creation.
func validateCreate(v *domain.Vehicle) error {
	if v == nil {
		return apperr.ErrInvalid
	}
	if !domain.ValidateLicensePlate(v.LicensePlate) {
		return apperr.ErrInvalid
	}
	if !v.Type.Valid() {
		return apperr.ErrInvalid
	}
	if v.CapacityKg <= 0 {
		return apperr.ErrInvalid
	}
	if !v.Status.Valid() {
		return apperr.ErrInvalid
	}
	if v.DriverID <= 0 {
		return apperr.ErrInvalid
	}
	return nil
}

// Get retrieves a vehicle by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.ErrNotFound
	}
	return v, nil
}

// List returns vehicles matching the filter, with optional pagination
func (s *Service) List(ctx context.Context, f domain.VehicleFilter, limit, offset *int) ([]domain.Vehicle, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f, limit, offset)
}

// Create persists a new vehicle assigned to an existing driver. Admin only.
// A duplicate license plate surfaces as apperr.ErrConflict.
func (s *Service) Create(ctx context.Context, actor *domain.User, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := validateCreate(v); err != nil {
		return nil, err
	}
	if !auth.CanPerform(actor.Role, auth.ActionVehicleCreate) {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driver, err := s.drivers.GetDriver(ctx, v.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	s.logger.Info("vehicle created",
		logx.Int64("vehicle_id", v.ID),
		logx.Int64("driver_id", v.DriverID),
	)
	return v, nil
}

// UpdateStatus transitions a vehicle to a new status. Admin only. Any distinct
// status value is legal; setting the current value is rejected.
func (s *Service) UpdateStatus(ctx context.Context, actor *domain.User, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
	if !status.Valid() {
		return nil, apperr.ErrInvalid
	}
	if !auth.CanPerform(actor.Role, auth.ActionVehicleStatusChange) {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.ErrNotFound
	}
	if v.Status == status {
		return nil, &StatusAlreadySetError{Status: v.Status}
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	s.logger.Info("vehicle status changed",
		logx.Int64("vehicle_id", updated.ID),
		logx.String("status", string(updated.Status)),
	)
	return updated, nil
}

// ChangeDriver reassigns a vehicle to another existing driver. Admin only.
// Reassignment to the current driver is rejected.
func (s *Service) ChangeDriver(ctx context.Context, actor *domain.User, id, driverID int64) (*domain.Vehicle, error) {
	if driverID <= 0 {
		return nil, apperr.ErrInvalid
	}
	if !auth.CanPerform(actor.Role, auth.ActionVehicleDriverChange) {
		return nil, apperr.ErrForbidden
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	v, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, apperr.ErrNotFound
	}
	if v.DriverID == driverID {
		return nil, ErrSameDriver
	}

	driver, err := s.drivers.GetDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}

	updated, err := s.repo.UpdateDriver(ctx, id, driverID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	s.logger.Info("vehicle driver changed",
		logx.Int64("vehicle_id", updated.ID),
		logx.Int64("driver_id", updated.DriverID),
	)
	return updated, nil
}

// Delete removes a vehicle and, by cascade, its orders. Admin only.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !auth.CanPerform(actor.Role, auth.ActionVehicleDelete) {
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
	s.logger.Info("vehicle deleted",
		logx.Int64("vehicle_id", id),
		logx.Int64("actor_id", actor.ID),
	)
	return nil
}
