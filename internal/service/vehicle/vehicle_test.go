package vehicle

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetops/internal/apperr"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

type mockVehicleRepo struct {
	getFn          func(ctx context.Context, id int64) (*domain.Vehicle, error)
	listFn         func(ctx context.Context, f domain.VehicleFilter, limit, offset *int) ([]domain.Vehicle, error)
	createFn       func(ctx context.Context, v *domain.Vehicle) error
	updateStatusFn func(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error)
	updateDriverFn func(ctx context.Context, id, driverID int64) (*domain.Vehicle, error)
	deleteFn       func(ctx context.Context, id int64) (bool, error)
}

func (m *mockVehicleRepo) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return m.getFn(ctx, id)
}

func (m *mockVehicleRepo) List(ctx context.Context, f domain.VehicleFilter, limit, offset *int) ([]domain.Vehicle, error) {
	return m.listFn(ctx, f, limit, offset)
}

func (m *mockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	return m.createFn(ctx, v)
}

func (m *mockVehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockVehicleRepo) UpdateDriver(ctx context.Context, id, driverID int64) (*domain.Vehicle, error) {
	return m.updateDriverFn(ctx, id, driverID)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return m.deleteFn(ctx, id)
}

type mockDrivers struct {
	getDriverFn func(ctx context.Context, id int64) (*domain.User, error)
}

func (m *mockDrivers) GetDriver(ctx context.Context, id int64) (*domain.User, error) {
	return m.getDriverFn(ctx, id)
}

var (
	admin  = &domain.User{ID: 1, Role: domain.RoleAdmin}
	driver = &domain.User{ID: 2, Role: domain.RoleDriver}
)

func newTestService(repo *mockVehicleRepo, drivers *mockDrivers) *Service {
	return NewService(repo, drivers, logx.Nop(), time.Second)
}

func validCreate() *domain.Vehicle {
	return &domain.Vehicle{
		LicensePlate: "AB123CD",
		Type:         domain.VehicleTypeVan,
		CapacityKg:   800,
		Status:       domain.VehicleAvailable,
		DriverID:     2,
	}
}

func TestCreate_OK(t *testing.T) {
	t.Parallel()

	repo := &mockVehicleRepo{
		createFn: func(ctx context.Context, v *domain.Vehicle) error {
			v.ID = 5
			return nil
		},
	}
	drivers := &mockDrivers{
		getDriverFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleDriver}, nil
		},
	}
	s := newTestService(repo, drivers)

	v, err := s.Create(context.Background(), admin, validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.ID != 5 {
		t.Fatalf("want id 5, got %d", v.ID)
	}
}

func TestCreate_DriverForbidden(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{}, &mockDrivers{})

	_, err := s.Create(context.Background(), driver, validCreate())
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestCreate_DriverNotFound(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		createFn: func(ctx context.Context, v *domain.Vehicle) error {
			t.Fatal("repo.Create must not be called")
			return nil
		},
	}, &mockDrivers{
		getDriverFn: func(ctx context.Context, id int64) (*domain.User, error) { return nil, nil },
	})

	_, err := s.Create(context.Background(), admin, validCreate())
	if !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("want ErrDriverNotFound, got %v", err)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatal("ErrDriverNotFound must unwrap to ErrNotFound")
	}
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{}, &mockDrivers{})

	cases := []func(*domain.Vehicle){
		func(v *domain.Vehicle) { v.LicensePlate = "ab" },
		func(v *domain.Vehicle) { v.Type = "hovercraft" },
		func(v *domain.Vehicle) { v.CapacityKg = 0 },
		func(v *domain.Vehicle) { v.Status = "parked" },
		func(v *domain.Vehicle) { v.DriverID = 0 },
	}
	for i, mutate := range cases {
		v := validCreate()
		mutate(v)
		if _, err := s.Create(context.Background(), admin, v); !errors.Is(err, apperr.ErrInvalid) {
			t.Fatalf("case %d: want ErrInvalid, got %v", i, err)
		}
	}
}

func TestUpdateStatus_SameStatusRejected(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, Status: domain.VehicleAvailable}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
			t.Fatal("repo.UpdateStatus must not be called")
			return nil, nil
		},
	}, &mockDrivers{})

	_, err := s.UpdateStatus(context.Background(), admin, 5, domain.VehicleAvailable)

	var already *StatusAlreadySetError
	if !errors.As(err, &already) {
		t.Fatalf("want StatusAlreadySetError, got %v", err)
	}
	if got := already.Error(); got != "Vehicle status is already set to 'available'." {
		t.Fatalf("unexpected message: %q", got)
	}
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatal("StatusAlreadySetError must unwrap to ErrInvalidState")
	}
}

func TestUpdateStatus_OK(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, Status: domain.VehicleAvailable}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, Status: status}, nil
		},
	}, &mockDrivers{})

	v, err := s.UpdateStatus(context.Background(), admin, 5, domain.VehicleMaintenance)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if v.Status != domain.VehicleMaintenance {
		t.Fatalf("want maintenance, got %s", v.Status)
	}
}

func TestUpdateStatus_DriverForbidden(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{}, &mockDrivers{})

	_, err := s.UpdateStatus(context.Background(), driver, 5, domain.VehicleMaintenance)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestChangeDriver_SameDriverRejected(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, DriverID: 2}, nil
		},
	}, &mockDrivers{})

	_, err := s.ChangeDriver(context.Background(), admin, 5, 2)
	if !errors.Is(err, ErrSameDriver) {
		t.Fatalf("want ErrSameDriver, got %v", err)
	}
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatal("ErrSameDriver must unwrap to ErrInvalidState")
	}
}

func TestChangeDriver_NewDriverNotFound(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, DriverID: 2}, nil
		},
	}, &mockDrivers{
		getDriverFn: func(ctx context.Context, id int64) (*domain.User, error) { return nil, nil },
	})

	_, err := s.ChangeDriver(context.Background(), admin, 5, 3)
	if !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("want ErrDriverNotFound, got %v", err)
	}
}

func TestChangeDriver_OK(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		getFn: func(ctx context.Context, id int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, DriverID: 2}, nil
		},
		updateDriverFn: func(ctx context.Context, id, driverID int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, DriverID: driverID}, nil
		},
	}, &mockDrivers{
		getDriverFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Role: domain.RoleDriver}, nil
		},
	})

	v, err := s.ChangeDriver(context.Background(), admin, 5, 3)
	if err != nil {
		t.Fatalf("ChangeDriver: %v", err)
	}
	if v.DriverID != 3 {
		t.Fatalf("want driver 3, got %d", v.DriverID)
	}
}

func TestDelete_DriverForbidden(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) {
			t.Fatal("repo.Delete must not be called")
			return false, nil
		},
	}, &mockDrivers{})

	if err := s.Delete(context.Background(), driver, 5); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockVehicleRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}, &mockDrivers{})

	if err := s.Delete(context.Background(), admin, 5); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
