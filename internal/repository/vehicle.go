package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"fleetops/internal/apperr"
	"fleetops/internal/domain"
)

// VehicleRepo represents vehicle repository.
type VehicleRepo struct{ db *pgxpool.Pool }

// NewVehicleRepo creates a new VehicleRepo.
func NewVehicleRepo(db *pgxpool.Pool) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleColumns = `id, created_at, updated_at, license_plate, type, capacity_kg, status, driver_id`

func scanVehicle(row interface{ Scan(...any) error }) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.LicensePlate, &v.Type,
		&v.CapacityKg, &v.Status, &v.DriverID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Get - returns vehicle by its ID.
func (r *VehicleRepo) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return v, nil
}

// List returns vehicles matching the filter, ordered by id. Each non-nil
// filter field adds an exact-match predicate; predicates combine with AND.
func (r *VehicleRepo) List(ctx context.Context, f domain.VehicleFilter, limit, offset *int) ([]domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles`
	args := make([]any, 0, 6)

	where := ""
	addPredicate := func(col string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, val)
		where += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if f.DriverID != nil {
		addPredicate("driver_id", *f.DriverID)
	}
	if f.Type != nil {
		addPredicate("type", *f.Type)
	}
	if f.CapacityKg != nil {
		addPredicate("capacity_kg", *f.CapacityKg)
	}
	if f.Status != nil {
		addPredicate("status", *f.Status)
	}
	q += where + " ORDER BY id"

	if limit != nil {
		args = append(args, *limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset != nil {
		args = append(args, *offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// Create persists a new vehicle and fills in server-generated fields.
// Duplicate license plate surfaces as apperr.ErrConflict.
func (r *VehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO vehicles(license_plate,type,capacity_kg,status,driver_id)
         VALUES($1,$2,$3,$4,$5)
         RETURNING id, created_at, updated_at`,
		v.LicensePlate, v.Type, v.CapacityKg, v.Status, v.DriverID,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// UpdateStatus sets a vehicle's status, refreshes updated_at and returns the
// updated record, or nil if the vehicle does not exist.
func (r *VehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx,
		`UPDATE vehicles SET status=$2, updated_at=now() WHERE id=$1 RETURNING `+vehicleColumns,
		id, status))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update vehicle status %d: %w", id, err)
	}
	return v, nil
}

// UpdateDriver reassigns a vehicle to another driver, refreshes updated_at
// and returns the updated record, or nil if the vehicle does not exist.
func (r *VehicleRepo) UpdateDriver(ctx context.Context, id, driverID int64) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(ctx,
		`UPDATE vehicles SET driver_id=$2, updated_at=now() WHERE id=$1 RETURNING `+vehicleColumns,
		id, driverID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update vehicle driver %d: %w", id, err)
	}
	return v, nil
}

// Delete removes a vehicle. Its orders go with it via ON DELETE CASCADE.
// Returns true if a row was deleted.
func (r *VehicleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
