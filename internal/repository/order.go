package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"fleetops/internal/domain"
)

// OrderRepo represents order repository.
type OrderRepo struct{ db *pgxpool.Pool }

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, created_at, updated_at, destination, size, priority,
       delivery_window_start, delivery_window_end, status, vehicle_id`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.Destination, &o.Size, &o.Priority,
		&o.DeliveryWindowStart, &o.DeliveryWindowEnd, &o.Status, &o.VehicleID)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Get - returns order by its ID.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

// List returns orders matching the filter, ordered by id. Each non-nil
// filter field adds an exact-match predicate; predicates combine with AND.
func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter, limit, offset *int) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders`
	args := make([]any, 0, 5)

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
	if f.Destination != nil {
		addPredicate("destination", *f.Destination)
	}
	if f.Size != nil {
		addPredicate("size", *f.Size)
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
	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Create persists a new order and fills in server-generated fields.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO orders(destination,size,priority,delivery_window_start,delivery_window_end,status,vehicle_id)
         VALUES($1,$2,$3,$4,$5,$6,$7)
         RETURNING id, created_at, updated_at`,
		o.Destination, o.Size, o.Priority, o.DeliveryWindowStart, o.DeliveryWindowEnd, o.Status, o.VehicleID,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// UpdateStatus sets an order's status, refreshes updated_at and returns the
// updated record, or nil if the order does not exist.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx,
		`UPDATE orders SET status=$2, updated_at=now() WHERE id=$1 RETURNING `+orderColumns,
		id, status))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update order status %d: %w", id, err)
	}
	return o, nil
}

// Delete removes an order. Returns true if a row was deleted.
func (r *OrderRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
