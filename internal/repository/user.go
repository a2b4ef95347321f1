package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"fleetops/internal/apperr"
	"fleetops/internal/domain"
)

// UserRepo represents user repository.
type UserRepo struct{ db *pgxpool.Pool }

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, created_at, username, email, role, hashed_password`

// Get - returns user by its ID.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id,
	).Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.Role, &u.HashedPassword)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// GetByUsername returns a user by exact username match.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username,
	).Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.Role, &u.HashedPassword)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username %q: %w", username, err)
	}
	return &u, nil
}

// GetDriver returns a user by ID only if their role is driver.
func (r *UserRepo) GetDriver(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1 AND role='driver'`, id,
	).Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.Role, &u.HashedPassword)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return &u, nil
}

// List returns users ordered by id. If limit/offset are nil, returns the full list.
func (r *UserRepo) List(ctx context.Context, limit, offset *int) ([]domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.Role, &u.HashedPassword); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Create persists a new user and fills in server-generated fields.
// Duplicate username or email surfaces as apperr.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users(username,email,role,hashed_password) VALUES($1,$2,$3,$4)
         RETURNING id, created_at`,
		u.Username, u.Email, u.Role, u.HashedPassword,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash. Returns true if a row was updated.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE users SET hashed_password=$2 WHERE id=$1`, id, hash)
	if err != nil {
		return false, fmt.Errorf("update password for user %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateRole sets a user's role and returns the refreshed record, or nil if absent.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx,
		`UPDATE users SET role=$2 WHERE id=$1 RETURNING `+userColumns,
		id, role,
	).Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.Role, &u.HashedPassword)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update role for user %d: %w", id, err)
	}
	return &u, nil
}

// Delete removes a user. Owned vehicles and their orders go with it via
// ON DELETE CASCADE. Returns true if a row was deleted.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
