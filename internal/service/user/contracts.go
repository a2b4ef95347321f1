package user

import (
	"context"

	"fleetops/internal/domain"
)

// userRepository defines storage operations required by the business layer.
type userRepository interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, limit, offset *int) ([]domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, id int64, hash string) (bool, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// tokenIssuer abstracts the token service used on successful login.
type tokenIssuer interface {
	Issue(username string, userID int64) (string, error)
}
