package user

import (
	"context"
	"strings"
	"time"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

// Service coordinates account business logic: registration, login,
// password possession proofs, role changes and deletion.
type Service struct {
	repo             userRepository
	tokens           tokenIssuer
	logger           logx.Logger
	operationTimeout time.Duration
}

// NewService creates and configures a user Service.
func NewService(r userRepository, tokens tokenIssuer, logger logx.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, tokens: tokens, logger: logger, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Role     domain.Role
	Password string
}

func validateRegister(in *RegisterInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if !domain.ValidateUsername(in.Username) {
		return apperr.ErrInvalid
	}
	if !domain.ValidateEmail(in.Email) {
		return apperr.ErrInvalid
	}
	if !in.Role.Valid() {
		return apperr.ErrInvalid
	}
	if !domain.ValidatePassword(in.Password) {
		return apperr.ErrInvalid
	}
	return nil
}

// Register creates a new account with a unique username and email.
// A username or email collision surfaces as apperr.ErrConflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := validateRegister(&in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:       in.Username,
		Email:          in.Email,
		Role:           in.Role,
		HashedPassword: hash,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		logx.Int64("user_id", u.ID),
		logx.String("role", string(u.Role)),
	)
	return u, nil
}

// Authenticate verifies credentials and issues an access token. Missing user
// and wrong password are deliberately indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || !auth.VerifyPassword(password, u.HashedPassword) {
		return "", apperr.ErrUnauthorized
	}
	return s.tokens.Issue(u.Username, u.ID)
}

// Get retrieves a user by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

// List returns users with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// ChangePassword replaces the actor's own password after re-verifying the
// current one. A wrong current password surfaces as apperr.ErrForbidden.
func (s *Service) ChangePassword(ctx context.Context, actor *domain.User, oldPassword, newPassword string) error {
	if !domain.ValidatePassword(newPassword) {
		return apperr.ErrInvalid
	}
	if !auth.VerifyPassword(oldPassword, actor.HashedPassword) {
		return apperr.ErrForbidden
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePassword(ctx, actor.ID, hash)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	return nil
}

// ChangeRole sets the role of the target user. Admin only; the target is
// resolved before the role check so an absent target surfaces as 404.
func (s *Service) ChangeRole(ctx context.Context, actor *domain.User, targetID int64, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperr.ErrInvalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	target, err := s.repo.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperr.ErrNotFound
	}
	if !auth.CanPerform(actor.Role, auth.ActionUserRoleChange) {
		return nil, apperr.ErrForbidden
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}

	s.logger.Info("user role changed",
		logx.Int64("user_id", updated.ID),
		logx.String("role", string(updated.Role)),
		logx.Int64("actor_id", actor.ID),
	)
	return updated, nil
}

// DeleteSelf removes the actor's own account after re-verifying the password.
// A wrong password surfaces as apperr.ErrUnauthorized. Owned vehicles and
// their orders are removed by cascade.
func (s *Service) DeleteSelf(ctx context.Context, actor *domain.User, password string) error {
	if !auth.VerifyPassword(password, actor.HashedPassword) {
		return apperr.ErrUnauthorized
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.Delete(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	s.logger.Info("user deleted", logx.Int64("user_id", actor.ID))
	return nil
}

// DeleteByID removes any user. Admin only; the target is resolved before the
// role check so an absent target surfaces as 404.
func (s *Service) DeleteByID(ctx context.Context, actor *domain.User, targetID int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	target, err := s.repo.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.ErrNotFound
	}
	if !auth.CanPerform(actor.Role, auth.ActionUserDelete) {
		return apperr.ErrForbidden
	}

	ok, err := s.repo.Delete(ctx, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrNotFound
	}
	s.logger.Info("user deleted",
		logx.Int64("user_id", targetID),
		logx.Int64("actor_id", actor.ID),
	)
	return nil
}
