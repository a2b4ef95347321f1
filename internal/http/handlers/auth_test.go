package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fleetops/internal/apperr"
	"fleetops/internal/domain"
	"fleetops/internal/http/handlers"
	"fleetops/internal/service/user"
)

type stubUserUsecase struct {
	registerFn       func(ctx context.Context, in user.RegisterInput) (*domain.User, error)
	authenticateFn   func(ctx context.Context, username, password string) (string, error)
	getFn            func(ctx context.Context, id int64) (*domain.User, error)
	listFn           func(ctx context.Context, limit, offset *int) ([]domain.User, error)
	changePasswordFn func(ctx context.Context, actor *domain.User, oldPassword, newPassword string) error
	changeRoleFn     func(ctx context.Context, actor *domain.User, targetID int64, role domain.Role) (*domain.User, error)
	deleteSelfFn     func(ctx context.Context, actor *domain.User, password string) error
	deleteByIDFn     func(ctx context.Context, actor *domain.User, targetID int64) error
}

func (s *stubUserUsecase) Register(ctx context.Context, in user.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserUsecase) Authenticate(ctx context.Context, username, password string) (string, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubUserUsecase) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserUsecase) List(ctx context.Context, limit, offset *int) ([]domain.User, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *stubUserUsecase) ChangePassword(ctx context.Context, actor *domain.User, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, actor, oldPassword, newPassword)
}

func (s *stubUserUsecase) ChangeRole(ctx context.Context, actor *domain.User, targetID int64, role domain.Role) (*domain.User, error) {
	return s.changeRoleFn(ctx, actor, targetID, role)
}

func (s *stubUserUsecase) DeleteSelf(ctx context.Context, actor *domain.User, password string) error {
	return s.deleteSelfFn(ctx, actor, password)
}

func (s *stubUserUsecase) DeleteByID(ctx context.Context, actor *domain.User, targetID int64) error {
	return s.deleteByIDFn(ctx, actor, targetID)
}

func TestAuthHandler_Register_Created(t *testing.T) {
	t.Parallel()

	uc := &stubUserUsecase{
		registerFn: func(ctx context.Context, in user.RegisterInput) (*domain.User, error) {
			require.Equal(t, "alice", in.Username)
			return &domain.User{
				ID:       7,
				Username: in.Username,
				Email:    in.Email,
				Role:     in.Role,
			}, nil
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	body := `{"username":"alice","email":"alice@example.com","role":"driver","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.EqualValues(t, 7, resp["id"])
	require.Equal(t, "alice", resp["username"])
	require.NotContains(t, resp, "password")
	require.NotContains(t, resp, "hashed_password")
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	t.Parallel()

	uc := &stubUserUsecase{
		registerFn: func(ctx context.Context, in user.RegisterInput) (*domain.User, error) {
			return nil, apperr.ErrConflict
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	body := `{"username":"alice","email":"alice@example.com","role":"driver","password":"pass123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "A user with this username or email already exists.", decodeDetail(t, rr))
}

func TestAuthHandler_Register_UnknownField(t *testing.T) {
	t.Parallel()

	h := handlers.NewAuthHandler(&stubUserUsecase{
		registerFn: func(ctx context.Context, in user.RegisterInput) (*domain.User, error) {
			require.FailNow(t, "usecase.Register should not be called")
			return nil, nil
		},
	}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"nope":1}`))
	rr := httptest.NewRecorder()

	h.Register(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_Login_OK(t *testing.T) {
	t.Parallel()

	uc := &stubUserUsecase{
		authenticateFn: func(ctx context.Context, username, password string) (string, error) {
			require.Equal(t, "alice", username)
			require.Equal(t, "pass123", password)
			return "token-abc", nil
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"alice","password":"pass123"}`))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"access_token":"token-abc","token_type":"bearer"}`, rr.Body.String())
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	uc := &stubUserUsecase{
		authenticateFn: func(ctx context.Context, username, password string) (string, error) {
			return "", apperr.ErrUnauthorized
		},
	}
	h := handlers.NewAuthHandler(uc, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "Invalid username or password. Please check your credentials and try again.", decodeDetail(t, rr))
}
