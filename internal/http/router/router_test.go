package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"
	"fleetops/internal/http/middleware/ratelimit"
	"fleetops/internal/http/router"
	"fleetops/internal/logx"
	"fleetops/internal/service/user"
)

type stubUserUsecase struct {
	me *domain.User
}

func (s stubUserUsecase) Register(context.Context, user.RegisterInput) (*domain.User, error) {
	return nil, apperr.ErrInvalid
}

func (s stubUserUsecase) Authenticate(context.Context, string, string) (string, error) {
	return "", apperr.ErrUnauthorized
}

func (s stubUserUsecase) Get(context.Context, int64) (*domain.User, error) {
	return s.me, nil
}

func (s stubUserUsecase) List(context.Context, *int, *int) ([]domain.User, error) {
	return []domain.User{}, nil
}

func (s stubUserUsecase) ChangePassword(context.Context, *domain.User, string, string) error {
	return nil
}

func (s stubUserUsecase) ChangeRole(context.Context, *domain.User, int64, domain.Role) (*domain.User, error) {
	return nil, apperr.ErrNotFound
}

func (s stubUserUsecase) DeleteSelf(context.Context, *domain.User, string) error {
	return nil
}

func (s stubUserUsecase) DeleteByID(context.Context, *domain.User, int64) error {
	return nil
}

type stubVehicleUsecase struct{}

func (stubVehicleUsecase) Get(context.Context, int64) (*domain.Vehicle, error) {
	return nil, apperr.ErrNotFound
}

func (stubVehicleUsecase) List(context.Context, domain.VehicleFilter, *int, *int) ([]domain.Vehicle, error) {
	return []domain.Vehicle{}, nil
}

func (stubVehicleUsecase) Create(context.Context, *domain.User, *domain.Vehicle) (*domain.Vehicle, error) {
	return nil, apperr.ErrForbidden
}

func (stubVehicleUsecase) UpdateStatus(context.Context, *domain.User, int64, domain.VehicleStatus) (*domain.Vehicle, error) {
	return nil, apperr.ErrNotFound
}

func (stubVehicleUsecase) ChangeDriver(context.Context, *domain.User, int64, int64) (*domain.Vehicle, error) {
	return nil, apperr.ErrNotFound
}

func (stubVehicleUsecase) Delete(context.Context, *domain.User, int64) error {
	return apperr.ErrNotFound
}

type stubOrderUsecase struct{}

func (stubOrderUsecase) Get(context.Context, int64) (*domain.Order, error) {
	return nil, apperr.ErrNotFound
}

func (stubOrderUsecase) List(context.Context, domain.OrderFilter, *int, *int) ([]domain.Order, error) {
	return []domain.Order{}, nil
}

func (stubOrderUsecase) Create(context.Context, *domain.User, *domain.Order) (*domain.Order, error) {
	return nil, apperr.ErrForbidden
}

func (stubOrderUsecase) UpdateStatus(context.Context, *domain.User, int64, domain.OrderStatus) (*domain.Order, error) {
	return nil, apperr.ErrNotFound
}

func (stubOrderUsecase) Delete(context.Context, *domain.User, int64) error {
	return apperr.ErrNotFound
}

type stubTokens struct {
	claims *auth.Claims
	err    error
}

func (s stubTokens) Parse(string) (*auth.Claims, error) { return s.claims, s.err }

type stubUsers struct {
	user *domain.User
}

func (s stubUsers) Get(context.Context, int64) (*domain.User, error) { return s.user, nil }

type denyAll struct{}

func (denyAll) Allow(string) bool { return false }

func newTestRouter(t *testing.T, limiter ratelimit.Limiter) http.Handler {
	t.Helper()

	me := &domain.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@fleet.test",
		Role:      domain.RoleAdmin,
		CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	log := logx.Nop()

	return router.New(router.Deps{
		Logger:        log,
		Handlers:      handlers.New(log),
		Auth:          handlers.NewAuthHandler(stubUserUsecase{me: me}, log),
		Users:         handlers.NewUserHandler(stubUserUsecase{me: me}, log),
		Vehicles:      handlers.NewVehicleHandler(stubVehicleUsecase{}, log),
		Orders:        handlers.NewOrderHandler(stubOrderUsecase{}, log),
		Authenticator: middleware.NewAuthenticator(stubTokens{claims: &auth.Claims{UserID: 1}}, stubUsers{user: me}, log, nil),
		LoginLimiter:  ratelimit.New(log, nil, limiter),
	})
}

func TestRouter_Ping(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"message":"pong"}`, rr.Body.String())
}

func TestRouter_HealthcheckHead(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/healthcheck", nil))

	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil)

	for _, path := range []string{"/users/me", "/users", "/vehicles", "/orders"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusUnauthorized, rr.Code, "path %s", path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body), "path %s", path)
		require.Equal(t, "Authentication failed", body["detail"], "path %s", path)
	}
}

func TestRouter_BearerTokenReachesProtectedRoute(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, nil)
	rr := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Equal(t, "alice", body["username"])
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t, denyAll{})
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/token", nil))

	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}
