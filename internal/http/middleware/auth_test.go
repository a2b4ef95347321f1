package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"fleetops/internal/auth"
	"fleetops/internal/domain"
	testlog "fleetops/internal/testutil"
)

type stubTokens struct {
	claims *auth.Claims
	err    error
}

func (s stubTokens) Parse(string) (*auth.Claims, error) { return s.claims, s.err }

type stubUsers struct {
	user *domain.User
	err  error
}

func (s stubUsers) Get(context.Context, int64) (*domain.User, error) { return s.user, s.err }

func authFailures() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "failed authentications",
	})
}

func TestAuthenticator_ValidToken_PutsUserInContext(t *testing.T) {
	t.Parallel()

	want := &domain.User{ID: 42, Username: "alice", Role: domain.RoleAdmin}
	a := NewAuthenticator(
		stubTokens{claims: &auth.Claims{UserID: 42}},
		stubUsers{user: want},
		testlog.New().Logger(),
		nil,
	)

	var got *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()

	a.Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, want, got)
}

func TestAuthenticator_MissingHeader_Rejects(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	failures := authFailures()
	a := NewAuthenticator(stubTokens{}, stubUsers{}, rec.Logger(), failures)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()

	a.Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "Authentication failed", body["detail"])

	require.Equal(t, float64(1), testutil.ToFloat64(failures))

	entries := rec.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "warn", entries[0].Level)
	require.Equal(t, "authentication failed", entries[0].Msg)
}

func TestAuthenticator_WrongScheme_Rejects(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(stubTokens{}, stubUsers{}, testlog.New().Logger(), nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()

	a.Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_BadToken_Rejects(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(
		stubTokens{err: errors.New("token is malformed")},
		stubUsers{},
		testlog.New().Logger(),
		nil,
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()

	a.Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticator_DeletedUser_Rejects(t *testing.T) {
	t.Parallel()

	a := NewAuthenticator(
		stubTokens{claims: &auth.Claims{UserID: 42}},
		stubUsers{err: errors.New("not found")},
		testlog.New().Logger(),
		nil,
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	r.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()

	a.Handler()(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
