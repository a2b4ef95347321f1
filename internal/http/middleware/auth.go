package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

type tokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type userReader interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator verifies bearer tokens and loads the current user. The user
// row is re-read on every request so role changes apply immediately.
type Authenticator struct {
	tokens   tokenParser
	users    userReader
	logger   logx.Logger
	failures prometheus.Counter
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens tokenParser, users userReader, logger logx.Logger, failures prometheus.Counter) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger, failures: failures}
}

const authReadTimeout = 3 * time.Second

// Handler returns chi-style middleware.
func (a *Authenticator) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := a.authenticate(r)
			if !ok {
				a.reject(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

func (a *Authenticator) authenticate(r *http.Request) (*domain.User, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, false
	}

	claims, err := a.tokens.Parse(token)
	if err != nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), authReadTimeout)
	defer cancel()

	u, err := a.users.Get(ctx, claims.UserID)
	if err != nil || u == nil {
		return nil, false
	}
	return u, true
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request) {
	if a.failures != nil {
		a.failures.Inc()
	}
	a.logger.Warn("authentication failed",
		logx.String("method", r.Method),
		logx.String("path", r.URL.Path),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Authentication failed"})
}
