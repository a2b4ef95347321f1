package handlers

import (
	"errors"
	"net/http"

	"fleetops/internal/apperr"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
	"fleetops/internal/service/user"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	uc  userUsecase
	log logx.Logger
}

// NewAuthHandler wires a userUsecase into auth HTTP handlers.
func NewAuthHandler(uc userUsecase, log logx.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Register handles POST /auth.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	u, err := h.uc.Register(ctx, user.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     domain.Role(req.Role),
		Password: req.Password,
	})
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusCreated, userToResponse(*u))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.log, w, r, http.StatusConflict, "A user with this username or email already exists.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Login handles POST /auth/token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	token, err := h.uc.Authenticate(ctx, req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.log, w, r, http.StatusUnauthorized, "Invalid username or password. Please check your credentials and try again.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}
