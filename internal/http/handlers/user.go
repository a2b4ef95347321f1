package handlers

import (
	"errors"
	"net/http"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
)

// UserHandler serves HTTP endpoints for user resources.
type UserHandler struct {
	uc  userUsecase
	log logx.Logger
}

// NewUserHandler wires a userUsecase into HTTP handlers.
func NewUserHandler(uc userUsecase, log logx.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

func (h *UserHandler) actor(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	u, ok := auth.UserFrom(r.Context())
	if !ok || u == nil {
		writeError(h.log, w, r, http.StatusUnauthorized, "Authentication failed")
		return nil, false
	}
	return u, true
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := h.actor(w, r)
	if !ok {
		return
	}
	writeJSON(h.log, w, r, http.StatusOK, userToResponse(*u))
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pageFromQuery(h.log, w, r)
	if !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.uc.List(ctx, limit, offset)
	if err != nil {
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.log, w, r, http.StatusOK, usersToResponse(list))
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	u, err := h.uc.Get(ctx, id)
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, userToResponse(*u))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified user could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ChangePassword handles PUT /users/password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req changePasswordRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	err := h.uc.ChangePassword(ctx, actor, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, map[string]string{
			"status":  "success",
			"message": "Password has been updated successfully.",
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "The old password you entered is incorrect.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified user could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ChangeRole handles PUT /users/{id}/role.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req changeRoleRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	u, err := h.uc.ChangeRole(ctx, actor, id, domain.Role(req.Role))
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, userToResponse(*u))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified user could not be found.")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// DeleteMe handles DELETE /users/me. The current password is re-verified.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req deleteSelfRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	err := h.uc.DeleteSelf(ctx, actor, req.Password)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.log, w, r, http.StatusUnauthorized, "The password you entered is incorrect.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified user could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// DeleteByID handles DELETE /users/{id}.
func (h *UserHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	err = h.uc.DeleteByID(ctx, actor, id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified user could not be found.")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}
