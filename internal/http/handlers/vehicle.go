package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
	"fleetops/internal/service/vehicle"
)

// VehicleHandler serves HTTP endpoints for vehicle resources.
type VehicleHandler struct {
	uc  vehicleUsecase
	log logx.Logger
}

// NewVehicleHandler wires a vehicleUsecase into HTTP handlers.
func NewVehicleHandler(uc vehicleUsecase, log logx.Logger) *VehicleHandler {
	return &VehicleHandler{uc: uc, log: log}
}

func (h *VehicleHandler) actor(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	u, ok := auth.UserFrom(r.Context())
	if !ok || u == nil {
		writeError(h.log, w, r, http.StatusUnauthorized, "Authentication failed")
		return nil, false
	}
	return u, true
}

func vehicleFilterFromQuery(l logx.Logger, w http.ResponseWriter, r *http.Request) (domain.VehicleFilter, bool) {
	var f domain.VehicleFilter
	q := r.URL.Query()
	if s := q.Get("driver_id"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			writeError(l, w, r, http.StatusBadRequest, "invalid driver_id")
			return f, false
		}
		f.DriverID = &v
	}
	if s := q.Get("type"); s != "" {
		t := domain.VehicleType(s)
		if !t.Valid() {
			writeError(l, w, r, http.StatusBadRequest, "invalid type")
			return f, false
		}
		f.Type = &t
	}
	if s := q.Get("capacity_kg"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			writeError(l, w, r, http.StatusBadRequest, "invalid capacity_kg")
			return f, false
		}
		f.CapacityKg = &v
	}
	if s := q.Get("status"); s != "" {
		st := domain.VehicleStatus(s)
		if !st.Valid() {
			writeError(l, w, r, http.StatusBadRequest, "invalid status")
			return f, false
		}
		f.Status = &st
	}
	return f, true
}

// List handles GET /vehicles.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := vehicleFilterFromQuery(h.log, w, r)
	if !ok {
		return
	}
	limit, offset, ok := pageFromQuery(h.log, w, r)
	if !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	list, err := h.uc.List(ctx, f, limit, offset)
	if err != nil {
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(h.log, w, r, http.StatusOK, vehiclesToResponse(list))
}

// GetByID handles GET /vehicles/{id}.
func (h *VehicleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	v, err := h.uc.Get(ctx, id)
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, vehicleToResponse(*v))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified vehicle could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Create handles POST /vehicles.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req createVehicleRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	v, err := h.uc.Create(ctx, actor, &domain.Vehicle{
		LicensePlate: req.LicensePlate,
		Type:         domain.VehicleType(req.Type),
		CapacityKg:   req.CapacityKg,
		Status:       domain.VehicleStatus(req.Status),
		DriverID:     req.DriverID,
	})
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusCreated, vehicleToResponse(*v))
	case errors.Is(err, vehicle.ErrDriverNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified driver could not be found.")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.log, w, r, http.StatusBadRequest, "A vehicle with this license plate already exists.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// UpdateStatus handles PUT /vehicles/{id}/status.
func (h *VehicleHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req changeVehicleStatusRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	v, err := h.uc.UpdateStatus(ctx, actor, id, domain.VehicleStatus(req.Status))
	var already *vehicle.StatusAlreadySetError
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, vehicleToResponse(*v))
	case errors.As(err, &already):
		writeError(h.log, w, r, http.StatusBadRequest, already.Error())
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified vehicle could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// ChangeDriver handles PUT /vehicles/{id}/driver.
func (h *VehicleHandler) ChangeDriver(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req changeVehicleDriverRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	v, err := h.uc.ChangeDriver(ctx, actor, id, req.DriverID)
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, vehicleToResponse(*v))
	case errors.Is(err, vehicle.ErrSameDriver):
		writeError(h.log, w, r, http.StatusBadRequest, "This vehicle is already assigned to the specified driver.")
	case errors.Is(err, vehicle.ErrDriverNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified driver could not be found.")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified vehicle could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Delete handles DELETE /vehicles/{id}. Orders on the vehicle are removed.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	err = h.uc.Delete(ctx, actor, id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified vehicle could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}
