package handlers

import (
	"errors"
	"net/http"
	"time"

	"fleetops/internal/apperr"
	"fleetops/internal/auth"
	"fleetops/internal/domain"
	"fleetops/internal/logx"
	"fleetops/internal/service/order"
)

// OrderHandler serves HTTP endpoints for order resources.
type OrderHandler struct {
	uc  orderUsecase
	log logx.Logger
}

// NewOrderHandler wires an orderUsecase into HTTP handlers.
func NewOrderHandler(uc orderUsecase, log logx.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

func (h *OrderHandler) actor(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	u, ok := auth.UserFrom(r.Context())
	if !ok || u == nil {
		writeError(h.log, w, r, http.StatusUnauthorized, "Authentication failed")
		return nil, false
	}
	return u, true
}

func orderFilterFromQuery(l logx.Logger, w http.ResponseWriter, r *http.Request) (domain.OrderFilter, bool) {
	var f domain.OrderFilter
	q := r.URL.Query()
	if s := q.Get("destination"); s != "" {
		f.Destination = &s
	}
	if s := q.Get("size"); s != "" {
		sz := domain.OrderSize(s)
		if !sz.Valid() {
			writeError(l, w, r, http.StatusBadRequest, "invalid size")
			return f, false
		}
		f.Size = &sz
	}
	if s := q.Get("status"); s != "" {
		st := domain.OrderStatus(s)
		if !st.Valid() {
			writeError(l, w, r, http.StatusBadRequest, "invalid status")
			return f, false
		}
		f.Status = &st
	}
	return f, true
}

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := orderFilterFromQuery(h.log, w, r)
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
	writeJSON(h.log, w, r, http.StatusOK, ordersToResponse(list))
}

// GetByID handles GET /orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	o, err := h.uc.Get(ctx, id)
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, orderToResponse(*o))
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified order could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Create handles POST /orders. Delivery window bounds are parsed before any
// policy or storage work.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	var req createOrderRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}

	start, err := time.Parse(windowTime, req.DeliveryWindowStart)
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid delivery_window_start")
		return
	}
	end, err := time.Parse(windowTime, req.DeliveryWindowEnd)
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid delivery_window_end")
		return
	}
	status := domain.OrderStatus(req.Status)
	if req.Status == "" {
		status = domain.OrderPending
	}

	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	o, err := h.uc.Create(ctx, actor, &domain.Order{
		Destination:         req.Destination,
		Size:                domain.OrderSize(req.Size),
		Priority:            req.Priority,
		DeliveryWindowStart: start,
		DeliveryWindowEnd:   end,
		Status:              status,
		VehicleID:           req.VehicleID,
	})
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusCreated, orderToResponse(*o))
	case errors.Is(err, order.ErrVehicleNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified vehicle could not be found.")
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// UpdateStatus handles PUT /orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.log, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	var req changeOrderStatusRequest
	if ok := decodeJSON(h.log, w, r, &req); !ok {
		return
	}
	ctx, cancel := withDBTimeout(r.Context())
	defer cancel()

	o, err := h.uc.UpdateStatus(ctx, actor, id, domain.OrderStatus(req.Status))
	var already *order.StatusAlreadySetError
	switch {
	case err == nil:
		writeJSON(h.log, w, r, http.StatusOK, orderToResponse(*o))
	case errors.As(err, &already):
		writeError(h.log, w, r, http.StatusBadRequest, already.Error())
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.log, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrForbidden):
		writeError(h.log, w, r, http.StatusForbidden, "You are not authorized to perform this action.")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.log, w, r, http.StatusNotFound, "The specified order could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Delete handles DELETE /orders/{id}.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeError(h.log, w, r, http.StatusNotFound, "The specified order could not be found.")
	default:
		writeError(h.log, w, r, http.StatusInternalServerError, "internal error")
	}
}
