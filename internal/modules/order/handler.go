package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/auth"
	"github.com/supermartlabs/supermart-backend/internal/modules/user"
)

type Handler struct {
	service   Service
	authWrap  func(http.Handler) http.Handler
	staffWrap func(http.Handler) http.Handler
}

func NewHandler(service Service, authWrap, staffWrap func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authWrap: authWrap, staffWrap: staffWrap}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(h.authWrap)
		r.Post("/checkout", h.checkout)
		r.Get("/", h.listOrders)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}/cancel", h.cancelOrder)
		r.With(h.staffWrap).Put("/{id}/status", h.updateStatus)
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	orderID, err := h.service.Checkout(r.Context(), id.UserID, req)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// listOrders returns the caller's own orders; staff see every order.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var (
		orders []*Order
		err    error
	)
	if staffRole(id.Role) {
		orders, err = h.service.ListAllOrders(r.Context())
	} else {
		orders, err = h.service.ListUserOrders(r.Context(), id.UserID)
	}
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	o, err := h.service.GetOrder(r.Context(), id.UserID, staffRole(id.Role), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if err := h.service.Cancel(r.Context(), id.UserID, chi.URLParam(r, "id")); err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "order cancelled"})
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, o)
}

func staffRole(role string) bool {
	return role == user.RoleAdmin || role == user.RoleCashier || role == user.RoleStorekeeper
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
