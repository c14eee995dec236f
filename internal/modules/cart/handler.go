package cart

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/auth"
)

type Handler struct {
	service  Service
	authWrap func(http.Handler) http.Handler
}

func NewHandler(service Service, authWrap func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authWrap: authWrap}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(h.authWrap)
		r.Get("/", h.getCart)
		r.Post("/", h.addItem)
		r.Put("/{productId}", h.updateItem)
		r.Delete("/{productId}", h.removeItem)
		r.Delete("/", h.clearCart)
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	c, err := h.service.GetCart(r.Context(), id.UserID)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	c, err := h.service.AddItem(r.Context(), id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Quantity int `json:"quantity"`
	}
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	c, err := h.service.UpdateItem(r.Context(), id.UserID, chi.URLParam(r, "productId"), req.Quantity)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	c, err := h.service.RemoveItem(r.Context(), id.UserID, chi.URLParam(r, "productId"))
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	c, err := h.service.ClearCart(r.Context(), id.UserID)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, c)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
