package inventory

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
	"github.com/supermartlabs/supermart-backend/internal/modules/auth"
)

type Handler struct {
	service Service
	staff   func(http.Handler) http.Handler
}

func NewHandler(service Service, staff func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, staff: staff}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/inventory", func(r chi.Router) {
		r.Use(h.staff)
		r.Put("/products/{id}/stock", h.adjustStock)
		r.Get("/products/{id}/history", h.productHistory)
		r.Get("/history", h.history)
	})
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, _ := auth.IdentityFrom(r.Context())
	change, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), req, id.UserID)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, change)
}

func (h *Handler) productHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ProductHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, entries)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.service.History(r.Context(), limit)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, entries)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
