package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
)

// Handler exposes catalog HTTP endpoints. Reads are public; writes are gated
// by the injected staff middleware.
type Handler struct {
	service Service
	staff   func(http.Handler) http.Handler
}

func NewHandler(service Service, staff func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, staff: staff}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.With(h.staff).Post("/products", h.createProduct)
		r.With(h.staff).Put("/products/{id}", h.updateProduct)
		r.With(h.staff).Delete("/products/{id}", h.deleteProduct)
		r.With(h.staff).Get("/low-stock", h.listLowStock)
		r.With(h.staff).Get("/expiring", h.listExpiring)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	activeOnly := r.URL.Query().Get("active") != "false"
	products, err := h.service.ListProducts(r.Context(), category, activeOnly)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *Handler) listLowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListLowStock(r.Context())
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) listExpiring(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	products, err := h.service.ListExpiring(r.Context(), days)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, products)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
