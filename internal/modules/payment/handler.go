package payment

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/supermartlabs/supermart-backend/internal/apperrors"
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
	r.Route("/api/transactions", func(r chi.Router) {
		r.Use(h.authWrap)
		r.Post("/", h.recordPayment)
		r.With(h.staffWrap).Get("/", h.listAll)
		r.With(h.staffWrap).Get("/order/{orderId}", h.listByOrder)
	})
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.service.RecordPayment(r.Context(), req)
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusCreated, t)
}

func (h *Handler) listAll(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListAllTransactions(r.Context())
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, txs)
}

func (h *Handler) listByOrder(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListOrderTransactions(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		http.Error(w, apperrors.Message(err), apperrors.HTTPStatus(err))
		return
	}
	respond(w, http.StatusOK, txs)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
