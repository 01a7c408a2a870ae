package adaptor

import (
	"net/http"
	"time"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/trxview"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	service usecase.TransactionService
	loc     *time.Location
	log     *zap.Logger
}

func NewTransactionHandler(service usecase.TransactionService, loc *time.Location, log *zap.Logger) *TransactionHandler {
	if loc == nil {
		loc = time.Local
	}
	return &TransactionHandler{
		service: service,
		loc:     loc,
		log:     log.With(zap.String("handler", "transaction")),
	}
}

// listRequest reads status, search, startDate, endDate, sortBy and page.
// Unknown or malformed values fall back to their defaults.
func (h *TransactionHandler) listRequest(r *http.Request) *request.TransactionListRequest {
	query := r.URL.Query()
	return &request.TransactionListRequest{
		Filter: trxview.ParseQuery(query, h.loc),
		Page:   trxview.ParsePage(query),
	}
}

// Create handles POST /api/v1/transactions
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trx, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create transaction")
		return
	}

	utils.ResponseCreated(w, "Transaction created", trx)
}

// GetMine handles GET /api/v1/my-transactions
func (h *TransactionHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	list, err := h.service.GetMine(r.Context(), userID, h.listRequest(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get my transactions")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// GetAll handles GET /api/v1/admin/transactions
func (h *TransactionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.GetAll(r.Context(), h.listRequest(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get all transactions")
		return
	}

	utils.ResponseSuccess(w, "success", list)
}

// GetByID handles GET /api/v1/transactions/{id}
func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(w, r)
	if !ok {
		return
	}

	trx, err := h.service.GetByID(r.Context(), userID, role, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get transaction")
		return
	}

	utils.ResponseSuccess(w, "success", trx)
}

// UpdateProof handles PUT /api/v1/transactions/{id}/proof-payment
func (h *TransactionHandler) UpdateProof(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateProofRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trx, err := h.service.UpdateProof(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update proof of payment")
		return
	}

	utils.ResponseSuccess(w, "Proof of payment uploaded", trx)
}

// UpdateStatus handles PUT /api/v1/admin/transactions/{id}/status
func (h *TransactionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trx, err := h.service.UpdateStatus(r.Context(), adminID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update transaction status")
		return
	}

	utils.ResponseSuccess(w, "Transaction status updated", trx)
}
