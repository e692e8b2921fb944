package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/4rnv/safebalance/internal/models"
)

// CreateTransaction books a deposit or withdrawal against an account
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if tx.AccountID == "" {
		h.respondError(w, http.StatusBadRequest, "acct_id is required")
		return
	}
	if tx.Amount <= 0 {
		h.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	switch tx.Type {
	case models.TransactionDeposit, models.TransactionWithdrawal:
	default:
		h.respondError(w, http.StatusBadRequest, "type must be deposit or withdrawal")
		return
	}
	if tx.Source == "" {
		tx.Source = models.SourceUPI
	}

	if err := h.svc.CreateTransaction(r.Context(), &tx); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, tx)
}

// ListTransactions returns an account's transactions, newest first
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	acctID := mux.Vars(r)["acct_id"]
	skip := queryUint(r, "skip", 0)
	limit := queryUint(r, "limit", 10)

	txs, err := h.svc.ListTransactions(r.Context(), acctID, skip, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	h.respondJSON(w, http.StatusOK, txs)
}

// ImportStatement parses an uploaded bank-statement XML and books every
// entry it contains against the given account
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	acctID := r.URL.Query().Get("acct_id")
	if acctID == "" {
		h.respondError(w, http.StatusBadRequest, "acct_id query parameter is required")
		return
	}

	txs, err := h.statements.Parse(r.Body, acctID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	booked := 0
	for i := range txs {
		if err := h.svc.CreateTransaction(r.Context(), &txs[i]); err != nil {
			h.log.Errorf("Failed to book statement entry %d for account %s: %v", i+1, acctID, err)
			h.respondJSON(w, http.StatusMultiStatus, map[string]interface{}{
				"booked": booked,
				"failed": len(txs) - booked,
				"error":  err.Error(),
			})
			return
		}
		booked++
	}
	h.respondJSON(w, http.StatusCreated, map[string]int{"booked": booked})
}

func queryUint(r *http.Request, key string, fallback uint64) uint64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
