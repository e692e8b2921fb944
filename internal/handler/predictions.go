package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// PredictRisk runs the payment-risk classification for a user
func (h *Handler) PredictRisk(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	result, err := h.svc.PredictPaymentRisk(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

// PredictIncome returns the 7-day income forecast for a user
func (h *Handler) PredictIncome(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	result := h.svc.PredictWeeklyIncome(r.Context(), userID)
	h.respondJSON(w, http.StatusOK, result)
}

// GetBuffer returns the stored weekly expense buffer for a user
func (h *Handler) GetBuffer(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	account, err := h.svc.GetAccountByUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"buffer":  account.Buffer,
	})
}

// RefreshBuffer recalculates and stores the weekly expense buffer
func (h *Handler) RefreshBuffer(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	update, err := h.svc.UpdateBufferForUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !update.Updated {
		h.respondError(w, http.StatusNotFound, "account not found")
		return
	}
	h.respondJSON(w, http.StatusOK, update)
}
