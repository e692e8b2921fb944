package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/4rnv/safebalance/internal/models"
)

// GetUser returns a user's profile
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["user_id"]
	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}

// CreateAccount opens a virtual account for a user
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  string  `json:"user_id"`
		Balance float64 `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	account := &models.Account{UserID: req.UserID, Balance: req.Balance}
	if err := h.svc.CreateAccount(r.Context(), account); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, account)
}

// GetAccountByUser returns the virtual account of a user
func (h *Handler) GetAccountByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	account, err := h.svc.GetAccountByUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, account)
}

// CreateScheduledPayment registers a recurring obligation
func (h *Handler) CreateScheduledPayment(w http.ResponseWriter, r *http.Request) {
	var payment models.ScheduledPayment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payment.UserID == "" || payment.Particulars == "" {
		h.respondError(w, http.StatusBadRequest, "user_id and particulars are required")
		return
	}
	if payment.Amount <= 0 {
		h.respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	switch payment.Occurrence {
	case models.OccurrenceWeekly, models.OccurrenceMonthly, models.OccurrenceAnnual:
	default:
		h.respondError(w, http.StatusBadRequest, "occurrence must be weekly, monthly or annual")
		return
	}
	if payment.Importance == "" {
		payment.Importance = models.ImportanceNormal
	}

	if err := h.svc.CreateScheduledPayment(r.Context(), &payment); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, payment)
}

// ListScheduledPayments returns a user's recurring obligations
func (h *Handler) ListScheduledPayments(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	payments, err := h.svc.ListScheduledPayments(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if payments == nil {
		payments = []models.ScheduledPayment{}
	}
	h.respondJSON(w, http.StatusOK, payments)
}

// DeleteScheduledPayment removes a recurring obligation
func (h *Handler) DeleteScheduledPayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	deleted, err := h.svc.DeleteScheduledPayment(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "scheduled payment not found")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateQuestionnaire stores the onboarding answers
func (h *Handler) CreateQuestionnaire(w http.ResponseWriter, r *http.Request) {
	var q models.Questionnaire
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if q.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.svc.CreateQuestionnaire(r.Context(), &q); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, q)
}

// GetQuestionnaireByUser returns a user's onboarding answers
func (h *Handler) GetQuestionnaireByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	q, err := h.svc.GetQuestionnaireByUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if q == nil {
		h.respondError(w, http.StatusNotFound, "questionnaire not found")
		return
	}
	h.respondJSON(w, http.StatusOK, q)
}

// ListInsights returns a user's advisory insights, newest first
func (h *Handler) ListInsights(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	insights, err := h.svc.ListInsights(r.Context(), userID, unreadOnly)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if insights == nil {
		insights = []models.Insight{}
	}
	h.respondJSON(w, http.StatusOK, insights)
}

// MarkInsightRead flags an insight as read
func (h *Handler) MarkInsightRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["insight_id"]
	updated, err := h.svc.MarkInsightRead(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if !updated {
		h.respondError(w, http.StatusNotFound, "insight not found")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
