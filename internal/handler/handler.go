package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/4rnv/safebalance/internal/models"
	"github.com/4rnv/safebalance/internal/service"
	"github.com/4rnv/safebalance/internal/statement"
)

type Handler struct {
	svc        *service.Service
	statements *statement.Parser
	log        *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{
		svc:        svc,
		statements: statement.NewParser(),
		log:        log,
	}
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Aadhaar  string `json:"aadhaar"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Phone == "" || req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "phone and password are required")
		return
	}

	user := &models.User{
		Name:    req.Name,
		Phone:   req.Phone,
		Aadhaar: req.Aadhaar,
		Email:   req.Email,
	}
	if err := h.svc.Register(r.Context(), user, req.Password); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service sentinel errors onto HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAccountNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists), errors.Is(err, service.ErrAccountExists):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInsufficientBalance):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, err.Error())
	default:
		h.log.Errorf("Internal error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
