// Package handlers contains HTTP request handlers for the complaint API.
// Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/middleware"
	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/services"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// ComplaintHandler handles complaint submission and read endpoints
type ComplaintHandler struct {
	complaintSvc *services.ComplaintService
	logger       *zap.SugaredLogger
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(cs *services.ComplaintService, logger *zap.SugaredLogger) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: cs, logger: logger}
}

// Submit handles POST /api/v1/complaints
func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ComplaintSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	complaint, err := h.complaintSvc.Create(r.Context(), actor, &req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, complaint)
}

// Get handles GET /api/v1/complaints/{id}
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	viewer := middleware.ActorFromContext(r.Context())
	complaint, err := h.complaintSvc.Get(r.Context(), viewer, id)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, complaint)
}

// PublicFeed handles GET /api/v1/complaints/public
func (h *ComplaintHandler) PublicFeed(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ActorFromContext(r.Context())
	list, err := h.complaintSvc.PublicFeed(r.Context(), viewer)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Mine handles GET /api/v1/complaints/mine
func (h *ComplaintHandler) Mine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	list, err := h.complaintSvc.Mine(r.Context(), actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// Stats handles GET /api/v1/admin/stats
func (h *ComplaintHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	stats, err := h.complaintSvc.Stats(r.Context(), actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the business-rule error taxonomy onto HTTP
// statuses. Unknown errors are treated as store failures.
func respondDomainError(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	kind := "remote_failure"
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, workflow.ErrValidation):
		kind, status = "validation_error", http.StatusBadRequest
	case errors.Is(err, workflow.ErrUnauthorized):
		kind, status = "unauthorized", http.StatusForbidden
	case errors.Is(err, workflow.ErrNotFound):
		kind, status = "not_found", http.StatusNotFound
	case errors.Is(err, workflow.ErrInvalidTransition):
		kind, status = "invalid_transition", http.StatusConflict
	case errors.Is(err, workflow.ErrAlreadyEscalated):
		kind, status = "already_escalated", http.StatusConflict
	case errors.Is(err, workflow.ErrAlreadyResolved):
		kind, status = "already_resolved", http.StatusConflict
	case errors.Is(err, workflow.ErrToggleInProgress):
		kind, status = "toggle_in_progress", http.StatusConflict
	default:
		logger.Errorw("Store operation failed", "error", err)
		respondJSON(w, status, map[string]string{"kind": kind, "error": "Internal error"})
		return
	}

	respondJSON(w, status, map[string]string{"kind": kind, "error": err.Error()})
}
