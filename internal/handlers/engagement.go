package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/middleware"
	"github.com/civicdesk/complaint-server/internal/services"
)

// EngagementHandler exposes like toggles and comments.
type EngagementHandler struct {
	engagementSvc *services.EngagementService
	logger        *zap.SugaredLogger
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(es *services.EngagementService, logger *zap.SugaredLogger) *EngagementHandler {
	return &EngagementHandler{engagementSvc: es, logger: logger}
}

// ToggleLike handles POST /api/v1/complaints/{id}/like
func (h *EngagementHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	state, err := h.engagementSvc.ToggleLike(r.Context(), id, actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// LikeStatus handles GET /api/v1/complaints/{id}/like
func (h *EngagementHandler) LikeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	state, err := h.engagementSvc.LikeStatus(r.Context(), id, actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// AddComment handles POST /api/v1/complaints/{id}/comments
func (h *EngagementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	comment, commentCount, err := h.engagementSvc.AddComment(r.Context(), id, actor, req.Body)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"comment":      comment,
		"commentCount": commentCount,
	})
}

// ListComments handles GET /api/v1/complaints/{id}/comments
func (h *EngagementHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	viewer := middleware.ActorFromContext(r.Context())
	comments, err := h.engagementSvc.ListComments(r.Context(), id, viewer)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}
