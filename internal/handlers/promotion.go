package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/middleware"
	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/services"
)

// PromotionHandler exposes the senior-promotion request workflow.
type PromotionHandler struct {
	promotionSvc *services.PromotionService
	logger       *zap.SugaredLogger
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(ps *services.PromotionService, logger *zap.SugaredLogger) *PromotionHandler {
	return &PromotionHandler{promotionSvc: ps, logger: logger}
}

// Submit handles POST /api/v1/staff/promotions
func (h *PromotionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.PromotionSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	request, err := h.promotionSvc.Submit(r.Context(), actor, &req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

// List handles GET /api/v1/admin/promotions
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	list, stats, err := h.promotionSvc.List(r.Context(), actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": list,
		"stats":    stats,
	})
}

// Approve handles POST /api/v1/admin/promotions/{id}/approve
func (h *PromotionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	request, err := h.promotionSvc.Approve(r.Context(), id, actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}

// Reject handles POST /api/v1/admin/promotions/{id}/reject
func (h *PromotionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	request, err := h.promotionSvc.Reject(r.Context(), id, actor, req.Reason)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, request)
}
