package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/middleware"
	"github.com/civicdesk/complaint-server/internal/services"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// WorkflowHandler exposes the admin lifecycle actions and the staff
// queues.
type WorkflowHandler struct {
	workflowSvc *services.WorkflowService
	auditSvc    *services.AuditService
	logger      *zap.SugaredLogger
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(ws *services.WorkflowService, as *services.AuditService, logger *zap.SugaredLogger) *WorkflowHandler {
	return &WorkflowHandler{workflowSvc: ws, auditSvc: as, logger: logger}
}

func complaintID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// TransitionStatus handles PUT /api/v1/admin/complaints/{id}/status
func (h *WorkflowHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	var req struct {
		Status workflow.ComplaintStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "A valid target status is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	complaint, err := h.workflowSvc.TransitionStatus(r.Context(), id, req.Status, actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

// AssignEmployee handles PUT /api/v1/admin/complaints/{id}/assign
func (h *WorkflowHandler) AssignEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	var req struct {
		EmployeeID uuid.UUID `json:"assignEmployeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.EmployeeID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "assignEmployeeId is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	complaint, err := h.workflowSvc.AssignEmployee(r.Context(), id, req.EmployeeID, actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

// Escalate handles POST /api/v1/admin/complaints/{id}/escalate
func (h *WorkflowHandler) Escalate(w http.ResponseWriter, r *http.Request) {
	id, ok := complaintID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid complaint id")
		return
	}

	var req struct {
		SeniorID uuid.UUID `json:"seniorId"`
		Reason   string    `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SeniorID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "seniorId is required")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	complaint, err := h.workflowSvc.Escalate(r.Context(), id, req.SeniorID, req.Reason, actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

// Queue handles GET /api/v1/staff/queue
func (h *WorkflowHandler) Queue(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	list, err := h.workflowSvc.Queue(r.Context(), actor)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// RecentAudit handles GET /api/v1/admin/audit
func (h *WorkflowHandler) RecentAudit(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	entries, err := h.auditSvc.Recent(r.Context(), actor, 50)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
