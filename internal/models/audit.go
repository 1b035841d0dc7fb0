package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/complaint-server/internal/workflow"
)

// AuditEntry records a workflow action for accountability: who changed a
// status, assigned an employee, escalated a complaint, or resolved a
// promotion request, and when.
type AuditEntry struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	ActorID     uuid.UUID     `json:"actorId" db:"actor_id"`
	ActorRole   workflow.Role `json:"actorRole" db:"actor_role"`
	Action      string        `json:"action" db:"action"`
	ComplaintID *uuid.UUID    `json:"complaintId,omitempty" db:"complaint_id"`
	RequestID   *uuid.UUID    `json:"requestId,omitempty" db:"request_id"`
	Detail      string        `json:"detail,omitempty" db:"detail"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

// Audit action names.
const (
	AuditStatusChanged     = "status_changed"
	AuditEmployeeAssigned  = "employee_assigned"
	AuditEscalated         = "escalated"
	AuditPromotionApproved = "promotion_approved"
	AuditPromotionRejected = "promotion_rejected"
)
