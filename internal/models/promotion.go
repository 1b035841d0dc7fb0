package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/complaint-server/internal/workflow"
)

// PromotionRequest is an employee's application for the senior role.
// APPROVED and REJECTED are terminal; a resolved request never changes.
type PromotionRequest struct {
	ID                 uuid.UUID                `json:"id" db:"id"`
	EmployeeID         uuid.UUID                `json:"employeeId" db:"employee_id"`
	EmployeeName       string                   `json:"employeeName" db:"employee_name"`
	Status             workflow.PromotionStatus `json:"status" db:"status"`
	Reason             string                   `json:"reason" db:"reason"`
	Qualifications     string                   `json:"qualifications" db:"qualifications"`
	RequestedAt        time.Time                `json:"requestedAt" db:"requested_at"`
	ReviewedAt         *time.Time               `json:"reviewedAt,omitempty" db:"reviewed_at"`
	AdminNotes         *string                  `json:"adminNotes,omitempty" db:"admin_notes"`
	ResolutionRate     float64                  `json:"resolutionRate" db:"resolution_rate"`
	TotalComplaints    int                      `json:"totalComplaints" db:"total_complaints"`
	ResolvedComplaints int                      `json:"resolvedComplaints" db:"resolved_complaints"`
}

// Eligible reports whether the request clears the display threshold.
// Informational only; an admin may approve below it.
func (r *PromotionRequest) Eligible() bool {
	return r.ResolutionRate >= workflow.EligibilityThreshold
}

// PromotionSubmission is the request body for filing a promotion request.
type PromotionSubmission struct {
	Reason         string `json:"reason" validate:"required"`
	Qualifications string `json:"qualifications"`
}

// PromotionStats is the admin review dashboard breakdown.
type PromotionStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
