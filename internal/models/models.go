// Package models defines the data structures used across the application.
// These map to the PostgreSQL schema.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/complaint-server/internal/workflow"
)

// Urgency levels accepted on submission. NORMAL is the default when the
// submitter picks nothing.
const (
	UrgencyLow    = "LOW"
	UrgencyNormal = "NORMAL"
	UrgencyMedium = "MEDIUM"
	UrgencyHigh   = "HIGH"
)

// NormalizeUrgency maps an incoming urgency string onto the known set,
// falling back to NORMAL.
func NormalizeUrgency(u string) string {
	switch u {
	case UrgencyLow, UrgencyNormal, UrgencyMedium, UrgencyHigh:
		return u
	}
	return UrgencyNormal
}

// DefaultCategory is used when the submitter leaves category blank.
const DefaultCategory = "General"

// Complaint is the authoritative complaint record. Status, assignment and
// escalation fields are mutated only through the workflow engine; the
// engagement counters only through the engagement reconciler.
type Complaint struct {
	ID                   uuid.UUID                `json:"id" db:"id"`
	Title                string                   `json:"title" db:"title"`
	Description          string                   `json:"description" db:"description"`
	Category             string                   `json:"category" db:"category"`
	Urgency              string                   `json:"urgency" db:"urgency"`
	Status               workflow.ComplaintStatus `json:"status" db:"status"`
	Anonymous            bool                     `json:"anonymous" db:"anonymous"`
	IsPublic             bool                     `json:"isPublic" db:"is_public"`
	UserID               uuid.UUID                `json:"-" db:"user_id"`
	UserFullName         string                   `json:"userFullName,omitempty" db:"user_full_name"`
	AssignedEmployeeID   *uuid.UUID               `json:"assignedEmployeeId,omitempty" db:"assigned_employee_id"`
	AssignedEmployeeName *string                  `json:"assignedEmployeeName,omitempty" db:"assigned_employee_name"`
	EscalatedToID        *uuid.UUID               `json:"escalatedToId,omitempty" db:"escalated_to_id"`
	EscalatedToName      *string                  `json:"escalatedToName,omitempty" db:"escalated_to_name"`
	EscalationReason     *string                  `json:"escalationReason,omitempty" db:"escalation_reason"`
	EscalationDate       *time.Time               `json:"escalationDate,omitempty" db:"escalation_date"`
	LikeCount            int                      `json:"likeCount" db:"like_count"`
	CommentCount         int                      `json:"commentCount" db:"comment_count"`
	CreatedAt            time.Time                `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time                `json:"updatedAt" db:"updated_at"`
}

// StatusLabel is the display form of the status (UNDER_REVIEW renders as
// "IN PROGRESS" in list views).
func (c *Complaint) StatusLabel() string {
	return c.Status.DisplayLabel()
}

// RedactFor nulls the submitter identity when the viewer is not entitled
// to it. Operates on a copy so the stored record stays intact.
func (c Complaint) RedactFor(viewer workflow.Actor) Complaint {
	if workflow.RedactSubmitter(workflow.ViewContext{
		Viewer:    viewer,
		OwnerID:   c.UserID.String(),
		IsPublic:  c.IsPublic,
		Anonymous: c.Anonymous,
	}) {
		c.UserFullName = ""
	}
	return c
}

// ViewContextFor builds the visibility-rule input for this complaint and
// viewer pair.
func (c *Complaint) ViewContextFor(viewer workflow.Actor) workflow.ViewContext {
	return workflow.ViewContext{
		Viewer:    viewer,
		OwnerID:   c.UserID.String(),
		IsPublic:  c.IsPublic,
		Anonymous: c.Anonymous,
	}
}

// ComplaintSubmission is the request body for filing a new complaint.
type ComplaintSubmission struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
	Urgency     string `json:"urgency"`
	Anonymous   bool   `json:"anonymous"`
	IsPublic    bool   `json:"isPublic"`
}

// Comment is an append-only comment on a complaint. Comments are never
// edited or deleted.
type Comment struct {
	ID                 uuid.UUID     `json:"id" db:"id"`
	ComplaintID        uuid.UUID     `json:"complaintId" db:"complaint_id"`
	AuthorID           uuid.UUID     `json:"-" db:"author_id"`
	AuthorName         string        `json:"authorName" db:"author_name"`
	AuthorRoleSnapshot workflow.Role `json:"authorRole" db:"author_role"`
	Body               string        `json:"body" db:"body"`
	CreatedAt          time.Time     `json:"createdAt" db:"created_at"`
}

// MaxCommentLength bounds a comment body.
const MaxCommentLength = 1000

// LikeState is the server-authoritative like view returned to a caller
// after a toggle or a status read. RequestID identifies the toggle that
// produced it so a caller can drop acknowledgments for operations it has
// since abandoned.
type LikeState struct {
	ComplaintID uuid.UUID `json:"complaintId"`
	Liked       bool      `json:"liked"`
	LikeCount   int       `json:"likeCount"`
	RequestID   uuid.UUID `json:"requestId,omitempty"`
}

// ComplaintStats is the admin dashboard status breakdown.
type ComplaintStats struct {
	Total       int `json:"total"`
	New         int `json:"new"`
	UnderReview int `json:"underReview"`
	Resolved    int `json:"resolved"`
	Assigned    int `json:"assigned"`
}

// HealthStatus represents the server health check response.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database,omitempty"`
}
