// Package repository defines the store abstractions the services depend
// on. The postgres subpackage holds the pgx implementations; tests
// substitute mocks.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// ComplaintRepository is the authoritative complaint store.
type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error
	Get(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	ListPublic(ctx context.Context) ([]models.Complaint, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complaint, error)
	ListAll(ctx context.Context) ([]models.Complaint, error)
	ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]models.Complaint, error)
	ListEscalatedTo(ctx context.Context, seniorID uuid.UUID) ([]models.Complaint, error)

	// UpdateStatus applies a compare-and-set: the row moves to target only
	// if it still holds expected. Returns false when the row exists but the
	// expected status no longer matches (a concurrent transition won).
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, target workflow.ComplaintStatus) (bool, error)

	// Assign sets or replaces the assigned employee and touches updated_at.
	Assign(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, employeeName string) error

	// Escalate records the one-way escalation fact. Returns false when the
	// guard condition (UNDER_REVIEW, not yet escalated) no longer holds.
	Escalate(ctx context.Context, id uuid.UUID, seniorID uuid.UUID, seniorName, reason string) (bool, error)

	Stats(ctx context.Context) (*models.ComplaintStats, error)

	// ResolutionStats returns (total, resolved) complaint counts for an
	// assigned employee, feeding the promotion resolution rate.
	ResolutionStats(ctx context.Context, employeeID uuid.UUID) (total, resolved int, err error)
}

// EngagementRepository owns the like edges, comments and both counters.
type EngagementRepository interface {
	// ToggleLike flips the (actor, complaint) like edge and moves the
	// counter in the same transaction, returning the authoritative state.
	ToggleLike(ctx context.Context, complaintID, actorID uuid.UUID) (liked bool, likeCount int, err error)

	// LikeStatus reads the current edge and counter without mutating.
	LikeStatus(ctx context.Context, complaintID, actorID uuid.UUID) (liked bool, likeCount int, err error)

	// AddComment appends the comment and increments comment_count together.
	AddComment(ctx context.Context, c *models.Comment) (commentCount int, err error)

	ListComments(ctx context.Context, complaintID uuid.UUID) ([]models.Comment, error)
}

// PromotionRepository stores senior promotion requests.
type PromotionRepository interface {
	Create(ctx context.Context, r *models.PromotionRequest) error
	Get(ctx context.Context, id uuid.UUID) (*models.PromotionRequest, error)
	List(ctx context.Context) ([]models.PromotionRequest, error)
	HasPending(ctx context.Context, employeeID uuid.UUID) (bool, error)

	// Resolve moves a PENDING request to a terminal status. Returns false
	// when the request exists but is no longer PENDING.
	Resolve(ctx context.Context, id uuid.UUID, target workflow.PromotionStatus, adminNotes string) (bool, error)
}

// UserRepository is the identity store.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// SetRole performs the role upgrade side effect of an approved
	// promotion.
	SetRole(ctx context.Context, id uuid.UUID, role workflow.Role) error
}

// AuditRepository is the append-only workflow audit trail.
type AuditRepository interface {
	Record(ctx context.Context, e *models.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]models.AuditEntry, error)
}
