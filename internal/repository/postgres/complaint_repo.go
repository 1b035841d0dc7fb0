// Package postgres implements the repository interfaces on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

const complaintColumns = `id, title, description, category, urgency, status, anonymous, is_public,
	user_id, user_full_name, assigned_employee_id, assigned_employee_name,
	escalated_to_id, escalated_to_name, escalation_reason, escalation_date,
	like_count, comment_count, created_at, updated_at`

// ComplaintRepo is the pgx-backed complaint store.
type ComplaintRepo struct {
	db *pgxpool.Pool
}

// NewComplaintRepo creates a new complaint repository.
func NewComplaintRepo(db *pgxpool.Pool) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Urgency, &c.Status,
		&c.Anonymous, &c.IsPublic, &c.UserID, &c.UserFullName,
		&c.AssignedEmployeeID, &c.AssignedEmployeeName,
		&c.EscalatedToID, &c.EscalatedToName, &c.EscalationReason, &c.EscalationDate,
		&c.LikeCount, &c.CommentCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.Complaint, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, workflow.Remote("list complaints", err)
	}
	defer rows.Close()

	var out []models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, workflow.Remote("scan complaint", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Create stores a new complaint.
func (r *ComplaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	query := `
		INSERT INTO complaints (id, title, description, category, urgency, status, anonymous, is_public,
			user_id, user_full_name, like_count, comment_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, 0, $11, $11)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Title, c.Description, c.Category, c.Urgency, c.Status,
		c.Anonymous, c.IsPublic, c.UserID, c.UserFullName, c.CreatedAt,
	)
	if err != nil {
		return workflow.Remote("insert complaint", err)
	}
	return nil
}

// Get fetches one complaint by id.
func (r *ComplaintRepo) Get(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE id = $1`, complaintColumns)
	c, err := scanComplaint(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workflow.ErrNotFound
		}
		return nil, workflow.Remote("get complaint", err)
	}
	return c, nil
}

// ListPublic returns the public feed, newest first.
func (r *ComplaintRepo) ListPublic(ctx context.Context) ([]models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE is_public = TRUE ORDER BY created_at DESC`, complaintColumns)
	return r.list(ctx, query)
}

// ListByOwner returns the owner's complaints, anonymous ones included.
func (r *ComplaintRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE user_id = $1 ORDER BY created_at DESC`, complaintColumns)
	return r.list(ctx, query, ownerID)
}

// ListAll returns every complaint (admin view).
func (r *ComplaintRepo) ListAll(ctx context.Context) ([]models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints ORDER BY created_at DESC`, complaintColumns)
	return r.list(ctx, query)
}

// ListAssigned returns the complaints assigned to an employee.
func (r *ComplaintRepo) ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE assigned_employee_id = $1 ORDER BY created_at DESC`, complaintColumns)
	return r.list(ctx, query, employeeID)
}

// ListEscalatedTo returns the complaints escalated to a senior employee.
func (r *ComplaintRepo) ListEscalatedTo(ctx context.Context, seniorID uuid.UUID) ([]models.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE escalated_to_id = $1 ORDER BY escalation_date DESC`, complaintColumns)
	return r.list(ctx, query, seniorID)
}

// UpdateStatus applies the transition only if the row still holds the
// expected status, so a concurrent admin's transition cannot be silently
// overwritten.
func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, target workflow.ComplaintStatus) (bool, error) {
	query := `UPDATE complaints SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	tag, err := r.db.Exec(ctx, query, id, target, time.Now(), expected)
	if err != nil {
		return false, workflow.Remote("update complaint status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Assign sets the assigned employee. Reassigning to the same employee
// still touches updated_at.
func (r *ComplaintRepo) Assign(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, employeeName string) error {
	query := `UPDATE complaints SET assigned_employee_id = $2, assigned_employee_name = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, employeeID, employeeName, time.Now())
	if err != nil {
		return workflow.Remote("assign employee", err)
	}
	if tag.RowsAffected() == 0 {
		return workflow.ErrNotFound
	}
	return nil
}

// Escalate records the escalation fact iff the complaint is still under
// review and not yet escalated.
func (r *ComplaintRepo) Escalate(ctx context.Context, id uuid.UUID, seniorID uuid.UUID, seniorName, reason string) (bool, error) {
	now := time.Now()
	query := `
		UPDATE complaints
		SET escalated_to_id = $2, escalated_to_name = $3, escalation_reason = $4, escalation_date = $5, updated_at = $5
		WHERE id = $1 AND status = $6 AND escalated_to_id IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id, seniorID, seniorName, reason, now, workflow.StatusUnderReview)
	if err != nil {
		return false, workflow.Remote("escalate complaint", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Stats returns the admin dashboard breakdown.
func (r *ComplaintRepo) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'NEW'),
			COUNT(*) FILTER (WHERE status = 'UNDER_REVIEW'),
			COUNT(*) FILTER (WHERE status = 'RESOLVED'),
			COUNT(*) FILTER (WHERE assigned_employee_id IS NOT NULL)
		FROM complaints
	`
	var s models.ComplaintStats
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.New, &s.UnderReview, &s.Resolved, &s.Assigned)
	if err != nil {
		return nil, workflow.Remote("complaint stats", err)
	}
	return &s, nil
}

// ResolutionStats returns how many complaints an employee has been
// assigned and how many of those are resolved.
func (r *ComplaintRepo) ResolutionStats(ctx context.Context, employeeID uuid.UUID) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'RESOLVED')
		FROM complaints
		WHERE assigned_employee_id = $1
	`
	var total, resolved int
	if err := r.db.QueryRow(ctx, query, employeeID).Scan(&total, &resolved); err != nil {
		return 0, 0, workflow.Remote("resolution stats", err)
	}
	return total, resolved, nil
}
