package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// AuditRepo is the append-only workflow audit trail.
type AuditRepo struct {
	db *pgxpool.Pool
}

// NewAuditRepo creates a new audit repository.
func NewAuditRepo(db *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record appends one audit entry.
func (r *AuditRepo) Record(ctx context.Context, e *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, actor_id, actor_role, action, complaint_id, request_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.ActorID, e.ActorRole, e.Action, e.ComplaintID, e.RequestID, e.Detail, e.CreatedAt)
	if err != nil {
		return workflow.Remote("insert audit entry", err)
	}
	return nil
}

// Recent returns the latest audit entries across all complaints.
func (r *AuditRepo) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, actor_id, actor_role, action, complaint_id, request_id, detail, created_at
		FROM audit_log ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, workflow.Remote("list audit entries", err)
	}
	defer rows.Close()

	var out []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.ActorRole, &e.Action,
			&e.ComplaintID, &e.RequestID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, workflow.Remote("scan audit entry", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
