package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

const promotionColumns = `id, employee_id, employee_name, status, reason, qualifications,
	requested_at, reviewed_at, admin_notes, resolution_rate, total_complaints, resolved_complaints`

// PromotionRepo is the pgx-backed promotion request store.
type PromotionRepo struct {
	db *pgxpool.Pool
}

// NewPromotionRepo creates a new promotion repository.
func NewPromotionRepo(db *pgxpool.Pool) *PromotionRepo {
	return &PromotionRepo{db: db}
}

func scanPromotion(row pgx.Row) (*models.PromotionRequest, error) {
	var p models.PromotionRequest
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.Status, &p.Reason, &p.Qualifications,
		&p.RequestedAt, &p.ReviewedAt, &p.AdminNotes, &p.ResolutionRate, &p.TotalComplaints, &p.ResolvedComplaints)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create stores a new pending request.
func (r *PromotionRepo) Create(ctx context.Context, p *models.PromotionRequest) error {
	query := `
		INSERT INTO promotion_requests (id, employee_id, employee_name, status, reason, qualifications,
			requested_at, resolution_rate, total_complaints, resolved_complaints)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.EmployeeID, p.EmployeeName, p.Status, p.Reason, p.Qualifications,
		p.RequestedAt, p.ResolutionRate, p.TotalComplaints, p.ResolvedComplaints,
	)
	if err != nil {
		return workflow.Remote("insert promotion request", err)
	}
	return nil
}

// Get fetches one request by id.
func (r *PromotionRepo) Get(ctx context.Context, id uuid.UUID) (*models.PromotionRequest, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+` FROM promotion_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workflow.ErrNotFound
		}
		return nil, workflow.Remote("get promotion request", err)
	}
	return p, nil
}

// List returns all requests, newest first.
func (r *PromotionRepo) List(ctx context.Context) ([]models.PromotionRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+promotionColumns+` FROM promotion_requests ORDER BY requested_at DESC`)
	if err != nil {
		return nil, workflow.Remote("list promotion requests", err)
	}
	defer rows.Close()

	var out []models.PromotionRequest
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, workflow.Remote("scan promotion request", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// HasPending reports whether the employee already has an open request.
func (r *PromotionRepo) HasPending(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM promotion_requests WHERE employee_id = $1 AND status = $2)`,
		employeeID, workflow.PromotionPending).Scan(&exists)
	if err != nil {
		return false, workflow.Remote("check pending request", err)
	}
	return exists, nil
}

// Resolve moves a PENDING request to a terminal status with compare-and-set
// semantics: when two admins race, exactly one update lands and the loser
// sees rowsAffected == 0.
func (r *PromotionRepo) Resolve(ctx context.Context, id uuid.UUID, target workflow.PromotionStatus, adminNotes string) (bool, error) {
	query := `
		UPDATE promotion_requests
		SET status = $2, reviewed_at = $3, admin_notes = NULLIF($4, '')
		WHERE id = $1 AND status = $5
	`
	tag, err := r.db.Exec(ctx, query, id, target, time.Now(), adminNotes, workflow.PromotionPending)
	if err != nil {
		return false, workflow.Remote("resolve promotion request", err)
	}
	return tag.RowsAffected() == 1, nil
}
