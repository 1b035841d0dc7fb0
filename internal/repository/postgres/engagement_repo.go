package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// EngagementRepo owns like edges, comments and the two counters on the
// complaints table.
type EngagementRepo struct {
	db *pgxpool.Pool
}

// NewEngagementRepo creates a new engagement repository.
func NewEngagementRepo(db *pgxpool.Pool) *EngagementRepo {
	return &EngagementRepo{db: db}
}

// ToggleLike flips the like edge for (actor, complaint) and moves the
// counter inside one transaction. The edge, not the caller's guess,
// decides the direction, so a toggle-off without a prior like is a no-op
// on the counter and the count can never go negative.
func (r *EngagementRepo) ToggleLike(ctx context.Context, complaintID, actorID uuid.UUID) (bool, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, workflow.Remote("begin toggle", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE complaint_id = $1 AND user_id = $2)`,
		complaintID, actorID).Scan(&exists)
	if err != nil {
		return false, 0, workflow.Remote("check like edge", err)
	}

	var likeCount int
	if exists {
		if _, err := tx.Exec(ctx,
			`DELETE FROM likes WHERE complaint_id = $1 AND user_id = $2`,
			complaintID, actorID); err != nil {
			return false, 0, workflow.Remote("delete like edge", err)
		}
		err = tx.QueryRow(ctx,
			`UPDATE complaints SET like_count = GREATEST(like_count - 1, 0) WHERE id = $1 RETURNING like_count`,
			complaintID).Scan(&likeCount)
	} else {
		if _, err := tx.Exec(ctx,
			`INSERT INTO likes (complaint_id, user_id, created_at) VALUES ($1, $2, NOW())`,
			complaintID, actorID); err != nil {
			return false, 0, workflow.Remote("insert like edge", err)
		}
		err = tx.QueryRow(ctx,
			`UPDATE complaints SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count`,
			complaintID).Scan(&likeCount)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, workflow.ErrNotFound
		}
		return false, 0, workflow.Remote("update like count", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, workflow.Remote("commit toggle", err)
	}
	return !exists, likeCount, nil
}

// LikeStatus reads the edge and counter without mutating.
func (r *EngagementRepo) LikeStatus(ctx context.Context, complaintID, actorID uuid.UUID) (bool, int, error) {
	var liked bool
	var likeCount int
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM likes WHERE complaint_id = $1 AND user_id = $2), like_count
		FROM complaints WHERE id = $1
	`, complaintID, actorID).Scan(&liked, &likeCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, 0, workflow.ErrNotFound
		}
		return false, 0, workflow.Remote("like status", err)
	}
	return liked, likeCount, nil
}

// AddComment appends the comment and bumps comment_count in the same
// transaction, so a retried request can never double count.
func (r *EngagementRepo) AddComment(ctx context.Context, c *models.Comment) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, workflow.Remote("begin comment", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO comments (id, complaint_id, author_id, author_name, author_role, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.ComplaintID, c.AuthorID, c.AuthorName, c.AuthorRoleSnapshot, c.Body, c.CreatedAt)
	if err != nil {
		return 0, workflow.Remote("insert comment", err)
	}

	var commentCount int
	err = tx.QueryRow(ctx,
		`UPDATE complaints SET comment_count = comment_count + 1 WHERE id = $1 RETURNING comment_count`,
		c.ComplaintID).Scan(&commentCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, workflow.ErrNotFound
		}
		return 0, workflow.Remote("update comment count", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, workflow.Remote("commit comment", err)
	}
	return commentCount, nil
}

// ListComments returns a complaint's comments oldest first.
func (r *EngagementRepo) ListComments(ctx context.Context, complaintID uuid.UUID) ([]models.Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, complaint_id, author_id, author_name, author_role, body, created_at
		FROM comments WHERE complaint_id = $1 ORDER BY created_at ASC
	`, complaintID)
	if err != nil {
		return nil, workflow.Remote("list comments", err)
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ComplaintID, &c.AuthorID, &c.AuthorName,
			&c.AuthorRoleSnapshot, &c.Body, &c.CreatedAt); err != nil {
			return nil, workflow.Remote("scan comment", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
