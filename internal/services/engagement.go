package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/repository"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// ToggleGuard serializes like toggles per (complaint, actor): at most one
// toggle may be in flight for a pair, later attempts are rejected rather
// than queued.
type ToggleGuard interface {
	Acquire(ctx context.Context, complaintID, actorID string) (bool, error)
	Release(ctx context.Context, complaintID, actorID string)
}

// RedisToggleGuard implements ToggleGuard with a SETNX lease. The TTL
// bounds how long an abandoned toggle can block the pair.
type RedisToggleGuard struct {
	client *redis.Client
	lease  time.Duration
}

// NewRedisToggleGuard creates a redis-backed toggle guard.
func NewRedisToggleGuard(client *redis.Client, lease time.Duration) *RedisToggleGuard {
	return &RedisToggleGuard{client: client, lease: lease}
}

func toggleKey(complaintID, actorID string) string {
	return "toggle:" + complaintID + ":" + actorID
}

// Acquire takes the pair's lease. Returns false when a toggle is already
// in flight.
func (g *RedisToggleGuard) Acquire(ctx context.Context, complaintID, actorID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, toggleKey(complaintID, actorID), 1, g.lease).Result()
	if err != nil {
		return false, workflow.Remote("acquire toggle lease", err)
	}
	return ok, nil
}

// Release frees the pair's lease. Best effort: the TTL covers a missed
// release.
func (g *RedisToggleGuard) Release(ctx context.Context, complaintID, actorID string) {
	g.client.Del(ctx, toggleKey(complaintID, actorID))
}

// EngagementService reconciles like and comment counters. Local guesses
// are never trusted: every toggle and comment returns the
// server-authoritative state, and failures roll back to the last
// confirmed value because nothing was optimistically applied.
type EngagementService struct {
	engagement repository.EngagementRepository
	complaints repository.ComplaintRepository
	guard      ToggleGuard
	logger     *zap.SugaredLogger
}

// NewEngagementService creates a new engagement reconciler.
func NewEngagementService(
	engagement repository.EngagementRepository,
	complaints repository.ComplaintRepository,
	guard ToggleGuard,
	logger *zap.SugaredLogger,
) *EngagementService {
	return &EngagementService{
		engagement: engagement,
		complaints: complaints,
		guard:      guard,
		logger:     logger,
	}
}

// ToggleLike flips the actor's like on a complaint and returns the
// authoritative count. Concurrent toggles for the same (complaint, actor)
// pair are rejected with ToggleInProgress; exactly one reaches the store.
// The returned RequestID lets the caller discard acknowledgments for
// toggles it has since abandoned.
func (s *EngagementService) ToggleLike(ctx context.Context, complaintID uuid.UUID, actor workflow.Actor) (*models.LikeState, error) {
	c, err := s.complaints.Get(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanLike(c.ViewContextFor(actor)) {
		if !actor.Authenticated {
			return nil, fmt.Errorf("%w: authentication required to like", workflow.ErrUnauthorized)
		}
		return nil, workflow.Validationf("likes are only allowed on public complaints")
	}

	acquired, err := s.guard.Acquire(ctx, complaintID.String(), actor.ID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, workflow.ErrToggleInProgress
	}
	defer s.guard.Release(ctx, complaintID.String(), actor.ID)

	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, workflow.Validationf("invalid actor id")
	}

	requestID := uuid.New()
	liked, likeCount, err := s.engagement.ToggleLike(ctx, complaintID, actorID)
	if err != nil {
		// Nothing was applied locally, so there is nothing to roll back;
		// the caller keeps its last confirmed state.
		s.logger.Warnw("Like toggle failed", "complaint", complaintID, "actor", actor.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("Like toggled",
		"complaint", complaintID, "actor", actor.ID, "liked", liked, "count", likeCount)

	return &models.LikeState{
		ComplaintID: complaintID,
		Liked:       liked,
		LikeCount:   likeCount,
		RequestID:   requestID,
	}, nil
}

// LikeStatus returns the actor's like state and the current count.
func (s *EngagementService) LikeStatus(ctx context.Context, complaintID uuid.UUID, actor workflow.Actor) (*models.LikeState, error) {
	if !actor.Authenticated {
		return nil, workflow.ErrUnauthorized
	}
	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, workflow.Validationf("invalid actor id")
	}
	liked, likeCount, err := s.engagement.LikeStatus(ctx, complaintID, actorID)
	if err != nil {
		return nil, err
	}
	return &models.LikeState{ComplaintID: complaintID, Liked: liked, LikeCount: likeCount}, nil
}

// AddComment appends a comment. The counter moves only on store
// acknowledgment, in the same transaction as the insert, so a retried
// request cannot double count.
func (s *EngagementService) AddComment(ctx context.Context, complaintID uuid.UUID, actor workflow.Actor, body string) (*models.Comment, int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, 0, workflow.Validationf("comment body is required")
	}
	if len(body) > models.MaxCommentLength {
		return nil, 0, workflow.Validationf("comment exceeds %d characters", models.MaxCommentLength)
	}

	c, err := s.complaints.Get(ctx, complaintID)
	if err != nil {
		return nil, 0, err
	}
	if !workflow.CanComment(c.ViewContextFor(actor)) {
		return nil, 0, fmt.Errorf("%w: commenting not permitted on this complaint", workflow.ErrUnauthorized)
	}

	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, 0, workflow.Validationf("invalid actor id")
	}

	comment := &models.Comment{
		ID:                 uuid.New(),
		ComplaintID:        complaintID,
		AuthorID:           actorID,
		AuthorName:         actor.Name,
		AuthorRoleSnapshot: actor.Role,
		Body:               body,
		CreatedAt:          time.Now(),
	}

	commentCount, err := s.engagement.AddComment(ctx, comment)
	if err != nil {
		return nil, 0, err
	}

	s.logger.Infow("Comment added",
		"complaint", complaintID, "author", actor.ID, "count", commentCount)
	return comment, commentCount, nil
}

// ListComments returns a complaint's comments if the viewer may read it.
func (s *EngagementService) ListComments(ctx context.Context, complaintID uuid.UUID, viewer workflow.Actor) ([]models.Comment, error) {
	c, err := s.complaints.Get(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(c.ViewContextFor(viewer)) {
		return nil, workflow.ErrNotFound
	}
	return s.engagement.ListComments(ctx, complaintID)
}
