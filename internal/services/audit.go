package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/repository"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// AuditService records workflow actions for accountability. Audit writes
// never fail the action that produced them; a lost entry is logged and
// the mutation stands.
type AuditService struct {
	audit  repository.AuditRepository
	logger *zap.SugaredLogger
}

// NewAuditService creates a new audit service
func NewAuditService(audit repository.AuditRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{audit: audit, logger: logger}
}

// Record appends one entry for an actor's action.
func (s *AuditService) Record(ctx context.Context, actor workflow.Actor, action string, complaintID, requestID *uuid.UUID, detail string) {
	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		s.logger.Warnw("Audit entry skipped: bad actor id", "actor", actor.ID, "action", action)
		return
	}

	entry := &models.AuditEntry{
		ID:          uuid.New(),
		ActorID:     actorID,
		ActorRole:   actor.Role,
		Action:      action,
		ComplaintID: complaintID,
		RequestID:   requestID,
		Detail:      detail,
		CreatedAt:   time.Now(),
	}

	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Errorw("Audit entry lost", "action", action, "error", err)
		return
	}

	s.logger.Infow("Audit recorded",
		"actor", actor.ID,
		"role", actor.Role,
		"action", action,
	)
}

// Recent returns the latest audit entries (admin view).
func (s *AuditService) Recent(ctx context.Context, actor workflow.Actor, limit int) ([]models.AuditEntry, error) {
	if actor.Role != workflow.RoleAdmin {
		return nil, workflow.ErrUnauthorized
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.audit.Recent(ctx, limit)
}
