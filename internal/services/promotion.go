package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/repository"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// PromotionService runs the senior-promotion request machine:
// PENDING -> APPROVED | REJECTED, terminal states final.
type PromotionService struct {
	promotions repository.PromotionRepository
	users      repository.UserRepository
	complaints repository.ComplaintRepository
	audit      *AuditService
	logger     *zap.SugaredLogger
}

// NewPromotionService creates a new promotion workflow.
func NewPromotionService(
	promotions repository.PromotionRepository,
	users repository.UserRepository,
	complaints repository.ComplaintRepository,
	audit *AuditService,
	logger *zap.SugaredLogger,
) *PromotionService {
	return &PromotionService{
		promotions: promotions,
		users:      users,
		complaints: complaints,
		audit:      audit,
		logger:     logger,
	}
}

// Submit files a promotion request for the acting employee. The
// resolution stats are computed from the complaint store at submission
// time; one open request per employee.
func (s *PromotionService) Submit(ctx context.Context, actor workflow.Actor, req *models.PromotionSubmission) (*models.PromotionRequest, error) {
	if err := workflow.CanSubmitPromotion(actor).Error(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, workflow.Validationf("reason is required")
	}

	employeeID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, workflow.Validationf("invalid actor id")
	}

	pending, err := s.promotions.HasPending(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, workflow.Validationf("a promotion request is already pending")
	}

	total, resolved, err := s.complaints.ResolutionStats(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	rate := 0.0
	if total > 0 {
		rate = float64(resolved) / float64(total) * 100
	}

	p := &models.PromotionRequest{
		ID:                 uuid.New(),
		EmployeeID:         employeeID,
		EmployeeName:       actor.Name,
		Status:             workflow.PromotionPending,
		Reason:             req.Reason,
		Qualifications:     req.Qualifications,
		RequestedAt:        time.Now(),
		ResolutionRate:     rate,
		TotalComplaints:    total,
		ResolvedComplaints: resolved,
	}
	if err := s.promotions.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Infow("Promotion request filed",
		"id", p.ID, "employee", employeeID, "resolution_rate", rate)
	return p, nil
}

// Approve moves a PENDING request to APPROVED and promotes the employee
// to SENIOR_EMPLOYEE. The compare-and-set means the second of two racing
// admins gets AlreadyResolved, never a silent overwrite.
func (s *PromotionService) Approve(ctx context.Context, requestID uuid.UUID, actor workflow.Actor) (*models.PromotionRequest, error) {
	p, err := s.promotions.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanApprovePromotion(actor, p.Status).Error(); err != nil {
		return nil, err
	}

	applied, err := s.promotions.Resolve(ctx, requestID, workflow.PromotionApproved, "")
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, workflow.ErrAlreadyResolved
	}

	// Role upgrade is the approved request's side effect on identity.
	if err := s.users.SetRole(ctx, p.EmployeeID, workflow.RoleSeniorEmployee); err != nil {
		s.logger.Errorw("Role upgrade failed after approval",
			"request", requestID, "employee", p.EmployeeID, "error", err)
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditPromotionApproved, nil, &requestID,
		fmt.Sprintf("employee %s promoted to senior", p.EmployeeName))
	s.logger.Infow("Promotion approved",
		"request", requestID, "employee", p.EmployeeID, "actor", actor.ID)

	return s.promotions.Get(ctx, requestID)
}

// Reject moves a PENDING request to REJECTED with a mandatory reason
// stored as admin notes. Racing resolutions behave like Approve.
func (s *PromotionService) Reject(ctx context.Context, requestID uuid.UUID, actor workflow.Actor, reason string) (*models.PromotionRequest, error) {
	p, err := s.promotions.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanRejectPromotion(actor, p.Status, strings.TrimSpace(reason)).Error(); err != nil {
		return nil, err
	}

	applied, err := s.promotions.Resolve(ctx, requestID, workflow.PromotionRejected, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, workflow.ErrAlreadyResolved
	}

	s.audit.Record(ctx, actor, models.AuditPromotionRejected, nil, &requestID, reason)
	s.logger.Infow("Promotion rejected",
		"request", requestID, "employee", p.EmployeeID, "actor", actor.ID)

	return s.promotions.Get(ctx, requestID)
}

// List returns all promotion requests with the review dashboard stats.
func (s *PromotionService) List(ctx context.Context, actor workflow.Actor) ([]models.PromotionRequest, *models.PromotionStats, error) {
	if actor.Role != workflow.RoleAdmin {
		return nil, nil, workflow.ErrUnauthorized
	}
	list, err := s.promotions.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	stats := &models.PromotionStats{Total: len(list)}
	for _, p := range list {
		switch p.Status {
		case workflow.PromotionPending:
			stats.Pending++
		case workflow.PromotionApproved:
			stats.Approved++
		case workflow.PromotionRejected:
			stats.Rejected++
		}
	}
	return list, stats, nil
}
