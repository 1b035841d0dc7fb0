package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/repository"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// WorkflowService gates every mutation of a complaint's status,
// assignment and escalation fields through the authorization matrix and
// applies it with compare-and-set semantics against the store.
type WorkflowService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	audit      *AuditService
	policy     workflow.TransitionPolicy
	logger     *zap.SugaredLogger
}

// NewWorkflowService creates a new workflow engine.
func NewWorkflowService(
	complaints repository.ComplaintRepository,
	users repository.UserRepository,
	audit *AuditService,
	policy workflow.TransitionPolicy,
	logger *zap.SugaredLogger,
) *WorkflowService {
	return &WorkflowService{
		complaints: complaints,
		users:      users,
		audit:      audit,
		policy:     policy,
		logger:     logger,
	}
}

// TransitionStatus moves a complaint strictly forward along
// NEW < UNDER_REVIEW < RESOLVED. When two admins race, the store-level
// compare-and-set makes the second caller fail with InvalidTransition
// rather than silently applying.
func (s *WorkflowService) TransitionStatus(ctx context.Context, complaintID uuid.UUID, target workflow.ComplaintStatus, actor workflow.Actor) (*models.Complaint, error) {
	if err := workflow.CanChangeStatus(actor).Error(); err != nil {
		return nil, err
	}

	c, err := s.complaints.Get(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanTransition(c.Status, target, s.policy).Error(); err != nil {
		return nil, err
	}

	applied, err := s.complaints.UpdateStatus(ctx, complaintID, c.Status, target)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent transition moved the row first.
		return nil, fmt.Errorf("%w: complaint is no longer %s", workflow.ErrInvalidTransition, c.Status)
	}

	s.audit.Record(ctx, actor, models.AuditStatusChanged, &complaintID, nil,
		fmt.Sprintf("%s -> %s", c.Status, target))
	s.logger.Infow("Complaint status changed",
		"id", complaintID, "from", c.Status, "to", target, "actor", actor.ID)

	return s.complaints.Get(ctx, complaintID)
}

// AssignEmployee sets or replaces the assigned employee. Reassigning the
// same employee is a no-op that still touches updated_at; reassignment to
// a different employee overwrites without history.
func (s *WorkflowService) AssignEmployee(ctx context.Context, complaintID, employeeID uuid.UUID, actor workflow.Actor) (*models.Complaint, error) {
	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanAssignEmployee(actor, employee.Role).Error(); err != nil {
		return nil, err
	}

	if err := s.complaints.Assign(ctx, complaintID, employee.ID, employee.FullName); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, models.AuditEmployeeAssigned, &complaintID, nil,
		fmt.Sprintf("assigned to %s", employee.FullName))
	s.logger.Infow("Complaint assigned",
		"id", complaintID, "employee", employee.ID, "actor", actor.ID)

	return s.complaints.Get(ctx, complaintID)
}

// Escalate records the one-way escalation of a complaint to a senior
// employee. A second escalation attempt fails with AlreadyEscalated and
// the first call's fields stand.
func (s *WorkflowService) Escalate(ctx context.Context, complaintID, seniorID uuid.UUID, reason string, actor workflow.Actor) (*models.Complaint, error) {
	c, err := s.complaints.Get(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	senior, err := s.users.GetByID(ctx, seniorID)
	if err != nil {
		return nil, err
	}

	guard := workflow.CanEscalate(actor, workflow.EscalationContext{
		Status:           c.Status,
		AlreadyEscalated: c.EscalatedToID != nil,
		TargetSeniorRole: senior.Role,
		Reason:           reason,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	applied, err := s.complaints.Escalate(ctx, complaintID, senior.ID, senior.FullName, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Lost a race: either an escalation landed first or the status moved.
		return nil, workflow.ErrAlreadyEscalated
	}

	s.audit.Record(ctx, actor, models.AuditEscalated, &complaintID, nil,
		fmt.Sprintf("escalated to %s: %s", senior.FullName, reason))
	s.logger.Infow("Complaint escalated",
		"id", complaintID, "senior", senior.ID, "actor", actor.ID)

	return s.complaints.Get(ctx, complaintID)
}

// Queue returns the actor's working set: employees see their assigned
// complaints, seniors additionally the ones escalated to them, admins
// see everything.
func (s *WorkflowService) Queue(ctx context.Context, actor workflow.Actor) ([]models.Complaint, error) {
	if err := workflow.CanViewQueue(actor).Error(); err != nil {
		return nil, err
	}
	if actor.Role == workflow.RoleAdmin {
		return s.complaints.ListAll(ctx)
	}

	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, workflow.Validationf("invalid actor id")
	}
	assigned, err := s.complaints.ListAssigned(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != workflow.RoleSeniorEmployee {
		return assigned, nil
	}

	escalated, err := s.complaints.ListEscalatedTo(ctx, actorID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{}, len(assigned))
	for _, c := range assigned {
		seen[c.ID] = struct{}{}
	}
	for _, c := range escalated {
		if _, dup := seen[c.ID]; !dup {
			assigned = append(assigned, c)
		}
	}
	return assigned, nil
}
