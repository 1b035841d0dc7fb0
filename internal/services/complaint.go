// Package services contains business logic layers.
// Services apply the pure rules from internal/workflow against the
// repositories and are called by handlers.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/repository"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// ComplaintService handles complaint submission and read paths. All
// status/assignment/escalation mutations live in WorkflowService.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	logger     *zap.SugaredLogger
}

// NewComplaintService creates a new complaint service
func NewComplaintService(complaints repository.ComplaintRepository, logger *zap.SugaredLogger) *ComplaintService {
	return &ComplaintService{complaints: complaints, logger: logger}
}

// Create files a new complaint for the actor. Only citizens may file;
// category and urgency fall back to their defaults.
func (s *ComplaintService) Create(ctx context.Context, actor workflow.Actor, req *models.ComplaintSubmission) (*models.Complaint, error) {
	if err := workflow.CanCreateComplaint(actor).Error(); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, workflow.Validationf("title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, workflow.Validationf("description is required")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = models.DefaultCategory
	}

	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, workflow.Validationf("invalid actor id")
	}

	c := &models.Complaint{
		ID:           uuid.New(),
		Title:        title,
		Description:  req.Description,
		Category:     category,
		Urgency:      models.NormalizeUrgency(req.Urgency),
		Status:       workflow.StatusNew,
		Anonymous:    req.Anonymous,
		IsPublic:     req.IsPublic,
		UserID:       ownerID,
		UserFullName: actor.Name,
		CreatedAt:    time.Now(),
	}
	c.UpdatedAt = c.CreatedAt

	if err := s.complaints.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Infow("Complaint filed",
		"id", c.ID,
		"category", c.Category,
		"urgency", c.Urgency,
		"public", c.IsPublic,
		"anonymous", c.Anonymous,
	)
	return c, nil
}

// Get returns one complaint if the viewer may read it, with the
// submitter identity redacted where required.
func (s *ComplaintService) Get(ctx context.Context, viewer workflow.Actor, id uuid.UUID) (*models.Complaint, error) {
	c, err := s.complaints.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(c.ViewContextFor(viewer)) {
		// Hidden complaints are indistinguishable from missing ones.
		return nil, workflow.ErrNotFound
	}
	redacted := c.RedactFor(viewer)
	return &redacted, nil
}

// PublicFeed returns the public complaints with submitter identities
// redacted for the viewer.
func (s *ComplaintService) PublicFeed(ctx context.Context, viewer workflow.Actor) ([]models.Complaint, error) {
	list, err := s.complaints.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i] = list[i].RedactFor(viewer)
	}
	return list, nil
}

// Mine returns the actor's own complaints.
func (s *ComplaintService) Mine(ctx context.Context, actor workflow.Actor) ([]models.Complaint, error) {
	if !actor.Authenticated {
		return nil, workflow.ErrUnauthorized
	}
	ownerID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, workflow.Validationf("invalid actor id")
	}
	return s.complaints.ListByOwner(ctx, ownerID)
}

// Stats returns the admin dashboard breakdown.
func (s *ComplaintService) Stats(ctx context.Context, actor workflow.Actor) (*models.ComplaintStats, error) {
	if actor.Role != workflow.RoleAdmin {
		return nil, workflow.ErrUnauthorized
	}
	return s.complaints.Stats(ctx)
}
