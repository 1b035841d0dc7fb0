package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// MockComplaintRepo implements repository.ComplaintRepository.
type MockComplaintRepo struct {
	mock.Mock
}

func (m *MockComplaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockComplaintRepo) Get(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*models.Complaint); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockComplaintRepo) ListPublic(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Error(1)
}

func (m *MockComplaintRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Complaint, error) {
	args := m.Called(ctx, ownerID)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Error(1)
}

func (m *MockComplaintRepo) ListAll(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Error(1)
}

func (m *MockComplaintRepo) ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]models.Complaint, error) {
	args := m.Called(ctx, employeeID)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Error(1)
}

func (m *MockComplaintRepo) ListEscalatedTo(ctx context.Context, seniorID uuid.UUID) ([]models.Complaint, error) {
	args := m.Called(ctx, seniorID)
	list, _ := args.Get(0).([]models.Complaint)
	return list, args.Error(1)
}

func (m *MockComplaintRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, target workflow.ComplaintStatus) (bool, error) {
	args := m.Called(ctx, id, expected, target)
	return args.Bool(0), args.Error(1)
}

func (m *MockComplaintRepo) Assign(ctx context.Context, id uuid.UUID, employeeID uuid.UUID, employeeName string) error {
	return m.Called(ctx, id, employeeID, employeeName).Error(0)
}

func (m *MockComplaintRepo) Escalate(ctx context.Context, id uuid.UUID, seniorID uuid.UUID, seniorName, reason string) (bool, error) {
	args := m.Called(ctx, id, seniorID, seniorName, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockComplaintRepo) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.ComplaintStats)
	return stats, args.Error(1)
}

func (m *MockComplaintRepo) ResolutionStats(ctx context.Context, employeeID uuid.UUID) (int, int, error) {
	args := m.Called(ctx, employeeID)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockEngagementRepo implements repository.EngagementRepository.
type MockEngagementRepo struct {
	mock.Mock
}

func (m *MockEngagementRepo) ToggleLike(ctx context.Context, complaintID, actorID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, complaintID, actorID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockEngagementRepo) LikeStatus(ctx context.Context, complaintID, actorID uuid.UUID) (bool, int, error) {
	args := m.Called(ctx, complaintID, actorID)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockEngagementRepo) AddComment(ctx context.Context, c *models.Comment) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func (m *MockEngagementRepo) ListComments(ctx context.Context, complaintID uuid.UUID) ([]models.Comment, error) {
	args := m.Called(ctx, complaintID)
	list, _ := args.Get(0).([]models.Comment)
	return list, args.Error(1)
}

// MockPromotionRepo implements repository.PromotionRepository.
type MockPromotionRepo struct {
	mock.Mock
}

func (m *MockPromotionRepo) Create(ctx context.Context, r *models.PromotionRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockPromotionRepo) Get(ctx context.Context, id uuid.UUID) (*models.PromotionRequest, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*models.PromotionRequest); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPromotionRepo) List(ctx context.Context) ([]models.PromotionRequest, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.PromotionRequest)
	return list, args.Error(1)
}

func (m *MockPromotionRepo) HasPending(ctx context.Context, employeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, employeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPromotionRepo) Resolve(ctx context.Context, id uuid.UUID, target workflow.PromotionStatus, adminNotes string) (bool, error) {
	args := m.Called(ctx, id, target, adminNotes)
	return args.Bool(0), args.Error(1)
}

// MockUserRepo implements repository.UserRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) SetRole(ctx context.Context, id uuid.UUID, role workflow.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

// MockAuditRepo implements repository.AuditRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Record(ctx context.Context, e *models.AuditEntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockAuditRepo) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]models.AuditEntry)
	return list, args.Error(1)
}

// MockToggleGuard implements services.ToggleGuard.
type MockToggleGuard struct {
	mock.Mock
}

func (m *MockToggleGuard) Acquire(ctx context.Context, complaintID, actorID string) (bool, error) {
	args := m.Called(ctx, complaintID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockToggleGuard) Release(ctx context.Context, complaintID, actorID string) {
	m.Called(ctx, complaintID, actorID)
}
