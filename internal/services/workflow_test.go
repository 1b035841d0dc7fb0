package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/services"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

var testLogger = zap.NewNop().Sugar()

func adminActor() workflow.Actor {
	return workflow.Actor{ID: uuid.NewString(), Role: workflow.RoleAdmin, Name: "Admin", Authenticated: true}
}

func newWorkflowService(complaints *MockComplaintRepo, users *MockUserRepo, policy workflow.TransitionPolicy) (*services.WorkflowService, *MockAuditRepo) {
	auditRepo := new(MockAuditRepo)
	auditRepo.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	audit := services.NewAuditService(auditRepo, testLogger)
	return services.NewWorkflowService(complaints, users, audit, policy, testLogger), auditRepo
}

func pendingComplaint(status workflow.ComplaintStatus) *models.Complaint {
	return &models.Complaint{
		ID:     uuid.New(),
		Title:  "Streetlight out",
		Status: status,
		UserID: uuid.New(),
	}
}

func TestTransitionStatus_Forward(t *testing.T) {
	complaints := new(MockComplaintRepo)
	svc, auditRepo := newWorkflowService(complaints, new(MockUserRepo), workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusNew)
	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)
	complaints.On("UpdateStatus", mock.Anything, c.ID, workflow.StatusNew, workflow.StatusUnderReview).Return(true, nil)

	_, err := svc.TransitionStatus(context.Background(), c.ID, workflow.StatusUnderReview, adminActor())

	assert.NoError(t, err)
	complaints.AssertCalled(t, "UpdateStatus", mock.Anything, c.ID, workflow.StatusNew, workflow.StatusUnderReview)
	auditRepo.AssertCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestTransitionStatus_BackwardRejected(t *testing.T) {
	complaints := new(MockComplaintRepo)
	svc, _ := newWorkflowService(complaints, new(MockUserRepo), workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusResolved)
	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.TransitionStatus(context.Background(), c.ID, workflow.StatusUnderReview, adminActor())

	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	complaints.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionStatus_SkipPolicy(t *testing.T) {
	// NEW -> RESOLVED skips UNDER_REVIEW: denied by default, allowed when
	// the policy says so.
	complaints := new(MockComplaintRepo)
	strict, _ := newWorkflowService(complaints, new(MockUserRepo), workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusNew)
	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)

	_, err := strict.TransitionStatus(context.Background(), c.ID, workflow.StatusResolved, adminActor())
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	lenientRepo := new(MockComplaintRepo)
	lenient, _ := newWorkflowService(lenientRepo, new(MockUserRepo), workflow.TransitionPolicy{AllowSkip: true})
	lenientRepo.On("Get", mock.Anything, c.ID).Return(c, nil)
	lenientRepo.On("UpdateStatus", mock.Anything, c.ID, workflow.StatusNew, workflow.StatusResolved).Return(true, nil)

	_, err = lenient.TransitionStatus(context.Background(), c.ID, workflow.StatusResolved, adminActor())
	assert.NoError(t, err)
}

func TestTransitionStatus_NonAdmin(t *testing.T) {
	complaints := new(MockComplaintRepo)
	svc, _ := newWorkflowService(complaints, new(MockUserRepo), workflow.TransitionPolicy{})

	employee := workflow.Actor{ID: uuid.NewString(), Role: workflow.RoleEmployee, Authenticated: true}
	_, err := svc.TransitionStatus(context.Background(), uuid.New(), workflow.StatusUnderReview, employee)

	assert.ErrorIs(t, err, workflow.ErrUnauthorized)
	complaints.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestTransitionStatus_ConcurrentLoserFails(t *testing.T) {
	// The compare-and-set saw a different status than the one we read:
	// another admin's transition landed first.
	complaints := new(MockComplaintRepo)
	svc, _ := newWorkflowService(complaints, new(MockUserRepo), workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusNew)
	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)
	complaints.On("UpdateStatus", mock.Anything, c.ID, workflow.StatusNew, workflow.StatusUnderReview).Return(false, nil)

	_, err := svc.TransitionStatus(context.Background(), c.ID, workflow.StatusUnderReview, adminActor())

	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
}

func TestAssignEmployee(t *testing.T) {
	complaints := new(MockComplaintRepo)
	users := new(MockUserRepo)
	svc, auditRepo := newWorkflowService(complaints, users, workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusNew)
	employee := &models.User{ID: uuid.New(), FullName: "Eva Employee", Role: workflow.RoleEmployee}

	users.On("GetByID", mock.Anything, employee.ID).Return(employee, nil)
	complaints.On("Assign", mock.Anything, c.ID, employee.ID, employee.FullName).Return(nil)
	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)

	_, err := svc.AssignEmployee(context.Background(), c.ID, employee.ID, adminActor())

	assert.NoError(t, err)
	complaints.AssertCalled(t, "Assign", mock.Anything, c.ID, employee.ID, employee.FullName)
	auditRepo.AssertCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestAssignEmployee_NonStaffAssignee(t *testing.T) {
	complaints := new(MockComplaintRepo)
	users := new(MockUserRepo)
	svc, _ := newWorkflowService(complaints, users, workflow.TransitionPolicy{})

	citizen := &models.User{ID: uuid.New(), FullName: "A Citizen", Role: workflow.RoleUser}
	users.On("GetByID", mock.Anything, citizen.ID).Return(citizen, nil)

	_, err := svc.AssignEmployee(context.Background(), uuid.New(), citizen.ID, adminActor())

	assert.ErrorIs(t, err, workflow.ErrValidation)
	complaints.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalate(t *testing.T) {
	complaints := new(MockComplaintRepo)
	users := new(MockUserRepo)
	svc, _ := newWorkflowService(complaints, users, workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusUnderReview)
	senior := &models.User{ID: uuid.New(), FullName: "Sam Senior", Role: workflow.RoleSeniorEmployee}

	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)
	users.On("GetByID", mock.Anything, senior.ID).Return(senior, nil)
	complaints.On("Escalate", mock.Anything, c.ID, senior.ID, senior.FullName, "needs senior review").Return(true, nil)

	_, err := svc.Escalate(context.Background(), c.ID, senior.ID, "needs senior review", adminActor())

	assert.NoError(t, err)
}

func TestEscalate_SecondCallRejected(t *testing.T) {
	complaints := new(MockComplaintRepo)
	users := new(MockUserRepo)
	svc, _ := newWorkflowService(complaints, users, workflow.TransitionPolicy{})

	senior := &models.User{ID: uuid.New(), FullName: "Sam Senior", Role: workflow.RoleSeniorEmployee}
	name := senior.FullName
	c := pendingComplaint(workflow.StatusUnderReview)
	c.EscalatedToID = &senior.ID
	c.EscalatedToName = &name

	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)
	users.On("GetByID", mock.Anything, senior.ID).Return(senior, nil)

	_, err := svc.Escalate(context.Background(), c.ID, senior.ID, "again", adminActor())

	assert.ErrorIs(t, err, workflow.ErrAlreadyEscalated)
	complaints.AssertNotCalled(t, "Escalate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEscalate_LostRaceRejected(t *testing.T) {
	complaints := new(MockComplaintRepo)
	users := new(MockUserRepo)
	svc, _ := newWorkflowService(complaints, users, workflow.TransitionPolicy{})

	c := pendingComplaint(workflow.StatusUnderReview)
	senior := &models.User{ID: uuid.New(), FullName: "Sam Senior", Role: workflow.RoleSeniorEmployee}

	complaints.On("Get", mock.Anything, c.ID).Return(c, nil)
	users.On("GetByID", mock.Anything, senior.ID).Return(senior, nil)
	complaints.On("Escalate", mock.Anything, c.ID, senior.ID, senior.FullName, "race").Return(false, nil)

	_, err := svc.Escalate(context.Background(), c.ID, senior.ID, "race", adminActor())

	assert.ErrorIs(t, err, workflow.ErrAlreadyEscalated)
}

func TestQueue_SeniorMergesEscalated(t *testing.T) {
	complaints := new(MockComplaintRepo)
	svc, _ := newWorkflowService(complaints, new(MockUserRepo), workflow.TransitionPolicy{})

	seniorID := uuid.New()
	senior := workflow.Actor{ID: seniorID.String(), Role: workflow.RoleSeniorEmployee, Authenticated: true}

	shared := *pendingComplaint(workflow.StatusUnderReview)
	assignedOnly := *pendingComplaint(workflow.StatusNew)
	escalatedOnly := *pendingComplaint(workflow.StatusUnderReview)

	complaints.On("ListAssigned", mock.Anything, seniorID).Return([]models.Complaint{assignedOnly, shared}, nil)
	complaints.On("ListEscalatedTo", mock.Anything, seniorID).Return([]models.Complaint{shared, escalatedOnly}, nil)

	queue, err := svc.Queue(context.Background(), senior)

	assert.NoError(t, err)
	assert.Len(t, queue, 3)
}

func TestQueue_UserDenied(t *testing.T) {
	svc, _ := newWorkflowService(new(MockComplaintRepo), new(MockUserRepo), workflow.TransitionPolicy{})

	citizen := workflow.Actor{ID: uuid.NewString(), Role: workflow.RoleUser, Authenticated: true}
	_, err := svc.Queue(context.Background(), citizen)

	assert.ErrorIs(t, err, workflow.ErrUnauthorized)
}
