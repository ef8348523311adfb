package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock implementation of project.Repository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockVariationRepository is a mock implementation of contract.VariationRepository
type MockVariationRepository struct {
	mock.Mock
}

func (m *MockVariationRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Variation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Variation), args.Error(1)
}

func (m *MockVariationRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.Variation, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Variation), args.Error(1)
}

func (m *MockVariationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Variation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contract.Variation), args.Error(1)
}

func (m *MockVariationRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]contract.Variation, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).([]contract.Variation), args.Error(1)
}

func (m *MockVariationRepository) FindByStatus(ctx context.Context, projectID uuid.UUID, status contract.VariationStatus, filter shared.Filter) ([]contract.Variation, error) {
	args := m.Called(ctx, projectID, status, filter)
	return args.Get(0).([]contract.Variation), args.Error(1)
}

func (m *MockVariationRepository) NextSequence(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockVariationRepository) SumApprovedAmounts(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockVariationRepository) Save(ctx context.Context, v *contract.Variation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVariationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariationRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockVariationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVariationRepository) CountForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestProject() *project.Project {
	return project.NewProject("Harbour Upgrade", "HBR-01", decimal.NewFromInt(1000000), uuid.New())
}

func TestVariationService_Create_Success(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	p := newTestProject()
	amount := decimal.NewFromInt(25000)
	req := CreateVariationRequest{
		Title:       "Additional piling",
		Category:    "SITE_CONDITIONS",
		Type:        "AMOUNT",
		Amount:      &amount,
		SubmittedBy: uuid.New(),
	}

	mockProjectRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	mockVariationRepo.On("NextSequence", ctx, p.ID).Return(3, nil)
	mockVariationRepo.On("Save", ctx, mock.AnythingOfType("*contract.Variation")).Return(nil)

	result, err := service.Create(ctx, p.ID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "VO-003", result.Number)
	assert.Equal(t, "DRAFT", result.Status)
	assert.True(t, result.Amount.Valid)
	assert.True(t, result.Amount.Decimal.Equal(amount))
	mockProjectRepo.AssertExpectations(t)
	mockVariationRepo.AssertExpectations(t)
}

func TestVariationService_Create_ProjectNotFound(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	projectID := uuid.New()
	mockProjectRepo.On("FindByID", ctx, projectID).Return(nil, shared.ErrNotFound)

	result, err := service.Create(ctx, projectID, CreateVariationRequest{
		Title:    "Orphan",
		Category: "OTHER",
		Type:     "TIME",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockVariationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVariationService_Approve_AppliesCostAndTime(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	p := newTestProject()
	completion := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	p.CompletionDate = &completion

	amount := decimal.NewFromInt(50000)
	v := contract.NewVariation(p.ID, 1, "Storm damage", contract.CategoryForceMajeure, contract.VariationBoth, uuid.New())
	v.Amount = decimal.NewNullDecimal(amount)
	v.TimeExtensionDays = 14
	assert.NoError(t, v.Submit())

	approver := uuid.New()
	mockVariationRepo.On("FindByIDForProject", ctx, p.ID, v.ID).Return(v, nil)
	mockProjectRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	mockVariationRepo.On("Save", ctx, v).Return(nil)
	mockProjectRepo.On("Save", ctx, p).Return(nil)

	result, err := service.Approve(ctx, p.ID, v.ID, approver)

	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", result.Status)
	assert.NotNil(t, result.DateApproved)
	assert.True(t, p.RevisedContractValue.Equal(decimal.NewFromInt(1050000)))
	assert.NotNil(t, p.RevisedCompletionDate)
	assert.Equal(t, completion.AddDate(0, 0, 14), *p.RevisedCompletionDate)
	mockProjectRepo.AssertExpectations(t)
	mockVariationRepo.AssertExpectations(t)
}

func TestVariationService_Approve_TimeOnlySkipsProjectValue(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	p := newTestProject()
	v := contract.NewVariation(p.ID, 2, "Weather delay", contract.CategoryForceMajeure, contract.VariationTime, uuid.New())
	v.TimeExtensionDays = 7
	assert.NoError(t, v.Submit())

	mockVariationRepo.On("FindByIDForProject", ctx, p.ID, v.ID).Return(v, nil)
	mockProjectRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	mockVariationRepo.On("Save", ctx, v).Return(nil)
	mockProjectRepo.On("Save", ctx, p).Return(nil)

	_, err := service.Approve(ctx, p.ID, v.ID, uuid.New())

	assert.NoError(t, err)
	assert.True(t, p.RevisedContractValue.Equal(decimal.NewFromInt(1000000)))
	// No completion date on the project, so the extension has nothing to move
	assert.Nil(t, p.RevisedCompletionDate)
}

func TestVariationService_Approve_FromDraftRejected(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	projectID := uuid.New()
	v := contract.NewVariation(projectID, 1, "Still a draft", contract.CategoryOther, contract.VariationAmount, uuid.New())

	mockVariationRepo.On("FindByIDForProject", ctx, projectID, v.ID).Return(v, nil)

	result, err := service.Approve(ctx, projectID, v.ID, uuid.New())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	mockVariationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockProjectRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVariationService_Update_NonDraftRejected(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	projectID := uuid.New()
	v := contract.NewVariation(projectID, 1, "Submitted already", contract.CategoryOther, contract.VariationAmount, uuid.New())
	assert.NoError(t, v.Submit())

	mockVariationRepo.On("FindByIDForProject", ctx, projectID, v.ID).Return(v, nil)

	newTitle := "Renamed"
	result, err := service.Update(ctx, projectID, v.ID, UpdateVariationRequest{Title: &newTitle})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestVariationService_Summary(t *testing.T) {
	mockProjectRepo := new(MockProjectRepository)
	mockVariationRepo := new(MockVariationRepository)
	service := NewVariationService(mockProjectRepo, mockVariationRepo)

	ctx := context.Background()
	projectID := uuid.New()
	mockVariationRepo.On("CountForProject", ctx, projectID, mock.AnythingOfType("shared.Filter")).Return(int64(4), nil)
	mockVariationRepo.On("SumApprovedAmounts", ctx, projectID).Return(decimal.NewFromInt(75000), nil)

	result, err := service.Summary(ctx, projectID)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), result.TotalCount)
	assert.True(t, result.TotalApprovedAmount.Equal(decimal.NewFromInt(75000)))
	mockVariationRepo.AssertExpectations(t)
}
