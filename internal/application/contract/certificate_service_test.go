package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCertificateRepository is a mock implementation of contract.CertificateRepository
type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.Certificate, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Certificate, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contract.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]contract.Certificate, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).([]contract.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByNumber(ctx context.Context, projectID uuid.UUID, number int) (*contract.Certificate, error) {
	args := m.Called(ctx, projectID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) NextNumber(ctx context.Context, projectID uuid.UUID) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockCertificateRepository) Save(ctx context.Context, c *contract.Certificate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCertificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCertificateRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockCertificateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCertificateRepository) CountForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository is a mock implementation of contract.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.CertificateItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.CertificateItem), args.Error(1)
}

func (m *MockItemRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.CertificateItem, error) {
	args := m.Called(ctx, projectID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.CertificateItem), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.CertificateItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]contract.CertificateItem), args.Error(1)
}

func (m *MockItemRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]contract.CertificateItem, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).([]contract.CertificateItem), args.Error(1)
}

func (m *MockItemRepository) FindForCertificate(ctx context.Context, projectID, certificateID uuid.UUID, kind contract.ItemKind) ([]contract.CertificateItem, error) {
	args := m.Called(ctx, projectID, certificateID, kind)
	return args.Get(0).([]contract.CertificateItem), args.Error(1)
}

func (m *MockItemRepository) Balance(ctx context.Context, projectID uuid.UUID, kind contract.ItemKind, upToCertificate *int) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID, kind, upToCertificate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *contract.CertificateItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, projectID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func TestCertificateService_Create_AssignsNextNumber(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	mockCertRepo.On("NextNumber", ctx, projectID).Return(4, nil)
	mockCertRepo.On("Save", ctx, mock.AnythingOfType("*contract.Certificate")).Return(nil)

	result, err := service.Create(ctx, projectID, CreateCertificateRequest{Notes: "April claim"})

	assert.NoError(t, err)
	assert.Equal(t, 4, result.Number)
	assert.Equal(t, "DRAFT", result.Status)
	assert.Equal(t, "April claim", result.Notes)
	mockCertRepo.AssertExpectations(t)
}

func TestCertificateService_Transition_SubmitThenApprove(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	cert := contract.NewCertificate(projectID, 1)

	mockCertRepo.On("FindByIDForProject", ctx, projectID, cert.ID).Return(cert, nil)
	mockCertRepo.On("Save", ctx, cert).Return(nil)

	result, err := service.Transition(ctx, projectID, cert.ID, TransitionRequest{Action: "submit"})
	assert.NoError(t, err)
	assert.Equal(t, "SUBMITTED", result.Status)

	result, err = service.Transition(ctx, projectID, cert.ID, TransitionRequest{Action: "approve"})
	assert.NoError(t, err)
	assert.Equal(t, "APPROVED", result.Status)
	mockCertRepo.AssertExpectations(t)
}

func TestCertificateService_Update_DraftOnly(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	notes := "Revised measurement"
	isFinal := true

	t.Run("amends notes and final flag on a draft", func(t *testing.T) {
		cert := contract.NewCertificate(projectID, 3)
		mockCertRepo.On("FindByIDForProject", ctx, projectID, cert.ID).Return(cert, nil).Once()
		mockCertRepo.On("Save", ctx, cert).Return(nil).Once()

		result, err := service.Update(ctx, projectID, cert.ID, UpdateCertificateRequest{Notes: &notes, IsFinal: &isFinal})

		assert.NoError(t, err)
		assert.Equal(t, "Revised measurement", result.Notes)
		assert.True(t, result.IsFinal)
	})

	t.Run("rejects edits once submitted", func(t *testing.T) {
		cert := contract.NewCertificate(projectID, 4)
		cert.Status = contract.CertificateSubmitted
		mockCertRepo.On("FindByIDForProject", ctx, projectID, cert.ID).Return(cert, nil).Once()

		result, err := service.Update(ctx, projectID, cert.ID, UpdateCertificateRequest{Notes: &notes})

		assert.Nil(t, result)
		var domainErr *shared.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	mockCertRepo.AssertExpectations(t)
}

func TestCertificateService_Transition_DraftCannotApprove(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	cert := contract.NewCertificate(projectID, 2)

	mockCertRepo.On("FindByIDForProject", ctx, projectID, cert.ID).Return(cert, nil)

	result, err := service.Transition(ctx, projectID, cert.ID, TransitionRequest{Action: "approve"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	mockCertRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCertificateService_Transition_UnknownAction(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	result, err := service.Transition(context.Background(), uuid.New(), uuid.New(), TransitionRequest{Action: "archive"})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	mockCertRepo.AssertNotCalled(t, "FindByIDForProject", mock.Anything, mock.Anything, mock.Anything)
}

func TestCertificateService_CaptureItem_Success(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	cert := contract.NewCertificate(projectID, 3)
	capturedBy := uuid.New()

	mockCertRepo.On("FindByIDForProject", ctx, projectID, cert.ID).Return(cert, nil)
	mockItemRepo.On("Save", ctx, mock.AnythingOfType("*contract.CertificateItem")).Return(nil)

	budget := decimal.NewFromInt(200000)
	result, err := service.CaptureItem(ctx, projectID, contract.KindAdvancePayment, CreateItemRequest{
		CertificateID:   cert.ID,
		TransactionType: "CREDIT",
		Amount:          decimal.NewFromInt(15000),
		BudgetAmount:    &budget,
		Description:     "Advance recovery",
		CapturedBy:      capturedBy,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ADVANCE_PAYMENT", result.Kind)
	assert.Equal(t, "CREDIT", result.TransactionType)
	assert.True(t, result.BudgetAmount.Valid)
	assert.True(t, result.BudgetAmount.Decimal.Equal(budget))
	mockItemRepo.AssertExpectations(t)
}

func TestCertificateService_CaptureItem_RejectsNonPositiveAmount(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	result, err := service.CaptureItem(context.Background(), uuid.New(), contract.KindRetention, CreateItemRequest{
		CertificateID:   uuid.New(),
		TransactionType: "DEBIT",
		Amount:          decimal.Zero,
		CapturedBy:      uuid.New(),
	})

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	mockItemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCertificateService_CaptureItem_CertificateNotFound(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	missingID := uuid.New()
	mockCertRepo.On("FindByIDForProject", ctx, projectID, missingID).Return(nil, shared.ErrNotFound)

	result, err := service.CaptureItem(ctx, projectID, contract.KindEscalation, CreateItemRequest{
		CertificateID:   missingID,
		TransactionType: "DEBIT",
		Amount:          decimal.NewFromInt(500),
		CapturedBy:      uuid.New(),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	mockItemRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCertificateService_ItemBalance_UpToCertificate(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	ctx := context.Background()
	projectID := uuid.New()
	upTo := 5
	mockItemRepo.On("Balance", ctx, projectID, contract.KindRetention, &upTo).Return(decimal.NewFromInt(42000), nil)

	result, err := service.ItemBalance(ctx, projectID, contract.KindRetention, &upTo)

	assert.NoError(t, err)
	assert.Equal(t, "RETENTION", result.Kind)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(42000)))
	assert.Equal(t, &upTo, result.UpToCertificate)
	mockItemRepo.AssertExpectations(t)
}

func TestCertificateService_ItemBalance_UnknownKind(t *testing.T) {
	mockCertRepo := new(MockCertificateRepository)
	mockItemRepo := new(MockItemRepository)
	service := NewCertificateService(mockCertRepo, mockItemRepo)

	result, err := service.ItemBalance(context.Background(), uuid.New(), contract.ItemKind("PETTY_CASH"), nil)

	assert.Nil(t, result)
	var domainErr *shared.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}
