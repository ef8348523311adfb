package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVatRateRepository is a mock implementation of ledger.VatRateRepository
type MockVatRateRepository struct {
	mock.Mock
}

func (m *MockVatRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.VatRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.VatRate), args.Error(1)
}

func (m *MockVatRateRepository) FindAll(ctx context.Context) ([]ledger.VatRate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ledger.VatRate), args.Error(1)
}

func (m *MockVatRateRepository) Save(ctx context.Context, rate *ledger.VatRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockVatRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func date(y int, mo time.Month, d int) *time.Time {
	t := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestVatRateService_Create_Success(t *testing.T) {
	mockRepo := new(MockVatRateRepository)
	service := NewVatRateService(mockRepo)

	ctx := context.Background()
	existing := *ledger.NewVatRate("Standard 14%", decimal.NewFromFloat(14), nil, date(2018, 3, 31))

	mockRepo.On("FindAll", ctx).Return([]ledger.VatRate{existing}, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*ledger.VatRate")).Return(nil)

	result, err := service.Create(ctx, CreateVatRateRequest{
		Name:      "Standard 15%",
		Rate:      decimal.NewFromFloat(15),
		StartDate: date(2018, 4, 1),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Standard 15%", result.Name)
	assert.True(t, result.Rate.Equal(decimal.NewFromFloat(15)))
	mockRepo.AssertExpectations(t)
}

func TestVatRateService_Create_OverlapRejected(t *testing.T) {
	mockRepo := new(MockVatRateRepository)
	service := NewVatRateService(mockRepo)

	ctx := context.Background()
	existing := *ledger.NewVatRate("Standard 15%", decimal.NewFromFloat(15), date(2018, 4, 1), nil)

	mockRepo.On("FindAll", ctx).Return([]ledger.VatRate{existing}, nil)

	result, err := service.Create(ctx, CreateVatRateRequest{
		Name:      "Overlapping",
		Rate:      decimal.NewFromFloat(16),
		StartDate: date(2020, 1, 1),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrPeriodOverlap)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVatRateService_Update_ExcludesSelfFromOverlapCheck(t *testing.T) {
	mockRepo := new(MockVatRateRepository)
	service := NewVatRateService(mockRepo)

	ctx := context.Background()
	rate := ledger.NewVatRate("Standard 15%", decimal.NewFromFloat(15), date(2018, 4, 1), nil)

	mockRepo.On("FindByID", ctx, rate.ID).Return(rate, nil)
	mockRepo.On("FindAll", ctx).Return([]ledger.VatRate{*rate}, nil)
	mockRepo.On("Save", ctx, rate).Return(nil)

	newName := "Standard rate 15%"
	result, err := service.Update(ctx, rate.ID, UpdateVatRateRequest{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Standard rate 15%", result.Name)
	mockRepo.AssertExpectations(t)
}

func TestVatRateService_ResolveForDate(t *testing.T) {
	mockRepo := new(MockVatRateRepository)
	service := NewVatRateService(mockRepo)

	ctx := context.Background()
	old := *ledger.NewVatRate("Standard 14%", decimal.NewFromFloat(14), nil, date(2018, 3, 31))
	current := *ledger.NewVatRate("Standard 15%", decimal.NewFromFloat(15), date(2018, 4, 1), nil)

	mockRepo.On("FindAll", ctx).Return([]ledger.VatRate{old, current}, nil)

	result, err := service.ResolveForDate(ctx, time.Date(2017, 6, 15, 0, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.True(t, result.Rate.Equal(decimal.NewFromFloat(14)))
}

func TestVatRateService_ResolveForDate_NoPeriod(t *testing.T) {
	mockRepo := new(MockVatRateRepository)
	service := NewVatRateService(mockRepo)

	ctx := context.Background()
	bounded := *ledger.NewVatRate("Standard 15%", decimal.NewFromFloat(15), date(2018, 4, 1), date(2025, 12, 31))

	mockRepo.On("FindAll", ctx).Return([]ledger.VatRate{bounded}, nil)

	result, err := service.ResolveForDate(ctx, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrNoRatePeriod)
}

func TestVatRateService_ResolveForDate_AmbiguousData(t *testing.T) {
	mockRepo := new(MockVatRateRepository)
	service := NewVatRateService(mockRepo)

	ctx := context.Background()
	// Overlapping rows bypassed write-time validation; the resolver must
	// refuse to pick one.
	first := *ledger.NewVatRate("Standard 15%", decimal.NewFromFloat(15), date(2018, 4, 1), nil)
	second := *ledger.NewVatRate("Duplicate 15%", decimal.NewFromFloat(15), date(2018, 4, 1), nil)

	mockRepo.On("FindAll", ctx).Return([]ledger.VatRate{first, second}, nil)

	result, err := service.ResolveForDate(ctx, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrAmbiguousPeriod)
}
