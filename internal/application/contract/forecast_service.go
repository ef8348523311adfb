package contract

import (
	"context"
	"time"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ForecastService handles monthly cost forecasts
type ForecastService struct {
	forecastRepo contract.ForecastRepository
}

// NewForecastService creates a new ForecastService
func NewForecastService(forecastRepo contract.ForecastRepository) *ForecastService {
	return &ForecastService{forecastRepo: forecastRepo}
}

// Create records a forecast row. The period is normalised to the first day
// of its month.
func (s *ForecastService) Create(ctx context.Context, projectID uuid.UUID, req CreateForecastRequest) (*ForecastResponse, error) {
	f := contract.NewForecast(projectID, req.Period, req.Amount, req.CreatedBy)
	f.Notes = req.Notes
	if err := s.forecastRepo.Save(ctx, f); err != nil {
		return nil, err
	}
	resp := ToForecastResponse(f)
	return &resp, nil
}

// Get returns a single forecast within its project
func (s *ForecastService) Get(ctx context.Context, projectID, id uuid.UUID) (*ForecastResponse, error) {
	f, err := s.forecastRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	resp := ToForecastResponse(f)
	return &resp, nil
}

// List returns the project's forecasts, optionally bounded to a period range
func (s *ForecastService) List(ctx context.Context, projectID uuid.UUID, from, to *time.Time, filter shared.Filter) ([]ForecastResponse, error) {
	var (
		forecasts []contract.Forecast
		err       error
	)
	if from != nil && to != nil {
		forecasts, err = s.forecastRepo.FindForRange(ctx, projectID, *from, *to)
	} else {
		forecasts, err = s.forecastRepo.FindAllForProject(ctx, projectID, filter)
	}
	if err != nil {
		return nil, err
	}
	result := make([]ForecastResponse, len(forecasts))
	for i := range forecasts {
		result[i] = ToForecastResponse(&forecasts[i])
	}
	return result, nil
}

// Total returns the sum of the project's active forecasts
func (s *ForecastService) Total(ctx context.Context, projectID uuid.UUID) (*ForecastTotalResponse, error) {
	total, err := s.forecastRepo.SumForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &ForecastTotalResponse{ProjectID: projectID, Total: total}, nil
}

// Delete soft deletes a forecast row
func (s *ForecastService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	return s.forecastRepo.DeleteForProject(ctx, projectID, id)
}
