package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormForecastRepository implements contract.ForecastRepository using GORM
type GormForecastRepository struct {
	db *gorm.DB
}

// NewGormForecastRepository creates a new GormForecastRepository
func NewGormForecastRepository(db *gorm.DB) *GormForecastRepository {
	return &GormForecastRepository{db: db}
}

// FindByID finds an active forecast by ID
func (r *GormForecastRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Forecast, error) {
	var model models.ForecastModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active forecast by ID within a project
func (r *GormForecastRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.Forecast, error) {
	var model models.ForecastModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ? AND id = ?", projectID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns active forecasts across all projects
func (r *GormForecastRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Forecast, error) {
	var records []models.ForecastModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toForecasts(records), nil
}

// FindAllForProject returns the active forecasts of a project, by period
func (r *GormForecastRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) ([]contract.Forecast, error) {
	var records []models.ForecastModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ?", projectID).
		Order("period ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toForecasts(records), nil
}

// FindForRange returns the active forecasts of a project whose period falls
// within [from, to], by period
func (r *GormForecastRepository) FindForRange(ctx context.Context, projectID uuid.UUID, from, to time.Time) ([]contract.Forecast, error) {
	var records []models.ForecastModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ? AND period >= ? AND period <= ?", projectID, from, to).
		Order("period ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toForecasts(records), nil
}

// SumForProject totals the active forecast amounts of a project
func (r *GormForecastRepository) SumForProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := active(r.db.WithContext(ctx)).
		Model(&models.ForecastModel{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// Save creates or updates a forecast
func (r *GormForecastRepository) Save(ctx context.Context, f *contract.Forecast) error {
	var model models.ForecastModel
	model.FromDomain(f)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a forecast
func (r *GormForecastRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.ForecastModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes a forecast within its project
func (r *GormForecastRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.ForecastModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active forecasts
func (r *GormForecastRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.ForecastModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active forecasts of a project
func (r *GormForecastRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.ForecastModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toForecasts(records []models.ForecastModel) []contract.Forecast {
	result := make([]contract.Forecast, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormForecastRepository implements contract.ForecastRepository
var _ contract.ForecastRepository = (*GormForecastRepository)(nil)
