package persistence

import (
	"context"
	"errors"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormVariationRepository implements contract.VariationRepository using GORM
type GormVariationRepository struct {
	db *gorm.DB
}

// NewGormVariationRepository creates a new GormVariationRepository
func NewGormVariationRepository(db *gorm.DB) *GormVariationRepository {
	return &GormVariationRepository{db: db}
}

// FindByID finds an active variation by ID
func (r *GormVariationRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Variation, error) {
	var model models.VariationModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active variation by ID within a project
func (r *GormVariationRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.Variation, error) {
	var model models.VariationModel
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

// FindAll returns active variations across all projects
func (r *GormVariationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Variation, error) {
	var records []models.VariationModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toVariations(records), nil
}

// FindAllForProject returns the active variations of a project
func (r *GormVariationRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]contract.Variation, error) {
	var records []models.VariationModel
	query := applyFilter(active(r.db.WithContext(ctx)).Where("project_id = ?", projectID), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toVariations(records), nil
}

// FindByStatus returns the active variations of a project in a given state
func (r *GormVariationRepository) FindByStatus(ctx context.Context, projectID uuid.UUID, status contract.VariationStatus, filter shared.Filter) ([]contract.Variation, error) {
	var records []models.VariationModel
	query := applyFilter(active(r.db.WithContext(ctx)).
		Where("project_id = ? AND status = ?", projectID, string(status)), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toVariations(records), nil
}

// NextSequence returns the next per-project variation sequence number.
// Soft-deleted variations keep their number; sequences are never reissued.
func (r *GormVariationRepository) NextSequence(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VariationModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// SumApprovedAmounts totals the cost amounts of active, approved variations
// for the project. NULL amounts (time-only variations) contribute nothing.
func (r *GormVariationRepository) SumApprovedAmounts(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := active(r.db.WithContext(ctx)).
		Model(&models.VariationModel{}).
		Where("project_id = ? AND status = ?", projectID, string(contract.VariationApproved)).
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

// Save creates or updates a variation
func (r *GormVariationRepository) Save(ctx context.Context, v *contract.Variation) error {
	var model models.VariationModel
	model.FromDomain(v)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a variation
func (r *GormVariationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.VariationModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes a variation within its project
func (r *GormVariationRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.VariationModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active variations
func (r *GormVariationRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.VariationModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active variations of a project
func (r *GormVariationRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.VariationModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toVariations(records []models.VariationModel) []contract.Variation {
	result := make([]contract.Variation, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormVariationRepository implements contract.VariationRepository
var _ contract.VariationRepository = (*GormVariationRepository)(nil)
