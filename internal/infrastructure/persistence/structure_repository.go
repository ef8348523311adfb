package persistence

import (
	"context"
	"errors"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStructureRepository implements project.StructureRepository using GORM
type GormStructureRepository struct {
	db *gorm.DB
}

// NewGormStructureRepository creates a new GormStructureRepository
func NewGormStructureRepository(db *gorm.DB) *GormStructureRepository {
	return &GormStructureRepository{db: db}
}

// FindByID finds an active structure by ID
func (r *GormStructureRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Structure, error) {
	var model models.StructureModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active structure by ID within a project
func (r *GormStructureRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*project.Structure, error) {
	var model models.StructureModel
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

// FindAll returns active structures across all projects
func (r *GormStructureRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Structure, error) {
	var records []models.StructureModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toStructures(records), nil
}

// FindAllForProject returns the active structures of a project, by name
func (r *GormStructureRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) ([]project.Structure, error) {
	var records []models.StructureModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toStructures(records), nil
}

// Save creates or updates a structure
func (r *GormStructureRepository) Save(ctx context.Context, s *project.Structure) error {
	var model models.StructureModel
	model.FromDomain(s)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a structure
func (r *GormStructureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.StructureModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes a structure within its project
func (r *GormStructureRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.StructureModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active structures
func (r *GormStructureRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.StructureModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active structures of a project
func (r *GormStructureRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.StructureModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toStructures(records []models.StructureModel) []project.Structure {
	result := make([]project.Structure, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormStructureRepository implements project.StructureRepository
var _ project.StructureRepository = (*GormStructureRepository)(nil)
