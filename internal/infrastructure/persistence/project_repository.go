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

// GormProjectRepository implements project.Repository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds an active project by its ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all active projects
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, error) {
	var records []models.ProjectModel
	query := applyFilter(active(r.db.WithContext(ctx)), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjects(records), nil
}

// FindForUser returns the active projects the user holds at least one role on
func (r *GormProjectRepository) FindForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	var records []models.ProjectModel
	query := applyFilter(r.memberQuery(ctx, userID), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjects(records), nil
}

// CountForUser counts the active projects the user is a member of
func (r *GormProjectRepository) CountForUser(ctx context.Context, userID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	if err := r.memberQuery(ctx, userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProjectRepository) memberQuery(ctx context.Context, userID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("projects.deleted = ?", false).
		Where("projects.id IN (?)", r.db.
			Model(&models.ProjectRoleModel{}).
			Select("project_id").
			Where("user_id = ? AND deleted = ?", userID, false))
}

// Save creates or updates a project
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	var model models.ProjectModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a project. Already-deleted projects report not found,
// which keeps the operation idempotent from the caller's point of view.
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := active(r.db.WithContext(ctx)).
		Model(&models.ProjectModel{}).
		Where("id = ?", id).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts active projects
func (r *GormProjectRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	if err := active(r.db.WithContext(ctx)).
		Model(&models.ProjectModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toProjects(records []models.ProjectModel) []project.Project {
	result := make([]project.Project, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormProjectRepository implements project.Repository
var _ project.Repository = (*GormProjectRepository)(nil)
