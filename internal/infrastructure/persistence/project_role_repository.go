package persistence

import (
	"context"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProjectRoleRepository implements project.RoleRepository using GORM
type GormProjectRoleRepository struct {
	db *gorm.DB
}

// NewGormProjectRoleRepository creates a new GormProjectRoleRepository
func NewGormProjectRoleRepository(db *gorm.DB) *GormProjectRoleRepository {
	return &GormProjectRoleRepository{db: db}
}

// FindRolesForUser returns the set of roles the user holds on the project
func (r *GormProjectRoleRepository) FindRolesForUser(ctx context.Context, projectID, userID uuid.UUID) (project.RoleSet, error) {
	var names []string
	if err := active(r.db.WithContext(ctx)).
		Model(&models.ProjectRoleModel{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Pluck("role", &names).Error; err != nil {
		return nil, err
	}
	roles := make([]project.Role, len(names))
	for i, n := range names {
		roles[i] = project.Role(n)
	}
	return project.NewRoleSet(roles...), nil
}

// FindAssignments returns all active role assignments on the project
func (r *GormProjectRoleRepository) FindAssignments(ctx context.Context, projectID uuid.UUID) ([]project.ProjectRole, error) {
	var records []models.ProjectRoleModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]project.ProjectRole, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a role assignment
func (r *GormProjectRoleRepository) Save(ctx context.Context, assignment *project.ProjectRole) error {
	var model models.ProjectRoleModel
	model.FromDomain(assignment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a role assignment within its project
func (r *GormProjectRoleRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	result := active(r.db.WithContext(ctx)).
		Model(&models.ProjectRoleModel{}).
		Where("project_id = ? AND id = ?", projectID, id).
		Update("deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProjectRoleRepository implements project.RoleRepository
var _ project.RoleRepository = (*GormProjectRoleRepository)(nil)
