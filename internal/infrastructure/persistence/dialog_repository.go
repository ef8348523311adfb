package persistence

import (
	"context"
	"errors"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDialogRepository implements contract.DialogRepository using GORM
type GormDialogRepository struct {
	db *gorm.DB
}

// NewGormDialogRepository creates a new GormDialogRepository
func NewGormDialogRepository(db *gorm.DB) *GormDialogRepository {
	return &GormDialogRepository{db: db}
}

// FindByID finds an active dialog by ID
func (r *GormDialogRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Dialog, error) {
	var model models.DialogModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active dialog by ID within a project
func (r *GormDialogRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.Dialog, error) {
	var model models.DialogModel
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

// FindAll returns active dialogs across all projects
func (r *GormDialogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Dialog, error) {
	var records []models.DialogModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDialogs(records), nil
}

// FindAllForProject returns the active dialogs of a project
func (r *GormDialogRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]contract.Dialog, error) {
	var records []models.DialogModel
	query := applyFilter(active(r.db.WithContext(ctx)).Where("project_id = ?", projectID), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toDialogs(records), nil
}

// FindMessages returns the active messages of a dialog, oldest first
func (r *GormDialogRepository) FindMessages(ctx context.Context, dialogID uuid.UUID) ([]contract.Message, error) {
	var records []models.MessageModel
	if err := active(r.db.WithContext(ctx)).
		Where("dialog_id = ?", dialogID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]contract.Message, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a dialog
func (r *GormDialogRepository) Save(ctx context.Context, d *contract.Dialog) error {
	var model models.DialogModel
	model.FromDomain(d)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveMessage creates or updates a message
func (r *GormDialogRepository) SaveMessage(ctx context.Context, message *contract.Message) error {
	var model models.MessageModel
	model.FromDomain(message)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a dialog. Its messages stay in place but are
// unreachable once the dialog is gone.
func (r *GormDialogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.DialogModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes a dialog within its project
func (r *GormDialogRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.DialogModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active dialogs
func (r *GormDialogRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.DialogModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active dialogs of a project
func (r *GormDialogRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.DialogModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toDialogs(records []models.DialogModel) []contract.Dialog {
	result := make([]contract.Dialog, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormDialogRepository implements contract.DialogRepository
var _ contract.DialogRepository = (*GormDialogRepository)(nil)
