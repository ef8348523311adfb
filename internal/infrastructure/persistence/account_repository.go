package persistence

import (
	"context"
	"errors"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an active account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active account by ID within a project
func (r *GormAccountRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
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

// FindByCode finds an active account by code within a project
func (r *GormAccountRepository) FindByCode(ctx context.Context, projectID uuid.UUID, code string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ? AND code = ?", projectID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns active accounts across all projects
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	var records []models.AccountModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toAccounts(records), nil
}

// FindAllForProject returns the active accounts of a project, by code
func (r *GormAccountRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]ledger.Account, error) {
	var records []models.AccountModel
	query := active(r.db.WithContext(ctx)).Where("project_id = ?", projectID)
	if err := query.Order("code ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return toAccounts(records), nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	var model models.AccountModel
	model.FromDomain(account)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveBatch creates accounts in one insert, used when seeding the standard
// chart for a new project
func (r *GormAccountRepository) SaveBatch(ctx context.Context, accounts []*ledger.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	records := make([]models.AccountModel, len(accounts))
	for i, a := range accounts {
		records[i].FromDomain(a)
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

// Delete soft-deletes an account
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).Model(&models.AccountModel{}).Where("id = ?", id))
}

// DeleteForProject soft-deletes an account within its project
func (r *GormAccountRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.AccountModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active accounts
func (r *GormAccountRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.AccountModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active accounts of a project
func (r *GormAccountRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.AccountModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toAccounts(records []models.AccountModel) []ledger.Account {
	result := make([]ledger.Account, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormAccountRepository implements ledger.AccountRepository
var _ ledger.AccountRepository = (*GormAccountRepository)(nil)
