package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds an active transaction by ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active transaction by ID within a project
func (r *GormTransactionRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
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

// FindAll returns active transactions across all projects
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Transaction, error) {
	var records []models.TransactionModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toTransactions(records), nil
}

// FindAllForProject returns the active transactions of a project
func (r *GormTransactionRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]ledger.Transaction, error) {
	var records []models.TransactionModel
	query := applyFilter(active(r.db.WithContext(ctx)).Where("project_id = ?", projectID), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toTransactions(records), nil
}

// FindForAccount returns the active transactions of one account
func (r *GormTransactionRepository) FindForAccount(ctx context.Context, projectID, accountID uuid.UUID, filter shared.Filter) ([]ledger.Transaction, error) {
	var records []models.TransactionModel
	query := applyFilter(active(r.db.WithContext(ctx)).
		Where("project_id = ? AND account_id = ?", projectID, accountID), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toTransactions(records), nil
}

// SumForAccount returns debits minus credits over active rows, optionally
// bounded by date. Accounts with no rows sum to zero rather than NULL.
func (r *GormTransactionRepository) SumForAccount(ctx context.Context, projectID, accountID uuid.UUID, upTo *time.Time) (decimal.Decimal, error) {
	query := active(r.db.WithContext(ctx)).
		Model(&models.TransactionModel{}).
		Where("project_id = ? AND account_id = ?", projectID, accountID)
	if upTo != nil {
		query = query.Where("date <= ?", *upTo)
	}

	var sum decimal.NullDecimal
	err := query.
		Select("COALESCE(SUM(CASE WHEN transaction_type = 'DEBIT' THEN amount ELSE -amount END), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// Save creates or updates a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, t *ledger.Transaction) error {
	var model models.TransactionModel
	model.FromDomain(t)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a transaction
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.TransactionModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes a transaction within its project
func (r *GormTransactionRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.TransactionModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active transactions
func (r *GormTransactionRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.TransactionModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active transactions of a project
func (r *GormTransactionRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.TransactionModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toTransactions(records []models.TransactionModel) []ledger.Transaction {
	result := make([]ledger.Transaction, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormTransactionRepository implements ledger.TransactionRepository
var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)
