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

// GormVatRateRepository implements ledger.VatRateRepository using GORM
type GormVatRateRepository struct {
	db *gorm.DB
}

// NewGormVatRateRepository creates a new GormVatRateRepository
func NewGormVatRateRepository(db *gorm.DB) *GormVatRateRepository {
	return &GormVatRateRepository{db: db}
}

// FindByID finds an active VAT rate by ID
func (r *GormVatRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.VatRate, error) {
	var model models.VatRateModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every active VAT rate period, oldest first. Open-start
// periods sort before any dated period.
func (r *GormVatRateRepository) FindAll(ctx context.Context) ([]ledger.VatRate, error) {
	var records []models.VatRateModel
	if err := active(r.db.WithContext(ctx)).
		Order("start_date ASC NULLS FIRST").
		Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]ledger.VatRate, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a VAT rate
func (r *GormVatRateRepository) Save(ctx context.Context, rate *ledger.VatRate) error {
	var model models.VatRateModel
	model.FromDomain(rate)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a VAT rate
func (r *GormVatRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := active(r.db.WithContext(ctx)).
		Model(&models.VatRateModel{}).
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

// Ensure GormVatRateRepository implements ledger.VatRateRepository
var _ ledger.VatRateRepository = (*GormVatRateRepository)(nil)
