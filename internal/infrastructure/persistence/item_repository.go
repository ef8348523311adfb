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

// GormItemRepository implements contract.ItemRepository using GORM. One
// table backs every certificate item family; the kind column discriminates.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an active item transaction by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.CertificateItem, error) {
	var model models.CertificateItemModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active item transaction by ID within a project
func (r *GormItemRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.CertificateItem, error) {
	var model models.CertificateItemModel
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

// FindAll returns active item transactions across all projects
func (r *GormItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.CertificateItem, error) {
	var records []models.CertificateItemModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toItems(records), nil
}

// FindAllForProject returns the active item transactions of a project
func (r *GormItemRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]contract.CertificateItem, error) {
	var records []models.CertificateItemModel
	query := applyFilter(active(r.db.WithContext(ctx)).Where("project_id = ?", projectID), filter)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return toItems(records), nil
}

// FindForCertificate returns one family's active transactions on a certificate
func (r *GormItemRepository) FindForCertificate(ctx context.Context, projectID, certificateID uuid.UUID, kind contract.ItemKind) ([]contract.CertificateItem, error) {
	var records []models.CertificateItemModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ? AND certificate_id = ? AND kind = ?", projectID, certificateID, string(kind)).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toItems(records), nil
}

// Balance returns debits minus credits for one item family over active rows,
// optionally up to and including a certificate number. Empty families
// balance to zero.
func (r *GormItemRepository) Balance(ctx context.Context, projectID uuid.UUID, kind contract.ItemKind, upToCertificate *int) (decimal.Decimal, error) {
	// The deleted predicate is qualified by hand here: the certificate join
	// brings in a second deleted column and active() would be ambiguous.
	// Items keep contributing until deleted themselves, even when their
	// certificate has been deleted.
	query := r.db.WithContext(ctx).
		Model(&models.CertificateItemModel{}).
		Where("certificate_items.deleted = ? AND certificate_items.project_id = ? AND kind = ?",
			false, projectID, string(kind))
	if upToCertificate != nil {
		query = query.
			Joins("JOIN payment_certificates ON payment_certificates.id = certificate_items.certificate_id").
			Where("payment_certificates.number <= ?", *upToCertificate)
	}

	var sum decimal.NullDecimal
	err := query.
		Select("COALESCE(SUM(CASE WHEN transaction_type = 'DEBIT' THEN certificate_items.amount ELSE -certificate_items.amount END), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// Save creates or updates an item transaction
func (r *GormItemRepository) Save(ctx context.Context, item *contract.CertificateItem) error {
	var model models.CertificateItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes an item transaction
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.CertificateItemModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes an item transaction within its project
func (r *GormItemRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.CertificateItemModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active item transactions
func (r *GormItemRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.CertificateItemModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active item transactions of a project
func (r *GormItemRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.CertificateItemModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toItems(records []models.CertificateItemModel) []contract.CertificateItem {
	result := make([]contract.CertificateItem, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormItemRepository implements contract.ItemRepository
var _ contract.ItemRepository = (*GormItemRepository)(nil)
