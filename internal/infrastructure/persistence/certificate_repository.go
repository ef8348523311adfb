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

// GormCertificateRepository implements contract.CertificateRepository using GORM
type GormCertificateRepository struct {
	db *gorm.DB
}

// NewGormCertificateRepository creates a new GormCertificateRepository
func NewGormCertificateRepository(db *gorm.DB) *GormCertificateRepository {
	return &GormCertificateRepository{db: db}
}

// FindByID finds an active certificate by ID
func (r *GormCertificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Certificate, error) {
	var model models.CertificateModel
	if err := active(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProject finds an active certificate by ID within a project
func (r *GormCertificateRepository) FindByIDForProject(ctx context.Context, projectID, id uuid.UUID) (*contract.Certificate, error) {
	var model models.CertificateModel
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

// FindByNumber finds an active certificate by its per-project number
func (r *GormCertificateRepository) FindByNumber(ctx context.Context, projectID uuid.UUID, number int) (*contract.Certificate, error) {
	var model models.CertificateModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ? AND number = ?", projectID, number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns active certificates across all projects
func (r *GormCertificateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]contract.Certificate, error) {
	var records []models.CertificateModel
	if err := applyFilter(active(r.db.WithContext(ctx)), filter).Find(&records).Error; err != nil {
		return nil, err
	}
	return toCertificates(records), nil
}

// FindAllForProject returns the active certificates of a project, by number
func (r *GormCertificateRepository) FindAllForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) ([]contract.Certificate, error) {
	var records []models.CertificateModel
	if err := active(r.db.WithContext(ctx)).
		Where("project_id = ?", projectID).
		Order("number ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toCertificates(records), nil
}

// NextNumber returns the next per-project certificate number. Numbers of
// soft-deleted certificates are never reissued.
func (r *GormCertificateRepository) NextNumber(ctx context.Context, projectID uuid.UUID) (int, error) {
	var max *int
	if err := r.db.WithContext(ctx).
		Model(&models.CertificateModel{}).
		Where("project_id = ?", projectID).
		Select("MAX(number)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// Save creates or updates a certificate
func (r *GormCertificateRepository) Save(ctx context.Context, c *contract.Certificate) error {
	var model models.CertificateModel
	model.FromDomain(c)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete soft-deletes a certificate
func (r *GormCertificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.CertificateModel{}).
		Where("id = ?", id))
}

// DeleteForProject soft-deletes a certificate within its project
func (r *GormCertificateRepository) DeleteForProject(ctx context.Context, projectID, id uuid.UUID) error {
	return softDelete(active(r.db.WithContext(ctx)).
		Model(&models.CertificateModel{}).
		Where("project_id = ? AND id = ?", projectID, id))
}

// Count counts active certificates
func (r *GormCertificateRepository) Count(ctx context.Context, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).Model(&models.CertificateModel{}).Count(&count).Error
	return count, err
}

// CountForProject counts the active certificates of a project
func (r *GormCertificateRepository) CountForProject(ctx context.Context, projectID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	err := active(r.db.WithContext(ctx)).
		Model(&models.CertificateModel{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func toCertificates(records []models.CertificateModel) []contract.Certificate {
	result := make([]contract.Certificate, len(records))
	for i := range records {
		result[i] = *records[i].ToDomain()
	}
	return result
}

// Ensure GormCertificateRepository implements contract.CertificateRepository
var _ contract.CertificateRepository = (*GormCertificateRepository)(nil)
