package models

import (
	"time"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel is the persistence model for projects
type ProjectModel struct {
	BaseModel
	Name                  string          `gorm:"size:255;not null"`
	Code                  string          `gorm:"size:50;not null;index"`
	Description           string          `gorm:"type:text"`
	ContractValue         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RevisedContractValue  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	StartDate             *time.Time
	CompletionDate        *time.Time
	RevisedCompletionDate *time.Time
	VatRegistered         bool      `gorm:"not null;default:false"`
	CreatedBy             uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for ProjectModel
func (ProjectModel) TableName() string {
	return "projects"
}

// StructureModel is the persistence model for project structures
type StructureModel struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for StructureModel
func (StructureModel) TableName() string {
	return "structures"
}

// ToDomain converts StructureModel to domain Structure
func (m *StructureModel) ToDomain() *project.Structure {
	return &project.Structure{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates StructureModel from domain Structure
func (m *StructureModel) FromDomain(s *project.Structure) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.ProjectID = s.ProjectID
	m.Name = s.Name
	m.Description = s.Description
}

// ToDomain converts ProjectModel to domain Project
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		BaseEntity:            m.BaseModel.ToDomain(),
		Name:                  m.Name,
		Code:                  m.Code,
		Description:           m.Description,
		ContractValue:         m.ContractValue,
		RevisedContractValue:  m.RevisedContractValue,
		StartDate:             m.StartDate,
		CompletionDate:        m.CompletionDate,
		RevisedCompletionDate: m.RevisedCompletionDate,
		VatRegistered:         m.VatRegistered,
		CreatedBy:             m.CreatedBy,
	}
}

// FromDomain populates ProjectModel from domain Project
func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Code = p.Code
	m.Description = p.Description
	m.ContractValue = p.ContractValue
	m.RevisedContractValue = p.RevisedContractValue
	m.StartDate = p.StartDate
	m.CompletionDate = p.CompletionDate
	m.RevisedCompletionDate = p.RevisedCompletionDate
	m.VatRegistered = p.VatRegistered
	m.CreatedBy = p.CreatedBy
}

// ProjectRoleModel is the persistence model for per-project role assignments
type ProjectRoleModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_project_roles_member"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_project_roles_member"`
	Role      string    `gorm:"size:50;not null"`
}

// TableName returns the table name for ProjectRoleModel
func (ProjectRoleModel) TableName() string {
	return "project_roles"
}

// ToDomain converts ProjectRoleModel to domain ProjectRole
func (m *ProjectRoleModel) ToDomain() *project.ProjectRole {
	return &project.ProjectRole{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		UserID:     m.UserID,
		Role:       project.Role(m.Role),
	}
}

// FromDomain populates ProjectRoleModel from domain ProjectRole
func (m *ProjectRoleModel) FromDomain(r *project.ProjectRole) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProjectID = r.ProjectID
	m.UserID = r.UserID
	m.Role = string(r.Role)
}
