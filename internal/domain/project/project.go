package project

import (
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project is the aggregate root that owns every scoped record: variations,
// certificates, correspondence, ledgers, forecasts. No record is shared
// across projects, and role checks always resolve relative to one project.
type Project struct {
	shared.BaseEntity
	Name                  string
	Code                  string
	Description           string
	ContractValue         decimal.Decimal
	RevisedContractValue  decimal.Decimal
	StartDate             *time.Time
	CompletionDate        *time.Time
	RevisedCompletionDate *time.Time
	VatRegistered         bool
	CreatedBy             uuid.UUID
}

// NewProject creates a project. The revised contract value and completion
// date start equal to the originals and move only when variations are
// approved.
func NewProject(name, code string, contractValue decimal.Decimal, createdBy uuid.UUID) *Project {
	return &Project{
		BaseEntity:           shared.NewBaseEntity(),
		Name:                 name,
		Code:                 code,
		ContractValue:        contractValue,
		RevisedContractValue: contractValue,
		CreatedBy:            createdBy,
	}
}

// ApplyCostVariation adds an approved cost variation to the revised contract
// value. Negative amounts reduce it.
func (p *Project) ApplyCostVariation(amount decimal.Decimal) {
	p.RevisedContractValue = p.RevisedContractValue.Add(amount)
	p.UpdatedAt = time.Now()
}

// ApplyTimeVariation moves the revised completion date by the approved
// extension. A project without a completion date is left untouched.
func (p *Project) ApplyTimeVariation(days int) {
	base := p.RevisedCompletionDate
	if base == nil {
		base = p.CompletionDate
	}
	if base == nil {
		return
	}
	revised := base.AddDate(0, 0, days)
	p.RevisedCompletionDate = &revised
	p.UpdatedAt = time.Now()
}

// ProjectRole assigns one role to one user on one project.
type ProjectRole struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Role      Role
}

// NewProjectRole creates a role assignment.
func NewProjectRole(projectID, userID uuid.UUID, role Role) *ProjectRole {
	return &ProjectRole{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		UserID:     userID,
		Role:       role,
	}
}
