package project

import (
	"time"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=255"`
	Code           string           `json:"code" binding:"required,min=1,max=50"`
	Description    string           `json:"description"`
	ContractValue  *decimal.Decimal `json:"contract_value" binding:"required"`
	StartDate      *time.Time       `json:"start_date"`
	CompletionDate *time.Time       `json:"completion_date"`
	VatRegistered  bool             `json:"vat_registered"`
	CreatedBy      uuid.UUID        `json:"-"` // Set from JWT context, not from request body
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description    *string          `json:"description"`
	ContractValue  *decimal.Decimal `json:"contract_value"`
	StartDate      *time.Time       `json:"start_date"`
	CompletionDate *time.Time       `json:"completion_date"`
	VatRegistered  *bool            `json:"vat_registered"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID                    uuid.UUID       `json:"id"`
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	Description           string          `json:"description"`
	ContractValue         decimal.Decimal `json:"contract_value"`
	RevisedContractValue  decimal.Decimal `json:"revised_contract_value"`
	StartDate             *time.Time      `json:"start_date"`
	CompletionDate        *time.Time      `json:"completion_date"`
	RevisedCompletionDate *time.Time      `json:"revised_completion_date"`
	VatRegistered         bool            `json:"vat_registered"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToProjectResponse converts a domain project to its response form
func ToProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Code:                  p.Code,
		Description:           p.Description,
		ContractValue:         p.ContractValue,
		RevisedContractValue:  p.RevisedContractValue,
		StartDate:             p.StartDate,
		CompletionDate:        p.CompletionDate,
		RevisedCompletionDate: p.RevisedCompletionDate,
		VatRegistered:         p.VatRegistered,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

// AssignRoleRequest represents a request to grant a role on a project
type AssignRoleRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required"`
}

// RoleAssignmentResponse represents a role assignment in API responses
type RoleAssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToRoleAssignmentResponse converts a domain role assignment to its response form
func ToRoleAssignmentResponse(r *project.ProjectRole) RoleAssignmentResponse {
	return RoleAssignmentResponse{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		UserID:    r.UserID,
		Role:      string(r.Role),
		CreatedAt: r.CreatedAt,
	}
}

// CreateStructureRequest represents a request to add a structure
type CreateStructureRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

// UpdateStructureRequest represents a request to amend a structure
type UpdateStructureRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// StructureResponse represents a structure in API responses
type StructureResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToStructureResponse converts a domain structure to its response form
func ToStructureResponse(s *project.Structure) StructureResponse {
	return StructureResponse{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
