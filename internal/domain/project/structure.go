package project

import (
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Structure is a building or structure within a project. Cost records and
// site correspondence reference structures by name.
type Structure struct {
	shared.BaseEntity
	ProjectID   uuid.UUID
	Name        string
	Description string
}

// NewStructure creates a structure within a project.
func NewStructure(projectID uuid.UUID, name, description string) *Structure {
	return &Structure{
		BaseEntity:  shared.NewBaseEntity(),
		ProjectID:   projectID,
		Name:        name,
		Description: description,
	}
}

// StructureRepository provides access to project structures.
type StructureRepository interface {
	shared.ProjectScopedRepository[Structure]
}
