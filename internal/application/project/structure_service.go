package project

import (
	"context"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StructureService handles the buildings and structures of a project
type StructureService struct {
	structureRepo project.StructureRepository
}

// NewStructureService creates a new StructureService
func NewStructureService(structureRepo project.StructureRepository) *StructureService {
	return &StructureService{structureRepo: structureRepo}
}

// Create adds a structure to a project
func (s *StructureService) Create(ctx context.Context, projectID uuid.UUID, req CreateStructureRequest) (*StructureResponse, error) {
	structure := project.NewStructure(projectID, req.Name, req.Description)
	if err := s.structureRepo.Save(ctx, structure); err != nil {
		return nil, err
	}
	resp := ToStructureResponse(structure)
	return &resp, nil
}

// Get returns a single structure within its project
func (s *StructureService) Get(ctx context.Context, projectID, id uuid.UUID) (*StructureResponse, error) {
	structure, err := s.structureRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	resp := ToStructureResponse(structure)
	return &resp, nil
}

// List returns the project's structures ordered by name
func (s *StructureService) List(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]StructureResponse, error) {
	structures, err := s.structureRepo.FindAllForProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]StructureResponse, len(structures))
	for i := range structures {
		result[i] = ToStructureResponse(&structures[i])
	}
	return result, nil
}

// Update amends a structure's name or description
func (s *StructureService) Update(ctx context.Context, projectID, id uuid.UUID, req UpdateStructureRequest) (*StructureResponse, error) {
	structure, err := s.structureRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		structure.Name = *req.Name
	}
	if req.Description != nil {
		structure.Description = *req.Description
	}
	if err := s.structureRepo.Save(ctx, structure); err != nil {
		return nil, err
	}
	resp := ToStructureResponse(structure)
	return &resp, nil
}

// Delete soft deletes a structure
func (s *StructureService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	return s.structureRepo.DeleteForProject(ctx, projectID, id)
}
