package project

import (
	"context"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RoleService manages per-project role assignments
type RoleService struct {
	roleRepo project.RoleRepository
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo project.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// Assign grants a role to a user on a project
func (s *RoleService) Assign(ctx context.Context, projectID uuid.UUID, req AssignRoleRequest) (*RoleAssignmentResponse, error) {
	role := project.Role(req.Role)
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role: "+req.Role)
	}

	existing, err := s.roleRepo.FindRolesForUser(ctx, projectID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing.Contains(role) {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User already holds this role on the project")
	}

	assignment := project.NewProjectRole(projectID, req.UserID, role)
	if err := s.roleRepo.Save(ctx, assignment); err != nil {
		return nil, err
	}
	resp := ToRoleAssignmentResponse(assignment)
	return &resp, nil
}

// List returns all role assignments on a project
func (s *RoleService) List(ctx context.Context, projectID uuid.UUID) ([]RoleAssignmentResponse, error) {
	assignments, err := s.roleRepo.FindAssignments(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]RoleAssignmentResponse, len(assignments))
	for i := range assignments {
		result[i] = ToRoleAssignmentResponse(&assignments[i])
	}
	return result, nil
}

// Revoke removes a role assignment from a project
func (s *RoleService) Revoke(ctx context.Context, projectID, assignmentID uuid.UUID) error {
	return s.roleRepo.Delete(ctx, projectID, assignmentID)
}
