package project

import (
	"context"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/google/uuid"
)

// AccessResolver answers membership questions for the project role gate.
// A nonexistent or soft-deleted project surfaces as shared.ErrNotFound from
// the project lookup; a non-member gets an empty role set.
type AccessResolver struct {
	projectRepo project.Repository
	roleRepo    project.RoleRepository
}

// NewAccessResolver creates a new AccessResolver
func NewAccessResolver(projectRepo project.Repository, roleRepo project.RoleRepository) *AccessResolver {
	return &AccessResolver{
		projectRepo: projectRepo,
		roleRepo:    roleRepo,
	}
}

// ResolveAccess returns the roles the user holds on the project
func (r *AccessResolver) ResolveAccess(ctx context.Context, projectID, userID uuid.UUID) (project.RoleSet, error) {
	if _, err := r.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return r.roleRepo.FindRolesForUser(ctx, projectID, userID)
}
