package project

import (
	"context"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository provides access to projects.
type Repository interface {
	shared.Repository[Project]
	FindForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Project, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
}

// RoleRepository provides access to per-project role assignments.
type RoleRepository interface {
	FindRolesForUser(ctx context.Context, projectID, userID uuid.UUID) (RoleSet, error)
	FindAssignments(ctx context.Context, projectID uuid.UUID) ([]ProjectRole, error)
	Save(ctx context.Context, assignment *ProjectRole) error
	Delete(ctx context.Context, projectID, id uuid.UUID) error
}
