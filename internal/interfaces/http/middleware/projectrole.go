package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/logger"
	"github.com/buildledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Project context keys
const (
	ProjectIDKey    = "project_id"
	ProjectRolesKey = "project_roles"
	ProjectParamKey = "projectID"
)

// ProjectAccessResolver resolves a caller's role set on a project. It returns
// shared.ErrNotFound when the project does not exist or is soft-deleted, and
// an empty role set for non-members.
type ProjectAccessResolver interface {
	ResolveAccess(ctx context.Context, projectID, userID uuid.UUID) (project.RoleSet, error)
}

// ProjectRoleConfig configures the project role gate
type ProjectRoleConfig struct {
	// PathParam is the route parameter carrying the project ID
	PathParam string
}

// DefaultProjectRoleConfig returns the default gate configuration
func DefaultProjectRoleConfig() ProjectRoleConfig {
	return ProjectRoleConfig{PathParam: ProjectParamKey}
}

// RequireProjectRole gates a route group on per-project roles.
//
// The caller must hold at least one of the allowed roles on the project named
// by the path parameter; ADMIN passes every gate and superusers bypass
// membership entirely. Nonexistent, soft-deleted and non-member projects all
// answer 404 so a non-member cannot discover which project IDs exist. Members
// lacking the required role get 403.
//
// The resolved project ID and role set are stored on the context for
// handlers.
func RequireProjectRole(resolver ProjectAccessResolver, cfg ProjectRoleConfig, allowed ...project.Role) gin.HandlerFunc {
	if cfg.PathParam == "" {
		cfg.PathParam = ProjectParamKey
	}

	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param(cfg.PathParam))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid project ID"))
			return
		}

		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		roles, err := resolver.ResolveAccess(c.Request.Context(), projectID, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				abortProjectNotFound(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Failed to resolve project access"))
			return
		}

		superuser := IsSuperuser(c)
		if !superuser && len(roles) == 0 {
			// Non-members see the same 404 as a missing project
			abortProjectNotFound(c)
			return
		}

		// An empty allow-list admits any member
		if !superuser && len(allowed) > 0 && !roles.IntersectsAllowList(allowed) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Missing required project role"))
			return
		}

		c.Set(ProjectIDKey, projectID)
		c.Set(ProjectRolesKey, roles)

		ctx, _ := logger.WithProjectID(c.Request.Context(), logger.FromContext(c.Request.Context()), projectID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortProjectNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound,
		dto.NewErrorResponse(dto.ErrCodeNotFound, "Project not found"))
}

// GetProjectID retrieves the gated project ID from the gin context
func GetProjectID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ProjectIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// GetProjectRoles retrieves the caller's role set from the gin context
func GetProjectRoles(c *gin.Context) project.RoleSet {
	value, exists := c.Get(ProjectRolesKey)
	if !exists {
		return project.NewRoleSet()
	}
	roles, ok := value.(project.RoleSet)
	if !ok {
		return project.NewRoleSet()
	}
	return roles
}
