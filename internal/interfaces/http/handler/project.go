package handler

import (
	"github.com/buildledger/backend/internal/application/navigation"
	projectapp "github.com/buildledger/backend/internal/application/project"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles project and role assignment endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *projectapp.ProjectService
	roleService    *projectapp.RoleService
	gate           Gate
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *projectapp.ProjectService, roleService *projectapp.RoleService, gate Gate) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		roleService:    roleService,
		gate:           gate,
	}
}

// Create creates a project. The creator receives the Admin role and the
// standard chart of accounts is seeded.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req projectapp.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	result, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns the projects the caller is a member of
func (h *ProjectHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get returns a single project
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	result, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	trail := navigation.NewBuilder().
		Link("Projects", "/projects").
		Current(result.Name).
		Build()
	h.SuccessWithBreadcrumbs(c, result, trail)
}

// Update amends a project
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	var req projectapp.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.projectService.Update(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft deletes a project
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), projectID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AssignRole grants a project role to a user
func (h *ProjectHandler) AssignRole(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	var req projectapp.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.roleService.Assign(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListRoles returns the project's role assignments
func (h *ProjectHandler) ListRoles(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	result, err := h.roleService.List(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RevokeRole removes a role assignment
func (h *ProjectHandler) RevokeRole(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	if err := h.roleService.Revoke(c.Request.Context(), projectID, assignmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers project routes
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.POST("", h.Create)
		projects.GET("", h.List)

		projects.GET("/:projectID", h.gate(), h.Get)
		projects.PUT("/:projectID", h.gate(project.RoleAdmin, project.RoleUser), h.Update)
		projects.DELETE("/:projectID", h.gate(project.RoleAdmin), h.Delete)

		projects.POST("/:projectID/roles", h.gate(project.RoleAdmin), h.AssignRole)
		projects.GET("/:projectID/roles", h.gate(project.RoleAdmin), h.ListRoles)
		projects.DELETE("/:projectID/roles/:id", h.gate(project.RoleAdmin), h.RevokeRole)
	}
}
