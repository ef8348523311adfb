package handler

import (
	"github.com/buildledger/backend/internal/application/navigation"
	projectapp "github.com/buildledger/backend/internal/application/project"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StructureHandler handles project structure endpoints
type StructureHandler struct {
	BaseHandler
	structureService *projectapp.StructureService
	projectService   *projectapp.ProjectService
	gate             Gate
}

// NewStructureHandler creates a new StructureHandler
func NewStructureHandler(structureService *projectapp.StructureService, projectService *projectapp.ProjectService, gate Gate) *StructureHandler {
	return &StructureHandler{
		structureService: structureService,
		projectService:   projectService,
		gate:             gate,
	}
}

// Create adds a structure to the project
func (h *StructureHandler) Create(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	var req projectapp.CreateStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.structureService.Create(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns the project's structures ordered by name
func (h *StructureHandler) List(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.structureService.List(c.Request.Context(), projectID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns a single structure
func (h *StructureHandler) Get(c *gin.Context) {
	projectID, structureID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := h.structureService.Get(c.Request.Context(), projectID, structureID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithBreadcrumbs(c, result, h.trail(c, projectID, result.Name))
}

// Update amends a structure's name or description
func (h *StructureHandler) Update(c *gin.Context) {
	projectID, structureID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	var req projectapp.UpdateStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.structureService.Update(c.Request.Context(), projectID, structureID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft deletes a structure
func (h *StructureHandler) Delete(c *gin.Context) {
	projectID, structureID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	if err := h.structureService.Delete(c.Request.Context(), projectID, structureID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *StructureHandler) scopedIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return uuid.Nil, uuid.Nil, false
	}
	structureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid structure ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, structureID, true
}

func (h *StructureHandler) trail(c *gin.Context, projectID uuid.UUID, recordTitle string) navigation.Trail {
	p, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		return navigation.Trail{}
	}
	id := projectID.String()
	return navigation.RecordTrail(p.Name, navigation.ProjectURL(id),
		"Structures", navigation.ModuleURL(id, "structures"), recordTitle)
}

// RegisterRoutes registers structure routes under the project scope
func (h *StructureHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := h.gate(project.RoleUser)
	structures := rg.Group("/projects/:projectID/structures", gate)
	{
		structures.POST("", h.Create)
		structures.GET("", h.List)
		structures.GET("/:id", h.Get)
		structures.PUT("/:id", h.Update)
		structures.DELETE("/:id", h.Delete)
	}
}
