package handler

import (
	"context"

	contractapp "github.com/buildledger/backend/internal/application/contract"
	"github.com/buildledger/backend/internal/application/navigation"
	projectapp "github.com/buildledger/backend/internal/application/project"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VariationHandler handles contract variation endpoints
type VariationHandler struct {
	BaseHandler
	variationService *contractapp.VariationService
	projectService   *projectapp.ProjectService
	gate             Gate
}

// NewVariationHandler creates a new VariationHandler
func NewVariationHandler(variationService *contractapp.VariationService, projectService *projectapp.ProjectService, gate Gate) *VariationHandler {
	return &VariationHandler{
		variationService: variationService,
		projectService:   projectService,
		gate:             gate,
	}
}

// Create registers a draft variation
func (h *VariationHandler) Create(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contractapp.CreateVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.SubmittedBy = userID

	result, err := h.variationService.Create(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns the project's variations, optionally filtered by status
func (h *VariationHandler) List(c *gin.Context) {
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

	result, err := h.variationService.List(c.Request.Context(), projectID, c.Query("status"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns a single variation
func (h *VariationHandler) Get(c *gin.Context) {
	projectID, variationID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := h.variationService.Get(c.Request.Context(), projectID, variationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithBreadcrumbs(c, result, h.trail(c, projectID, result.Number+" "+result.Title))
}

// Update amends a draft variation
func (h *VariationHandler) Update(c *gin.Context) {
	projectID, variationID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	var req contractapp.UpdateVariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.variationService.Update(c.Request.Context(), projectID, variationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft deletes a variation
func (h *VariationHandler) Delete(c *gin.Context) {
	projectID, variationID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	if err := h.variationService.Delete(c.Request.Context(), projectID, variationID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Submit moves a draft variation into the approval workflow
func (h *VariationHandler) Submit(c *gin.Context) {
	h.workflowStep(c, h.variationService.Submit)
}

// StartReview marks a submitted variation as under review
func (h *VariationHandler) StartReview(c *gin.Context) {
	h.workflowStep(c, h.variationService.StartReview)
}

// Reject closes a variation without effect on the project
func (h *VariationHandler) Reject(c *gin.Context) {
	h.workflowStep(c, h.variationService.Reject)
}

// Approve finalises a variation and applies it to the project
func (h *VariationHandler) Approve(c *gin.Context) {
	projectID, variationID, ok := h.scopedIDs(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.variationService.Approve(c.Request.Context(), projectID, variationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Summary returns the variation register totals
func (h *VariationHandler) Summary(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	result, err := h.variationService.Summary(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *VariationHandler) scopedIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return uuid.Nil, uuid.Nil, false
	}
	variationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid variation ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, variationID, true
}

func (h *VariationHandler) workflowStep(c *gin.Context, step func(ctx context.Context, projectID, id uuid.UUID) (*contractapp.VariationResponse, error)) {
	projectID, variationID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := step(c.Request.Context(), projectID, variationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *VariationHandler) trail(c *gin.Context, projectID uuid.UUID, recordTitle string) navigation.Trail {
	p, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		return navigation.Trail{}
	}
	id := projectID.String()
	return navigation.RecordTrail(p.Name, navigation.ProjectURL(id),
		"Contract Variations", navigation.ModuleURL(id, "variations"), recordTitle)
}

// RegisterRoutes registers variation routes under the project scope
func (h *VariationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := h.gate(project.RoleUser, project.RoleContractVariations)
	variations := rg.Group("/projects/:projectID/variations", gate)
	{
		variations.POST("", h.Create)
		variations.GET("", h.List)
		variations.GET("/summary", h.Summary)
		variations.GET("/:id", h.Get)
		variations.PUT("/:id", h.Update)
		variations.DELETE("/:id", h.Delete)
		variations.POST("/:id/submit", h.Submit)
		variations.POST("/:id/review", h.StartReview)
		variations.POST("/:id/approve", h.Approve)
		variations.POST("/:id/reject", h.Reject)
	}
}
