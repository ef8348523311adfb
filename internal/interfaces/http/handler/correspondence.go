package handler

import (
	contractapp "github.com/buildledger/backend/internal/application/contract"
	"github.com/buildledger/backend/internal/application/navigation"
	projectapp "github.com/buildledger/backend/internal/application/project"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrespondenceHandler handles correspondence dialog and message endpoints
type CorrespondenceHandler struct {
	BaseHandler
	correspondenceService *contractapp.CorrespondenceService
	projectService        *projectapp.ProjectService
	gate                  Gate
}

// NewCorrespondenceHandler creates a new CorrespondenceHandler
func NewCorrespondenceHandler(correspondenceService *contractapp.CorrespondenceService, projectService *projectapp.ProjectService, gate Gate) *CorrespondenceHandler {
	return &CorrespondenceHandler{
		correspondenceService: correspondenceService,
		projectService:        projectService,
		gate:                  gate,
	}
}

// CreateDialog opens a correspondence thread
func (h *CorrespondenceHandler) CreateDialog(c *gin.Context) {
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

	var req contractapp.CreateDialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	result, err := h.correspondenceService.CreateDialog(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListDialogs returns the project's correspondence threads
func (h *CorrespondenceHandler) ListDialogs(c *gin.Context) {
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

	result, err := h.correspondenceService.ListDialogs(c.Request.Context(), projectID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetDialog returns a single dialog
func (h *CorrespondenceHandler) GetDialog(c *gin.Context) {
	projectID, dialogID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := h.correspondenceService.GetDialog(c.Request.Context(), projectID, dialogID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithBreadcrumbs(c, result, h.trail(c, projectID, result.Subject))
}

// UpdateDialog renames a dialog
func (h *CorrespondenceHandler) UpdateDialog(c *gin.Context) {
	projectID, dialogID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	var req contractapp.UpdateDialogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.correspondenceService.UpdateDialog(c.Request.Context(), projectID, dialogID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AppendMessage adds a message to a dialog
func (h *CorrespondenceHandler) AppendMessage(c *gin.Context) {
	projectID, dialogID, ok := h.scopedIDs(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contractapp.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	result, err := h.correspondenceService.AppendMessage(c.Request.Context(), projectID, dialogID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListMessages returns a dialog's messages in capture order
func (h *CorrespondenceHandler) ListMessages(c *gin.Context) {
	projectID, dialogID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := h.correspondenceService.ListMessages(c.Request.Context(), projectID, dialogID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteDialog soft deletes a correspondence thread
func (h *CorrespondenceHandler) DeleteDialog(c *gin.Context) {
	projectID, dialogID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	if err := h.correspondenceService.DeleteDialog(c.Request.Context(), projectID, dialogID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CorrespondenceHandler) scopedIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return uuid.Nil, uuid.Nil, false
	}
	dialogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dialog ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, dialogID, true
}

func (h *CorrespondenceHandler) trail(c *gin.Context, projectID uuid.UUID, recordTitle string) navigation.Trail {
	p, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		return navigation.Trail{}
	}
	id := projectID.String()
	return navigation.RecordTrail(p.Name, navigation.ProjectURL(id),
		"Correspondence", navigation.ModuleURL(id, "correspondence"), recordTitle)
}

// RegisterRoutes registers correspondence routes under the project scope
func (h *CorrespondenceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := h.gate(project.RoleUser, project.RoleCorrespondence)
	correspondence := rg.Group("/projects/:projectID/correspondence", gate)
	{
		correspondence.POST("", h.CreateDialog)
		correspondence.GET("", h.ListDialogs)
		correspondence.GET("/:id", h.GetDialog)
		correspondence.PUT("/:id", h.UpdateDialog)
		correspondence.DELETE("/:id", h.DeleteDialog)
		correspondence.POST("/:id/messages", h.AppendMessage)
		correspondence.GET("/:id/messages", h.ListMessages)
	}
}
