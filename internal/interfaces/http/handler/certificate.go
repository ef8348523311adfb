package handler

import (
	"strconv"

	contractapp "github.com/buildledger/backend/internal/application/contract"
	"github.com/buildledger/backend/internal/application/navigation"
	projectapp "github.com/buildledger/backend/internal/application/project"
	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CertificateHandler handles payment certificate and certificate item
// endpoints
type CertificateHandler struct {
	BaseHandler
	certificateService *contractapp.CertificateService
	projectService     *projectapp.ProjectService
	gate               Gate
}

// NewCertificateHandler creates a new CertificateHandler
func NewCertificateHandler(certificateService *contractapp.CertificateService, projectService *projectapp.ProjectService, gate Gate) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
		projectService:     projectService,
		gate:               gate,
	}
}

// Create opens a draft certificate
func (h *CertificateHandler) Create(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	var req contractapp.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.certificateService.Create(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns the project's certificates
func (h *CertificateHandler) List(c *gin.Context) {
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

	result, err := h.certificateService.List(c.Request.Context(), projectID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns a single certificate
func (h *CertificateHandler) Get(c *gin.Context) {
	projectID, certificateID, ok := h.scopedIDs(c, "id")
	if !ok {
		return
	}

	result, err := h.certificateService.Get(c.Request.Context(), projectID, certificateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	title := "Certificate " + strconv.Itoa(result.Number)
	h.SuccessWithBreadcrumbs(c, result, h.trail(c, projectID, title))
}

// Update amends a draft certificate
func (h *CertificateHandler) Update(c *gin.Context) {
	projectID, certificateID, ok := h.scopedIDs(c, "id")
	if !ok {
		return
	}

	var req contractapp.UpdateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.certificateService.Update(c.Request.Context(), projectID, certificateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Transition moves a certificate through its workflow
func (h *CertificateHandler) Transition(c *gin.Context) {
	projectID, certificateID, ok := h.scopedIDs(c, "id")
	if !ok {
		return
	}

	var req contractapp.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.certificateService.Transition(c.Request.Context(), projectID, certificateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft deletes a certificate
func (h *CertificateHandler) Delete(c *gin.Context) {
	projectID, certificateID, ok := h.scopedIDs(c, "id")
	if !ok {
		return
	}

	if err := h.certificateService.Delete(c.Request.Context(), projectID, certificateID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CaptureItem records a debit or credit against one item family
func (h *CertificateHandler) CaptureItem(c *gin.Context) {
	projectID, certificateID, ok := h.scopedIDs(c, "id")
	if !ok {
		return
	}
	kind, ok := h.itemKind(c)
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req contractapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CertificateID = certificateID
	req.CapturedBy = userID

	result, err := h.certificateService.CaptureItem(c.Request.Context(), projectID, kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListItems returns one family's transactions on a certificate
func (h *CertificateHandler) ListItems(c *gin.Context) {
	projectID, certificateID, ok := h.scopedIDs(c, "id")
	if !ok {
		return
	}
	kind, ok := h.itemKind(c)
	if !ok {
		return
	}

	result, err := h.certificateService.ListItems(c.Request.Context(), projectID, certificateID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteItem soft-deletes a single item transaction
func (h *CertificateHandler) DeleteItem(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.certificateService.DeleteItem(c.Request.Context(), projectID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ItemBalance returns the running family balance, optionally as at a
// certificate number (?up_to=)
func (h *CertificateHandler) ItemBalance(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	kind := contract.ItemKind(c.Param("kind"))
	if !h.kindAllowed(c, kind) {
		h.Forbidden(c, "Missing required project role")
		return
	}

	var upTo *int
	if raw := c.Query("up_to"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid certificate number")
			return
		}
		upTo = &n
	}

	result, err := h.certificateService.ItemBalance(c.Request.Context(), projectID, kind, upTo)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *CertificateHandler) scopedIDs(c *gin.Context, param string) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid certificate ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, id, true
}

// itemKind reads the kind query parameter and enforces its per-family role
func (h *CertificateHandler) itemKind(c *gin.Context) (contract.ItemKind, bool) {
	kind := contract.ItemKind(c.Query("kind"))
	if !kind.IsValid() {
		h.BadRequest(c, "Unknown certificate item kind")
		return "", false
	}
	if !h.kindAllowed(c, kind) {
		h.Forbidden(c, "Missing required project role")
		return "", false
	}
	return kind, true
}

// kindAllowed checks the per-family role on top of the module gate
func (h *CertificateHandler) kindAllowed(c *gin.Context, kind contract.ItemKind) bool {
	if !kind.IsValid() {
		return false
	}
	if middleware.IsSuperuser(c) {
		return true
	}
	roles := middleware.GetProjectRoles(c)
	return roles.IntersectsAllowList([]project.Role{project.RoleUser, contract.ItemKindRole(kind)})
}

func (h *CertificateHandler) trail(c *gin.Context, projectID uuid.UUID, recordTitle string) navigation.Trail {
	p, err := h.projectService.Get(c.Request.Context(), projectID)
	if err != nil {
		return navigation.Trail{}
	}
	id := projectID.String()
	return navigation.RecordTrail(p.Name, navigation.ProjectURL(id),
		"Payment Certificates", navigation.ModuleURL(id, "certificates"), recordTitle)
}

// RegisterRoutes registers certificate routes under the project scope
func (h *CertificateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := h.gate(project.ClaimsAndCertificatesModule...)

	certificates := rg.Group("/projects/:projectID/certificates", gate)
	{
		certificates.POST("", h.Create)
		certificates.GET("", h.List)
		certificates.GET("/:id", h.Get)
		certificates.PUT("/:id", h.Update)
		certificates.POST("/:id/transition", h.Transition)
		certificates.DELETE("/:id", h.Delete)

		certificates.POST("/:id/items", h.CaptureItem)
		certificates.GET("/:id/items", h.ListItems)
		certificates.DELETE("/:id/items/:itemID", h.DeleteItem)
	}

	rg.GET("/projects/:projectID/items/:kind/balance", gate, h.ItemBalance)
}
