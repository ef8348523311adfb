package handler

import (
	"time"

	contractapp "github.com/buildledger/backend/internal/application/contract"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ForecastHandler handles cost forecast endpoints
type ForecastHandler struct {
	BaseHandler
	forecastService *contractapp.ForecastService
	gate            Gate
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *contractapp.ForecastService, gate Gate) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
		gate:            gate,
	}
}

// Create records a monthly forecast row
func (h *ForecastHandler) Create(c *gin.Context) {
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

	var req contractapp.CreateForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	result, err := h.forecastService.Create(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns the project's forecasts, optionally bounded by ?from= and
// ?to= (RFC 3339 dates)
func (h *ForecastHandler) List(c *gin.Context) {
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

	from, ok := h.parseDate(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseDate(c, "to")
	if !ok {
		return
	}

	result, err := h.forecastService.List(c.Request.Context(), projectID, from, to, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns a single forecast row
func (h *ForecastHandler) Get(c *gin.Context) {
	projectID, forecastID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := h.forecastService.Get(c.Request.Context(), projectID, forecastID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Total returns the sum of the project's forecasts
func (h *ForecastHandler) Total(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	result, err := h.forecastService.Total(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft deletes a forecast row
func (h *ForecastHandler) Delete(c *gin.Context) {
	projectID, forecastID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	if err := h.forecastService.Delete(c.Request.Context(), projectID, forecastID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ForecastHandler) scopedIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return uuid.Nil, uuid.Nil, false
	}
	forecastID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid forecast ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, forecastID, true
}

func (h *ForecastHandler) parseDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" date, expected YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

// RegisterRoutes registers forecast routes under the project scope
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := h.gate(project.RoleUser, project.RoleCostForecasts)
	forecasts := rg.Group("/projects/:projectID/forecasts", gate)
	{
		forecasts.POST("", h.Create)
		forecasts.GET("", h.List)
		forecasts.GET("/total", h.Total)
		forecasts.GET("/:id", h.Get)
		forecasts.DELETE("/:id", h.Delete)
	}
}
