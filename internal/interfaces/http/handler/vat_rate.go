package handler

import (
	"time"

	ledgerapp "github.com/buildledger/backend/internal/application/ledger"
	"github.com/buildledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VatRateHandler handles the global VAT rate table. Writes are staff only;
// any authenticated user may resolve a rate by date.
type VatRateHandler struct {
	BaseHandler
	vatService *ledgerapp.VatRateService
}

// NewVatRateHandler creates a new VatRateHandler
func NewVatRateHandler(vatService *ledgerapp.VatRateService) *VatRateHandler {
	return &VatRateHandler{vatService: vatService}
}

// Create adds a VAT rate period
func (h *VatRateHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateVatRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.vatService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns every VAT rate period
func (h *VatRateHandler) List(c *gin.Context) {
	result, err := h.vatService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns one VAT rate period
func (h *VatRateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid VAT rate ID format")
		return
	}

	result, err := h.vatService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update amends a VAT rate period, re-checking the overlap invariant
func (h *VatRateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid VAT rate ID format")
		return
	}

	var req ledgerapp.UpdateVatRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.vatService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft deletes a VAT rate period
func (h *VatRateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid VAT rate ID format")
		return
	}

	if err := h.vatService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Resolve returns the rate whose period covers ?date= (defaults to today)
func (h *VatRateHandler) Resolve(c *gin.Context) {
	asOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		asOf = t
	}

	result, err := h.vatService.ResolveForDate(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers VAT rate routes
func (h *VatRateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rates := rg.Group("/vat-rates")
	{
		rates.GET("/resolve", h.Resolve)

		staff := rates.Group("", middleware.RequireStaff())
		{
			staff.POST("", h.Create)
			staff.GET("", h.List)
			staff.GET("/:id", h.Get)
			staff.PUT("/:id", h.Update)
			staff.DELETE("/:id", h.Delete)
		}
	}
}
