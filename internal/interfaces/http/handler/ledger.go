package handler

import (
	"time"

	ledgerapp "github.com/buildledger/backend/internal/application/ledger"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles general ledger account and transaction endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *ledgerapp.LedgerService
	gate          Gate
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.LedgerService, gate Gate) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		gate:          gate,
	}
}

// CreateAccount adds a ledger account to the project
func (h *LedgerHandler) CreateAccount(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.ledgerService.CreateAccount(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListAccounts returns the project's ledger accounts ordered by code
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	result, err := h.ledgerService.ListAccounts(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetAccount returns a single ledger account
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	projectID, accountID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	result, err := h.ledgerService.GetAccount(c.Request.Context(), projectID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteAccount soft deletes a ledger account
func (h *LedgerHandler) DeleteAccount(c *gin.Context) {
	projectID, accountID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteAccount(c.Request.Context(), projectID, accountID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SeedStandardChart creates the standard chart of accounts, skipping codes
// the project already has
func (h *LedgerHandler) SeedStandardChart(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	result, err := h.ledgerService.SeedStandardChart(c.Request.Context(), projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// CaptureTransaction records a ledger transaction, resolving VAT by date
// when requested
func (h *LedgerHandler) CaptureTransaction(c *gin.Context) {
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

	var req ledgerapp.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CapturedBy = userID

	result, err := h.ledgerService.CaptureTransaction(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListTransactions returns one account's transactions
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	projectID, accountID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	filter, err := bindFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.ledgerService.ListTransactions(c.Request.Context(), projectID, accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AccountBalance returns an account balance, optionally as at ?as_of=
func (h *LedgerHandler) AccountBalance(c *gin.Context) {
	projectID, accountID, ok := h.scopedIDs(c)
	if !ok {
		return
	}

	var asOf *time.Time
	if raw := c.Query("as_of"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = &t
	}

	result, err := h.ledgerService.AccountBalance(c.Request.Context(), projectID, accountID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteTransaction soft deletes a transaction, removing it from balances
func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), projectID, transactionID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *LedgerHandler) scopedIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	projectID, err := getProjectID(c)
	if err != nil {
		h.InternalError(c, "Project scope not resolved")
		return uuid.Nil, uuid.Nil, false
	}
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid account ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return projectID, accountID, true
}

// RegisterRoutes registers ledger routes under the project scope
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	gate := h.gate(project.RoleUser)
	ledgers := rg.Group("/projects/:projectID/ledgers", gate)
	{
		ledgers.POST("", h.CreateAccount)
		ledgers.GET("", h.ListAccounts)
		ledgers.GET("/:id", h.GetAccount)
		ledgers.DELETE("/:id", h.DeleteAccount)
		ledgers.POST("/standard-chart", h.SeedStandardChart)
		ledgers.POST("/transactions", h.CaptureTransaction)
		ledgers.DELETE("/transactions/:id", h.DeleteTransaction)
		ledgers.GET("/:id/transactions", h.ListTransactions)
		ledgers.GET("/:id/balance", h.AccountBalance)
	}
}
