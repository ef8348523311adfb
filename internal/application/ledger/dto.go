package ledger

import (
	"time"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateVatRateRequest represents a request to add a VAT rate period
type CreateVatRateRequest struct {
	Name      string          `json:"name" binding:"required,min=1,max=100"`
	Rate      decimal.Decimal `json:"rate" binding:"required"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
}

// UpdateVatRateRequest represents a request to amend a VAT rate period
type UpdateVatRateRequest struct {
	Name      *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Rate      *decimal.Decimal `json:"rate"`
	StartDate *time.Time       `json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
}

// VatRateResponse represents a VAT rate period in API responses
type VatRateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToVatRateResponse converts a domain VAT rate to its response form
func ToVatRateResponse(v *ledger.VatRate) VatRateResponse {
	return VatRateResponse{
		ID:        v.ID,
		Name:      v.Name,
		Rate:      v.Rate,
		StartDate: v.StartDate,
		EndDate:   v.EndDate,
		CreatedAt: v.CreatedAt,
	}
}

// AccountResponse represents a ledger account in API responses
type AccountResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProjectID          uuid.UUID `json:"project_id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	FinancialStatement string    `json:"financial_statement"`
}

// ToAccountResponse converts a domain account to its response form
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:                 a.ID,
		ProjectID:          a.ProjectID,
		Code:               a.Code,
		Name:               a.Name,
		FinancialStatement: string(a.FinancialStatement),
	}
}

// CreateAccountRequest represents a request to add a ledger account
type CreateAccountRequest struct {
	Code               string `json:"code" binding:"required,min=1,max=20"`
	Name               string `json:"name" binding:"required,min=1,max=255"`
	FinancialStatement string `json:"financial_statement" binding:"required,oneof=BALANCE_SHEET INCOME_STATEMENT"`
}

// CreateTransactionRequest represents a request to capture a ledger transaction
type CreateTransactionRequest struct {
	AccountID       uuid.UUID       `json:"account_id" binding:"required"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=DEBIT CREDIT"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description"`
	ApplyVat        bool            `json:"apply_vat"`
	CapturedBy      uuid.UUID       `json:"-"` // Set from JWT context, not from request body
}

// TransactionResponse represents a ledger transaction in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProjectID       uuid.UUID       `json:"project_id"`
	AccountID       uuid.UUID       `json:"account_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	VatRateID       *uuid.UUID      `json:"vat_rate_id,omitempty"`
	VatAmount       decimal.Decimal `json:"vat_amount"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a domain transaction to its response form
func ToTransactionResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              t.ID,
		ProjectID:       t.ProjectID,
		AccountID:       t.AccountID,
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		VatRateID:       t.VatRateID,
		VatAmount:       t.VatAmount,
		Date:            t.Date,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
	}
}

// AccountBalanceResponse represents an account balance in API responses
type AccountBalanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"as_of,omitempty"`
}
