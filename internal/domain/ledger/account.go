package ledger

import (
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinancialStatement groups ledger accounts for reporting.
type FinancialStatement string

const (
	StatementBalanceSheet    FinancialStatement = "BALANCE_SHEET"
	StatementIncomeStatement FinancialStatement = "INCOME_STATEMENT"
)

// Account is one general-ledger account belonging to a project.
type Account struct {
	shared.BaseEntity
	ProjectID          uuid.UUID
	Code               string
	Name               string
	FinancialStatement FinancialStatement
}

// NewAccount creates a ledger account.
func NewAccount(projectID uuid.UUID, code, name string, statement FinancialStatement) *Account {
	return &Account{
		BaseEntity:         shared.NewBaseEntity(),
		ProjectID:          projectID,
		Code:               code,
		Name:               name,
		FinancialStatement: statement,
	}
}

// TransactionType marks a ledger transaction as adding to or subtracting
// from the account balance.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is a dated ledger entry. Amount is always positive; the type
// carries the sign. VatRateID records which VAT period applied on the
// transaction date, resolved at write time.
type Transaction struct {
	shared.BaseEntity
	ProjectID       uuid.UUID
	AccountID       uuid.UUID
	TransactionType TransactionType
	Amount          decimal.Decimal
	VatRateID       *uuid.UUID
	VatAmount       decimal.Decimal
	Date            time.Time
	Description     string
	CapturedBy      uuid.UUID
}

// SignedAmount returns the amount with its sign applied.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Credit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// ApplyVat records the resolved rate and computes the VAT portion of the
// amount at that rate.
func (t *Transaction) ApplyVat(rate *VatRate) {
	id := rate.ID
	t.VatRateID = &id
	t.VatAmount = t.Amount.Mul(rate.Rate).Div(decimal.NewFromInt(100)).Round(2)
}

// StandardAccount is one row of the seedable standard chart of accounts.
type StandardAccount struct {
	Code      string
	Name      string
	Statement FinancialStatement
}

// StandardChart is the chart of accounts seeded for a newly created project.
// Codes follow the conventional 1000-9999 banding: assets, liabilities,
// equity, revenue, cost of sales, operating and other expenses.
var StandardChart = []StandardAccount{
	{"1000", "Cash and Cash Equivalents", StatementBalanceSheet},
	{"1100", "Accounts Receivable", StatementBalanceSheet},
	{"1200", "Inventory", StatementBalanceSheet},
	{"1300", "Prepaid Expenses", StatementBalanceSheet},
	{"1400", "Property, Plant and Equipment", StatementBalanceSheet},
	{"1500", "Accumulated Depreciation", StatementBalanceSheet},
	{"1600", "Intangible Assets", StatementBalanceSheet},
	{"2000", "Accounts Payable", StatementBalanceSheet},
	{"2100", "Accrued Expenses", StatementBalanceSheet},
	{"2200", "Taxes Payable", StatementBalanceSheet},
	{"2300", "Short-term Debt", StatementBalanceSheet},
	{"2400", "Long-term Debt", StatementBalanceSheet},
	{"2500", "Deferred Revenue", StatementBalanceSheet},
	{"3000", "Share Capital", StatementBalanceSheet},
	{"3100", "Retained Earnings", StatementBalanceSheet},
	{"3200", "Additional Paid-in Capital", StatementBalanceSheet},
	{"3300", "Dividends Paid", StatementBalanceSheet},
	{"4000", "Sales Revenue", StatementIncomeStatement},
	{"4100", "Service Revenue", StatementIncomeStatement},
	{"4200", "Interest Income", StatementIncomeStatement},
	{"4300", "Other Income", StatementIncomeStatement},
	{"5000", "Cost of Goods Sold", StatementIncomeStatement},
	{"5300", "Freight-in", StatementIncomeStatement},
	{"6000", "Salaries and Wages", StatementIncomeStatement},
	{"6100", "Rent Expense", StatementIncomeStatement},
	{"6200", "Utilities Expense", StatementIncomeStatement},
	{"6300", "Insurance Expense", StatementIncomeStatement},
	{"6400", "Depreciation Expense", StatementIncomeStatement},
	{"6600", "Marketing and Advertising", StatementIncomeStatement},
	{"6700", "Office Supplies", StatementIncomeStatement},
	{"6800", "Professional Fees", StatementIncomeStatement},
	{"6900", "Travel and Entertainment", StatementIncomeStatement},
	{"7000", "Interest Expense", StatementIncomeStatement},
	{"7100", "Tax Expense", StatementIncomeStatement},
	{"9999", "Suspense Account", StatementBalanceSheet},
}
