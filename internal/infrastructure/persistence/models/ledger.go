package models

import (
	"time"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VatRateModel is the persistence model for VAT rate periods
type VatRateModel struct {
	BaseModel
	Name      string          `gorm:"size:100;not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(6,3);not null"`
	StartDate *time.Time      `gorm:"type:date"`
	EndDate   *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for VatRateModel
func (VatRateModel) TableName() string {
	return "vat_rates"
}

// ToDomain converts VatRateModel to domain VatRate
func (m *VatRateModel) ToDomain() *ledger.VatRate {
	return &ledger.VatRate{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Rate:       m.Rate,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
	}
}

// FromDomain populates VatRateModel from domain VatRate
func (m *VatRateModel) FromDomain(v *ledger.VatRate) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.Name = v.Name
	m.Rate = v.Rate
	m.StartDate = v.StartDate
	m.EndDate = v.EndDate
}

// AccountModel is the persistence model for project ledger accounts
type AccountModel struct {
	BaseModel
	ProjectID          uuid.UUID `gorm:"type:uuid;not null;index:idx_accounts_project_code"`
	Code               string    `gorm:"size:20;not null;index:idx_accounts_project_code"`
	Name               string    `gorm:"size:255;not null"`
	FinancialStatement string    `gorm:"size:50;not null"`
}

// TableName returns the table name for AccountModel
func (AccountModel) TableName() string {
	return "ledger_accounts"
}

// ToDomain converts AccountModel to domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity:         m.BaseModel.ToDomain(),
		ProjectID:          m.ProjectID,
		Code:               m.Code,
		Name:               m.Name,
		FinancialStatement: ledger.FinancialStatement(m.FinancialStatement),
	}
}

// FromDomain populates AccountModel from domain Account
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.ProjectID = a.ProjectID
	m.Code = a.Code
	m.Name = a.Name
	m.FinancialStatement = string(a.FinancialStatement)
}

// TransactionModel is the persistence model for ledger transactions
type TransactionModel struct {
	BaseModel
	ProjectID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionType string          `gorm:"size:10;not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	VatRateID       *uuid.UUID      `gorm:"type:uuid"`
	VatAmount       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Date            time.Time       `gorm:"type:date;not null;index"`
	Description     string          `gorm:"type:text"`
	CapturedBy      uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for TransactionModel
func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts TransactionModel to domain Transaction
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseEntity:      m.BaseModel.ToDomain(),
		ProjectID:       m.ProjectID,
		AccountID:       m.AccountID,
		TransactionType: ledger.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		VatRateID:       m.VatRateID,
		VatAmount:       m.VatAmount,
		Date:            m.Date,
		Description:     m.Description,
		CapturedBy:      m.CapturedBy,
	}
}

// FromDomain populates TransactionModel from domain Transaction
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ProjectID = t.ProjectID
	m.AccountID = t.AccountID
	m.TransactionType = string(t.TransactionType)
	m.Amount = t.Amount
	m.VatRateID = t.VatRateID
	m.VatAmount = t.VatAmount
	m.Date = t.Date
	m.Description = t.Description
	m.CapturedBy = t.CapturedBy
}
