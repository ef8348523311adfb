package models

import (
	"time"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariationModel is the persistence model for contract variations
type VariationModel struct {
	BaseModel
	ProjectID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Number            string              `gorm:"size:20;not null"`
	Title             string              `gorm:"size:255;not null"`
	Description       string              `gorm:"type:text"`
	Category          string              `gorm:"size:50;not null"`
	Type              string              `gorm:"size:20;not null"`
	Status            string              `gorm:"size:20;not null;index"`
	TimeExtensionDays int                 `gorm:"not null;default:0"`
	Amount            decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	DateIdentified    *time.Time          `gorm:"type:date"`
	DateSubmitted     *time.Time          `gorm:"type:date"`
	DateApproved      *time.Time          `gorm:"type:date"`
	SubmittedBy       uuid.UUID           `gorm:"type:uuid;not null"`
	ApprovedBy        *uuid.UUID          `gorm:"type:uuid"`
}

// TableName returns the table name for VariationModel
func (VariationModel) TableName() string {
	return "contract_variations"
}

// ToDomain converts VariationModel to domain Variation
func (m *VariationModel) ToDomain() *contract.Variation {
	return &contract.Variation{
		BaseEntity:        m.BaseModel.ToDomain(),
		ProjectID:         m.ProjectID,
		Number:            m.Number,
		Title:             m.Title,
		Description:       m.Description,
		Category:          contract.VariationCategory(m.Category),
		Type:              contract.VariationType(m.Type),
		Status:            contract.VariationStatus(m.Status),
		TimeExtensionDays: m.TimeExtensionDays,
		Amount:            m.Amount,
		DateIdentified:    m.DateIdentified,
		DateSubmitted:     m.DateSubmitted,
		DateApproved:      m.DateApproved,
		SubmittedBy:       m.SubmittedBy,
		ApprovedBy:        m.ApprovedBy,
	}
}

// FromDomain populates VariationModel from domain Variation
func (m *VariationModel) FromDomain(v *contract.Variation) {
	m.FromDomainBaseEntity(v.BaseEntity)
	m.ProjectID = v.ProjectID
	m.Number = v.Number
	m.Title = v.Title
	m.Description = v.Description
	m.Category = string(v.Category)
	m.Type = string(v.Type)
	m.Status = string(v.Status)
	m.TimeExtensionDays = v.TimeExtensionDays
	m.Amount = v.Amount
	m.DateIdentified = v.DateIdentified
	m.DateSubmitted = v.DateSubmitted
	m.DateApproved = v.DateApproved
	m.SubmittedBy = v.SubmittedBy
	m.ApprovedBy = v.ApprovedBy
}

// CertificateModel is the persistence model for payment certificates
type CertificateModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:idx_certificates_project_number"`
	Number    int       `gorm:"not null;index:idx_certificates_project_number"`
	Status    string    `gorm:"size:20;not null"`
	IsFinal   bool      `gorm:"not null;default:false"`
	Notes     string    `gorm:"type:text"`
}

// TableName returns the table name for CertificateModel
func (CertificateModel) TableName() string {
	return "payment_certificates"
}

// ToDomain converts CertificateModel to domain Certificate
func (m *CertificateModel) ToDomain() *contract.Certificate {
	return &contract.Certificate{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		Number:     m.Number,
		Status:     contract.CertificateStatus(m.Status),
		IsFinal:    m.IsFinal,
		Notes:      m.Notes,
	}
}

// FromDomain populates CertificateModel from domain Certificate
func (m *CertificateModel) FromDomain(c *contract.Certificate) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ProjectID = c.ProjectID
	m.Number = c.Number
	m.Status = string(c.Status)
	m.IsFinal = c.IsFinal
	m.Notes = c.Notes
}

// CertificateItemModel is the persistence model for certificate item
// transactions, shared by every item family via the kind discriminator
type CertificateItemModel struct {
	BaseModel
	ProjectID       uuid.UUID           `gorm:"type:uuid;not null;index:idx_certificate_items_family"`
	CertificateID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Kind            string              `gorm:"size:30;not null;index:idx_certificate_items_family"`
	TransactionType string              `gorm:"size:10;not null"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	BudgetAmount    decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	Description     string              `gorm:"type:text"`
	Date            *time.Time          `gorm:"type:date"`
	CapturedBy      uuid.UUID           `gorm:"type:uuid;not null"`
	Notes           string              `gorm:"type:text"`
}

// TableName returns the table name for CertificateItemModel
func (CertificateItemModel) TableName() string {
	return "certificate_items"
}

// ToDomain converts CertificateItemModel to domain CertificateItem
func (m *CertificateItemModel) ToDomain() *contract.CertificateItem {
	return &contract.CertificateItem{
		BaseEntity:      m.BaseModel.ToDomain(),
		ProjectID:       m.ProjectID,
		CertificateID:   m.CertificateID,
		Kind:            contract.ItemKind(m.Kind),
		TransactionType: contract.ItemTransactionType(m.TransactionType),
		Amount:          m.Amount,
		BudgetAmount:    m.BudgetAmount,
		Description:     m.Description,
		Date:            m.Date,
		CapturedBy:      m.CapturedBy,
		Notes:           m.Notes,
	}
}

// FromDomain populates CertificateItemModel from domain CertificateItem
func (m *CertificateItemModel) FromDomain(i *contract.CertificateItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.ProjectID = i.ProjectID
	m.CertificateID = i.CertificateID
	m.Kind = string(i.Kind)
	m.TransactionType = string(i.TransactionType)
	m.Amount = i.Amount
	m.BudgetAmount = i.BudgetAmount
	m.Description = i.Description
	m.Date = i.Date
	m.CapturedBy = i.CapturedBy
	m.Notes = i.Notes
}

// DialogModel is the persistence model for correspondence dialogs
type DialogModel struct {
	BaseModel
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject   string    `gorm:"size:255;not null"`
	Direction string    `gorm:"size:10;not null"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for DialogModel
func (DialogModel) TableName() string {
	return "correspondence_dialogs"
}

// ToDomain converts DialogModel to domain Dialog
func (m *DialogModel) ToDomain() *contract.Dialog {
	return &contract.Dialog{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		Subject:    m.Subject,
		Direction:  contract.CorrespondenceDirection(m.Direction),
		CreatedBy:  m.CreatedBy,
	}
}

// FromDomain populates DialogModel from domain Dialog
func (m *DialogModel) FromDomain(d *contract.Dialog) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.ProjectID = d.ProjectID
	m.Subject = d.Subject
	m.Direction = string(d.Direction)
	m.CreatedBy = d.CreatedBy
}

// MessageModel is the persistence model for correspondence messages
type MessageModel struct {
	BaseModel
	DialogID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender    string    `gorm:"size:255"`
	Receiver  string    `gorm:"size:255"`
	Body      string    `gorm:"type:text;not null"`
	SentAt    *time.Time
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for MessageModel
func (MessageModel) TableName() string {
	return "correspondence_messages"
}

// ToDomain converts MessageModel to domain Message
func (m *MessageModel) ToDomain() *contract.Message {
	return &contract.Message{
		BaseEntity: m.BaseModel.ToDomain(),
		DialogID:   m.DialogID,
		Sender:     m.Sender,
		Receiver:   m.Receiver,
		Body:       m.Body,
		SentAt:     m.SentAt,
		CreatedBy:  m.CreatedBy,
	}
}

// FromDomain populates MessageModel from domain Message
func (m *MessageModel) FromDomain(msg *contract.Message) {
	m.FromDomainBaseEntity(msg.BaseEntity)
	m.DialogID = msg.DialogID
	m.Sender = msg.Sender
	m.Receiver = msg.Receiver
	m.Body = msg.Body
	m.SentAt = msg.SentAt
	m.CreatedBy = msg.CreatedBy
}

// ForecastModel is the persistence model for monthly cost forecasts
type ForecastModel struct {
	BaseModel
	ProjectID uuid.UUID       `gorm:"type:uuid;not null;index:idx_forecasts_project_period"`
	Period    time.Time       `gorm:"type:date;not null;index:idx_forecasts_project_period"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes     string          `gorm:"type:text"`
	CreatedBy uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for ForecastModel
func (ForecastModel) TableName() string {
	return "cost_forecasts"
}

// ToDomain converts ForecastModel to domain Forecast
func (m *ForecastModel) ToDomain() *contract.Forecast {
	return &contract.Forecast{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectID:  m.ProjectID,
		Period:     m.Period,
		Amount:     m.Amount,
		Notes:      m.Notes,
		CreatedBy:  m.CreatedBy,
	}
}

// FromDomain populates ForecastModel from domain Forecast
func (m *ForecastModel) FromDomain(f *contract.Forecast) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.ProjectID = f.ProjectID
	m.Period = f.Period
	m.Amount = f.Amount
	m.Notes = f.Notes
	m.CreatedBy = f.CreatedBy
}
