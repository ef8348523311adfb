package contract

import (
	"time"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Variation DTOs
// =============================================================================

// CreateVariationRequest represents a request to register a contract variation
type CreateVariationRequest struct {
	Title             string           `json:"title" binding:"required,min=1,max=255"`
	Description       string           `json:"description"`
	Category          string           `json:"category" binding:"required,oneof=SCOPE_CHANGE DESIGN_CHANGE SITE_CONDITIONS CLIENT_REQUEST REGULATORY ERROR_OMISSION FORCE_MAJEURE OTHER"`
	Type              string           `json:"type" binding:"required,oneof=TIME AMOUNT BOTH"`
	TimeExtensionDays int              `json:"time_extension_days" binding:"omitempty,min=0"`
	Amount            *decimal.Decimal `json:"amount"`
	DateIdentified    *time.Time       `json:"date_identified"`
	SubmittedBy       uuid.UUID        `json:"-"` // Set from JWT context, not from request body
}

// UpdateVariationRequest represents a request to amend a draft variation
type UpdateVariationRequest struct {
	Title             *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category" binding:"omitempty,oneof=SCOPE_CHANGE DESIGN_CHANGE SITE_CONDITIONS CLIENT_REQUEST REGULATORY ERROR_OMISSION FORCE_MAJEURE OTHER"`
	TimeExtensionDays *int             `json:"time_extension_days" binding:"omitempty,min=0"`
	Amount            *decimal.Decimal `json:"amount"`
	DateIdentified    *time.Time       `json:"date_identified"`
}

// VariationResponse represents a contract variation in API responses
type VariationResponse struct {
	ID                uuid.UUID           `json:"id"`
	ProjectID         uuid.UUID           `json:"project_id"`
	Number            string              `json:"number"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Category          string              `json:"category"`
	Type              string              `json:"type"`
	Status            string              `json:"status"`
	TimeExtensionDays int                 `json:"time_extension_days"`
	Amount            decimal.NullDecimal `json:"amount"`
	DateIdentified    *time.Time          `json:"date_identified"`
	DateSubmitted     *time.Time          `json:"date_submitted"`
	DateApproved      *time.Time          `json:"date_approved"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ToVariationResponse converts a domain variation to its response form
func ToVariationResponse(v *contract.Variation) VariationResponse {
	return VariationResponse{
		ID:                v.ID,
		ProjectID:         v.ProjectID,
		Number:            v.Number,
		Title:             v.Title,
		Description:       v.Description,
		Category:          string(v.Category),
		Type:              string(v.Type),
		Status:            string(v.Status),
		TimeExtensionDays: v.TimeExtensionDays,
		Amount:            v.Amount,
		DateIdentified:    v.DateIdentified,
		DateSubmitted:     v.DateSubmitted,
		DateApproved:      v.DateApproved,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

// VariationSummaryResponse aggregates a project's variation register
type VariationSummaryResponse struct {
	ProjectID           uuid.UUID       `json:"project_id"`
	TotalCount          int64           `json:"total_count"`
	TotalApprovedAmount decimal.Decimal `json:"total_approved_amount"`
}

// =============================================================================
// Certificate DTOs
// =============================================================================

// CreateCertificateRequest represents a request to open a payment certificate
type CreateCertificateRequest struct {
	Notes string `json:"notes"`
}

// UpdateCertificateRequest represents a request to amend a draft certificate
type UpdateCertificateRequest struct {
	Notes   *string `json:"notes"`
	IsFinal *bool   `json:"is_final"`
}

// TransitionRequest represents a workflow transition request
type TransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=submit approve reject"`
}

// CertificateResponse represents a payment certificate in API responses
type CertificateResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Number    int       `json:"number"`
	Status    string    `json:"status"`
	IsFinal   bool      `json:"is_final"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCertificateResponse converts a domain certificate to its response form
func ToCertificateResponse(c *contract.Certificate) CertificateResponse {
	return CertificateResponse{
		ID:        c.ID,
		ProjectID: c.ProjectID,
		Number:    c.Number,
		Status:    string(c.Status),
		IsFinal:   c.IsFinal,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// =============================================================================
// Certificate item DTOs
// =============================================================================

// CreateItemRequest represents a request to capture a certificate item
// transaction
type CreateItemRequest struct {
	CertificateID   uuid.UUID        `json:"certificate_id" binding:"required"`
	TransactionType string           `json:"transaction_type" binding:"required,oneof=DEBIT CREDIT"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	BudgetAmount    *decimal.Decimal `json:"budget_amount"`
	Description     string           `json:"description"`
	Date            *time.Time       `json:"date"`
	Notes           string           `json:"notes"`
	CapturedBy      uuid.UUID        `json:"-"` // Set from JWT context, not from request body
}

// ItemResponse represents a certificate item transaction in API responses
type ItemResponse struct {
	ID              uuid.UUID           `json:"id"`
	ProjectID       uuid.UUID           `json:"project_id"`
	CertificateID   uuid.UUID           `json:"certificate_id"`
	Kind            string              `json:"kind"`
	TransactionType string              `json:"transaction_type"`
	Amount          decimal.Decimal     `json:"amount"`
	BudgetAmount    decimal.NullDecimal `json:"budget_amount"`
	Description     string              `json:"description"`
	Date            *time.Time          `json:"date"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ToItemResponse converts a domain certificate item to its response form
func ToItemResponse(i *contract.CertificateItem) ItemResponse {
	return ItemResponse{
		ID:              i.ID,
		ProjectID:       i.ProjectID,
		CertificateID:   i.CertificateID,
		Kind:            string(i.Kind),
		TransactionType: string(i.TransactionType),
		Amount:          i.Amount,
		BudgetAmount:    i.BudgetAmount,
		Description:     i.Description,
		Date:            i.Date,
		Notes:           i.Notes,
		CreatedAt:       i.CreatedAt,
	}
}

// ItemBalanceResponse represents a running family balance in API responses
type ItemBalanceResponse struct {
	ProjectID       uuid.UUID       `json:"project_id"`
	Kind            string          `json:"kind"`
	Balance         decimal.Decimal `json:"balance"`
	UpToCertificate *int            `json:"up_to_certificate,omitempty"`
}

// =============================================================================
// Correspondence DTOs
// =============================================================================

// CreateDialogRequest represents a request to open a correspondence dialog
type CreateDialogRequest struct {
	Subject   string    `json:"subject" binding:"required,min=1,max=255"`
	Direction string    `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	CreatedBy uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// UpdateDialogRequest represents a request to rename a dialog
type UpdateDialogRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=255"`
}

// CreateMessageRequest represents a request to append a message to a dialog.
// Sender and receiver are free text supplied by the caller.
type CreateMessageRequest struct {
	Sender    string     `json:"sender" binding:"max=255"`
	Receiver  string     `json:"receiver" binding:"max=255"`
	Body      string     `json:"body" binding:"required"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedBy uuid.UUID  `json:"-"` // Set from JWT context, not from request body
}

// DialogResponse represents a correspondence dialog in API responses
type DialogResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	Subject   string    `json:"subject"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDialogResponse converts a domain dialog to its response form
func ToDialogResponse(d *contract.Dialog) DialogResponse {
	return DialogResponse{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Subject:   d.Subject,
		Direction: string(d.Direction),
		CreatedAt: d.CreatedAt,
	}
}

// MessageResponse represents a correspondence message in API responses
type MessageResponse struct {
	ID        uuid.UUID  `json:"id"`
	DialogID  uuid.UUID  `json:"dialog_id"`
	Sender    string     `json:"sender"`
	Receiver  string     `json:"receiver"`
	Body      string     `json:"body"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToMessageResponse converts a domain message to its response form
func ToMessageResponse(m *contract.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		DialogID:  m.DialogID,
		Sender:    m.Sender,
		Receiver:  m.Receiver,
		Body:      m.Body,
		SentAt:    m.SentAt,
		CreatedAt: m.CreatedAt,
	}
}

// =============================================================================
// Forecast DTOs
// =============================================================================

// CreateForecastRequest represents a request to record a monthly cost forecast
type CreateForecastRequest struct {
	Period    time.Time       `json:"period" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Notes     string          `json:"notes"`
	CreatedBy uuid.UUID       `json:"-"` // Set from JWT context, not from request body
}

// ForecastResponse represents a cost forecast in API responses
type ForecastResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID uuid.UUID       `json:"project_id"`
	Period    time.Time       `json:"period"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToForecastResponse converts a domain forecast to its response form
func ToForecastResponse(f *contract.Forecast) ForecastResponse {
	return ForecastResponse{
		ID:        f.ID,
		ProjectID: f.ProjectID,
		Period:    f.Period,
		Amount:    f.Amount,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
	}
}

// ForecastTotalResponse represents the forecast total for a project
type ForecastTotalResponse struct {
	ProjectID uuid.UUID       `json:"project_id"`
	Total     decimal.Decimal `json:"total"`
}
