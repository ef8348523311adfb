package contract

import (
	"fmt"
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariationStatus is the workflow state of a contract variation.
type VariationStatus string

const (
	VariationDraft       VariationStatus = "DRAFT"
	VariationSubmitted   VariationStatus = "SUBMITTED"
	VariationUnderReview VariationStatus = "UNDER_REVIEW"
	VariationApproved    VariationStatus = "APPROVED"
	VariationRejected    VariationStatus = "REJECTED"
)

// variationTransitions lists the allowed workflow moves.
var variationTransitions = map[VariationStatus][]VariationStatus{
	VariationDraft:       {VariationSubmitted},
	VariationSubmitted:   {VariationUnderReview, VariationApproved, VariationRejected},
	VariationUnderReview: {VariationApproved, VariationRejected},
}

// CanTransition reports whether the status may move to the target state.
func (s VariationStatus) CanTransition(to VariationStatus) bool {
	for _, allowed := range variationTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// VariationCategory classifies why the contract changed.
type VariationCategory string

const (
	CategoryScopeChange    VariationCategory = "SCOPE_CHANGE"
	CategoryDesignChange   VariationCategory = "DESIGN_CHANGE"
	CategorySiteConditions VariationCategory = "SITE_CONDITIONS"
	CategoryClientRequest  VariationCategory = "CLIENT_REQUEST"
	CategoryRegulatory     VariationCategory = "REGULATORY"
	CategoryErrorOmission  VariationCategory = "ERROR_OMISSION"
	CategoryForceMajeure   VariationCategory = "FORCE_MAJEURE"
	CategoryOther          VariationCategory = "OTHER"
)

// VariationType says whether a variation moves time, cost, or both.
type VariationType string

const (
	VariationTime   VariationType = "TIME"
	VariationAmount VariationType = "AMOUNT"
	VariationBoth   VariationType = "BOTH"
)

// Variation is a registered change to the original contract: a time
// extension, a cost variation, or both.
type Variation struct {
	shared.BaseEntity
	ProjectID         uuid.UUID
	Number            string
	Title             string
	Description       string
	Category          VariationCategory
	Type              VariationType
	Status            VariationStatus
	TimeExtensionDays int
	Amount            decimal.NullDecimal
	DateIdentified    *time.Time
	DateSubmitted     *time.Time
	DateApproved      *time.Time
	SubmittedBy       uuid.UUID
	ApprovedBy        *uuid.UUID
}

// NewVariation creates a draft variation. The sequential number is assigned
// per project by the caller.
func NewVariation(projectID uuid.UUID, sequence int, title string, category VariationCategory, vtype VariationType, submittedBy uuid.UUID) *Variation {
	return &Variation{
		BaseEntity:  shared.NewBaseEntity(),
		ProjectID:   projectID,
		Number:      FormatVariationNumber(sequence),
		Title:       title,
		Category:    category,
		Type:        vtype,
		Status:      VariationDraft,
		SubmittedBy: submittedBy,
	}
}

// FormatVariationNumber renders the per-project sequential reference.
func FormatVariationNumber(sequence int) string {
	return fmt.Sprintf("VO-%03d", sequence)
}

// Submit moves a draft to SUBMITTED and stamps the submission date.
func (v *Variation) Submit() error {
	return v.transition(VariationSubmitted)
}

// StartReview moves a submitted variation to UNDER_REVIEW.
func (v *Variation) StartReview() error {
	return v.transition(VariationUnderReview)
}

// Approve finalises the variation and stamps the approval. The caller is
// responsible for applying the approved change to the project.
func (v *Variation) Approve(approvedBy uuid.UUID) error {
	if err := v.transition(VariationApproved); err != nil {
		return err
	}
	v.ApprovedBy = &approvedBy
	return nil
}

// Reject finalises the variation without effect on the project.
func (v *Variation) Reject() error {
	return v.transition(VariationRejected)
}

func (v *Variation) transition(to VariationStatus) error {
	if v.Deleted {
		return shared.ErrRecordDeleted
	}
	if !v.Status.CanTransition(to) {
		return shared.ErrInvalidState
	}
	v.Status = to
	now := time.Now()
	switch to {
	case VariationSubmitted:
		if v.DateSubmitted == nil {
			v.DateSubmitted = &now
		}
	case VariationApproved:
		if v.DateApproved == nil {
			v.DateApproved = &now
		}
	}
	v.UpdatedAt = now
	return nil
}

// MovesCost reports whether an approved variation changes the contract value.
func (v *Variation) MovesCost() bool {
	return (v.Type == VariationAmount || v.Type == VariationBoth) && v.Amount.Valid
}

// MovesTime reports whether an approved variation changes the completion date.
func (v *Variation) MovesTime() bool {
	return (v.Type == VariationTime || v.Type == VariationBoth) && v.TimeExtensionDays != 0
}
