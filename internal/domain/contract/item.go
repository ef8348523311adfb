package contract

import (
	"time"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemKind discriminates the certificate item families. They share one
// ledger-style shape: debit/credit transactions against a running balance.
type ItemKind string

const (
	KindAdvancePayment  ItemKind = "ADVANCE_PAYMENT"
	KindRetention       ItemKind = "RETENTION"
	KindMaterialsOnSite ItemKind = "MATERIALS_ON_SITE"
	KindEscalation      ItemKind = "ESCALATION"
	KindSpecialItem     ItemKind = "SPECIAL_ITEM"
)

// AllItemKinds lists every certificate item family.
var AllItemKinds = []ItemKind{
	KindAdvancePayment,
	KindRetention,
	KindMaterialsOnSite,
	KindEscalation,
	KindSpecialItem,
}

// IsValid reports whether k names a known item family.
func (k ItemKind) IsValid() bool {
	for _, known := range AllItemKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ItemTransactionType marks a transaction as adding to or subtracting from
// the family balance.
type ItemTransactionType string

const (
	ItemDebit  ItemTransactionType = "DEBIT"
	ItemCredit ItemTransactionType = "CREDIT"
)

// CertificateItem is one debit or credit against a certificate item family:
// an advance payment recovery, a retention release, materials delivered to
// site, an escalation claim, or a draw against a special item budget.
// Amount is always positive; the transaction type carries the sign.
type CertificateItem struct {
	shared.BaseEntity
	ProjectID       uuid.UUID
	CertificateID   uuid.UUID
	Kind            ItemKind
	TransactionType ItemTransactionType
	Amount          decimal.Decimal
	// BudgetAmount holds the original advance total or special item
	// budget, where the family has one.
	BudgetAmount decimal.NullDecimal
	Description  string
	Date         *time.Time
	CapturedBy   uuid.UUID
	Notes        string
}

// NewCertificateItem creates an item transaction.
func NewCertificateItem(projectID, certificateID uuid.UUID, kind ItemKind, txType ItemTransactionType, amount decimal.Decimal, capturedBy uuid.UUID) *CertificateItem {
	return &CertificateItem{
		BaseEntity:      shared.NewBaseEntity(),
		ProjectID:       projectID,
		CertificateID:   certificateID,
		Kind:            kind,
		TransactionType: txType,
		Amount:          amount,
		CapturedBy:      capturedBy,
	}
}

// SignedAmount returns the amount with its sign applied.
func (i *CertificateItem) SignedAmount() decimal.Decimal {
	if i.TransactionType == ItemCredit {
		return i.Amount.Neg()
	}
	return i.Amount
}

// BalanceOf computes debits minus credits over a set of item transactions.
// Callers pass active, project-scoped rows.
func BalanceOf(items []CertificateItem) decimal.Decimal {
	balance := decimal.Zero
	for i := range items {
		balance = balance.Add(items[i].SignedAmount())
	}
	return balance
}

// ItemKindRole maps each item family to the project role that unlocks it,
// alongside Admin and User.
func ItemKindRole(kind ItemKind) project.Role {
	switch kind {
	case KindAdvancePayment:
		return project.RoleAdvancePayments
	case KindRetention:
		return project.RoleRetention
	case KindMaterialsOnSite:
		return project.RoleMaterialsOnSite
	case KindEscalation:
		return project.RoleEscalation
	case KindSpecialItem:
		return project.RoleSpecialItems
	default:
		return ""
	}
}
