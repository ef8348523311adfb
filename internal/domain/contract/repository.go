package contract

import (
	"context"
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariationRepository provides access to contract variations.
type VariationRepository interface {
	shared.ProjectScopedRepository[Variation]
	FindByStatus(ctx context.Context, projectID uuid.UUID, status VariationStatus, filter shared.Filter) ([]Variation, error)
	NextSequence(ctx context.Context, projectID uuid.UUID) (int, error)
	// SumApprovedAmounts totals the cost amounts of active, approved
	// variations for the project.
	SumApprovedAmounts(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error)
}

// CertificateRepository provides access to payment certificates.
type CertificateRepository interface {
	shared.ProjectScopedRepository[Certificate]
	NextNumber(ctx context.Context, projectID uuid.UUID) (int, error)
	FindByNumber(ctx context.Context, projectID uuid.UUID, number int) (*Certificate, error)
}

// ItemRepository provides access to certificate item transactions.
type ItemRepository interface {
	shared.ProjectScopedRepository[CertificateItem]
	FindForCertificate(ctx context.Context, projectID, certificateID uuid.UUID, kind ItemKind) ([]CertificateItem, error)
	// Balance returns debits minus credits for one item family over
	// active rows, optionally up to and including a certificate number.
	Balance(ctx context.Context, projectID uuid.UUID, kind ItemKind, upToCertificate *int) (decimal.Decimal, error)
}

// DialogRepository provides access to correspondence dialogs and messages.
type DialogRepository interface {
	shared.ProjectScopedRepository[Dialog]
	FindMessages(ctx context.Context, dialogID uuid.UUID) ([]Message, error)
	SaveMessage(ctx context.Context, message *Message) error
}

// ForecastRepository provides access to cost forecasts.
type ForecastRepository interface {
	shared.ProjectScopedRepository[Forecast]
	FindForRange(ctx context.Context, projectID uuid.UUID, from, to time.Time) ([]Forecast, error)
	SumForProject(ctx context.Context, projectID uuid.UUID) (decimal.Decimal, error)
}
