package ledger

import (
	"context"
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VatRateRepository provides access to the global VAT rate table.
type VatRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VatRate, error)
	FindAll(ctx context.Context) ([]VatRate, error)
	Save(ctx context.Context, rate *VatRate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository provides access to project ledger accounts.
type AccountRepository interface {
	shared.ProjectScopedRepository[Account]
	FindByCode(ctx context.Context, projectID uuid.UUID, code string) (*Account, error)
	SaveBatch(ctx context.Context, accounts []*Account) error
}

// TransactionRepository provides access to ledger transactions.
type TransactionRepository interface {
	shared.ProjectScopedRepository[Transaction]
	FindForAccount(ctx context.Context, projectID, accountID uuid.UUID, filter shared.Filter) ([]Transaction, error)
	// SumForAccount returns debits minus credits over active rows,
	// optionally bounded by date.
	SumForAccount(ctx context.Context, projectID, accountID uuid.UUID, upTo *time.Time) (decimal.Decimal, error)
}
