package contract

import (
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Forecast is one monthly cost forecast row for a project.
type Forecast struct {
	shared.BaseEntity
	ProjectID uuid.UUID
	Period    time.Time // first day of the forecast month
	Amount    decimal.Decimal
	Notes     string
	CreatedBy uuid.UUID
}

// NewForecast creates a forecast row, normalising the period to the first
// day of its month.
func NewForecast(projectID uuid.UUID, period time.Time, amount decimal.Decimal, createdBy uuid.UUID) *Forecast {
	month := time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &Forecast{
		BaseEntity: shared.NewBaseEntity(),
		ProjectID:  projectID,
		Period:     month,
		Amount:     amount,
		CreatedBy:  createdBy,
	}
}
