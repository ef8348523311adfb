package ledger

import (
	"time"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VatRate is one period of the historical VAT table. A nil StartDate means
// the period is open at the start, a nil EndDate means it is still current.
// Periods must not overlap; that invariant is enforced at write time by
// CheckOverlap and surfaces as ErrAmbiguousPeriod if violated data is read.
type VatRate struct {
	shared.BaseEntity
	Name      string
	Rate      decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
}

// NewVatRate creates a VAT rate period.
func NewVatRate(name string, rate decimal.Decimal, start, end *time.Time) *VatRate {
	return &VatRate{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Rate:       rate,
		StartDate:  start,
		EndDate:    end,
	}
}

// Covers reports whether the period contains the given date, treating nil
// bounds as unbounded. Bounds are inclusive and compared at day precision.
func (v *VatRate) Covers(asOf time.Time) bool {
	day := truncateToDay(asOf)
	if v.StartDate != nil && day.Before(truncateToDay(*v.StartDate)) {
		return false
	}
	if v.EndDate != nil && day.After(truncateToDay(*v.EndDate)) {
		return false
	}
	return true
}

// Overlaps reports whether two periods share at least one day.
func (v *VatRate) Overlaps(other *VatRate) bool {
	// v starts after other ends, or ends before other starts -> disjoint
	if v.StartDate != nil && other.EndDate != nil &&
		truncateToDay(*v.StartDate).After(truncateToDay(*other.EndDate)) {
		return false
	}
	if v.EndDate != nil && other.StartDate != nil &&
		truncateToDay(*v.EndDate).Before(truncateToDay(*other.StartDate)) {
		return false
	}
	return true
}

// Resolve selects the single rate period containing asOf. It returns
// ErrNoRatePeriod when no period matches and ErrAmbiguousPeriod when more
// than one does; the latter indicates the non-overlap invariant was violated
// upstream and is never silently resolved here.
func Resolve(rates []VatRate, asOf time.Time) (*VatRate, error) {
	var match *VatRate
	for i := range rates {
		if !rates[i].Covers(asOf) {
			continue
		}
		if match != nil {
			return nil, shared.ErrAmbiguousPeriod
		}
		match = &rates[i]
	}
	if match == nil {
		return nil, shared.ErrNoRatePeriod
	}
	return match, nil
}

// CheckOverlap validates a candidate period against the existing table,
// ignoring the candidate itself so updates do not collide with their own row.
func CheckOverlap(existing []VatRate, candidate *VatRate) error {
	for i := range existing {
		if existing[i].ID == candidate.ID {
			continue
		}
		if candidate.Overlaps(&existing[i]) {
			return shared.ErrPeriodOverlap
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
