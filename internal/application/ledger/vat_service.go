package ledger

import (
	"context"
	"time"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/google/uuid"
)

// VatRateService manages the global VAT rate table. Periods must never
// overlap; the invariant is enforced here at write time so the read-side
// resolver can treat overlap as data corruption.
type VatRateService struct {
	vatRepo ledger.VatRateRepository
}

// NewVatRateService creates a new VatRateService
func NewVatRateService(vatRepo ledger.VatRateRepository) *VatRateService {
	return &VatRateService{vatRepo: vatRepo}
}

// Create adds a VAT rate period after checking it against every existing one
func (s *VatRateService) Create(ctx context.Context, req CreateVatRateRequest) (*VatRateResponse, error) {
	rate := ledger.NewVatRate(req.Name, req.Rate, req.StartDate, req.EndDate)

	existing, err := s.vatRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := ledger.CheckOverlap(existing, rate); err != nil {
		return nil, err
	}

	if err := s.vatRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	resp := ToVatRateResponse(rate)
	return &resp, nil
}

// Update amends a VAT rate period, re-checking the overlap invariant
func (s *VatRateService) Update(ctx context.Context, id uuid.UUID, req UpdateVatRateRequest) (*VatRateResponse, error) {
	rate, err := s.vatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		rate.Name = *req.Name
	}
	if req.Rate != nil {
		rate.Rate = *req.Rate
	}
	if req.StartDate != nil {
		rate.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		rate.EndDate = req.EndDate
	}

	existing, err := s.vatRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := ledger.CheckOverlap(existing, rate); err != nil {
		return nil, err
	}

	if err := s.vatRepo.Save(ctx, rate); err != nil {
		return nil, err
	}
	resp := ToVatRateResponse(rate)
	return &resp, nil
}

// List returns every VAT rate period
func (s *VatRateService) List(ctx context.Context) ([]VatRateResponse, error) {
	rates, err := s.vatRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]VatRateResponse, len(rates))
	for i := range rates {
		result[i] = ToVatRateResponse(&rates[i])
	}
	return result, nil
}

// Get returns one VAT rate period
func (s *VatRateService) Get(ctx context.Context, id uuid.UUID) (*VatRateResponse, error) {
	rate, err := s.vatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVatRateResponse(rate)
	return &resp, nil
}

// Delete soft-deletes a VAT rate period. Transactions that referenced it
// keep their captured VAT amounts.
func (s *VatRateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.vatRepo.Delete(ctx, id)
}

// ResolveForDate returns the VAT rate whose period covers the given date
func (s *VatRateService) ResolveForDate(ctx context.Context, asOf time.Time) (*VatRateResponse, error) {
	rates, err := s.vatRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := ledger.Resolve(rates, asOf)
	if err != nil {
		return nil, err
	}
	resp := ToVatRateResponse(rate)
	return &resp, nil
}
