package contract

import (
	"context"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CertificateService handles payment certificates and their item
// transactions. Each item family (advance payments, retention, materials on
// site, escalation, special items) shares the same debit/credit shape.
type CertificateService struct {
	certificateRepo contract.CertificateRepository
	itemRepo        contract.ItemRepository
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(certificateRepo contract.CertificateRepository, itemRepo contract.ItemRepository) *CertificateService {
	return &CertificateService{
		certificateRepo: certificateRepo,
		itemRepo:        itemRepo,
	}
}

// Create opens a draft certificate with the next per-project number
func (s *CertificateService) Create(ctx context.Context, projectID uuid.UUID, req CreateCertificateRequest) (*CertificateResponse, error) {
	number, err := s.certificateRepo.NextNumber(ctx, projectID)
	if err != nil {
		return nil, err
	}

	c := contract.NewCertificate(projectID, number)
	c.Notes = req.Notes
	if err := s.certificateRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCertificateResponse(c)
	return &resp, nil
}

// Get returns a single certificate within its project
func (s *CertificateService) Get(ctx context.Context, projectID, id uuid.UUID) (*CertificateResponse, error) {
	c, err := s.certificateRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	resp := ToCertificateResponse(c)
	return &resp, nil
}

// List returns the project's certificates in sequence order
func (s *CertificateService) List(ctx context.Context, projectID uuid.UUID, filter shared.Filter) ([]CertificateResponse, error) {
	certificates, err := s.certificateRepo.FindAllForProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	result := make([]CertificateResponse, len(certificates))
	for i := range certificates {
		result[i] = ToCertificateResponse(&certificates[i])
	}
	return result, nil
}

// Update amends a certificate's notes or final flag while it is still a draft
func (s *CertificateService) Update(ctx context.Context, projectID, id uuid.UUID, req UpdateCertificateRequest) (*CertificateResponse, error) {
	c, err := s.certificateRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if c.Status != contract.CertificateDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft certificates can be edited")
	}

	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.IsFinal != nil {
		c.IsFinal = *req.IsFinal
	}

	if err := s.certificateRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCertificateResponse(c)
	return &resp, nil
}

// Transition moves a certificate through its workflow
func (s *CertificateService) Transition(ctx context.Context, projectID, id uuid.UUID, req TransitionRequest) (*CertificateResponse, error) {
	var target contract.CertificateStatus
	switch req.Action {
	case "submit":
		target = contract.CertificateSubmitted
	case "approve":
		target = contract.CertificateApproved
	case "reject":
		target = contract.CertificateRejected
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown certificate action")
	}

	c, err := s.certificateRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Transition(target); err != nil {
		return nil, err
	}
	if err := s.certificateRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCertificateResponse(c)
	return &resp, nil
}

// Delete soft deletes a certificate. Its item transactions stay in place but
// no longer contribute to balances once deleted themselves.
func (s *CertificateService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	return s.certificateRepo.DeleteForProject(ctx, projectID, id)
}

// CaptureItem records a debit or credit against one item family on a
// certificate. The certificate must belong to the same project.
func (s *CertificateService) CaptureItem(ctx context.Context, projectID uuid.UUID, kind contract.ItemKind, req CreateItemRequest) (*ItemResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown certificate item kind")
	}
	if !req.Amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item amount must be positive")
	}
	if _, err := s.certificateRepo.FindByIDForProject(ctx, projectID, req.CertificateID); err != nil {
		return nil, err
	}

	item := contract.NewCertificateItem(projectID, req.CertificateID, kind,
		contract.ItemTransactionType(req.TransactionType), req.Amount, req.CapturedBy)
	item.Description = req.Description
	item.Date = req.Date
	item.Notes = req.Notes
	if req.BudgetAmount != nil {
		item.BudgetAmount.Decimal = *req.BudgetAmount
		item.BudgetAmount.Valid = true
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns one family's transactions on a certificate
func (s *CertificateService) ListItems(ctx context.Context, projectID, certificateID uuid.UUID, kind contract.ItemKind) ([]ItemResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown certificate item kind")
	}
	items, err := s.itemRepo.FindForCertificate(ctx, projectID, certificateID, kind)
	if err != nil {
		return nil, err
	}
	result := make([]ItemResponse, len(items))
	for i := range items {
		result[i] = ToItemResponse(&items[i])
	}
	return result, nil
}

// ItemBalance returns the running family balance for a project, optionally
// as at a certificate number.
func (s *CertificateService) ItemBalance(ctx context.Context, projectID uuid.UUID, kind contract.ItemKind, upToCertificate *int) (*ItemBalanceResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown certificate item kind")
	}
	balance, err := s.itemRepo.Balance(ctx, projectID, kind, upToCertificate)
	if err != nil {
		return nil, err
	}
	return &ItemBalanceResponse{
		ProjectID:       projectID,
		Kind:            string(kind),
		Balance:         balance,
		UpToCertificate: upToCertificate,
	}, nil
}

// DeleteItem soft deletes an item transaction, removing it from balances
func (s *CertificateService) DeleteItem(ctx context.Context, projectID, id uuid.UUID) error {
	return s.itemRepo.DeleteForProject(ctx, projectID, id)
}
