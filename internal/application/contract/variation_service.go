package contract

import (
	"context"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariationService handles the contract variation register and its approval
// workflow. Approving a variation is the only path that moves the project's
// revised contract value or completion date.
type VariationService struct {
	projectRepo   project.Repository
	variationRepo contract.VariationRepository
}

// NewVariationService creates a new VariationService
func NewVariationService(projectRepo project.Repository, variationRepo contract.VariationRepository) *VariationService {
	return &VariationService{
		projectRepo:   projectRepo,
		variationRepo: variationRepo,
	}
}

// Create registers a draft variation with the next per-project number.
// Numbers are never reissued, even after a delete.
func (s *VariationService) Create(ctx context.Context, projectID uuid.UUID, req CreateVariationRequest) (*VariationResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	sequence, err := s.variationRepo.NextSequence(ctx, projectID)
	if err != nil {
		return nil, err
	}

	v := contract.NewVariation(projectID, sequence, req.Title,
		contract.VariationCategory(req.Category), contract.VariationType(req.Type), req.SubmittedBy)
	v.Description = req.Description
	v.TimeExtensionDays = req.TimeExtensionDays
	v.DateIdentified = req.DateIdentified
	if req.Amount != nil {
		v.Amount = decimal.NewNullDecimal(*req.Amount)
	}

	if err := s.variationRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVariationResponse(v)
	return &resp, nil
}

// Get returns a single variation within its project
func (s *VariationService) Get(ctx context.Context, projectID, id uuid.UUID) (*VariationResponse, error) {
	v, err := s.variationRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	resp := ToVariationResponse(v)
	return &resp, nil
}

// List returns the project's variations, optionally filtered by status
func (s *VariationService) List(ctx context.Context, projectID uuid.UUID, status string, filter shared.Filter) ([]VariationResponse, error) {
	var (
		variations []contract.Variation
		err        error
	)
	if status != "" {
		variations, err = s.variationRepo.FindByStatus(ctx, projectID, contract.VariationStatus(status), filter)
	} else {
		variations, err = s.variationRepo.FindAllForProject(ctx, projectID, filter)
	}
	if err != nil {
		return nil, err
	}
	result := make([]VariationResponse, len(variations))
	for i := range variations {
		result[i] = ToVariationResponse(&variations[i])
	}
	return result, nil
}

// Update amends a variation. Only drafts may be edited.
func (s *VariationService) Update(ctx context.Context, projectID, id uuid.UUID, req UpdateVariationRequest) (*VariationResponse, error) {
	v, err := s.variationRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if v.Status != contract.VariationDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft variations can be edited")
	}

	if req.Title != nil {
		v.Title = *req.Title
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Category != nil {
		v.Category = contract.VariationCategory(*req.Category)
	}
	if req.TimeExtensionDays != nil {
		v.TimeExtensionDays = *req.TimeExtensionDays
	}
	if req.Amount != nil {
		v.Amount = decimal.NewNullDecimal(*req.Amount)
	}
	if req.DateIdentified != nil {
		v.DateIdentified = req.DateIdentified
	}

	if err := s.variationRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVariationResponse(v)
	return &resp, nil
}

// Submit moves a draft variation into the approval workflow
func (s *VariationService) Submit(ctx context.Context, projectID, id uuid.UUID) (*VariationResponse, error) {
	return s.step(ctx, projectID, id, func(v *contract.Variation) error {
		return v.Submit()
	})
}

// StartReview marks a submitted variation as under review
func (s *VariationService) StartReview(ctx context.Context, projectID, id uuid.UUID) (*VariationResponse, error) {
	return s.step(ctx, projectID, id, func(v *contract.Variation) error {
		return v.StartReview()
	})
}

// Reject closes a variation without effect on the project
func (s *VariationService) Reject(ctx context.Context, projectID, id uuid.UUID) (*VariationResponse, error) {
	return s.step(ctx, projectID, id, func(v *contract.Variation) error {
		return v.Reject()
	})
}

// Approve finalises a variation and applies its approved cost and time
// changes to the project's revised figures.
func (s *VariationService) Approve(ctx context.Context, projectID, id uuid.UUID, approvedBy uuid.UUID) (*VariationResponse, error) {
	v, err := s.variationRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if err := v.Approve(approvedBy); err != nil {
		return nil, err
	}

	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if v.MovesCost() {
		p.ApplyCostVariation(v.Amount.Decimal)
	}
	if v.MovesTime() {
		p.ApplyTimeVariation(v.TimeExtensionDays)
	}

	if err := s.variationRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	if v.MovesCost() || v.MovesTime() {
		if err := s.projectRepo.Save(ctx, p); err != nil {
			return nil, err
		}
	}
	resp := ToVariationResponse(v)
	return &resp, nil
}

// Delete soft deletes a variation. Approved amounts already applied to the
// project are not reversed.
func (s *VariationService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	return s.variationRepo.DeleteForProject(ctx, projectID, id)
}

// Summary returns the register size and total approved amount for a project
func (s *VariationService) Summary(ctx context.Context, projectID uuid.UUID) (*VariationSummaryResponse, error) {
	count, err := s.variationRepo.CountForProject(ctx, projectID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	total, err := s.variationRepo.SumApprovedAmounts(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &VariationSummaryResponse{
		ProjectID:           projectID,
		TotalCount:          count,
		TotalApprovedAmount: total,
	}, nil
}

func (s *VariationService) step(ctx context.Context, projectID, id uuid.UUID, fn func(*contract.Variation) error) (*VariationResponse, error) {
	v, err := s.variationRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(v); err != nil {
		return nil, err
	}
	if err := s.variationRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	resp := ToVariationResponse(v)
	return &resp, nil
}
