package project

import (
	"context"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectService handles project lifecycle operations
type ProjectService struct {
	projectRepo project.Repository
	roleRepo    project.RoleRepository
	accountRepo ledger.AccountRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo project.Repository, roleRepo project.RoleRepository, accountRepo ledger.AccountRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		roleRepo:    roleRepo,
		accountRepo: accountRepo,
	}
}

// Create creates a new project. The creator becomes its first Admin and the
// standard chart of accounts is seeded so the ledgers are usable immediately.
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	p := project.NewProject(req.Name, req.Code, *req.ContractValue, req.CreatedBy)
	p.Description = req.Description
	p.StartDate = req.StartDate
	p.CompletionDate = req.CompletionDate
	p.VatRegistered = req.VatRegistered

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	admin := project.NewProjectRole(p.ID, req.CreatedBy, project.RoleAdmin)
	if err := s.roleRepo.Save(ctx, admin); err != nil {
		return nil, err
	}

	accounts := make([]*ledger.Account, 0, len(ledger.StandardChart))
	for _, std := range ledger.StandardChart {
		accounts = append(accounts, ledger.NewAccount(p.ID, std.Code, std.Name, std.Statement))
	}
	if err := s.accountRepo.SaveBatch(ctx, accounts); err != nil {
		return nil, err
	}

	resp := ToProjectResponse(p)
	return &resp, nil
}

// Get returns one project
func (s *ProjectService) Get(ctx context.Context, projectID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// ListForUser returns the projects the user is a member of
func (s *ProjectService) ListForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (*shared.Paginated[ProjectResponse], error) {
	projects, err := s.projectRepo.FindForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.projectRepo.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ProjectResponse, len(projects))
	for i := range projects {
		items[i] = ToProjectResponse(&projects[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies partial changes to a project
func (s *ProjectService) Update(ctx context.Context, projectID uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ContractValue != nil {
		p.ContractValue = *req.ContractValue
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	if req.CompletionDate != nil {
		p.CompletionDate = req.CompletionDate
	}
	if req.VatRegistered != nil {
		p.VatRegistered = *req.VatRegistered
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	resp := ToProjectResponse(p)
	return &resp, nil
}

// Delete soft-deletes a project. The operation is terminal; there is no
// restore endpoint.
func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	return s.projectRepo.Delete(ctx, projectID)
}
