package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerService handles project ledger accounts and transactions
type LedgerService struct {
	projectRepo     project.Repository
	accountRepo     ledger.AccountRepository
	transactionRepo ledger.TransactionRepository
	vatRepo         ledger.VatRateRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	projectRepo project.Repository,
	accountRepo ledger.AccountRepository,
	transactionRepo ledger.TransactionRepository,
	vatRepo ledger.VatRateRepository,
) *LedgerService {
	return &LedgerService{
		projectRepo:     projectRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		vatRepo:         vatRepo,
	}
}

// SeedStandardChart creates the standard chart of accounts for a project,
// skipping codes the project already has. Returns the accounts created.
func (s *LedgerService) SeedStandardChart(ctx context.Context, projectID uuid.UUID) ([]AccountResponse, error) {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	existing, err := s.accountRepo.FindAllForProject(ctx, projectID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(existing))
	for i := range existing {
		have[existing[i].Code] = struct{}{}
	}

	accounts := make([]*ledger.Account, 0, len(ledger.StandardChart))
	for _, std := range ledger.StandardChart {
		if _, ok := have[std.Code]; ok {
			continue
		}
		accounts = append(accounts, ledger.NewAccount(projectID, std.Code, std.Name, std.Statement))
	}
	if len(accounts) > 0 {
		if err := s.accountRepo.SaveBatch(ctx, accounts); err != nil {
			return nil, err
		}
	}

	result := make([]AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = ToAccountResponse(accounts[i])
	}
	return result, nil
}

// CreateAccount adds a ledger account to a project
func (s *LedgerService) CreateAccount(ctx context.Context, projectID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	if _, err := s.accountRepo.FindByCode(ctx, projectID, req.Code); err == nil {
		return nil, shared.ErrDuplicateAccount
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	account := ledger.NewAccount(projectID, req.Code, req.Name, ledger.FinancialStatement(req.FinancialStatement))
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// GetAccount returns a single ledger account within its project
func (s *LedgerService) GetAccount(ctx context.Context, projectID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	resp := ToAccountResponse(account)
	return &resp, nil
}

// DeleteAccount soft deletes a ledger account. Its transactions stay in
// place but the account no longer appears in listings.
func (s *LedgerService) DeleteAccount(ctx context.Context, projectID, id uuid.UUID) error {
	return s.accountRepo.DeleteForProject(ctx, projectID, id)
}

// ListAccounts returns the accounts of a project ordered by code
func (s *LedgerService) ListAccounts(ctx context.Context, projectID uuid.UUID) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindAllForProject(ctx, projectID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	result := make([]AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = ToAccountResponse(&accounts[i])
	}
	return result, nil
}

// CaptureTransaction records a ledger transaction. When the project is VAT
// registered and the caller asks for VAT, the rate is resolved from the
// historical table by transaction date and captured on the row.
func (s *LedgerService) CaptureTransaction(ctx context.Context, projectID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	p, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindByIDForProject(ctx, projectID, req.AccountID); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Transaction amount must be positive")
	}

	tx := &ledger.Transaction{
		BaseEntity:      shared.NewBaseEntity(),
		ProjectID:       projectID,
		AccountID:       req.AccountID,
		TransactionType: ledger.TransactionType(req.TransactionType),
		Amount:          req.Amount,
		Date:            req.Date,
		Description:     req.Description,
		CapturedBy:      req.CapturedBy,
	}

	if req.ApplyVat && p.VatRegistered {
		rates, err := s.vatRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		rate, err := ledger.Resolve(rates, req.Date)
		if err != nil {
			return nil, err
		}
		tx.ApplyVat(rate)
	}

	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// ListTransactions returns the transactions of one account
func (s *LedgerService) ListTransactions(ctx context.Context, projectID, accountID uuid.UUID, filter shared.Filter) ([]TransactionResponse, error) {
	if _, err := s.accountRepo.FindByIDForProject(ctx, projectID, accountID); err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.FindForAccount(ctx, projectID, accountID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		items[i] = ToTransactionResponse(&transactions[i])
	}
	return items, nil
}

// DeleteTransaction soft-deletes a transaction, removing it from balances
func (s *LedgerService) DeleteTransaction(ctx context.Context, projectID, id uuid.UUID) error {
	return s.transactionRepo.DeleteForProject(ctx, projectID, id)
}

// AccountBalance returns debits minus credits for one account, optionally
// as at a date
func (s *LedgerService) AccountBalance(ctx context.Context, projectID, accountID uuid.UUID, asOf *time.Time) (*AccountBalanceResponse, error) {
	account, err := s.accountRepo.FindByIDForProject(ctx, projectID, accountID)
	if err != nil {
		return nil, err
	}
	balance, err := s.transactionRepo.SumForAccount(ctx, projectID, accountID, asOf)
	if err != nil {
		return nil, err
	}
	return &AccountBalanceResponse{
		AccountID: account.ID,
		Code:      account.Code,
		Name:      account.Name,
		Balance:   balance,
		AsOf:      asOf,
	}, nil
}
