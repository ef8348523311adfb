package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/buildledger/backend/internal/domain/contract"
	"github.com/buildledger/backend/internal/domain/ledger"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/buildledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.ProjectModel{},
		&models.ProjectRoleModel{},
		&models.StructureModel{},
		&models.UserModel{},
		&models.VatRateModel{},
		&models.AccountModel{},
		&models.TransactionModel{},
		&models.VariationModel{},
		&models.CertificateModel{},
		&models.CertificateItemModel{},
		&models.DialogModel{},
		&models.MessageModel{},
		&models.ForecastModel{},
	)
	require.NoError(t, err)

	return db
}

func TestGormProjectRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRepository(db)
	ctx := context.Background()

	p := project.NewProject("Harbour Bridge Rehabilitation", "HBR-01", decimal.NewFromInt(1000000), uuid.New())
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "HBR-01", found.Code)

	require.NoError(t, repo.Delete(ctx, p.ID))

	// Deleted projects vanish from every read path
	_, err = repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, all)

	// Repeat delete reports not found
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), shared.ErrNotFound)

	// The row itself is still there
	var count int64
	require.NoError(t, db.Model(&models.ProjectModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormProjectRepository_FindForUser(t *testing.T) {
	db := setupTestDB(t)
	projects := NewGormProjectRepository(db)
	roles := NewGormProjectRoleRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	mine := project.NewProject("Mine", "P1", decimal.NewFromInt(100), uuid.New())
	other := project.NewProject("Other", "P2", decimal.NewFromInt(100), uuid.New())
	require.NoError(t, projects.Save(ctx, mine))
	require.NoError(t, projects.Save(ctx, other))
	require.NoError(t, roles.Save(ctx, project.NewProjectRole(mine.ID, userID, project.RoleUser)))

	visible, err := projects.FindForUser(ctx, userID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, mine.ID, visible[0].ID)

	n, err := projects.CountForUser(ctx, userID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormProjectRoleRepository_FindRolesForUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProjectRoleRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	userID := uuid.New()
	require.NoError(t, repo.Save(ctx, project.NewProjectRole(projectID, userID, project.RoleUser)))
	require.NoError(t, repo.Save(ctx, project.NewProjectRole(projectID, userID, project.RoleRetention)))
	// Role on another project must not leak in
	require.NoError(t, repo.Save(ctx, project.NewProjectRole(uuid.New(), userID, project.RoleAdmin)))

	set, err := repo.FindRolesForUser(ctx, projectID, userID)
	require.NoError(t, err)
	assert.True(t, set.Contains(project.RoleUser))
	assert.True(t, set.Contains(project.RoleRetention))
	assert.False(t, set.Contains(project.RoleAdmin))
}

func TestGormStructureRepository_SoftDeleteAndScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStructureRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	blockA := project.NewStructure(projectID, "Block A", "Main residential block")
	blockB := project.NewStructure(projectID, "Block B", "")
	require.NoError(t, repo.Save(ctx, blockA))
	require.NoError(t, repo.Save(ctx, blockB))
	// Structure on another project must not leak in
	require.NoError(t, repo.Save(ctx, project.NewStructure(uuid.New(), "Block C", "")))

	listed, err := repo.FindAllForProject(ctx, projectID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Block A", listed[0].Name)

	require.NoError(t, repo.DeleteForProject(ctx, projectID, blockB.ID))

	// Deleted structures 404 on detail and vanish from lists
	_, err = repo.FindByIDForProject(ctx, projectID, blockB.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	listed, err = repo.FindAllForProject(ctx, projectID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// Repeat delete reports not found
	assert.ErrorIs(t, repo.DeleteForProject(ctx, projectID, blockB.ID), shared.ErrNotFound)
}

func TestGormVariationRepository_SumApprovedAmounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVariationRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	submitter := uuid.New()

	approved := contract.NewVariation(projectID, 1, "Extra piling", contract.CategorySiteConditions, contract.VariationAmount, submitter)
	approved.Amount = decimal.NewNullDecimal(decimal.NewFromInt(50000))
	approved.Status = contract.VariationApproved

	draft := contract.NewVariation(projectID, 2, "Pending scope change", contract.CategoryScopeChange, contract.VariationAmount, submitter)
	draft.Amount = decimal.NewNullDecimal(decimal.NewFromInt(99999))

	timeOnly := contract.NewVariation(projectID, 3, "Weather delay", contract.CategoryForceMajeure, contract.VariationTime, submitter)
	timeOnly.Status = contract.VariationApproved

	deleted := contract.NewVariation(projectID, 4, "Withdrawn", contract.CategoryOther, contract.VariationAmount, submitter)
	deleted.Amount = decimal.NewNullDecimal(decimal.NewFromInt(11111))
	deleted.Status = contract.VariationApproved

	for _, v := range []*contract.Variation{approved, draft, timeOnly, deleted} {
		require.NoError(t, repo.Save(ctx, v))
	}
	require.NoError(t, repo.Delete(ctx, deleted.ID))

	sum, err := repo.SumApprovedAmounts(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(50000)), "got %s", sum)
}

func TestGormVariationRepository_NextSequence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormVariationRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	seq, err := repo.NextSequence(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	v := contract.NewVariation(projectID, seq, "First", contract.CategoryOther, contract.VariationAmount, uuid.New())
	require.NoError(t, repo.Save(ctx, v))
	require.NoError(t, repo.Delete(ctx, v.ID))

	// Numbers of deleted variations are not reissued
	seq, err = repo.NextSequence(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
}

func TestGormCertificateRepository_NextNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCertificateRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	n, err := repo.NextNumber(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Save(ctx, contract.NewCertificate(projectID, 1)))
	require.NoError(t, repo.Save(ctx, contract.NewCertificate(projectID, 2)))

	n, err = repo.NextNumber(ctx, projectID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Other projects number independently
	n, err = repo.NextNumber(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGormItemRepository_Balance(t *testing.T) {
	db := setupTestDB(t)
	certs := NewGormCertificateRepository(db)
	items := NewGormItemRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	capturedBy := uuid.New()

	cert1 := contract.NewCertificate(projectID, 1)
	cert2 := contract.NewCertificate(projectID, 2)
	require.NoError(t, certs.Save(ctx, cert1))
	require.NoError(t, certs.Save(ctx, cert2))

	add := func(certID uuid.UUID, kind contract.ItemKind, txType contract.ItemTransactionType, amount int64) *contract.CertificateItem {
		item := contract.NewCertificateItem(projectID, certID, kind, txType, decimal.NewFromInt(amount), capturedBy)
		require.NoError(t, items.Save(ctx, item))
		return item
	}

	add(cert1.ID, contract.KindRetention, contract.ItemDebit, 500)
	add(cert2.ID, contract.KindRetention, contract.ItemDebit, 250)
	add(cert2.ID, contract.KindRetention, contract.ItemCredit, 100)
	// Other families and deleted rows do not count
	add(cert1.ID, contract.KindEscalation, contract.ItemDebit, 9999)
	removed := add(cert1.ID, contract.KindRetention, contract.ItemDebit, 7777)
	require.NoError(t, items.Delete(ctx, removed.ID))

	balance, err := items.Balance(ctx, projectID, contract.KindRetention, nil)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(650)), "got %s", balance)

	// As at certificate 1 only the first debit counts
	upTo := 1
	balance, err = items.Balance(ctx, projectID, contract.KindRetention, &upTo)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)), "got %s", balance)

	// The deleted row stays out when the certificate join is in play too
	upTo = 2
	balance, err = items.Balance(ctx, projectID, contract.KindRetention, &upTo)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(650)), "got %s", balance)

	// Items keep contributing until deleted themselves, even when their
	// certificate has been deleted
	require.NoError(t, certs.DeleteForProject(ctx, projectID, cert2.ID))
	balance, err = items.Balance(ctx, projectID, contract.KindRetention, nil)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(650)), "got %s", balance)

	// A family with no rows balances to zero
	balance, err = items.Balance(ctx, projectID, contract.KindAdvancePayment, nil)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestGormTransactionRepository_SumForAccount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransactionRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	accountID := uuid.New()
	capturedBy := uuid.New()

	save := func(txType ledger.TransactionType, amount int64, date time.Time) *ledger.Transaction {
		tx := &ledger.Transaction{
			BaseEntity:      shared.NewBaseEntity(),
			ProjectID:       projectID,
			AccountID:       accountID,
			TransactionType: txType,
			Amount:          decimal.NewFromInt(amount),
			Date:            date,
			CapturedBy:      capturedBy,
		}
		require.NoError(t, repo.Save(ctx, tx))
		return tx
	}

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	save(ledger.Debit, 1000, jan)
	save(ledger.Credit, 300, mar)
	removed := save(ledger.Debit, 5000, jan)
	require.NoError(t, repo.Delete(ctx, removed.ID))

	sum, err := repo.SumForAccount(ctx, projectID, accountID, nil)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(700)), "got %s", sum)

	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	sum, err = repo.SumForAccount(ctx, projectID, accountID, &feb)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(1000)), "got %s", sum)
}

func TestGormAccountRepository_SaveBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	accounts := make([]*ledger.Account, 0, len(ledger.StandardChart))
	for _, std := range ledger.StandardChart {
		accounts = append(accounts, ledger.NewAccount(projectID, std.Code, std.Name, std.Statement))
	}
	require.NoError(t, repo.SaveBatch(ctx, accounts))

	n, err := repo.CountForProject(ctx, projectID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(len(ledger.StandardChart)), n)

	cash, err := repo.FindByCode(ctx, projectID, "1000")
	require.NoError(t, err)
	assert.Equal(t, "Cash and Cash Equivalents", cash.Name)
}

func TestGormDialogRepository_Messages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormDialogRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	author := uuid.New()
	dialog := contract.NewDialog(projectID, "Delay notification", contract.DirectionOutgoing, author)
	require.NoError(t, repo.Save(ctx, dialog))

	first := contract.NewMessage(dialog.ID, "Site Agent", "Engineer", "Notice of delay under clause 23.", author)
	require.NoError(t, repo.SaveMessage(ctx, first))
	second := contract.NewMessage(dialog.ID, "Engineer", "Site Agent", "Noted, submit particulars.", author)
	second.CreatedAt = second.CreatedAt.Add(time.Second)
	require.NoError(t, repo.SaveMessage(ctx, second))

	messages, err := repo.FindMessages(ctx, dialog.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Notice of delay under clause 23.", messages[0].Body)
	assert.Equal(t, "Noted, submit particulars.", messages[1].Body)
}

func TestGormForecastRepository_RangeAndSum(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormForecastRepository(db)
	ctx := context.Background()

	projectID := uuid.New()
	author := uuid.New()
	month := func(m time.Month) time.Time {
		return time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC)
	}
	for m, amount := range map[time.Month]int64{
		time.January:  10000,
		time.February: 20000,
		time.March:    30000,
	} {
		require.NoError(t, repo.Save(ctx, contract.NewForecast(projectID, month(m), decimal.NewFromInt(amount), author)))
	}

	within, err := repo.FindForRange(ctx, projectID, month(time.January), month(time.February))
	require.NoError(t, err)
	assert.Len(t, within, 2)

	sum, err := repo.SumForProject(ctx, projectID)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(60000)), "got %s", sum)
}
