package contract

import (
	"testing"

	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBalanceOf(t *testing.T) {
	projectID := uuid.New()
	certID := uuid.New()
	by := uuid.New()

	items := []CertificateItem{
		*NewCertificateItem(projectID, certID, KindRetention, ItemDebit, decimal.NewFromInt(500), by),
		*NewCertificateItem(projectID, certID, KindRetention, ItemDebit, decimal.NewFromInt(250), by),
		*NewCertificateItem(projectID, certID, KindRetention, ItemCredit, decimal.NewFromInt(100), by),
	}

	assert.True(t, BalanceOf(items).Equal(decimal.NewFromInt(650)))
	assert.True(t, BalanceOf(nil).IsZero())
}

func TestItemKindRole(t *testing.T) {
	assert.Equal(t, project.RoleAdvancePayments, ItemKindRole(KindAdvancePayment))
	assert.Equal(t, project.RoleSpecialItems, ItemKindRole(KindSpecialItem))
	assert.Equal(t, project.Role(""), ItemKindRole(ItemKind("bogus")))
}

func TestItemKindIsValid(t *testing.T) {
	assert.True(t, KindEscalation.IsValid())
	assert.False(t, ItemKind("PLANT_HIRE").IsValid())
}

func TestCertificateWorkflow(t *testing.T) {
	c := NewCertificate(uuid.New(), 1)
	assert.ErrorIs(t, c.Transition(CertificateApproved), shared.ErrInvalidState)

	assert.NoError(t, c.Transition(CertificateSubmitted))
	assert.NoError(t, c.Transition(CertificateApproved))
	assert.ErrorIs(t, c.Transition(CertificateRejected), shared.ErrInvalidState)
}
