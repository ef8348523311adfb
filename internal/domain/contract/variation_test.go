package contract

import (
	"testing"

	"github.com/buildledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftVariation(t *testing.T) *Variation {
	t.Helper()
	return NewVariation(uuid.New(), 1, "Extra drainage works", CategoryScopeChange, VariationAmount, uuid.New())
}

func TestVariationNumbering(t *testing.T) {
	v := NewVariation(uuid.New(), 7, "x", CategoryOther, VariationTime, uuid.New())
	assert.Equal(t, "VO-007", v.Number)
}

func TestVariationWorkflow(t *testing.T) {
	t.Run("full path draft to approved", func(t *testing.T) {
		v := draftVariation(t)
		require.NoError(t, v.Submit())
		require.NotNil(t, v.DateSubmitted)

		require.NoError(t, v.StartReview())
		assert.Equal(t, VariationUnderReview, v.Status)

		approver := uuid.New()
		require.NoError(t, v.Approve(approver))
		assert.Equal(t, VariationApproved, v.Status)
		require.NotNil(t, v.DateApproved)
		require.NotNil(t, v.ApprovedBy)
		assert.Equal(t, approver, *v.ApprovedBy)
	})

	t.Run("submitted can be approved without review", func(t *testing.T) {
		v := draftVariation(t)
		require.NoError(t, v.Submit())
		assert.NoError(t, v.Approve(uuid.New()))
	})

	t.Run("draft cannot be approved directly", func(t *testing.T) {
		v := draftVariation(t)
		assert.ErrorIs(t, v.Approve(uuid.New()), shared.ErrInvalidState)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		v := draftVariation(t)
		require.NoError(t, v.Submit())
		require.NoError(t, v.Approve(uuid.New()))
		assert.ErrorIs(t, v.Reject(), shared.ErrInvalidState)
		assert.ErrorIs(t, v.Submit(), shared.ErrInvalidState)
	})

	t.Run("deleted variation cannot move", func(t *testing.T) {
		v := draftVariation(t)
		v.SoftDelete()
		assert.ErrorIs(t, v.Submit(), shared.ErrRecordDeleted)
	})
}

func TestVariationMoves(t *testing.T) {
	v := draftVariation(t)
	v.Amount = decimal.NewNullDecimal(decimal.NewFromInt(1000))
	assert.True(t, v.MovesCost())
	assert.False(t, v.MovesTime())

	v.Type = VariationBoth
	v.TimeExtensionDays = 14
	assert.True(t, v.MovesCost())
	assert.True(t, v.MovesTime())

	v.Amount = decimal.NullDecimal{}
	assert.False(t, v.MovesCost())
}

func TestSoftDeleteIdempotent(t *testing.T) {
	v := draftVariation(t)
	v.SoftDelete()
	assert.True(t, v.IsDeleted())
	v.SoftDelete()
	assert.True(t, v.IsDeleted())
}
