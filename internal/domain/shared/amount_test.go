package shared

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
		ok       bool
	}{
		{"decimal", decimal.RequireFromString("12.50"), "12.5", true},
		{"int", 10, "10", true},
		{"int64", int64(-3), "-3", true},
		{"float64", 2.25, "2.25", true},
		{"numeric string", "99.99", "99.99", true},
		{"nil", nil, "0", false},
		{"non-numeric string", "abc", "0", false},
		{"unsupported type", struct{}{}, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := CoerceAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, d.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, d)
		})
	}
}

func TestSumAmounts(t *testing.T) {
	t.Run("skips null and non-numeric values", func(t *testing.T) {
		sum := SumAmounts([]interface{}{10, nil, "abc", 5})
		assert.True(t, sum.Equal(decimal.NewFromInt(15)))
	})

	t.Run("empty input sums to zero", func(t *testing.T) {
		sum := SumAmounts(nil)
		assert.True(t, sum.IsZero())
	})

	t.Run("mixed numeric types", func(t *testing.T) {
		sum := SumAmounts([]interface{}{
			decimal.RequireFromString("1.50"),
			"2.50",
			int64(1),
		})
		assert.True(t, sum.Equal(decimal.NewFromInt(5)))
	})
}

func TestSumField(t *testing.T) {
	type row struct {
		amount interface{}
	}
	rows := []row{
		{amount: decimal.NewFromInt(100)},
		{amount: nil},
		{amount: "250.50"},
		{amount: "not-a-number"},
	}
	sum := SumField(rows, func(r row) interface{} { return r.amount })
	assert.True(t, sum.Equal(decimal.RequireFromString("350.50")))
}
