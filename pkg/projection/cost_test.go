package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []LineItem
		want  float64
	}{
		{name: "empty budget", items: nil, want: 0},
		{name: "sample budget", items: sampleBudget().LineItems, want: 10000},
		{
			name: "fractional quantity",
			items: []LineItem{
				{Name: "Photographer", UnitCost: 80, Quantity: 2.5},
			},
			want: 200,
		},
		{
			name: "negative values clamp to zero",
			items: []LineItem{
				{Name: "Refund", UnitCost: -50, Quantity: 2},
				{Name: "Shirts", UnitCost: 12, Quantity: -3},
				{Name: "Badges", UnitCost: 2, Quantity: 100},
			},
			want: 200,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := TotalCost(tt.items)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTotalCostRejectsNonFinite(t *testing.T) {
	t.Parallel()

	items := append(sampleBudget().LineItems, LineItem{Name: "Mystery", UnitCost: math.NaN(), Quantity: 1})
	_, err := TotalCost(items)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "lineItems[3].unitCost", invalid.Field)
}

func TestTotalCostAdditivity(t *testing.T) {
	t.Parallel()

	items := sampleBudget().LineItems
	before, err := TotalCost(items)
	require.NoError(t, err)

	added := LineItem{Name: "Sound system", Category: "AV", UnitCost: 375.5, Quantity: 2}
	after, err := TotalCost(append(append([]LineItem(nil), items...), added))
	require.NoError(t, err)

	assert.InDelta(t, added.UnitCost*added.Quantity, after-before, 1e-9)
}

func TestCategoryTotals(t *testing.T) {
	t.Parallel()

	items := append(sampleBudget().LineItems,
		LineItem{Name: "Snacks", Category: "Food & Beverage", UnitCost: 5, Quantity: 40},
		LineItem{Name: "Lanyards", Category: "   ", UnitCost: 1, Quantity: 100},
	)

	totals, err := CategoryTotals(items)
	require.NoError(t, err)

	assert.Equal(t, []CategoryTotal{
		{Category: "Food & Beverage", Total: 3200},
		{Category: "Uncategorized", Total: 1100},
		{Category: "Venue", Total: 6000},
	}, totals)

	byCategory, err := CategoryTotalsMap(items)
	require.NoError(t, err)
	assert.Len(t, byCategory, 3)
	assert.InDelta(t, 1100, byCategory["Uncategorized"], 1e-9)
}

func TestCategoryTotalsEmpty(t *testing.T) {
	t.Parallel()

	totals, err := CategoryTotals(nil)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestHistoricalTotals(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{Name: "Lodge", UnitCost: 6000, Quantity: 1, HistoricalCosts: map[string]float64{"2023": 5200, "2024": 5600}},
		{Name: "Meals", UnitCost: 3000, Quantity: 1, HistoricalCosts: map[string]float64{"2024": 2800}},
		{Name: "Decor", UnitCost: 1000, Quantity: 1},
	}

	totals, err := HistoricalTotals(items)
	require.NoError(t, err)
	assert.Equal(t, []HistoricalTotal{
		{Period: "2023", Total: 5200},
		{Period: "2024", Total: 8400},
	}, totals)

	none, err := HistoricalTotals(sampleBudget().LineItems)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCategoryTotalsRejectsNaN(t *testing.T) {
	t.Parallel()

	items := sampleBudget().LineItems
	items[1].UnitCost = math.NaN()

	_, err := CategoryTotals(items)
	require.Error(t, err)

	var invalid *InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "lineItems[1].unitCost", invalid.Field)
}
