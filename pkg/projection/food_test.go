package projection

import (
	"testing"

	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFoodCategory(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		constants.FoodCategory: true,
		"Food and Drink":       true,
		"food and beverage":    true,
		"Food & Beverages":     true,
		"  FOOD  &  BEVERAGE ": true,
		"F&B":                  true,
		"Food":                 true,
		"Venue":                false,
		"Seafood":              false,
		"":                     false,
	}

	for category, want := range tests {
		assert.Equal(t, want, IsFoodCategory(category), category)
	}
}

func TestComputeFoodCostWorkedExample(t *testing.T) {
	t.Parallel()

	inputs := sampleInputs()
	inputs.DayPassesSold = 10

	food, err := ComputeFoodCost(inputs, sampleBudget().LineItems)
	require.NoError(t, err)
	require.NotNil(t, food)

	assert.InDelta(t, 3000, food.TotalFoodCost, 1e-9)
	assert.Equal(t, 61, food.Attendees)
	assert.Equal(t, 310, food.PersonDays)
	assert.InDelta(t, 9.677, food.CostPerMeal, 0.001)
	assert.InDelta(t, 38.71, food.FoodCostPerAttendee, 0.01)
	assert.InDelta(t, food.FoodCostPerAttendee, food.FoodCostPerStaff, 1e-9)
	assert.InDelta(t, food.CostPerMeal, food.FoodCostPerDayPass, 1e-9)
	assert.InDelta(t, 750, food.FoodCostPerDay, 1e-9)
}

func TestFoodCostConservation(t *testing.T) {
	t.Parallel()

	inputs := sampleInputs()
	inputs.DayPassesSold = 37
	inputs.ComplimentaryTickets = 6

	food, err := ComputeFoodCost(inputs, sampleBudget().LineItems)
	require.NoError(t, err)
	require.NotNil(t, food)

	allocated := food.FoodCostPerAttendee*float64(food.Attendees) +
		food.FoodCostPerStaff*float64(food.StaffCount) +
		food.FoodCostPerDayPass*float64(food.DayPassesSold)
	assert.InDelta(t, food.TotalFoodCost, allocated, 1e-6)
}

func TestComputeFoodCostWithoutFoodCategory(t *testing.T) {
	t.Parallel()

	items := []LineItem{{Name: "Venue", Category: "Venue", UnitCost: 6000, Quantity: 1}}
	food, err := ComputeFoodCost(sampleInputs(), items)
	require.NoError(t, err)
	assert.Nil(t, food)
}

func TestComputeFoodCostNoPeople(t *testing.T) {
	t.Parallel()

	food, err := ComputeFoodCost(Inputs{}, sampleBudget().LineItems)
	require.NoError(t, err)
	require.NotNil(t, food)
	assert.Equal(t, 0, food.PersonDays)
	assert.InDelta(t, 0, food.CostPerMeal, 1e-9)
	assert.InDelta(t, 0, food.FoodCostPerAttendee, 1e-9)
	assert.InDelta(t, 750, food.FoodCostPerDay, 1e-9)
}

func TestProject(t *testing.T) {
	t.Parallel()

	budget := sampleBudget()
	budget.LineItems[0].HistoricalCosts = map[string]float64{"2024": 5800}

	p, err := Project(budget, sampleInputs())
	require.NoError(t, err)

	assert.Len(t, p.CategoryTotals, 3)
	assert.Equal(t, []HistoricalTotal{{Period: "2024", Total: 5800}}, p.HistoricalTotals)
	assert.Len(t, p.Matrix.Metrics(), 28)
	require.NotNil(t, p.Summary.BestScenario)
	require.NotNil(t, p.FoodCost)
	assert.InDelta(t, 3000, p.FoodCost.TotalFoodCost, 1e-9)
}
