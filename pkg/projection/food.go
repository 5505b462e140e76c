package projection

import (
	"strings"

	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/iwvelando/event-forecast/pkg/mathutil"
)

var foodCategories = categorySet(
	constants.FoodCategory,
	"Food & Beverages",
	"Food & Drink",
	"F&B",
	"Food",
)

// normalizeCategory folds case, whitespace and "and" so that category labels
// typed by hand compare equal.
func normalizeCategory(category string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(category), " "))
	normalized = strings.ReplaceAll(normalized, " and ", " & ")
	return strings.ReplaceAll(normalized, " ", "")
}

func categorySet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[normalizeCategory(name)] = struct{}{}
	}
	return set
}

// IsFoodCategory reports whether a budget category holds food costs.
func IsFoodCategory(category string) bool {
	_, ok := foodCategories[normalizeCategory(category)]
	return ok
}

// ComputeFoodCost allocates the food budget across attendees, staff and
// day-pass holders. It returns nil when the budget has no food category.
func ComputeFoodCost(inputs Inputs, lineItems []LineItem) (*FoodCostBreakdown, error) {
	if err := ValidateInputs(inputs); err != nil {
		return nil, err
	}
	if err := ValidateLineItems(lineItems); err != nil {
		return nil, err
	}

	totalFood, found := categoryCost(lineItems, IsFoodCategory)
	if !found {
		return nil, nil
	}

	c := newCapacity(inputs)
	attendees := c.ticketsSold(constants.FullAttendancePercent)
	personDays := constants.AttendeeMealDays*attendees +
		constants.StaffMealDays*c.staffCount +
		constants.DayPassMealDays*c.dayPassesSold
	costPerMeal := mathutil.SafeDivide(totalFood, float64(personDays), 0)

	return &FoodCostBreakdown{
		TotalFoodCost:       totalFood,
		Attendees:           attendees,
		StaffCount:          c.staffCount,
		DayPassesSold:       c.dayPassesSold,
		PersonDays:          personDays,
		CostPerMeal:         costPerMeal,
		FoodCostPerAttendee: costPerMeal * constants.AttendeeMealDays,
		FoodCostPerStaff:    costPerMeal * constants.StaffMealDays,
		FoodCostPerDayPass:  costPerMeal * constants.DayPassMealDays,
		FoodCostPerDay:      totalFood / constants.EventDays,
	}, nil
}
