package projection

import (
	"sort"
	"strings"

	"github.com/iwvelando/event-forecast/pkg/constants"
)

// TotalCost sums unitCost × quantity over all line items.
func TotalCost(items []LineItem) (float64, error) {
	if err := ValidateLineItems(items); err != nil {
		return 0, err
	}
	return sumCost(items), nil
}

// sumCost is TotalCost for items that are already validated.
func sumCost(items []LineItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Cost()
	}
	return total
}

// CategoryName returns the category an item is grouped under.
func CategoryName(item LineItem) string {
	category := strings.TrimSpace(item.Category)
	if category == "" {
		return constants.UncategorizedCategory
	}
	return category
}

// CategoryTotals groups line-item costs by category, ordered alphabetically.
func CategoryTotals(items []LineItem) ([]CategoryTotal, error) {
	if err := ValidateLineItems(items); err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	for _, item := range items {
		sums[CategoryName(item)] += item.Cost()
	}

	categories := make([]string, 0, len(sums))
	for category := range sums {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	totals := make([]CategoryTotal, 0, len(categories))
	for _, category := range categories {
		totals = append(totals, CategoryTotal{Category: category, Total: sums[category]})
	}
	return totals, nil
}

// CategoryTotalsMap is CategoryTotals keyed by category.
func CategoryTotalsMap(items []LineItem) (map[string]float64, error) {
	totals, err := CategoryTotals(items)
	if err != nil {
		return nil, err
	}
	result := make(map[string]float64, len(totals))
	for _, t := range totals {
		result[t.Category] = t.Total
	}
	return result, nil
}

// HistoricalTotals sums every item's historical costs per period key so a
// budget can be compared against earlier editions of the event.
func HistoricalTotals(items []LineItem) ([]HistoricalTotal, error) {
	if err := ValidateLineItems(items); err != nil {
		return nil, err
	}

	sums := make(map[string]float64)
	for _, item := range items {
		for period, cost := range item.HistoricalCosts {
			sums[strings.TrimSpace(period)] += cost
		}
	}
	if len(sums) == 0 {
		return nil, nil
	}

	periods := make([]string, 0, len(sums))
	for period := range sums {
		periods = append(periods, period)
	}
	sort.Strings(periods)

	totals := make([]HistoricalTotal, 0, len(periods))
	for _, period := range periods {
		totals = append(totals, HistoricalTotal{Period: period, Total: sums[period]})
	}
	return totals, nil
}

// categoryCost sums the cost of the items whose category satisfies match.
func categoryCost(items []LineItem, match func(string) bool) (float64, bool) {
	total := 0.0
	found := false
	for _, item := range items {
		if match(CategoryName(item)) {
			total += item.Cost()
			found = true
		}
	}
	return total, found
}
