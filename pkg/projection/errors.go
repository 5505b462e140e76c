package projection

import (
	"fmt"

	"github.com/iwvelando/event-forecast/pkg/mathutil"
)

// InvalidInputError reports a numeric field that reached the engine as NaN or
// an infinity. It indicates a caller bug rather than an unusual scenario.
type InvalidInputError struct {
	Field string
	Value float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s is %v", e.Field, e.Value)
}

func checkFinite(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return &InvalidInputError{Field: field, Value: value}
	}
	return nil
}

// ValidateInputs fails fast on the first non-finite numeric field of inputs.
func ValidateInputs(inputs Inputs) error {
	tp := inputs.TicketPrices
	fields := []struct {
		name  string
		value float64
	}{
		{"inputs.profitTarget", inputs.ProfitTarget},
		{"inputs.dayPassPrice", inputs.DayPassPrice},
		{"inputs.ticketPrices.proposedPrice1", tp.ProposedPrice1},
		{"inputs.ticketPrices.proposedPrice2", tp.ProposedPrice2},
		{"inputs.ticketPrices.proposedPrice3", tp.ProposedPrice3},
		{"inputs.ticketPrices.staffPrice1", tp.StaffPrice1},
		{"inputs.ticketPrices.staffPrice2", tp.StaffPrice2},
		{"inputs.ticketPrices.staffPrice3", tp.StaffPrice3},
	}
	for _, f := range fields {
		if err := checkFinite(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLineItems fails fast on the first line item carrying a non-finite
// cost, quantity or historical cost.
func ValidateLineItems(items []LineItem) error {
	for i, item := range items {
		if err := checkFinite(fmt.Sprintf("lineItems[%d].unitCost", i), item.UnitCost); err != nil {
			return err
		}
		if err := checkFinite(fmt.Sprintf("lineItems[%d].quantity", i), item.Quantity); err != nil {
			return err
		}
		for period, cost := range item.HistoricalCosts {
			if err := checkFinite(fmt.Sprintf("lineItems[%d].historicalCosts[%s]", i, period), cost); err != nil {
				return err
			}
		}
	}
	return nil
}
