// Package format renders money and ratios for reports.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotApplicable is shown for values the engine leaves undefined.
const NotApplicable = "n/a"

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Percent renders a percentage with one decimal place (e.g., "97.5%").
func Percent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}

// OptionalCurrency is Currency for values that may be undefined.
func OptionalCurrency(amount *float64) string {
	if amount == nil {
		return NotApplicable
	}
	return Currency(*amount)
}

// OptionalPercent is Percent for values that may be undefined.
func OptionalPercent(value *float64) string {
	if value == nil {
		return NotApplicable
	}
	return Percent(*value)
}

// OptionalRatio renders a ratio such as 1.25 as "1.25x".
func OptionalRatio(value *float64) string {
	if value == nil {
		return NotApplicable
	}
	return printer.Sprintf("%.2fx", *value)
}
