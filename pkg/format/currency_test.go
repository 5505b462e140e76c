package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 12.5, "$12.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Negative rounding to zero", -0.001, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-9876.5); got != "-9,876.50" {
		t.Errorf("NumericCurrency(-9876.5) = %q, expected %q", got, "-9,876.50")
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(97.5); got != "97.5%" {
		t.Errorf("Percent(97.5) = %q", got)
	}
	if got := Percent(78.68852459); got != "78.7%" {
		t.Errorf("Percent(78.68852459) = %q", got)
	}
}

func TestOptionalValues(t *testing.T) {
	value := 1.25
	if got := OptionalRatio(&value); got != "1.25x" {
		t.Errorf("OptionalRatio(1.25) = %q", got)
	}
	if got := OptionalRatio(nil); got != NotApplicable {
		t.Errorf("OptionalRatio(nil) = %q", got)
	}
	if got := OptionalPercent(nil); got != NotApplicable {
		t.Errorf("OptionalPercent(nil) = %q", got)
	}
	if got := OptionalCurrency(&value); got != "$1.25" {
		t.Errorf("OptionalCurrency(1.25) = %q", got)
	}
	if got := OptionalCurrency(nil); got != NotApplicable {
		t.Errorf("OptionalCurrency(nil) = %q", got)
	}
}
