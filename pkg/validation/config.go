// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"
)

// ConfigValidator collects the parts of a configuration that produce
// non-fatal warnings.
type ConfigValidator struct {
	Budget    BudgetConfig
	Scenarios []ScenarioConfig
}

type BudgetConfig struct {
	Name            string
	LineItemCount   int
	HasFoodCategory bool
}

type ScenarioConfig struct {
	Name                 string
	Active               bool
	StaffCount           int
	MaxOccupancy         int
	ComplimentaryTickets int
	ProposedPrices       []float64
	StaffPrices          []float64
}

// ValidateCapacity warns when a scenario leaves no GA seats or hands out more
// comps than there are seats.
func ValidateCapacity(scenarioName string, staffCount, maxOccupancy, comps int) []string {
	var warnings []string

	if maxOccupancy < 1 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has a max occupancy of %d - no tickets can be sold",
			scenarioName, maxOccupancy))
		return warnings
	}

	ga := maxOccupancy - staffCount
	if ga <= 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' staff count (%d) fills the max occupancy (%d) - no GA tickets are available",
			scenarioName, staffCount, maxOccupancy))
		return warnings
	}

	if comps > ga {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' gives away more complimentary tickets than GA seats (%d > %d) - comps are clamped",
			scenarioName, comps, ga))
	}

	return warnings
}

// ValidatePrices warns when no (ticket, staff) price pair survives the staff
// discount rule or when a staff price is never usable.
func ValidatePrices(scenarioName string, proposed, staff []float64) []string {
	var warnings []string

	maxTicket := 0.0
	for _, p := range proposed {
		if p > maxTicket {
			maxTicket = p
		}
	}

	usable := 0
	for _, s := range staff {
		if s <= maxTicket {
			usable++
			continue
		}
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' staff price %.2f exceeds every proposed ticket price and is ignored",
			scenarioName, s))
	}
	if usable == 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no price combination where staff pay no more than attendees",
			scenarioName))
	}

	return warnings
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if cv.Budget.LineItemCount == 0 {
		warnings = append(warnings, fmt.Sprintf("Budget '%s' has no line items - total cost is zero", cv.Budget.Name))
	} else if !cv.Budget.HasFoodCategory {
		warnings = append(warnings, fmt.Sprintf("Budget '%s' has no food category - food cost breakdown is skipped", cv.Budget.Name))
	}

	active := 0
	seen := make(map[string]struct{})
	for _, scenario := range cv.Scenarios {
		key := strings.ToLower(strings.TrimSpace(scenario.Name))
		if _, dup := seen[key]; dup {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[key] = struct{}{}

		if !scenario.Active {
			continue
		}
		active++

		warnings = append(warnings, ValidateCapacity(scenario.Name, scenario.StaffCount, scenario.MaxOccupancy, scenario.ComplimentaryTickets)...)
		warnings = append(warnings, ValidatePrices(scenario.Name, scenario.ProposedPrices, scenario.StaffPrices)...)
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be projected")
	}

	return warnings
}
