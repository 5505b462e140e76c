// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/event-forecast/internal/forecast"
	"github.com/iwvelando/event-forecast/pkg/projection"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindMetric returns the metric for a price pair at an attendance level.
func FindMetric(matrix projection.ScenarioMatrix, ticketPrice, staffPrice float64, percent int) *projection.ScenarioMetric {
	row := matrix.ByAttendance[percent]
	for i := range row {
		if row[i].TicketPrice == ticketPrice && row[i].StaffPrice == staffPrice {
			return &row[i]
		}
	}
	return nil
}
