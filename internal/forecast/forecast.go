// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"fmt"

	"github.com/iwvelando/event-forecast/internal/config"
	"github.com/iwvelando/event-forecast/pkg/optimization"
	"github.com/iwvelando/event-forecast/pkg/projection"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	Name        string                 `json:"name"`
	ScenarioID  string                 `json:"scenarioId"`
	Description string                 `json:"description,omitempty"`
	Inputs      projection.Inputs      `json:"inputs"`
	Projection  projection.Projection  `json:"projection"`
	Pricing     []optimization.Summary `json:"pricing,omitempty"`
}

// GetForecast processes the Forecasts for all Scenarios.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Forecast
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		p, err := projection.Project(conf.Budget, scenario.Inputs)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		logger.Debug("scenario projected",
			zap.String("op", "forecast.GetForecast"),
			zap.String("scenario", scenario.Name),
			zap.Int("pairs", len(p.Matrix.Pairs)),
			zap.Float64("totalCost", p.Matrix.TotalCost),
		)

		results = append(results, Forecast{
			Name:        scenario.Name,
			ScenarioID:  scenario.ID,
			Description: scenario.Description,
			Inputs:      scenario.Inputs,
			Projection:  p,
		})
	}

	return results, nil
}
