// Package optimizer searches for the lowest ticket price that reaches a
// profit goal at each canonical attendance level.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/event-forecast/internal/config"
	"github.com/iwvelando/event-forecast/internal/forecast"
	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/iwvelando/event-forecast/pkg/format"
	"github.com/iwvelando/event-forecast/pkg/mathutil"
	"github.com/iwvelando/event-forecast/pkg/optimization"
	"github.com/iwvelando/event-forecast/pkg/projection"
	"go.uber.org/zap"
)

const (
	// TargetBreakEven names summaries whose goal is zero profit.
	TargetBreakEven = "break-even"
	// TargetProfit names summaries whose goal is the scenario's profit target.
	TargetProfit = "profit target"

	fieldTicketPrice = "ticketPrice"
	maxIterations    = 5
	profitEpsilon    = 1e-9
)

type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type priceTarget struct {
	scenarioKey  string
	scenarioName string
	inputs       projection.Inputs
	name         string
	goal         float64
	percent      int
	staffPrice   float64
	original     float64
}

// Result summarizes optimizer findings keyed by scenario ID, or by name for
// scenarios built without one.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any optimizer summaries were produced.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the provided forecast results.
func (r Result) Apply(forecasts []forecast.Forecast) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range forecasts {
		summaries, ok := r.Summaries[scenarioKey(forecasts[i].ScenarioID, forecasts[i].Name)]
		if !ok {
			continue
		}
		forecasts[i].Pricing = append(forecasts[i].Pricing, summaries...)
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run evaluates every active scenario. The configuration is not modified.
func (r *Runner) Run() (*Result, error) {
	summaries := make(map[string][]optimization.Summary)

	for _, target := range r.collectTargets() {
		summary, err := r.optimizePrice(target)
		if err != nil {
			return nil, err
		}
		summaries[target.scenarioKey] = append(summaries[target.scenarioKey], summary)

		r.logger.Debug("optimizer priced attendance level",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", target.scenarioName),
			zap.String("target", target.name),
			zap.Int("attendancePercent", target.percent),
			zap.Float64("staffPrice", target.staffPrice),
			zap.String("originalDisplay", summary.OriginalDisplay),
			zap.String("optimizedDisplay", summary.ValueDisplay),
			zap.Float64("headroom", summary.Headroom),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return &Result{Summaries: summaries}, nil
}

func (r *Runner) collectTargets() []priceTarget {
	var targets []priceTarget

	for _, scenario := range r.conf.ActiveScenarios() {
		inputs := scenario.Inputs
		staffPrice := lowest(inputs.TicketPrices.Staff())
		original := lowest(inputs.TicketPrices.Proposed())

		goals := []struct {
			name string
			goal float64
		}{{TargetBreakEven, 0}}
		if target := mathutil.NonNegative(inputs.ProfitTarget); target > 0 {
			goals = append(goals, struct {
				name string
				goal float64
			}{TargetProfit, target})
		}

		for _, g := range goals {
			for _, percent := range constants.AttendanceLevels {
				targets = append(targets, priceTarget{
					scenarioKey:  scenarioKey(scenario.ID, scenario.Name),
					scenarioName: scenario.Name,
					inputs:       inputs,
					name:         g.name,
					goal:         g.goal,
					percent:      percent,
					staffPrice:   staffPrice,
					original:     original,
				})
			}
		}
	}

	return targets
}

func (r *Runner) optimizePrice(target priceTarget) (optimization.Summary, error) {
	if err := projection.ValidateInputs(target.inputs); err != nil {
		return optimization.Summary{}, fmt.Errorf("scenario %s: %w", target.scenarioName, err)
	}

	summary := optimization.Summary{
		Scope:             "scenario",
		TargetName:        target.name,
		Field:             fieldTicketPrice,
		AttendancePercent: target.percent,
		StaffPrice:        target.staffPrice,
		PayingAttendees:   projection.PayingAttendees(target.inputs, target.percent),
		Goal:              target.goal,
		Original:          target.original,
		OriginalDisplay:   format.Currency(target.original),
	}

	if summary.PayingAttendees == 0 {
		summary.Notes = append(summary.Notes,
			fmt.Sprintf("no paying attendees at %d%% attendance", target.percent))
		return summary, nil
	}

	// Profit is affine in the ticket price once the staff price is fixed, so
	// one evaluation at the staff price anchors the line.
	floor := target.staffPrice
	baseProfit, err := r.evaluate(target, floor)
	if err != nil {
		return optimization.Summary{}, err
	}

	value := floor
	if baseProfit < target.goal {
		value = mathutil.RoundUpCents(floor + (target.goal-baseProfit)/float64(summary.PayingAttendees))
	} else {
		summary.Notes = append(summary.Notes,
			fmt.Sprintf("goal is met at the staff price floor of %s", format.Currency(floor)))
	}

	profit := baseProfit
	for summary.Iterations < maxIterations {
		summary.Iterations++
		profit, err = r.evaluate(target, value)
		if err != nil {
			return optimization.Summary{}, err
		}
		if meetsGoal(profit, target.goal) {
			summary.Converged = true
			break
		}
		value = mathutil.Round(value + constants.CurrencyTolerance)
	}

	summary.Value = value
	summary.ValueDisplay = format.Currency(value)
	summary.Profit = profit
	summary.Headroom = mathutil.Round(target.original - value)
	return summary, nil
}

// evaluate runs the projection engine for a single price pair and returns
// the profit at the target's attendance level.
func (r *Runner) evaluate(target priceTarget, ticketPrice float64) (float64, error) {
	inputs := target.inputs
	inputs.TicketPrices = projection.TicketPrices{
		ProposedPrice1: ticketPrice,
		ProposedPrice2: ticketPrice,
		ProposedPrice3: ticketPrice,
		StaffPrice1:    target.staffPrice,
		StaffPrice2:    target.staffPrice,
		StaffPrice3:    target.staffPrice,
	}

	matrix, err := projection.ComputeScenarioMatrix(r.conf.Budget, inputs)
	if err != nil {
		return 0, fmt.Errorf("optimizer evaluation for scenario %s failed: %w", target.scenarioName, err)
	}
	row := matrix.ByAttendance[target.percent]
	if len(row) == 0 {
		return 0, fmt.Errorf("optimizer: scenario %s has no metric at %d%% for ticket price %.2f",
			target.scenarioName, target.percent, ticketPrice)
	}
	return row[0].Profit, nil
}

func scenarioKey(id, name string) string {
	if id != "" {
		return id
	}
	return name
}

// meetsGoal tolerates float noise left over from summing cents.
func meetsGoal(profit, goal float64) bool {
	return profit >= goal || mathutil.WithinTolerance(profit, goal, profitEpsilon)
}

func lowest(values []float64) float64 {
	result := math.Inf(1)
	for _, v := range values {
		result = math.Min(result, mathutil.NonNegative(v))
	}
	if math.IsInf(result, 1) {
		return 0
	}
	return result
}
