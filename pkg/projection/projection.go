package projection

// Projection bundles every engine output for one budget and scenario.
type Projection struct {
	CategoryTotals   []CategoryTotal    `json:"categoryTotals"`
	HistoricalTotals []HistoricalTotal  `json:"historicalTotals,omitempty"`
	Matrix           ScenarioMatrix     `json:"matrix"`
	Summary          ScenarioSummary    `json:"summary"`
	FoodCost         *FoodCostBreakdown `json:"foodCost"`
}

// Project runs the full pipeline for a scenario against a budget.
func Project(budget Budget, inputs Inputs) (Projection, error) {
	var p Projection
	var err error

	if p.CategoryTotals, err = CategoryTotals(budget.LineItems); err != nil {
		return Projection{}, err
	}
	if p.HistoricalTotals, err = HistoricalTotals(budget.LineItems); err != nil {
		return Projection{}, err
	}
	if p.Matrix, err = ComputeScenarioMatrix(budget, inputs); err != nil {
		return Projection{}, err
	}
	if p.Summary, err = ComputeSummary(inputs, budget.LineItems, p.Matrix.Metrics()); err != nil {
		return Projection{}, err
	}
	if p.FoodCost, err = ComputeFoodCost(inputs, budget.LineItems); err != nil {
		return Projection{}, err
	}
	return p, nil
}
