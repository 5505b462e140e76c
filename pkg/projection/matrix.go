package projection

import (
	"sort"

	"github.com/iwvelando/event-forecast/pkg/constants"
)

// ComputeScenarioMatrix evaluates every surviving price pair at every
// canonical attendance level and groups the metrics by level.
func ComputeScenarioMatrix(budget Budget, inputs Inputs) (ScenarioMatrix, error) {
	if err := ValidateInputs(inputs); err != nil {
		return ScenarioMatrix{}, err
	}
	if err := ValidateLineItems(budget.LineItems); err != nil {
		return ScenarioMatrix{}, err
	}

	c := newCapacity(inputs)
	totalCost := sumCost(budget.LineItems)
	pairs := EnumeratePricePairs(inputs.TicketPrices)

	levels := append([]int(nil), constants.AttendanceLevels...)
	sort.Ints(levels)

	matrix := ScenarioMatrix{
		AttendanceLevels:   levels,
		ByAttendance:       make(map[int][]ScenarioMetric, len(levels)),
		Pairs:              make([]PricePair, 0, len(pairs)),
		TotalCost:          totalCost,
		GATicketsAvailable: c.ga,
	}

	breakEvens := make([]*float64, len(pairs))
	for i, pair := range pairs {
		breakEvens[i] = breakEvenPercent(c, pair, totalCost)
		matrix.Pairs = append(matrix.Pairs, PricePair{
			TicketPrice:                pair.TicketPrice,
			StaffPrice:                 pair.StaffPrice,
			BreakEvenAttendancePercent: copyFloat(breakEvens[i]),
		})
	}

	for _, level := range levels {
		row := make([]ScenarioMetric, 0, len(pairs))
		for i, pair := range pairs {
			metric := computeMetric(c, pair, level, totalCost)
			metric.BreakEvenAttendancePercent = copyFloat(breakEvens[i])
			row = append(row, metric)
		}
		matrix.ByAttendance[level] = row
	}

	return matrix, nil
}

// Metrics flattens the matrix, attendance level first and then pair order.
func (m ScenarioMatrix) Metrics() []ScenarioMetric {
	var metrics []ScenarioMetric
	for _, level := range m.AttendanceLevels {
		metrics = append(metrics, m.ByAttendance[level]...)
	}
	return metrics
}

// Heatmap is the profit grid consumed by chart renderers: one row per
// attendance level, one column per price pair.
type Heatmap struct {
	AttendanceLevels []int         `json:"attendanceLevels"`
	Pairs            []PriceChoice `json:"pairs"`
	Profit           [][]float64   `json:"profit"`
}

// Heatmap returns the matrix's profit values as a dense grid.
func (m ScenarioMatrix) Heatmap() Heatmap {
	h := Heatmap{
		AttendanceLevels: append([]int(nil), m.AttendanceLevels...),
		Pairs:            make([]PriceChoice, 0, len(m.Pairs)),
		Profit:           make([][]float64, 0, len(m.AttendanceLevels)),
	}
	for _, pair := range m.Pairs {
		h.Pairs = append(h.Pairs, PriceChoice{TicketPrice: pair.TicketPrice, StaffPrice: pair.StaffPrice})
	}
	for _, level := range m.AttendanceLevels {
		row := make([]float64, 0, len(m.Pairs))
		for _, metric := range m.ByAttendance[level] {
			row = append(row, metric.Profit)
		}
		h.Profit = append(h.Profit, row)
	}
	return h
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return floatPtr(*v)
}
