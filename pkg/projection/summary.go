package projection

import (
	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/iwvelando/event-forecast/pkg/mathutil"
)

// ComputeSummary derives the aggregate statistics of a scenario from its full
// metric set.
func ComputeSummary(inputs Inputs, lineItems []LineItem, metrics []ScenarioMetric) (ScenarioSummary, error) {
	if err := ValidateInputs(inputs); err != nil {
		return ScenarioSummary{}, err
	}
	if err := ValidateLineItems(lineItems); err != nil {
		return ScenarioSummary{}, err
	}

	c := newCapacity(inputs)
	totalCost := sumCost(lineItems)

	summary := ScenarioSummary{
		BestScenario:    pick(metrics, nil, betterProfit),
		WorstProfitable: pick(metrics, isProfitable, worseProfit),
		MostAccessible:  pick(metrics, isProfitable, moreAccessible),

		ComplimentaryTickets: c.comps,
		DayPassRevenue:       c.dayPassRevenue(),

		TotalCosts:            totalCost,
		TotalWithProfitTarget: totalCost + c.profitTarget,
		GATicketsAvailable:    c.ga,
		MaxOccupancy:          c.maxOccupancy,
		StaffCount:            c.staffCount,
	}

	for _, level := range constants.AttendanceLevels {
		summary.AttendanceBreakdown = append(summary.AttendanceBreakdown, AttendanceTickets{
			Percent: level,
			Tickets: c.ticketsSold(float64(level)),
		})
	}

	if rep := summary.BestScenario; rep != nil {
		summary.RevenueMix = RevenueMix{
			Attendee: mathutil.CalculatePercentage(rep.AttendeeRevenue, rep.Revenue),
			Staff:    mathutil.CalculatePercentage(rep.StaffRevenue, rep.Revenue),
			DayPass:  mathutil.CalculatePercentage(rep.DayPassRevenue, rep.Revenue),
		}
		summary.RevenueLostToComps = float64(c.effectiveComps()) * rep.TicketPrice
	}

	figures := scenarioBreakEven(c, EnumeratePricePairs(inputs.TicketPrices), totalCost)
	summary.BreakEvenTickets = figures.tickets
	summary.BreakEvenPercent = figures.percent
	summary.BreakEvenTicketsRange = figures.ticketsRange
	if figures.lowestBreakEven != nil {
		summary.LowestBreakEven = floatPtr(figures.lowestBreakEven.TicketPrice)
		summary.MinStaffPrice = floatPtr(figures.lowestBreakEven.StaffPrice)
	}
	summary.LowestMeetingTarget = figures.lowestMeetingTarget

	return summary, nil
}

// pick returns a copy of the metric that wins under better among those
// accepted by keep (all metrics when keep is nil).
func pick(metrics []ScenarioMetric, keep func(ScenarioMetric) bool, better func(a, b ScenarioMetric) bool) *ScenarioMetric {
	var winner *ScenarioMetric
	for _, m := range metrics {
		if keep != nil && !keep(m) {
			continue
		}
		if winner == nil || better(m, *winner) {
			candidate := m
			winner = &candidate
		}
	}
	return winner
}

func isProfitable(m ScenarioMetric) bool {
	return m.Profit >= 0
}

// cheaperCombination orders by ticket price, staff price, then attendance.
func cheaperCombination(a, b ScenarioMetric) bool {
	if a.TicketPrice != b.TicketPrice {
		return a.TicketPrice < b.TicketPrice
	}
	if a.StaffPrice != b.StaffPrice {
		return a.StaffPrice < b.StaffPrice
	}
	return a.AttendancePercent < b.AttendancePercent
}

func betterProfit(a, b ScenarioMetric) bool {
	if a.Profit != b.Profit {
		return a.Profit > b.Profit
	}
	return cheaperCombination(a, b)
}

func worseProfit(a, b ScenarioMetric) bool {
	if a.Profit != b.Profit {
		return a.Profit < b.Profit
	}
	return cheaperCombination(a, b)
}

func moreAccessible(a, b ScenarioMetric) bool {
	if a.TicketPrice != b.TicketPrice {
		return a.TicketPrice < b.TicketPrice
	}
	if a.AttendancePercent != b.AttendancePercent {
		return a.AttendancePercent < b.AttendancePercent
	}
	return a.StaffPrice < b.StaffPrice
}
