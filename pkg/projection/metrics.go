package projection

import (
	"github.com/iwvelando/event-forecast/pkg/mathutil"
)

// computeMetric evaluates one (pair, attendance percent) combination.
func computeMetric(c capacity, pair PriceChoice, percent int, totalCost float64) ScenarioMetric {
	attendees := c.payingAttendees(float64(percent))
	attendeeRevenue := float64(attendees) * pair.TicketPrice
	staffRevenue := c.staffRevenue(pair.StaffPrice)
	dayPassRevenue := c.dayPassRevenue()
	revenue := attendeeRevenue + staffRevenue + dayPassRevenue
	profit := revenue - totalCost

	heads := float64(attendees + c.staffCount)
	ticketHolders := float64(attendees + c.staffCount + c.dayPassesSold)

	m := ScenarioMetric{
		TicketPrice:       pair.TicketPrice,
		StaffPrice:        pair.StaffPrice,
		AttendancePercent: percent,

		TicketsSold: c.ticketsSold(float64(percent)),
		Attendees:   attendees,

		AttendeeRevenue: attendeeRevenue,
		StaffRevenue:    staffRevenue,
		DayPassRevenue:  dayPassRevenue,
		Revenue:         revenue,
		TotalCost:       totalCost,
		Profit:          profit,

		ProfitMargin:        mathutil.CalculatePercentage(profit, revenue),
		ProfitPerAttendee:   mathutil.SafeDivide(profit, heads, 0),
		AvgRevenuePerTicket: mathutil.SafeDivide(revenue, ticketHolders, 0),
		RevenueMixAttendee:  mathutil.CalculatePercentage(attendeeRevenue, revenue),
		CostPerAttendee:     mathutil.SafeDivide(totalCost, heads, 0),

		ProfitVsBreakEven: profit,
		MeetsBreakEven:    profit >= 0,
		MeetsProfitTarget: profit >= c.profitTarget,
	}

	if totalCost > 0 {
		ratio := revenue / totalCost
		m.CostCoverageRatio = &ratio
	}
	if goal := totalCost + c.profitTarget; goal > 0 {
		coverage := revenue / goal * 100
		m.ProfitTargetCoverage = &coverage
	}
	return m
}

// ComputeMetrics enumerates every surviving price pair at every canonical
// attendance level, ordered by attendance level and then by pair.
func ComputeMetrics(budget Budget, inputs Inputs) ([]ScenarioMetric, error) {
	matrix, err := ComputeScenarioMatrix(budget, inputs)
	if err != nil {
		return nil, err
	}
	return matrix.Metrics(), nil
}
