package projection

import (
	"math"

	"github.com/iwvelando/event-forecast/pkg/constants"
	"github.com/iwvelando/event-forecast/pkg/mathutil"
)

// breakEvenGrid lists the attendance percents revenue is evaluated at when
// solving for break-even. Between two neighbouring points revenue is affine
// in attendance, up to ticket rounding.
func breakEvenGrid(c capacity) []float64 {
	points := []float64{constants.MinBreakEvenPercent, constants.FullAttendancePercent, constants.MaxBreakEvenPercent}
	for _, level := range constants.AttendanceLevels {
		points = append(points, float64(level))
	}
	// Revenue stays flat until the comps are used up.
	if c.comps > 0 && c.ga > 0 {
		if kink := float64(c.comps) / float64(c.ga) * 100; kink < constants.MaxBreakEvenPercent {
			points = append(points, kink)
		}
	}
	return sortedDistinct(points)
}

// BreakEvenAttendancePercent returns the smallest attendance percent at which
// revenue for the given price pair covers totalCost. The result is clamped to
// [0, 200]; nil means revenue never grows with attendance and the cost is not
// already covered.
func BreakEvenAttendancePercent(inputs Inputs, pair PriceChoice, totalCost float64) (*float64, error) {
	if err := ValidateInputs(inputs); err != nil {
		return nil, err
	}
	if err := checkFinite("totalCost", totalCost); err != nil {
		return nil, err
	}
	return breakEvenPercent(newCapacity(inputs), pair, totalCost), nil
}

func breakEvenPercent(c capacity, pair PriceChoice, totalCost float64) *float64 {
	grid := breakEvenGrid(c)

	prevPercent := grid[0]
	prevRevenue := c.revenue(pair, prevPercent)
	if prevRevenue >= totalCost {
		return floatPtr(prevPercent)
	}

	for _, percent := range grid[1:] {
		revenue := c.revenue(pair, percent)
		if revenue >= totalCost {
			solved := prevPercent + (totalCost-prevRevenue)/(revenue-prevRevenue)*(percent-prevPercent)
			return floatPtr(mathutil.Clamp(solved, constants.MinBreakEvenPercent, constants.MaxBreakEvenPercent))
		}
		prevPercent, prevRevenue = percent, revenue
	}

	if c.revenue(pair, constants.MaxBreakEvenPercent) > c.revenue(pair, constants.MinBreakEvenPercent) {
		return floatPtr(constants.MaxBreakEvenPercent)
	}
	return nil
}

// ticketsToBreakEven is the number of paying attendees needed for revenue to
// cover totalCost at pair, or nil when that exceeds the GA seats left after
// comps.
func ticketsToBreakEven(c capacity, pair PriceChoice, totalCost float64) *int {
	shortfall := totalCost - c.staffRevenue(pair.StaffPrice) - c.dayPassRevenue()
	if shortfall <= 0 {
		return intPtr(0)
	}
	if pair.TicketPrice <= 0 {
		return nil
	}
	// Compare as floats; a tiny price can push the count past the int range.
	needed := math.Ceil(shortfall/pair.TicketPrice - 1e-9)
	if needed+float64(c.comps) > float64(c.ga) {
		return nil
	}
	return intPtr(int(needed))
}

// breakEvenFigures are the scenario-level break-even statistics.
type breakEvenFigures struct {
	tickets             *int
	percent             *float64
	ticketsRange        *TicketRange
	lowestBreakEven     *PriceChoice
	lowestMeetingTarget *PriceChoice
}

func scenarioBreakEven(c capacity, pairs []PriceChoice, totalCost float64) breakEvenFigures {
	var figures breakEvenFigures
	if len(pairs) == 0 {
		return figures
	}

	// Pairs are ordered by ticket price then staff price, so the first pair
	// is the most attendee-friendly combination.
	figures.tickets = ticketsToBreakEven(c, pairs[0], totalCost)
	if figures.tickets != nil && c.ga > 0 {
		figures.percent = floatPtr(float64(*figures.tickets) / float64(c.ga) * 100)
	}

	cheapestByTicket := lowestStaffPerTicket(pairs)
	if len(cheapestByTicket) > 1 {
		figures.ticketsRange = &TicketRange{
			Min: ticketsToBreakEven(c, cheapestByTicket[len(cheapestByTicket)-1], totalCost),
			Max: ticketsToBreakEven(c, cheapestByTicket[0], totalCost),
		}
	}

	for _, pair := range pairs {
		revenue := c.revenue(pair, constants.FullAttendancePercent)
		if figures.lowestBreakEven == nil && revenue >= totalCost {
			p := pair
			figures.lowestBreakEven = &p
		}
		if figures.lowestMeetingTarget == nil && revenue-totalCost >= c.profitTarget {
			p := pair
			figures.lowestMeetingTarget = &p
		}
	}
	if figures.lowestMeetingTarget != nil && figures.lowestBreakEven != nil &&
		*figures.lowestMeetingTarget == *figures.lowestBreakEven {
		figures.lowestMeetingTarget = nil
	}
	return figures
}

// lowestStaffPerTicket keeps, for each distinct ticket price, the pair with
// the lowest staff price. Input must already be sorted.
func lowestStaffPerTicket(pairs []PriceChoice) []PriceChoice {
	out := make([]PriceChoice, 0, len(pairs))
	for _, pair := range pairs {
		if len(out) > 0 && out[len(out)-1].TicketPrice == pair.TicketPrice {
			continue
		}
		out = append(out, pair)
	}
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
