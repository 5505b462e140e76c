package projection

import (
	"math"
	"sort"

	"github.com/iwvelando/event-forecast/pkg/mathutil"
)

// capacity is the clamped attendance model derived from a scenario's inputs.
type capacity struct {
	staffCount    int
	maxOccupancy  int
	comps         int
	dayPassesSold int
	dayPassPrice  float64
	profitTarget  float64
	ga            int
}

func newCapacity(inputs Inputs) capacity {
	c := capacity{
		staffCount:    mathutil.NonNegativeInt(inputs.StaffCount),
		maxOccupancy:  mathutil.NonNegativeInt(inputs.MaxOccupancy),
		comps:         mathutil.NonNegativeInt(inputs.ComplimentaryTickets),
		dayPassesSold: mathutil.NonNegativeInt(inputs.DayPassesSold),
		dayPassPrice:  mathutil.NonNegative(inputs.DayPassPrice),
		profitTarget:  mathutil.NonNegative(inputs.ProfitTarget),
	}
	c.ga = mathutil.NonNegativeInt(c.maxOccupancy - c.staffCount)
	return c
}

// ticketsSold is the gross number of GA tickets issued at percent, comps
// included.
func (c capacity) ticketsSold(percent float64) int {
	return int(math.Round(mathutil.ApplyPercentage(float64(c.ga), percent)))
}

// payingAttendees is ticketsSold minus the comps, floored at zero.
func (c capacity) payingAttendees(percent float64) int {
	return mathutil.NonNegativeInt(c.ticketsSold(percent) - c.comps)
}

// effectiveComps is the number of comps that actually displace a sale.
func (c capacity) effectiveComps() int {
	if c.comps > c.ga {
		return c.ga
	}
	return c.comps
}

func (c capacity) staffRevenue(staffPrice float64) float64 {
	return float64(c.staffCount) * staffPrice
}

func (c capacity) dayPassRevenue() float64 {
	return float64(c.dayPassesSold) * c.dayPassPrice
}

// revenue evaluates total revenue at an arbitrary attendance percent.
func (c capacity) revenue(pair PriceChoice, percent float64) float64 {
	return float64(c.payingAttendees(percent))*pair.TicketPrice + c.staffRevenue(pair.StaffPrice) + c.dayPassRevenue()
}

// GATicketsAvailable is the number of general-admission seats left once staff
// are accommodated.
func GATicketsAvailable(inputs Inputs) int {
	return newCapacity(inputs).ga
}

// TicketsSold returns round(gaTicketsAvailable × percent / 100).
func TicketsSold(inputs Inputs, percent int) int {
	return newCapacity(inputs).ticketsSold(float64(percent))
}

// PayingAttendees returns the tickets sold at percent that generate revenue.
func PayingAttendees(inputs Inputs, percent int) int {
	return newCapacity(inputs).payingAttendees(float64(percent))
}

// EnumeratePricePairs builds the cross product of proposed ticket prices and
// staff prices, keeping only pairs where the staff price does not exceed the
// ticket price. Duplicate pairs are dropped and the result is ordered by
// ticket price, then staff price.
func EnumeratePricePairs(prices TicketPrices) []PriceChoice {
	seen := make(map[PriceChoice]struct{})
	pairs := make([]PriceChoice, 0, 9)
	for _, ticket := range prices.Proposed() {
		ticket = mathutil.NonNegative(ticket)
		for _, staff := range prices.Staff() {
			staff = mathutil.NonNegative(staff)
			if staff > ticket {
				continue
			}
			pair := PriceChoice{TicketPrice: ticket, StaffPrice: staff}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			pairs = append(pairs, pair)
		}
	}
	sortPairs(pairs)
	return pairs
}

func sortPairs(pairs []PriceChoice) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].TicketPrice != pairs[j].TicketPrice {
			return pairs[i].TicketPrice < pairs[j].TicketPrice
		}
		return pairs[i].StaffPrice < pairs[j].StaffPrice
	})
}

// sortedDistinct returns the distinct non-negative values in ascending order.
func sortedDistinct(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		v = mathutil.NonNegative(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
