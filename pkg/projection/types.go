// Package projection computes the financial outcome grid of an event from a
// costed budget and a set of pricing and attendance assumptions.
//
// Every entry point is a pure function of its arguments: nothing is cached,
// nothing is mutated, and the same inputs always produce the same output.
package projection

import "github.com/iwvelando/event-forecast/pkg/mathutil"

// LineItem is a single costed entry in a Budget.
type LineItem struct {
	ID              string             `json:"id" yaml:"id"`
	Name            string             `json:"name" yaml:"name"`
	Category        string             `json:"category" yaml:"category"`
	Comments        string             `json:"comments,omitempty" yaml:"comments,omitempty"`
	UnitCost        float64            `json:"unitCost" yaml:"unitCost"`
	Quantity        float64            `json:"quantity" yaml:"quantity"`
	HistoricalCosts map[string]float64 `json:"historicalCosts,omitempty" yaml:"historicalCosts,omitempty"`
}

// Cost returns the line item's contribution to the budget total. Negative
// unit costs and quantities count as zero.
func (item LineItem) Cost() float64 {
	return mathutil.NonNegative(item.UnitCost) * mathutil.NonNegative(item.Quantity)
}

// Budget is a named collection of line items.
type Budget struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Year        int        `json:"year" yaml:"year"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	LineItems   []LineItem `json:"lineItems" yaml:"lineItems"`
}

// TicketPrices holds the proposed attendee and staff price points.
type TicketPrices struct {
	ProposedPrice1 float64 `json:"proposedPrice1" yaml:"proposedPrice1"`
	ProposedPrice2 float64 `json:"proposedPrice2" yaml:"proposedPrice2"`
	ProposedPrice3 float64 `json:"proposedPrice3" yaml:"proposedPrice3"`
	StaffPrice1    float64 `json:"staffPrice1" yaml:"staffPrice1"`
	StaffPrice2    float64 `json:"staffPrice2" yaml:"staffPrice2"`
	StaffPrice3    float64 `json:"staffPrice3" yaml:"staffPrice3"`
}

// Proposed returns the attendee price points in declaration order.
func (tp TicketPrices) Proposed() []float64 {
	return []float64{tp.ProposedPrice1, tp.ProposedPrice2, tp.ProposedPrice3}
}

// Staff returns the staff price points in declaration order.
func (tp TicketPrices) Staff() []float64 {
	return []float64{tp.StaffPrice1, tp.StaffPrice2, tp.StaffPrice3}
}

// Inputs is the variable set of a scenario.
type Inputs struct {
	ProfitTarget         float64      `json:"profitTarget" yaml:"profitTarget"`
	StaffCount           int          `json:"staffCount" yaml:"staffCount"`
	MaxOccupancy         int          `json:"maxOccupancy" yaml:"maxOccupancy"`
	ComplimentaryTickets int          `json:"complimentaryTickets" yaml:"complimentaryTickets"`
	DayPassPrice         float64      `json:"dayPassPrice" yaml:"dayPassPrice"`
	DayPassesSold        int          `json:"dayPassesSold" yaml:"dayPassesSold"`
	TicketPrices         TicketPrices `json:"ticketPrices" yaml:"ticketPrices"`
}

// Scenario is a named set of inputs evaluated against a budget.
type Scenario struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Active      bool   `json:"active" yaml:"active"`
	Inputs      Inputs `json:"inputs" yaml:"inputs"`
}

// ScenarioMetric is the outcome of one (ticket price, staff price, attendance
// percent) combination.
type ScenarioMetric struct {
	TicketPrice       float64 `json:"ticketPrice"`
	StaffPrice        float64 `json:"staffPrice"`
	AttendancePercent int     `json:"attendancePercent"`

	TicketsSold int `json:"ticketsSold"`
	Attendees   int `json:"attendees"`

	AttendeeRevenue float64 `json:"attendeeRevenue"`
	StaffRevenue    float64 `json:"staffRevenue"`
	DayPassRevenue  float64 `json:"dayPassRevenue"`
	Revenue         float64 `json:"revenue"`
	TotalCost       float64 `json:"totalCost"`
	Profit          float64 `json:"profit"`

	ProfitMargin        float64 `json:"profitMargin"`
	ProfitPerAttendee   float64 `json:"profitPerAttendee"`
	AvgRevenuePerTicket float64 `json:"avgRevenuePerTicket"`
	RevenueMixAttendee  float64 `json:"revenueMixAttendee"`
	CostPerAttendee     float64 `json:"costPerAttendee"`

	// CostCoverageRatio is nil when the budget has no cost.
	CostCoverageRatio *float64 `json:"costCoverageRatio"`
	// ProfitTargetCoverage is nil when cost plus profit target is zero.
	ProfitTargetCoverage *float64 `json:"profitTargetCoverage"`

	ProfitVsBreakEven float64 `json:"profitVsBreakEven"`
	MeetsBreakEven    bool    `json:"meetsBreakEven"`
	MeetsProfitTarget bool    `json:"meetsProfitTarget"`

	BreakEvenAttendancePercent *float64 `json:"breakEvenAttendancePercent"`
}

// PricePair is a (ticket price, staff price) combination that survived the
// staff-discount filter, with its break-even attendance.
type PricePair struct {
	TicketPrice                float64  `json:"ticketPrice"`
	StaffPrice                 float64  `json:"staffPrice"`
	BreakEvenAttendancePercent *float64 `json:"breakEvenAttendancePercent"`
}

// ScenarioMatrix groups metrics by attendance level.
type ScenarioMatrix struct {
	AttendanceLevels   []int                    `json:"attendanceLevels"`
	ByAttendance       map[int][]ScenarioMetric `json:"byAttendance"`
	Pairs              []PricePair              `json:"pairs"`
	TotalCost          float64                  `json:"totalCost"`
	GATicketsAvailable int                      `json:"gaTicketsAvailable"`
}

// AttendanceTickets is the gross ticket count at one attendance level.
type AttendanceTickets struct {
	Percent int `json:"percent"`
	Tickets int `json:"tickets"`
}

// RevenueMix is the percentage split of revenue by source.
type RevenueMix struct {
	Attendee float64 `json:"attendee"`
	Staff    float64 `json:"staff"`
	DayPass  float64 `json:"dayPass"`
}

// TicketRange bounds the number of paying attendees needed to break even
// across all proposed prices.
type TicketRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// PriceChoice is a (ticket price, staff price) selection reported by the
// summary.
type PriceChoice struct {
	TicketPrice float64 `json:"ticketPrice"`
	StaffPrice  float64 `json:"staffPrice"`
}

// ScenarioSummary holds aggregate statistics over a scenario's metrics.
type ScenarioSummary struct {
	BestScenario    *ScenarioMetric `json:"bestScenario"`
	WorstProfitable *ScenarioMetric `json:"worstProfitable"`
	MostAccessible  *ScenarioMetric `json:"mostAccessible"`

	RevenueMix          RevenueMix          `json:"revenueMix"`
	AttendanceBreakdown []AttendanceTickets `json:"attendanceBreakdown"`

	ComplimentaryTickets int     `json:"complimentaryTickets"`
	RevenueLostToComps   float64 `json:"revenueLostToComps"`
	DayPassRevenue       float64 `json:"dayPassRevenue"`

	TotalCosts            float64 `json:"totalCosts"`
	TotalWithProfitTarget float64 `json:"totalWithProfitTarget"`
	GATicketsAvailable    int     `json:"gaTicketsAvailable"`
	MaxOccupancy          int     `json:"maxOccupancy"`
	StaffCount            int     `json:"staffCount"`

	BreakEvenTickets      *int         `json:"breakEvenTickets"`
	BreakEvenPercent      *float64     `json:"breakEvenPercent,omitempty"`
	BreakEvenTicketsRange *TicketRange `json:"breakEvenTicketsRange,omitempty"`
	LowestBreakEven       *float64     `json:"lowestBreakEven"`
	MinStaffPrice         *float64     `json:"minStaffPrice"`
	LowestMeetingTarget   *PriceChoice `json:"lowestMeetingTarget,omitempty"`
}

// FoodCostBreakdown allocates the food budget across people.
type FoodCostBreakdown struct {
	TotalFoodCost       float64 `json:"totalFoodCost"`
	Attendees           int     `json:"attendees"`
	StaffCount          int     `json:"staffCount"`
	DayPassesSold       int     `json:"dayPassesSold"`
	PersonDays          int     `json:"personDays"`
	CostPerMeal         float64 `json:"costPerMeal"`
	FoodCostPerAttendee float64 `json:"foodCostPerAttendee"`
	FoodCostPerStaff    float64 `json:"foodCostPerStaff"`
	FoodCostPerDayPass  float64 `json:"foodCostPerDayPass"`
	FoodCostPerDay      float64 `json:"foodCostPerDay"`
}

// CategoryTotal is the summed cost of one budget category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// HistoricalTotal is the summed historical cost for one period key.
type HistoricalTotal struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}
