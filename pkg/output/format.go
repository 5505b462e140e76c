// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/event-forecast/internal/forecast"
	"github.com/iwvelando/event-forecast/pkg/format"
	"github.com/iwvelando/event-forecast/pkg/projection"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var csvHeader = []string{
	"scenario",
	"attendance percent",
	"ticket price",
	"staff price",
	"tickets sold",
	"attendees",
	"attendee revenue",
	"staff revenue",
	"day pass revenue",
	"revenue",
	"total cost",
	"profit",
	"profit margin",
	"cost coverage",
	"profit target coverage",
	"meets break-even",
	"meets profit target",
	"break-even attendance percent",
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		writeScenarioHeader(w, p, result)
		writeMatrix(w, p, result.Projection.Matrix)
		writeCategories(w, result.Projection)
		writeFood(w, result.Projection.FoodCost)
		writePricing(w, result)
	}
}

func writeScenarioHeader(w io.Writer, p *message.Printer, result forecast.Forecast) {
	summary := result.Projection.Summary
	_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
	_, _ = p.Fprintf(w, "Total cost: %s | With profit target: %s | GA tickets: %d of %d\n",
		format.Currency(summary.TotalCosts), format.Currency(summary.TotalWithProfitTarget),
		summary.GATicketsAvailable, summary.MaxOccupancy)

	breakEven := format.NotApplicable
	if summary.BreakEvenTickets != nil {
		breakEven = fmt.Sprintf("%d tickets (%s)", *summary.BreakEvenTickets, format.OptionalPercent(summary.BreakEvenPercent))
	}
	_, _ = fmt.Fprintf(w, "Break-even: %s", breakEven)
	if r := summary.BreakEvenTicketsRange; r != nil {
		_, _ = fmt.Fprintf(w, " | range %s to %s tickets", optionalInt(r.Min), optionalInt(r.Max))
	}
	_, _ = fmt.Fprintln(w)

	if summary.LowestBreakEven != nil {
		_, _ = fmt.Fprintf(w, "Lowest break-even price: %s with staff at %s\n",
			format.Currency(*summary.LowestBreakEven), format.OptionalCurrency(summary.MinStaffPrice))
	}
	if choice := summary.LowestMeetingTarget; choice != nil {
		_, _ = fmt.Fprintf(w, "Lowest price meeting profit target: %s with staff at %s\n",
			format.Currency(choice.TicketPrice), format.Currency(choice.StaffPrice))
	}
	writeSelection(w, "Best scenario", summary.BestScenario)
	writeSelection(w, "Worst profitable", summary.WorstProfitable)
	writeSelection(w, "Most accessible", summary.MostAccessible)

	if summary.ComplimentaryTickets > 0 {
		_, _ = fmt.Fprintf(w, "Complimentary tickets: %d (revenue lost %s)\n",
			summary.ComplimentaryTickets, format.Currency(summary.RevenueLostToComps))
	}
	mix := summary.RevenueMix
	_, _ = fmt.Fprintf(w, "Revenue mix: attendees %s | staff %s | day passes %s\n",
		format.Percent(mix.Attendee), format.Percent(mix.Staff), format.Percent(mix.DayPass))
}

func writeSelection(w io.Writer, label string, m *projection.ScenarioMetric) {
	if m == nil {
		_, _ = fmt.Fprintf(w, "%s: %s\n", label, format.NotApplicable)
		return
	}
	_, _ = fmt.Fprintf(w, "%s: %s ticket / %s staff at %d%% -> profit %s\n",
		label, format.Currency(m.TicketPrice), format.Currency(m.StaffPrice), m.AttendancePercent, format.Currency(m.Profit))
}

func writeMatrix(w io.Writer, p *message.Printer, matrix projection.ScenarioMatrix) {
	_, _ = fmt.Fprintf(w, "Attendance | Ticket    | Staff     | Sold | Revenue       | Profit        | Margin | Coverage | Break-even\n")
	_, _ = fmt.Fprintf(w, "__________ | _________ | _________ | ____ | _____________ | _____________ | ______ | ________ | __________\n")
	for _, level := range matrix.AttendanceLevels {
		for _, m := range matrix.ByAttendance[level] {
			_, _ = p.Fprintf(w, "%9d%% | %9s | %9s | %4d | %13s | %13s | %6s | %8s | %s\n",
				m.AttendancePercent,
				format.Currency(m.TicketPrice),
				format.Currency(m.StaffPrice),
				m.TicketsSold,
				format.Currency(m.Revenue),
				format.Currency(m.Profit),
				format.Percent(m.ProfitMargin),
				format.OptionalRatio(m.CostCoverageRatio),
				format.OptionalPercent(m.BreakEvenAttendancePercent),
			)
		}
	}
}

func writeCategories(w io.Writer, p projection.Projection) {
	if len(p.CategoryTotals) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Costs by category:\n")
	for _, category := range p.CategoryTotals {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", category.Category, format.Currency(category.Total))
	}
	for _, historical := range p.HistoricalTotals {
		_, _ = fmt.Fprintf(w, "  Historical %s: %s\n", historical.Period, format.Currency(historical.Total))
	}
}

func writeFood(w io.Writer, food *projection.FoodCostBreakdown) {
	if food == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Food: %s over %d person-days (%s per meal day)\n",
		format.Currency(food.TotalFoodCost), food.PersonDays, format.Currency(food.CostPerMeal))
	_, _ = fmt.Fprintf(w, "  Per attendee: %s | per staff: %s | per day pass: %s | per day: %s\n",
		format.Currency(food.FoodCostPerAttendee), format.Currency(food.FoodCostPerStaff),
		format.Currency(food.FoodCostPerDayPass), format.Currency(food.FoodCostPerDay))
}

func writePricing(w io.Writer, result forecast.Forecast) {
	if len(result.Pricing) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Pricing recommendations:\n")
	for _, s := range result.Pricing {
		status := "converged"
		if !s.Converged {
			status = "not converged"
		}
		value := s.ValueDisplay
		if !s.Converged {
			value = format.NotApplicable
		}
		_, _ = fmt.Fprintf(w, "  %s at %d%%: %s (staff %s, proposed %s, headroom %s) [%s]\n",
			s.TargetName, s.AttendancePercent, value, format.Currency(s.StaffPrice),
			s.OriginalDisplay, format.Currency(s.Headroom), status)
		for _, note := range s.Notes {
			_, _ = fmt.Fprintf(w, "    - %s\n", note)
		}
	}
}

// CsvFormat outputs in comma-separated value format, one row per metric.
func CsvFormat(w io.Writer, results []forecast.Forecast) {
	_, _ = io.WriteString(w, CsvString(results))
}

// CsvString renders the CSV output as a string.
func CsvString(results []forecast.Forecast) string {
	var builder strings.Builder
	writeCSVRow(&builder, csvHeader)
	for _, result := range results {
		for _, m := range result.Projection.Matrix.Metrics() {
			writeCSVRow(&builder, []string{
				result.Name,
				fmt.Sprintf("%d", m.AttendancePercent),
				fmt.Sprintf("%.2f", m.TicketPrice),
				fmt.Sprintf("%.2f", m.StaffPrice),
				fmt.Sprintf("%d", m.TicketsSold),
				fmt.Sprintf("%d", m.Attendees),
				fmt.Sprintf("%.2f", m.AttendeeRevenue),
				fmt.Sprintf("%.2f", m.StaffRevenue),
				fmt.Sprintf("%.2f", m.DayPassRevenue),
				fmt.Sprintf("%.2f", m.Revenue),
				fmt.Sprintf("%.2f", m.TotalCost),
				fmt.Sprintf("%.2f", m.Profit),
				fmt.Sprintf("%.2f", m.ProfitMargin),
				optionalFloat(m.CostCoverageRatio),
				optionalFloat(m.ProfitTargetCoverage),
				fmt.Sprintf("%t", m.MeetsBreakEven),
				fmt.Sprintf("%t", m.MeetsProfitTarget),
				optionalFloat(m.BreakEvenAttendancePercent),
			})
		}
	}
	return builder.String()
}

// JSONFormat writes the results as indented JSON.
func JSONFormat(w io.Writer, results []forecast.Forecast) error {
	if results == nil {
		results = []forecast.Forecast{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func writeCSVRow(builder *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteByte('"')
		builder.WriteString(strings.ReplaceAll(field, `"`, `""`))
		builder.WriteByte('"')
	}
	builder.WriteByte('\n')
}

func optionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}

func optionalInt(v *int) string {
	if v == nil {
		return format.NotApplicable
	}
	return fmt.Sprintf("%d", *v)
}
