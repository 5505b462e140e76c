package projection

func sampleBudget() Budget {
	return Budget{
		ID:   "budget-2025",
		Name: "Spring Retreat",
		Year: 2025,
		LineItems: []LineItem{
			{ID: "venue", Name: "Lodge rental", Category: "Venue", UnitCost: 6000, Quantity: 1},
			{ID: "meals", Name: "Catered meals", Category: "Food & Beverage", UnitCost: 100, Quantity: 30},
			{ID: "decor", Name: "Decorations", UnitCost: 250, Quantity: 4},
		},
	}
}

func sampleInputs() Inputs {
	return Inputs{
		StaffCount:   14,
		MaxOccupancy: 75,
		TicketPrices: TicketPrices{
			ProposedPrice1: 200,
			ProposedPrice2: 250,
			ProposedPrice3: 180,
			StaffPrice1:    150,
			StaffPrice2:    100,
			StaffPrice3:    220,
		},
	}
}

func findMetric(metrics []ScenarioMetric, ticket, staff float64, percent int) (ScenarioMetric, bool) {
	for _, m := range metrics {
		if m.TicketPrice == ticket && m.StaffPrice == staff && m.AttendancePercent == percent {
			return m, true
		}
	}
	return ScenarioMetric{}, false
}
