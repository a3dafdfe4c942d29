package bookings

import "github.com/AngelCh415/bookings-analysis/internal/models"

// rowA y rowB: el escenario de dos filas (Won / Ungrowth).
func scenarioTable() models.Table {
	return models.Table{
		{
			Customer: "Acme", Channel: "Direct", CET: "East", NAMIV: "N1", Segment: "Enterprise",
			GTMTacticName: "Expand", CloseQuarter: "FY24-Q1", Forecast: "Won",
			RentalQLC: 100, RentalYLC: 0, Upfront: 50, EffectiveWinRate: 0.5, CloudBookingsKicker: 0,
		},
		{
			Customer: "Globex", Channel: "Partner", CET: "West", NAMIV: "N2", Segment: "Commercial",
			GTMTacticName: "Retain", CloseQuarter: "FY24-Q3", Forecast: "Ungrowth",
			RentalQLC: 0, RentalYLC: 0, Upfront: 200, EffectiveWinRate: 0.8, CloudBookingsKicker: 5,
		},
	}
}

func mixedTable() models.Table {
	return Enrich(models.Table{
		{Customer: "A", Channel: "Direct", CET: "East", CloseQuarter: "FY24-Q1", Forecast: "Won",
			RentalQLC: 100, Upfront: 20, EffectiveWinRate: 1, CloudBookingsKicker: 1},
		{Customer: "B", Channel: "Partner", CET: "East", CloseQuarter: "FY24-Q2", Forecast: "Won",
			Upfront: 300, EffectiveWinRate: 0.9},
		{Customer: "C", Channel: "Direct", CET: "West", CloseQuarter: "FY24-Q3", Forecast: "Ungrowth",
			RentalYLC: 40, EffectiveWinRate: 1, CloudBookingsKicker: 2},
		{Customer: "D", Channel: "Direct", CET: "West", CloseQuarter: "FY24-Q4", Forecast: "Ungrowth",
			Upfront: 60, EffectiveWinRate: 1},
		{Customer: "E", Channel: "Partner", CET: "", CloseQuarter: "FY24-Q4", Forecast: "Pipeline",
			Upfront: 1000, EffectiveWinRate: 0.25, CloudBookingsKicker: 3},
		{Customer: "F", Channel: "Direct", CET: "East", CloseQuarter: "FY25-Q1", Forecast: "Lost",
			RentalQLC: 10, EffectiveWinRate: 0},
	})
}
