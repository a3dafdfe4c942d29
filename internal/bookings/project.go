package bookings

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/AngelCh415/bookings-analysis/internal/models"
)

// Project devuelve las columnas visibles de t. Bookings se redondea a 2
// decimales sólo en las filas devueltas.
func Project(t models.Table) []models.DisplayRow {
	rows := make([]models.DisplayRow, 0, len(t))
	for _, o := range t {
		rows = append(rows, models.DisplayRow{
			Customer:         o.Customer,
			Channel:          o.Channel,
			CET:              o.CET,
			CloseQuarter:     o.CloseQuarter,
			CloseHalf:        o.CloseHalf,
			Forecast:         o.Forecast,
			Bookings:         round2(o.Bookings),
			ExpectedBookings: round2(o.ExpectedBookings),
		})
	}
	return rows
}

// round2 escala en float64 y redondea al par: 0.125 -> 0.12, 1.005 -> 1.
func round2(f float64) float64 {
	x := f * 100
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return f
	}
	return decimal.NewFromFloat(x).RoundBank(0).Shift(-2).InexactFloat64()
}
