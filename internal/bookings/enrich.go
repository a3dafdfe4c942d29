package bookings

import (
	"strings"

	"github.com/AngelCh415/bookings-analysis/internal/models"
)

// Enrich devuelve una copia con los derivados recalculados; t no se toca.
func Enrich(t models.Table) models.Table {
	out := make(models.Table, len(t))
	for i, o := range t {
		o.Bookings = o.RentalQLC + o.RentalYLC + o.Upfront
		o.ExpectedBookings = o.Bookings * o.EffectiveWinRate
		o.CloseHalf = CloseHalf(o.CloseQuarter)
		out[i] = o
	}
	return out
}

// sin Q1/Q2 (incluso mal formado) -> H2
func CloseHalf(quarter string) string {
	if strings.Contains(quarter, "Q1") || strings.Contains(quarter, "Q2") {
		return models.HalfH1
	}
	return models.HalfH2
}
