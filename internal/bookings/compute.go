package bookings

import "github.com/AngelCh415/bookings-analysis/internal/models"

// todas las métricas salen de las mismas sumas (una sola pasada)
type subsetSums struct {
	wonCount int

	wonOrUngrowth       float64
	won                 float64
	cloudWonOrUngrowth  float64
	cloudWon            float64
	rentalWonOrUngrowth float64
	rentalWon           float64
	cloudUngrowth       float64
	onPremUngrowth      float64

	expected            float64
	expectedNonUngrowth float64
	cloudExpected       float64
}

func accumulate(t models.Table) subsetSums {
	var s subsetSums
	for _, o := range t {
		s.expected += o.ExpectedBookings
		if o.IsCloud() {
			s.cloudExpected += o.ExpectedBookings
		}
		if !o.IsUngrowth() {
			// incluye Pipeline, Lost, etc.
			s.expectedNonUngrowth += o.ExpectedBookings
		}

		if !o.IsWon() && !o.IsUngrowth() {
			continue
		}
		s.wonOrUngrowth += o.Bookings
		if o.IsCloud() {
			s.cloudWonOrUngrowth += o.Bookings
		}
		if o.IsRental() {
			s.rentalWonOrUngrowth += o.Bookings
		}

		if o.IsWon() {
			s.wonCount++
			s.won += o.Bookings
			if o.IsCloud() {
				s.cloudWon += o.Bookings
			}
			if o.IsRental() {
				s.rentalWon += o.Bookings
			}
			continue
		}

		if o.IsCloud() {
			s.cloudUngrowth += o.Bookings
		} else {
			s.onPremUngrowth += o.Bookings
		}
	}
	return s
}

// ComputeMetrics: denominador <= 0 da 0, nunca NaN ni Inf.
func ComputeMetrics(t models.Table) models.Metrics {
	s := accumulate(t)

	m := models.Metrics{
		TotalBookings:                     s.wonOrUngrowth,
		TotalBookingsExclUngrowth:         s.won,
		TotalExpectedBookings:             s.expected,
		TotalExpectedBookingsExclUngrowth: s.expectedNonUngrowth,
		CloudBookings:                     s.cloudWonOrUngrowth,
		CloudBookingsExclUngrowth:         s.cloudWon,
		CloudBookingsPercentage:           pct(s.cloudWonOrUngrowth, s.wonOrUngrowth),
		CloudExpectedBookings:             s.cloudExpected,
		CloudExpectedBookingsPercentage:   pct(s.cloudExpected, s.expected),
		RentalPercentage:                  pct(s.rentalWonOrUngrowth, s.wonOrUngrowth),
		RentalPercentageExclUngrowth:      pct(s.rentalWon, s.won),
		CloudUngrowth:                     s.cloudUngrowth,
		OnPremUngrowth:                    s.onPremUngrowth,
		TotalUngrowth:                     s.cloudUngrowth + s.onPremUngrowth,
	}
	if s.wonCount > 0 {
		m.ACV = s.won / float64(s.wonCount)
	}
	return m
}

func pct(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}
