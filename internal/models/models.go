package models

const (
	ForecastWon      = "Won"
	ForecastUngrowth = "Ungrowth"

	HalfH1 = "H1"
	HalfH2 = "H2"
)

// Opportunity es una fila del CSV de oportunidades. Bookings, ExpectedBookings y
// CloseHalf son derivados (ver bookings.Enrich) y nunca se editan a mano.
type Opportunity struct {
	Customer            string
	Channel             string
	CET                 string
	NAMIV               string
	Segment             string
	GTMTacticName       string
	CloseQuarter        string
	Forecast            string
	RentalQLC           float64
	RentalYLC           float64
	Upfront             float64
	EffectiveWinRate    float64
	CloudBookingsKicker float64

	Bookings         float64
	ExpectedBookings float64
	CloseHalf        string
}

func (o Opportunity) IsWon() bool      { return o.Forecast == ForecastWon }
func (o Opportunity) IsUngrowth() bool { return o.Forecast == ForecastUngrowth }
func (o Opportunity) IsCloud() bool    { return o.CloudBookingsKicker != 0 }
func (o Opportunity) IsRental() bool   { return o.RentalQLC != 0 || o.RentalYLC != 0 }

type Table []Opportunity

// entrada ausente o vacía = sin restricción en esa dimensión
type Selection map[Dimension][]string

func (s Selection) IsEmpty() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

type Metrics struct {
	ACV                               float64 `json:"acv"`
	TotalBookings                     float64 `json:"total_bookings"`
	TotalBookingsExclUngrowth         float64 `json:"total_bookings_excl_ungrowth"`
	TotalExpectedBookings             float64 `json:"total_expected_bookings"`
	TotalExpectedBookingsExclUngrowth float64 `json:"total_expected_bookings_excl_ungrowth"`
	CloudBookings                     float64 `json:"cloud_bookings"`
	CloudBookingsExclUngrowth         float64 `json:"cloud_bookings_excl_ungrowth"`
	CloudBookingsPercentage           float64 `json:"cloud_bookings_percentage"`
	CloudExpectedBookings             float64 `json:"cloud_expected_bookings"`
	CloudExpectedBookingsPercentage   float64 `json:"cloud_expected_bookings_percentage"`
	RentalPercentage                  float64 `json:"rental_percentage"`
	RentalPercentageExclUngrowth      float64 `json:"rental_percentage_excl_ungrowth"`
	TotalUngrowth                     float64 `json:"total_ungrowth"`
	CloudUngrowth                     float64 `json:"cloud_ungrowth"`
	OnPremUngrowth                    float64 `json:"on_prem_ungrowth"`
}

type DisplayRow struct {
	Customer         string  `json:"Customer"`
	Channel          string  `json:"Channel"`
	CET              string  `json:"CET"`
	CloseQuarter     string  `json:"Close Quarter"`
	CloseHalf        string  `json:"Close Half"`
	Forecast         string  `json:"Forecast"`
	Bookings         float64 `json:"Bookings"`
	ExpectedBookings float64 `json:"Expected Bookings"`
}
