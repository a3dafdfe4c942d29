package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/AngelCh415/bookings-analysis/internal/bookings"
)

type line struct {
	label   string
	value   float64
	percent bool
}

func lines(r bookings.Result) []line {
	m := r.Metrics
	return []line{
		{"ACV", m.ACV, false},
		{"Total Bookings", m.TotalBookings, false},
		{"Total Bookings excl. Ungrowth", m.TotalBookingsExclUngrowth, false},
		{"Total Expected Bookings", m.TotalExpectedBookings, false},
		{"Total Expected Bookings excl. Ungrowth", m.TotalExpectedBookingsExclUngrowth, false},
		{"Cloud Bookings", m.CloudBookings, false},
		{"Cloud Bookings Excl. Ungrowth", m.CloudBookingsExclUngrowth, false},
		{"Cloud Bookings Percentage", m.CloudBookingsPercentage, true},
		{"Cloud Expected Bookings", m.CloudExpectedBookings, false},
		{"Cloud Expected Bookings Percentage", m.CloudExpectedBookingsPercentage, true},
		{"Rental Percentage", m.RentalPercentage, true},
		{"Rental Percentage Excl. Ungrowth", m.RentalPercentageExclUngrowth, true},
		{"Total Ungrowth", m.TotalUngrowth, false},
		{"Cloud Ungrowth", m.CloudUngrowth, false},
		{"On Prem Ungrowth", m.OnPremUngrowth, false},
	}
}

// Amount formatea v con separador de miles y 2 decimales, redondeando sobre
// el valor binario exacto igual que el widget.
func Amount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + s
	}
	return sign + humanize.BigComma(n) + "." + frac
}

func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func Text(w io.Writer, r bookings.Result, rows bool) error {
	var b strings.Builder
	b.WriteString("Metrics\n")
	for _, l := range lines(r) {
		v := Amount(l.value)
		if l.percent {
			v = Percent(l.value)
		}
		fmt.Fprintf(&b, "%s: %s\n", l.label, v)
	}
	fmt.Fprintf(&b, "Rows: %d\n", r.RowCount)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if !rows {
		return nil
	}

	fmt.Fprintln(w, "\nFiltered Data")
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "Customer\tChannel\tCET\tClose Quarter\tClose Half\tForecast\tBookings\tExpected Bookings")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Customer, row.Channel, row.CET, row.CloseQuarter, row.CloseHalf, row.Forecast,
			Amount(row.Bookings), Amount(row.ExpectedBookings))
	}
	return tw.Flush()
}

func JSON(w io.Writer, r bookings.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(r)
}
