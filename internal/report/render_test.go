package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/bookings-analysis/internal/bookings"
	"github.com/AngelCh415/bookings-analysis/internal/models"
)

func scenario() bookings.Result {
	return bookings.Evaluate(bookings.Enrich(models.Table{
		{Customer: "Acme", Channel: "Direct", CloseQuarter: "FY24-Q1", Forecast: "Won",
			RentalQLC: 100, Upfront: 50, EffectiveWinRate: 0.5},
		{Customer: "Globex", Channel: "Partner", CloseQuarter: "FY24-Q3", Forecast: "Ungrowth",
			Upfront: 2000, EffectiveWinRate: 0.8, CloudBookingsKicker: 5},
	}), nil)
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.89", Amount(1234567.891))
	assert.Equal(t, "150.00", Amount(150))
	assert.Equal(t, "0.00", Amount(0))
	assert.Equal(t, "-1,234.50", Amount(-1234.5))
	assert.Equal(t, "1,000,000,000,000,000,000.00", Amount(1e21))
}

func TestAmount_NearTies(t *testing.T) {
	// mismo resultado que f"{v:,.2f}"
	assert.Equal(t, "1.99", Amount(1.995))
	assert.Equal(t, "2.67", Amount(2.675))
	assert.Equal(t, "0.12", Amount(0.125))
}

func TestText_MetricLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, scenario(), false))
	out := buf.String()
	assert.Contains(t, out, "ACV: 150.00\n")
	assert.Contains(t, out, "Total Bookings: 2,150.00\n")
	assert.Contains(t, out, "Cloud Bookings Percentage: 93.02%\n")
	assert.Contains(t, out, "On Prem Ungrowth: 0.00\n")
	assert.Contains(t, out, "Rows: 2\n")
	assert.NotContains(t, out, "Filtered Data")
}

func TestText_WithRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, scenario(), true))
	assert.Contains(t, buf.String(), "Filtered Data")
	assert.Contains(t, buf.String(), "Globex")
	assert.Contains(t, buf.String(), "1,600.00")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, scenario()))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2.0, got["row_count"])
	assert.Contains(t, got, "metrics")
	assert.Contains(t, got, "table_data")
}
