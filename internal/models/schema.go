package models

type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
)

func (t FieldType) String() string {
	if t == FieldNumeric {
		return "numeric"
	}
	return "text"
}

type FieldSpec struct {
	Name string
	Type FieldType
}

// Nombres exactos de columna del CSV (sensibles a mayúsculas).
const (
	ColCustomer            = "Customer"
	ColChannel             = "Channel"
	ColCET                 = "CET"
	ColNAMIV               = "NAM IV"
	ColSegment             = "Segment"
	ColGTMTacticName       = "GTM Tactic Name"
	ColCloseQuarter        = "Close Quarter"
	ColForecast            = "Forecast"
	ColRentalQLC           = "Rental QLC"
	ColRentalYLC           = "Rental YLC"
	ColUpfront             = "Upfront"
	ColEffectiveWinRate    = "Effective Win Rate"
	ColCloudBookingsKicker = "Cloud Bookings Kicker"

	ColBookings         = "Bookings"
	ColExpectedBookings = "Expected Bookings"
	ColCloseHalf        = "Close Half"
)

// columnas obligatorias en el header del CSV
var RequiredColumns = []FieldSpec{
	{Name: ColCustomer, Type: FieldText},
	{Name: ColChannel, Type: FieldText},
	{Name: ColCET, Type: FieldText},
	{Name: ColNAMIV, Type: FieldText},
	{Name: ColSegment, Type: FieldText},
	{Name: ColGTMTacticName, Type: FieldText},
	{Name: ColCloseQuarter, Type: FieldText},
	{Name: ColForecast, Type: FieldText},
	{Name: ColRentalQLC, Type: FieldNumeric},
	{Name: ColRentalYLC, Type: FieldNumeric},
	{Name: ColUpfront, Type: FieldNumeric},
	{Name: ColEffectiveWinRate, Type: FieldNumeric},
	{Name: ColCloudBookingsKicker, Type: FieldNumeric},
}

func (o *Opportunity) Assign(col string, s string, num float64) {
	switch col {
	case ColCustomer:
		o.Customer = s
	case ColChannel:
		o.Channel = s
	case ColCET:
		o.CET = s
	case ColNAMIV:
		o.NAMIV = s
	case ColSegment:
		o.Segment = s
	case ColGTMTacticName:
		o.GTMTacticName = s
	case ColCloseQuarter:
		o.CloseQuarter = s
	case ColForecast:
		o.Forecast = s
	case ColRentalQLC:
		o.RentalQLC = num
	case ColRentalYLC:
		o.RentalYLC = num
	case ColUpfront:
		o.Upfront = num
	case ColEffectiveWinRate:
		o.EffectiveWinRate = num
	case ColCloudBookingsKicker:
		o.CloudBookingsKicker = num
	}
}

type Dimension string

const (
	DimChannel       Dimension = ColChannel
	DimCET           Dimension = ColCET
	DimNAMIV         Dimension = ColNAMIV
	DimSegment       Dimension = ColSegment
	DimGTMTacticName Dimension = ColGTMTacticName
	DimCloseQuarter  Dimension = ColCloseQuarter
	DimCloseHalf     Dimension = ColCloseHalf
)

// orden del dashboard
var Dimensions = []Dimension{
	DimChannel, DimCET, DimNAMIV, DimSegment, DimGTMTacticName, DimCloseQuarter, DimCloseHalf,
}

func (d Dimension) Value(o Opportunity) string {
	switch d {
	case DimChannel:
		return o.Channel
	case DimCET:
		return o.CET
	case DimNAMIV:
		return o.NAMIV
	case DimSegment:
		return o.Segment
	case DimGTMTacticName:
		return o.GTMTacticName
	case DimCloseQuarter:
		return o.CloseQuarter
	case DimCloseHalf:
		return o.CloseHalf
	}
	return ""
}
