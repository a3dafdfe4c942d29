package bookings

import "github.com/AngelCh415/bookings-analysis/internal/models"

type Result struct {
	Metrics  models.Metrics      `json:"metrics"`
	Rows     []models.DisplayRow `json:"table_data"`
	RowCount int                 `json:"row_count"`
}

func Evaluate(t models.Table, sel models.Selection) Result {
	filtered := Filter(t, sel)
	return Result{
		Metrics:  ComputeMetrics(filtered),
		Rows:     Project(filtered),
		RowCount: len(filtered),
	}
}
