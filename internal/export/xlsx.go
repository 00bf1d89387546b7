// Package export renders projections as spreadsheets.
package export

import (
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName   = "Projection"
)

var headers = []string{"Period", "Start", "End", "Income", "Payments", "Ending balance", "Health"}

// ProjectionWorkbook writes one row per period under a header row
func ProjectionWorkbook(periods []models.PeriodProjection) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, p := range periods {
		row := []any{p.Label, p.Start.String(), p.End.String(), p.IncomeTotal, p.PaymentTotal, p.EndingBalance, string(p.Health)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write period %s: %w", p.Label, err)
		}
	}
	return f, nil
}
