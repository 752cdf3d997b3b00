package export

import (
	"fmt"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/report"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Time Accounting"

// LedgerWorkbook renders period ledgers as a spreadsheet: one row per
// employee, one column per weekday (Monday through Sunday, matching the
// internal weekday numbering) plus total and extra hours.
func LedgerWorkbook(ledgers []report.PeriodLedger, from, to string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []interface{}{"Employee", "Period Start", "Period End"}
	for w := shift.Monday; w <= shift.Sunday; w++ {
		header = append(header, w.String())
	}
	header = append(header, "Total Hours", "Extra Hours")

	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for i, ledger := range ledgers {
		row := []interface{}{ledger.EmployeeName, from, to}
		for w := shift.Monday; w <= shift.Sunday; w++ {
			row = append(row, round2(ledger.PerWeekday[w]))
		}
		row = append(row, round2(ledger.TotalHours), round2(ledger.ExtraHours))

		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func setRow(f *excelize.File, rowIndex int, values []interface{}) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(ledgerSheet, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
