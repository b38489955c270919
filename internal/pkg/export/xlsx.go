// Package export renders payroll, attendance and overtime data as downloadable documents.
package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
)

const defaultSheet = "Sheet1"

// newWorkbook creates a file with a single sheet renamed to name.
func newWorkbook(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, name); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	return f, nil
}

// writeRow writes values starting at column A of the given 1-based row.
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// styleHeader makes the first row bold across columns 1..cols.
func styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

// setWidths sets column A to first and columns 2..cols to rest.
func setWidths(f *excelize.File, sheet string, cols int, first, rest float64) error {
	if err := f.SetColWidth(sheet, "A", "A", first); err != nil {
		return err
	}
	if cols < 2 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", last, rest)
}

func finish(f *excelize.File) ([]byte, error) {
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellAmount is the 2-decimal ceiling of d as a numeric cell value.
func cellAmount(d decimal.Decimal) float64 {
	return money.Ceil2(d).InexactFloat64()
}
