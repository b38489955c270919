package export

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
)

// OvertimeXLSX renders hours per employee and Jalali day with a Total Hours column.
func OvertimeXLSX(period jalali.Period, rows []overtime.GridRow) ([]byte, error) {
	sheet := period.Label()
	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	header := []interface{}{"Employee"}
	for day := 1; day <= period.DayCount; day++ {
		header = append(header, day)
	}
	header = append(header, "Total Hours")
	if err := writeRow(f, sheet, 1, header); err != nil {
		f.Close()
		return nil, err
	}

	for r, row := range rows {
		values := []interface{}{row.EmployeeName}
		for i := 0; i < period.DayCount; i++ {
			if i < len(row.Hours) {
				values = append(values, cellAmount(row.Hours[i]))
			} else {
				values = append(values, 0.0)
			}
		}
		values = append(values, cellAmount(row.TotalHours))
		if err := writeRow(f, sheet, r+2, values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := styleHeader(f, sheet, len(header)); err != nil {
		f.Close()
		return nil, err
	}
	if err := setWidths(f, sheet, len(header), 28, 9); err != nil {
		f.Close()
		return nil, err
	}

	return finish(f)
}
