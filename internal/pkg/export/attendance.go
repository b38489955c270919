package export

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
)

const (
	labelPresent = "حاضر"
	labelFriday  = "جمعه"
)

var statusLabels = map[attendance.Status]string{
	attendance.StatusAbsent:   "غیر حاضر",
	attendance.StatusShiftOff: "نوبتی",
	attendance.StatusHoliday:  "رخصتی",
	attendance.StatusLeave:    "رخصت",
}

// StatusLabel is the Dari text printed for a grid cell.
func StatusLabel(status string, weeklyHoliday bool) string {
	if weeklyHoliday {
		return labelFriday
	}
	if label, ok := statusLabels[attendance.Status(status)]; ok {
		return label
	}
	return labelPresent
}

// AttendanceXLSX renders the monthly attendance grid, one column per Jalali day.
func AttendanceXLSX(period jalali.Period, rows []attendance.GridRow) ([]byte, error) {
	sheet := period.Label()
	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	days := period.Days()
	header := []interface{}{"Employee"}
	holiday := make([]bool, len(days))
	for i, d := range days {
		_, english := jalali.WeekdayNames(d)
		header = append(header, jalali.Format(d)+" "+english)
		holiday[i] = jalali.IsWeeklyHoliday(d)
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		f.Close()
		return nil, err
	}

	for r, row := range rows {
		values := []interface{}{row.EmployeeName}
		for i := range days {
			status := ""
			if i < len(row.Cells) {
				status = row.Cells[i]
			}
			values = append(values, StatusLabel(status, holiday[i]))
		}
		if err := writeRow(f, sheet, r+2, values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := styleHeader(f, sheet, len(header)); err != nil {
		f.Close()
		return nil, err
	}
	if err := setWidths(f, sheet, len(header), 28, 7); err != nil {
		f.Close()
		return nil, err
	}

	return finish(f)
}
