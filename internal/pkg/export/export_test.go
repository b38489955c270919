package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func farvardin(t *testing.T) jalali.Period {
	p, err := jalali.ResolvePeriod(1403, 1)
	require.NoError(t, err)
	return p
}

func open(t *testing.T, data []byte) *excelize.File {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, name string) string {
	v, err := f.GetCellValue(sheet, name)
	require.NoError(t, err)
	return v
}

func sampleLines() ([]payroll.LineResponse, payroll.Totals) {
	lines := []payroll.LineResponse{
		{
			EmployeeID:          "0192f0c1-0000-7000-8000-000000000001",
			EmployeeName:        "Ahmad Karim",
			BaseSalary:          d("26000"),
			AttendanceDeduction: d("2000"),
			Salary:              d("24000"),
			BonusAmount:         d("500"),
			OvertimeAmount:      d("101.3001"),
			Total:               d("24601.30"),
			TaxAmount:           d("1360.13"),
			PrepaidAmount:       d("0"),
			AmountToPay:         d("23241.17"),
		},
	}
	return lines, payroll.Totals{
		BaseSalary:          d("26000"),
		AttendanceDeduction: d("2000"),
		Salary:              d("24000"),
		BonusAmount:         d("500"),
		OvertimeAmount:      d("101.3001"),
		Total:               d("24601.30"),
		TaxAmount:           d("1360.13"),
		PrepaidAmount:       d("0"),
		AmountToPay:         d("23241.17"),
	}
}

func TestPayrollXLSX(t *testing.T) {
	lines, totals := sampleLines()
	data, err := PayrollXLSX(farvardin(t), lines, totals)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{"1403-01"}, f.GetSheetList())

	assert.Equal(t, "Employee", cell(t, f, "1403-01", "A1"))
	assert.Equal(t, "Attendance Deduction", cell(t, f, "1403-01", "C1"))
	assert.Equal(t, "Amount To Pay", cell(t, f, "1403-01", "J1"))

	assert.Equal(t, "Ahmad Karim", cell(t, f, "1403-01", "A2"))
	assert.Equal(t, "2000", cell(t, f, "1403-01", "C2"))
	assert.Equal(t, "101.31", cell(t, f, "1403-01", "F2"), "values are ceiling-rounded")

	assert.Equal(t, "TOTALS", cell(t, f, "1403-01", "A3"))
	assert.Equal(t, "24000", cell(t, f, "1403-01", "D3"))

	width, err := f.GetColWidth("1403-01", "A")
	require.NoError(t, err)
	assert.Equal(t, 28.0, width)
	width, err = f.GetColWidth("1403-01", "J")
	require.NoError(t, err)
	assert.Equal(t, 18.0, width)
}

func TestPayrollPDF(t *testing.T) {
	lines, totals := sampleLines()
	lines = append(lines, payroll.LineResponse{EmployeeID: "0192f0c1-0000-7000-8000-0000000000ab", EmployeeName: "احمد کریم"})

	data, err := PayrollPDF(farvardin(t), lines, totals)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPdfName(t *testing.T) {
	identity := func(s string) string { return s }

	assert.Equal(t, "Ahmad Karim", pdfName(payroll.LineResponse{EmployeeName: "Ahmad Karim"}, identity))
	assert.Equal(t, "Employee 000000ab", pdfName(payroll.LineResponse{
		EmployeeID:   "0192f0c1-0000-7000-8000-0000000000ab",
		EmployeeName: "احمد",
	}, identity))
}

func TestAttendanceXLSX(t *testing.T) {
	p := farvardin(t)
	cells := make([]string, p.DayCount)
	cells[0] = string(attendance.StatusAbsent)
	cells[1] = string(attendance.StatusLeave)

	data, err := AttendanceXLSX(p, []attendance.GridRow{{EmployeeID: "e1", EmployeeName: "Ahmad Karim", Cells: cells}})
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, "Employee", cell(t, f, "1403-01", "A1"))
	assert.Equal(t, "1403-1-1 Wednesday", cell(t, f, "1403-01", "B1"))
	assert.Equal(t, "1403-1-3 Friday", cell(t, f, "1403-01", "D1"))

	assert.Equal(t, "غیر حاضر", cell(t, f, "1403-01", "B2"))
	assert.Equal(t, "رخصت", cell(t, f, "1403-01", "C2"))
	assert.Equal(t, "جمعه", cell(t, f, "1403-01", "D2"))
	assert.Equal(t, "حاضر", cell(t, f, "1403-01", "E2"))

	width, err := f.GetColWidth("1403-01", "B")
	require.NoError(t, err)
	assert.Equal(t, 7.0, width)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "نوبتی", StatusLabel("SHIFT_OFF", false))
	assert.Equal(t, "رخصتی", StatusLabel("HOLIDAY", false))
	assert.Equal(t, "جمعه", StatusLabel("ABSENT", true), "fridays ignore stored values")
	assert.Equal(t, "حاضر", StatusLabel("", false))
}

func TestOvertimeXLSX(t *testing.T) {
	p := farvardin(t)
	hours := make([]decimal.Decimal, p.DayCount)
	for i := range hours {
		hours[i] = decimal.Zero
	}
	hours[0] = d("1.501")
	hours[4] = d("2")

	data, err := OvertimeXLSX(p, []overtime.GridRow{{EmployeeID: "e1", EmployeeName: "Ahmad Karim", Hours: hours, TotalHours: d("3.501")}})
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, "Employee", cell(t, f, "1403-01", "A1"))
	assert.Equal(t, "1", cell(t, f, "1403-01", "B1"))
	assert.Equal(t, "31", cell(t, f, "1403-01", "AF1"))
	assert.Equal(t, "Total Hours", cell(t, f, "1403-01", "AG1"))

	assert.Equal(t, "1.51", cell(t, f, "1403-01", "B2"))
	assert.Equal(t, "2", cell(t, f, "1403-01", "F2"))
	assert.Equal(t, "3.51", cell(t, f, "1403-01", "AG2"))
}
