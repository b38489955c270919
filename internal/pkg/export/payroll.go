package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
)

const pdfMargin = 12.0

var payrollHeaders = []string{
	"Employee",
	"Base Salary",
	"Attendance Deduction",
	"Salary",
	"Bonus",
	"Overtime",
	"Total",
	"Tax",
	"Prepaid",
	"Amount To Pay",
}

func totalsRow(t payroll.Totals) []interface{} {
	return []interface{}{
		"TOTALS",
		cellAmount(t.BaseSalary),
		cellAmount(t.AttendanceDeduction),
		cellAmount(t.Salary),
		cellAmount(t.BonusAmount),
		cellAmount(t.OvertimeAmount),
		cellAmount(t.Total),
		cellAmount(t.TaxAmount),
		cellAmount(t.PrepaidAmount),
		cellAmount(t.AmountToPay),
	}
}

func lineRow(l payroll.LineResponse) []interface{} {
	return []interface{}{
		l.EmployeeName,
		cellAmount(l.BaseSalary),
		cellAmount(l.AttendanceDeduction),
		cellAmount(l.Salary),
		cellAmount(l.BonusAmount),
		cellAmount(l.OvertimeAmount),
		cellAmount(l.Total),
		cellAmount(l.TaxAmount),
		cellAmount(l.PrepaidAmount),
		cellAmount(l.AmountToPay),
	}
}

// PayrollXLSX renders a run's lines on a sheet named after the period, followed by a TOTALS row.
func PayrollXLSX(period jalali.Period, lines []payroll.LineResponse, totals payroll.Totals) ([]byte, error) {
	sheet := period.Label()
	f, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(payrollHeaders))
	for i, h := range payrollHeaders {
		header[i] = h
	}
	if err := writeRow(f, sheet, 1, header); err != nil {
		f.Close()
		return nil, err
	}

	row := 2
	for _, l := range lines {
		if err := writeRow(f, sheet, row, lineRow(l)); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	if err := writeRow(f, sheet, row, totalsRow(totals)); err != nil {
		f.Close()
		return nil, err
	}

	if err := styleHeader(f, sheet, len(payrollHeaders)); err != nil {
		f.Close()
		return nil, err
	}
	if err := setWidths(f, sheet, len(payrollHeaders), 28, 18); err != nil {
		f.Close()
		return nil, err
	}

	return finish(f)
}

// PayrollPDF renders the same table as PayrollXLSX on landscape A4 pages.
func PayrollPDF(period jalali.Period, lines []payroll.LineResponse, totals payroll.Totals) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(10, pdfMargin, 10)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Payroll "+period.Label(), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s (%d days)",
		period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"), period.DayCount), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{53}
	for range payrollHeaders[1:] {
		widths = append(widths, 24.8)
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range payrollHeaders {
			pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()

	writeCells := func(values []interface{}, bold bool) {
		if pdf.GetY()+7 > pageHeight-pdfMargin {
			pdf.AddPage()
			header()
		}
		if bold {
			pdf.SetFont("Helvetica", "B", 9)
		}
		for i, v := range values {
			switch val := v.(type) {
			case string:
				pdf.CellFormat(widths[i], 7, val, "1", 0, "L", false, 0, "")
			case float64:
				pdf.CellFormat(widths[i], 7, fmt.Sprintf("%.2f", val), "1", 0, "R", false, 0, "")
			}
		}
		pdf.Ln(-1)
		if bold {
			pdf.SetFont("Helvetica", "", 9)
		}
	}

	for _, l := range lines {
		values := lineRow(l)
		values[0] = pdfName(l, tr)
		writeCells(values, false)
	}
	writeCells(totalsRow(totals), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfName falls back to a short employee id when the name has characters the core fonts cannot draw.
func pdfName(l payroll.LineResponse, tr func(string) string) string {
	for _, r := range l.EmployeeName {
		if r > 0xFF {
			id := l.EmployeeID
			if len(id) > 8 {
				id = id[len(id)-8:]
			}
			return "Employee " + id
		}
	}
	return tr(l.EmployeeName)
}
