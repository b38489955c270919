package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
)

var workingDays = decimal.NewFromInt(payroll.WorkingDays)

// LineInput is everything CalculateLine needs about one employee for one period.
type LineInput struct {
	RunID         string
	EmployeeID    string
	BaseSalary    decimal.Decimal
	Absence       Reconciliation
	OvertimeHours decimal.Decimal
	BonusSum      decimal.Decimal
	PrepaidSum    decimal.Decimal
	Config        payroll.MonthConfig
}

// CalculateLine computes one payroll line. The deduction is ceiling-rounded, every other
// amount is rounded half-even. Products are taken before divisions so exact results stay exact.
func CalculateLine(in LineInput) payroll.Line {
	base := in.BaseSalary

	// dailyRate * unpaidDays, computed as base * unpaidDays / 26. Dividing first truncates
	// the quotient, and the ceiling then lifts whole amounts a cent: (3/26)*26 gives 3.01.
	deduction := money.Ceil2(base.Mul(in.Absence.UnpaidAbsentDays).Div(workingDays))
	salary := money.Round2(base.Sub(deduction))

	overtimeAmount := decimal.Zero
	monthlyWorkHours := workingDays.Mul(in.Config.DailyWorkHours)
	if !monthlyWorkHours.IsZero() {
		// hours * rate * (base / monthlyWorkHours)
		overtimeAmount = in.OvertimeHours.Mul(in.Config.OvertimeRate).Mul(base).Div(monthlyWorkHours)
	}
	overtimeAmount = money.Round2(overtimeAmount)

	bonus := money.Round2(in.BonusSum)
	total := money.Round2(money.Sum(salary, bonus, overtimeAmount))
	tax := ProgressiveTax(total)
	prepaid := money.Round2(in.PrepaidSum)

	return payroll.Line{
		RunID:               in.RunID,
		EmployeeID:          in.EmployeeID,
		BaseSalary:          base,
		AttendanceDeduction: deduction,
		Salary:              salary,
		BonusAmount:         bonus,
		OvertimeAmount:      overtimeAmount,
		Total:               total,
		TaxAmount:           tax,
		PrepaidAmount:       prepaid,
		AmountToPay:         money.Round2(total.Sub(tax).Sub(prepaid)),
		AbsentDays:          in.Absence.AbsentDays,
		AutoPaidLeaveDays:   in.Absence.AutoPaidLeaveDays,
		UnpaidAbsentDays:    in.Absence.UnpaidAbsentDays,
		OvertimeHours:       in.OvertimeHours,
	}
}
