package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/file"
)

type calcFixture struct {
	svc       *PayrollServiceImpl
	tx        *passthroughTx
	runs      *fakeRunRepo
	lines     *fakeLineRepo
	coverages *fakeCoverageRepo
	balances  *fakeBalanceRepo
	absent    *fakeAttendanceRepo
	adjust    *fakeAdjustmentRepo
}

func newCalcFixture(t *testing.T) *calcFixture {
	t.Helper()

	f := &calcFixture{
		tx: &passthroughTx{},
		runs: &fakeRunRepo{runs: map[string]payroll.Run{
			"run-1":   {ID: "run-1", Year: 1403, Month: 1, Status: payroll.RunStatusDraft},
			"run-bad": {ID: "run-bad", Year: 1403, Month: 13, Status: payroll.RunStatusDraft},
			"run-fin": {ID: "run-fin", Year: 1402, Month: 12, Status: payroll.RunStatusFinal},
		}},
		lines:     &fakeLineRepo{lines: map[string][]payroll.Line{}},
		coverages: &fakeCoverageRepo{},
		balances:  &fakeBalanceRepo{balances: map[string]*leave.YearBalance{}},
		absent:    &fakeAttendanceRepo{absent: map[string]int{"emp-a": 4}},
		adjust: &fakeAdjustmentRepo{sums: map[payroll.AdjustmentKind]map[string]decimal.Decimal{
			payroll.AdjustmentBonus:   {"emp-a": dec("500")},
			payroll.AdjustmentPrepaid: {"emp-b": dec("5000")},
		}},
	}

	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-b", FirstName: "Zahir", FatherName: "Noor", BaseSalary: dec("2600"), Status: employee.StatusWorking},
		{ID: "emp-a", FirstName: "Ahmad", FatherName: "Karim", BaseSalary: dec("26000"), Status: employee.StatusWorking},
	}}
	leaveTypes := &fakeLeaveTypeRepo{autoCover: []leave.LeaveType{
		{ID: "lt-annual", Name: "Annual", YearlyLimitDays: 3, IsPaid: true, AutoCoverAbsence: true},
	}}

	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	f.svc = &PayrollServiceImpl{
		tx:              f.tx,
		runRepo:         f.runs,
		lineRepo:        f.lines,
		coverageRepo:    f.coverages,
		monthConfigRepo: &fakeMonthConfigRepo{configs: map[string]payroll.MonthConfig{}},
		adjustmentRepo:  f.adjust,
		employeeRepo:    employees,
		overtimeRepo:    &fakeOvertimeRepo{hours: map[string]decimal.Decimal{"emp-a": dec("10")}},
		reconciler:      NewReconciler(f.absent, leaveTypes, f.balances, &fakeEntryRepo{}),
		fileService:     file.NewFileService(local),
		now:             func() time.Time { return time.Date(2024, time.April, 20, 9, 0, 0, 0, time.UTC) },
	}
	return f
}

func (f *calcFixture) balance(employeeID string) decimal.Decimal {
	b, ok := f.balances.balances[employeeID+"/lt-annual/1403"]
	if !ok {
		return decimal.Zero
	}
	return b.RemainingDays
}

func TestCalculateRun_ComputesLines(t *testing.T) {
	f := newCalcFixture(t)

	result, err := f.svc.CalculateRun(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, "1403-01", result.Period.Label)
	assert.Equal(t, 31, result.Period.DayCount)
	assert.Equal(t, 2, result.LinesCount)
	assert.Equal(t, 1, f.tx.calls)

	lines := f.lines.lines["run-1"]
	require.Len(t, lines, 2)
	assert.Equal(t, "emp-a", lines[0].EmployeeID, "lines follow the employee order")

	a := lines[0]
	assertDec(t, "4", a.AbsentDays, "absent")
	assertDec(t, "3", a.AutoPaidLeaveDays, "covered")
	assertDec(t, "1", a.UnpaidAbsentDays, "unpaid")
	assertDec(t, "1000", a.AttendanceDeduction, "deduction")
	assertDec(t, "25000", a.Salary, "salary")
	assertDec(t, "1250", a.OvertimeAmount, "overtime") // 10h * 1 * 125
	assertDec(t, "26750", a.Total, "total")
	assertDec(t, "0", f.balance("emp-a"), "balance after coverage")
	require.Len(t, f.coverages.rows, 1)
	assert.Equal(t, "run-1", f.coverages.rows[0].RunID)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Zahir Noor")
	assert.True(t, lines[1].AmountToPay.IsNegative())

	assert.NotNil(t, f.runs.runs["run-1"].CalculatedAt)
	assertDec(t, lines[0].AmountToPay.Add(lines[1].AmountToPay).String(), result.Totals.AmountToPay, "totals")
}

func TestCalculateRun_RerunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newCalcFixture(t)

	_, err := f.svc.CalculateRun(ctx, "run-1")
	require.NoError(t, err)
	first := append([]payroll.Line(nil), f.lines.lines["run-1"]...)
	balanceAfterFirst := f.balance("emp-a")

	_, err = f.svc.CalculateRun(ctx, "run-1")
	require.NoError(t, err)
	second := f.lines.lines["run-1"]

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].EmployeeID, second[i].EmployeeID)
		assert.True(t, first[i].AmountToPay.Equal(second[i].AmountToPay), "amount to pay of %s", first[i].EmployeeID)
		assert.True(t, first[i].AutoPaidLeaveDays.Equal(second[i].AutoPaidLeaveDays), "covered days of %s", first[i].EmployeeID)
	}
	assert.True(t, balanceAfterFirst.Equal(f.balance("emp-a")))
	assert.Len(t, f.coverages.rows, 1)
}

func TestCalculateRun_FinalRunIsRejected(t *testing.T) {
	f := newCalcFixture(t)

	_, err := f.svc.CalculateRun(context.Background(), "run-fin")
	assert.ErrorIs(t, err, payroll.ErrRunFinalized)
	assert.Equal(t, 0, f.tx.calls)
	assert.Equal(t, 0, f.lines.deletes)
}

func TestCalculateRun_InvalidPeriodWritesNothing(t *testing.T) {
	f := newCalcFixture(t)

	_, err := f.svc.CalculateRun(context.Background(), "run-bad")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
	assert.ErrorIs(t, err, jalali.ErrInvalidDate)
	assert.Equal(t, 0, f.tx.calls)
	assert.Equal(t, 0, f.lines.writes)
}

func TestCalculateRun_UnknownRun(t *testing.T) {
	f := newCalcFixture(t)

	_, err := f.svc.CalculateRun(context.Background(), "missing")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestDeleteRun_CreditsCoverageBack(t *testing.T) {
	ctx := context.Background()
	f := newCalcFixture(t)

	_, err := f.svc.CalculateRun(ctx, "run-1")
	require.NoError(t, err)
	assertDec(t, "0", f.balance("emp-a"), "balance after calculation")

	require.NoError(t, f.svc.DeleteRun(ctx, "run-1"))
	assertDec(t, "3", f.balance("emp-a"), "balance after delete")
	assert.Empty(t, f.coverages.rows)
	_, ok := f.runs.runs["run-1"]
	assert.False(t, ok)

	assert.ErrorIs(t, f.svc.DeleteRun(ctx, "run-fin"), payroll.ErrRunFinalized)
}

func TestFinalizeRun(t *testing.T) {
	ctx := context.Background()
	f := newCalcFixture(t)

	_, err := f.svc.FinalizeRun(ctx, "run-1")
	assert.ErrorIs(t, err, payroll.ErrRunNotCalculated)

	_, err = f.svc.CalculateRun(ctx, "run-1")
	require.NoError(t, err)

	resp, err := f.svc.FinalizeRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusFinal, resp.Run.Status)
	require.Len(t, resp.Files, 2)
	assert.Contains(t, resp.Files[0].Path, "payroll/1403-01/payroll-1403-01-")
	assert.Contains(t, resp.Files[1].Name, ".pdf")

	_, err = f.svc.FinalizeRun(ctx, "run-1")
	assert.ErrorIs(t, err, payroll.ErrRunFinalized)

	_, err = f.svc.CalculateRun(ctx, "run-1")
	assert.ErrorIs(t, err, payroll.ErrRunFinalized)
}

func TestMonthConfig_DefaultsAndUpdate(t *testing.T) {
	ctx := context.Background()
	f := newCalcFixture(t)

	cfg, err := f.svc.GetMonthConfig(ctx, 1403, 2)
	require.NoError(t, err)
	assertDec(t, "8", cfg.DailyWorkHours, "daily hours")
	assertDec(t, "1", cfg.OvertimeRate, "overtime rate")
	assert.Equal(t, 5, cfg.MonthlyPaidLeaveCap)

	rate := dec("1.5")
	updated, err := f.svc.UpdateMonthConfig(ctx, payroll.UpdateMonthConfigRequest{Year: 1403, Month: 2, OvertimeRate: &rate})
	require.NoError(t, err)
	assertDec(t, "1.5", updated.OvertimeRate, "overtime rate")
	assertDec(t, "8", updated.DailyWorkHours, "daily hours")

	_, err = f.svc.GetMonthConfig(ctx, 1403, 13)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
