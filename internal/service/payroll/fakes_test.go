package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// In-memory stores backing the calculation tests. Unused interface methods are left nil.

// passthroughTx counts calls and never rolls back. Rollback runs against postgres in
// repository/postgresql/postgresql_test.
type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fakeRunRepo struct {
	payroll.RunRepository
	runs map[string]payroll.Run
}

func (f *fakeRunRepo) get(id string) (payroll.Run, error) {
	run, ok := f.runs[id]
	if !ok {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return run, nil
}

func (f *fakeRunRepo) GetByID(_ context.Context, id string) (payroll.Run, error) { return f.get(id) }

func (f *fakeRunRepo) GetByIDForUpdate(_ context.Context, id string) (payroll.Run, error) {
	return f.get(id)
}

func (f *fakeRunRepo) MarkCalculated(_ context.Context, id string, at time.Time) error {
	run := f.runs[id]
	run.CalculatedAt = &at
	f.runs[id] = run
	return nil
}

func (f *fakeRunRepo) MarkFinal(_ context.Context, id string, at time.Time) error {
	run := f.runs[id]
	run.Status = payroll.RunStatusFinal
	run.FinalizedAt = &at
	f.runs[id] = run
	return nil
}

func (f *fakeRunRepo) Delete(_ context.Context, id string) error {
	delete(f.runs, id)
	return nil
}

type fakeLineRepo struct {
	payroll.LineRepository
	lines   map[string][]payroll.Line
	writes  int
	deletes int
}

func (f *fakeLineRepo) CreateBatch(_ context.Context, lines []payroll.Line) error {
	f.writes++
	for i, l := range lines {
		l.ID = fmt.Sprintf("line-%d", i)
		f.lines[l.RunID] = append(f.lines[l.RunID], l)
	}
	return nil
}

func (f *fakeLineRepo) DeleteByRun(_ context.Context, runID string) (int64, error) {
	f.deletes++
	n := len(f.lines[runID])
	delete(f.lines, runID)
	return int64(n), nil
}

func (f *fakeLineRepo) ListByRun(_ context.Context, runID string) ([]payroll.Line, error) {
	return f.lines[runID], nil
}

type fakeCoverageRepo struct {
	payroll.CoverageRepository
	rows []payroll.LeaveCoverage
}

func (f *fakeCoverageRepo) Create(_ context.Context, c payroll.LeaveCoverage) error {
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCoverageRepo) ListByRun(_ context.Context, runID string) ([]payroll.LeaveCoverage, error) {
	var out []payroll.LeaveCoverage
	for _, c := range f.rows {
		if c.RunID == runID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCoverageRepo) DeleteByRun(_ context.Context, runID string) (int64, error) {
	kept := f.rows[:0]
	var n int64
	for _, c := range f.rows {
		if c.RunID == runID {
			n++
			continue
		}
		kept = append(kept, c)
	}
	f.rows = kept
	return n, nil
}

type fakeMonthConfigRepo struct {
	payroll.MonthConfigRepository
	configs map[string]payroll.MonthConfig
}

func (f *fakeMonthConfigRepo) GetOrCreate(_ context.Context, year, month int) (payroll.MonthConfig, error) {
	key := fmt.Sprintf("%d-%d", year, month)
	cfg, ok := f.configs[key]
	if !ok {
		cfg = payroll.DefaultMonthConfig(year, month)
		f.configs[key] = cfg
	}
	return cfg, nil
}

func (f *fakeMonthConfigRepo) Upsert(_ context.Context, cfg payroll.MonthConfig) (payroll.MonthConfig, error) {
	f.configs[fmt.Sprintf("%d-%d", cfg.Year, cfg.Month)] = cfg
	return cfg, nil
}

type fakeAdjustmentRepo struct {
	payroll.AdjustmentRepository
	sums map[payroll.AdjustmentKind]map[string]decimal.Decimal
}

func (f *fakeAdjustmentRepo) SumByEmployee(_ context.Context, kind payroll.AdjustmentKind, employeeID string, _, _ int) (decimal.Decimal, error) {
	return f.sums[kind][employeeID], nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) ListWorking(_ context.Context, _ string) ([]employee.Employee, error) {
	out := append([]employee.Employee(nil), f.employees...)
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	return out, nil
}

type fakeOvertimeRepo struct {
	overtime.OvertimeRepository
	hours map[string]decimal.Decimal
}

func (f *fakeOvertimeRepo) SumHours(_ context.Context, employeeID string, _, _ time.Time) (decimal.Decimal, error) {
	return f.hours[employeeID], nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	absent map[string]int
}

func (f *fakeAttendanceRepo) CountByStatus(_ context.Context, employeeID string, _, _ time.Time, _ attendance.Status) (int, error) {
	return f.absent[employeeID], nil
}

type fakeLeaveTypeRepo struct {
	leave.LeaveTypeRepository
	autoCover []leave.LeaveType
}

func (f *fakeLeaveTypeRepo) ListAutoCover(_ context.Context) ([]leave.LeaveType, error) {
	return f.autoCover, nil
}

type fakeBalanceRepo struct {
	leave.BalanceRepository
	balances map[string]*leave.YearBalance
}

func (f *fakeBalanceRepo) GetOrCreateForUpdate(_ context.Context, employeeID, leaveTypeID string, year int, initialDays decimal.Decimal) (leave.YearBalance, error) {
	key := fmt.Sprintf("%s/%s/%d", employeeID, leaveTypeID, year)
	b, ok := f.balances[key]
	if !ok {
		b = &leave.YearBalance{ID: key, EmployeeID: employeeID, LeaveTypeID: leaveTypeID, Year: year, RemainingDays: initialDays}
		f.balances[key] = b
	}
	return *b, nil
}

func (f *fakeBalanceRepo) UpdateRemaining(_ context.Context, id string, remaining decimal.Decimal) error {
	f.balances[id].RemainingDays = remaining
	return nil
}

type fakeEntryRepo struct {
	leave.EntryRepository
}

func (f *fakeEntryRepo) SumDaysOverlapping(context.Context, string, string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
