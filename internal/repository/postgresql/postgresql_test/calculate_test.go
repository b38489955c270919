package postgresql_test

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingOvertimeRepository fails SumHours for one employee.
type failingOvertimeRepository struct {
	overtime.OvertimeRepository
	employeeID string
}

func (r failingOvertimeRepository) SumHours(ctx context.Context, employeeID string, from, to time.Time) (decimal.Decimal, error) {
	if employeeID == r.employeeID {
		return decimal.Zero, assert.AnError
	}
	return r.OvertimeRepository.SumHours(ctx, employeeID, from, to)
}

func (s *RepositorySuite) newPayrollService(overtimeRepo overtime.OvertimeRepository) payroll.PayrollService {
	db := s.testDB.DB
	reconciler := payrollService.NewReconciler(
		postgresql.NewAttendanceRepository(db),
		postgresql.NewLeaveTypeRepository(db),
		postgresql.NewLeaveBalanceRepository(db),
		postgresql.NewLeaveEntryRepository(db),
	)
	return payrollService.NewPayrollService(
		postgresql.NewTransactor(db),
		postgresql.NewPayrollRunRepository(db),
		postgresql.NewPayrollLineRepository(db),
		postgresql.NewLeaveCoverageRepository(db),
		postgresql.NewMonthConfigRepository(db),
		postgresql.NewAdjustmentRepository(db),
		postgresql.NewEmployeeRepository(db),
		overtimeRepo,
		reconciler,
		nil,
	)
}

func (s *RepositorySuite) TestCalculateRun_FailureLeavesPreviousResult() {
	ctx := s.ctx
	t := s.T()
	db := s.testDB.DB
	p := s.seedPlacement("Payroll")

	employeeRepo := postgresql.NewEmployeeRepository(db)
	first, err := employeeRepo.Create(ctx, newEmployee(p, "Ahmad", "Karim", employee.StatusWorking))
	require.NoError(t, err)
	second, err := employeeRepo.Create(ctx, newEmployee(p, "Zahir", "Wali", employee.StatusWorking))
	require.NoError(t, err)

	annual, err := postgresql.NewLeaveTypeRepository(db).Create(ctx, leave.LeaveType{
		Name: "Annual", YearlyLimitDays: 20, IsPaid: true, AutoCoverAbsence: true,
	})
	require.NoError(t, err)

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	absentOn := func(day int) {
		_, err := attendanceRepo.Upsert(ctx, attendance.Exception{
			EmployeeID: first.ID,
			Date:       time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
			Status:     attendance.StatusAbsent,
		})
		require.NoError(t, err)
	}
	absentOn(23)
	absentOn(24)

	run, err := postgresql.NewPayrollRunRepository(db).Create(ctx, payroll.Run{Year: 1403, Month: 1})
	require.NoError(t, err)

	overtimeRepo := postgresql.NewOvertimeRepository(db)
	result, err := s.newPayrollService(overtimeRepo).CalculateRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.LinesCount)

	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	assertRemaining := func(want int64) {
		t.Helper()
		bal, err := balanceRepo.GetByKey(ctx, first.ID, annual.ID, 1403)
		require.NoError(t, err)
		assert.True(t, bal.RemainingDays.Equal(decimal.NewFromInt(want)), "remaining = %s, want %d", bal.RemainingDays, want)
	}
	assertRemaining(18)

	// the first employee is reconciled and debited before the second one fails
	absentOn(25)
	_, err = s.newPayrollService(failingOvertimeRepository{OvertimeRepository: overtimeRepo, employeeID: second.ID}).CalculateRun(ctx, run.ID)
	require.ErrorIs(t, err, assert.AnError)

	lines, err := postgresql.NewPayrollLineRepository(db).ListByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, first.ID, lines[0].EmployeeID)
	assert.True(t, lines[0].AbsentDays.Equal(decimal.NewFromInt(2)), "absent = %s", lines[0].AbsentDays)
	assertRemaining(18)

	coverages, err := postgresql.NewLeaveCoverageRepository(db).ListByRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, coverages, 1)
	assert.True(t, coverages[0].Days.Equal(decimal.NewFromInt(2)))

	// credit back happens once: 20 - 3, not 18 - 3
	_, err = s.newPayrollService(overtimeRepo).CalculateRun(ctx, run.ID)
	require.NoError(t, err)
	assertRemaining(17)
}
