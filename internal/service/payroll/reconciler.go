package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
)

// Reconciliation is the split of an employee's absences into covered and unpaid days.
type Reconciliation struct {
	AbsentDays        decimal.Decimal
	AutoPaidLeaveDays decimal.Decimal
	UnpaidAbsentDays  decimal.Decimal
	// Coverage is the balance consumption to record, nil when nothing was covered.
	Coverage *payroll.LeaveCoverage
}

// Reconciler offsets absences against the paid auto-cover leave type.
// Reconcile mutates leave balances and must run inside the calculation transaction.
type Reconciler struct {
	attendanceRepo attendance.AttendanceRepository
	leaveTypeRepo  leave.LeaveTypeRepository
	balanceRepo    leave.BalanceRepository
	entryRepo      leave.EntryRepository
}

func NewReconciler(
	attendanceRepo attendance.AttendanceRepository,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	entryRepo leave.EntryRepository,
) *Reconciler {
	return &Reconciler{
		attendanceRepo: attendanceRepo,
		leaveTypeRepo:  leaveTypeRepo,
		balanceRepo:    balanceRepo,
		entryRepo:      entryRepo,
	}
}

// AutoCoverType returns the first paid auto-cover leave type by name, or nil when none exists.
func (r *Reconciler) AutoCoverType(ctx context.Context) (*leave.LeaveType, error) {
	types, err := r.leaveTypeRepo.ListAutoCover(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, nil
	}
	if len(types) > 1 {
		slog.Warn("More than one paid auto-cover leave type, using the first by name",
			"leave_type_id", types[0].ID, "leave_type", types[0].Name, "count", len(types))
	}
	return &types[0], nil
}

// Reconcile covers the employee's ABSENT days in period with autoType, limited by the
// month's cap minus leave already taken and by the yearly balance, which it decrements.
func (r *Reconciler) Reconcile(ctx context.Context, employeeID string, period jalali.Period, cfg payroll.MonthConfig, autoType *leave.LeaveType) (Reconciliation, error) {
	count, err := r.attendanceRepo.CountByStatus(ctx, employeeID, period.Start, period.End, attendance.StatusAbsent)
	if err != nil {
		return Reconciliation{}, err
	}

	absent := decimal.NewFromInt(int64(count))
	result := Reconciliation{
		AbsentDays:        absent,
		AutoPaidLeaveDays: decimal.Zero,
		UnpaidAbsentDays:  absent,
	}
	if autoType == nil || count == 0 {
		return result, nil
	}

	alreadyTaken, err := r.entryRepo.SumDaysOverlapping(ctx, employeeID, autoType.ID, period.Start, period.End)
	if err != nil {
		return Reconciliation{}, err
	}
	monthlyAvailable := money.NonNegative(decimal.NewFromInt(int64(cfg.MonthlyPaidLeaveCap)).Sub(alreadyTaken))

	balance, err := r.balanceRepo.GetOrCreateForUpdate(ctx, employeeID, autoType.ID, period.Year, decimal.NewFromInt(int64(autoType.YearlyLimitDays)))
	if err != nil {
		return Reconciliation{}, err
	}

	covered := money.NonNegative(money.MinOf(absent, monthlyAvailable, balance.RemainingDays))
	if !covered.IsPositive() {
		return result, nil
	}

	if err := r.balanceRepo.UpdateRemaining(ctx, balance.ID, balance.RemainingDays.Sub(covered)); err != nil {
		return Reconciliation{}, fmt.Errorf("failed to consume leave balance: %w", err)
	}

	result.AutoPaidLeaveDays = covered
	result.UnpaidAbsentDays = absent.Sub(covered)
	result.Coverage = &payroll.LeaveCoverage{
		EmployeeID:  employeeID,
		LeaveTypeID: autoType.ID,
		Year:        period.Year,
		Days:        covered,
	}
	return result, nil
}
