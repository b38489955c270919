package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

type LeaveServiceImpl struct {
	tx             postgresql.Transactor
	leaveTypeRepo  leave.LeaveTypeRepository
	balanceRepo    leave.BalanceRepository
	entryRepo      leave.EntryRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewLeaveService(
	tx postgresql.Transactor,
	leaveTypeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	entryRepo leave.EntryRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:             tx,
		leaveTypeRepo:  leaveTypeRepo,
		balanceRepo:    balanceRepo,
		entryRepo:      entryRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	return out
}

// ========== LEAVE TYPES ==========

func mapLeaveTypeResponse(t leave.LeaveType) *leave.LeaveTypeResponse {
	return &leave.LeaveTypeResponse{
		ID:               t.ID,
		Name:             t.Name,
		YearlyLimitDays:  t.YearlyLimitDays,
		IsPaid:           t.IsPaid,
		AutoCoverAbsence: t.AutoCoverAbsence,
	}
}

// warnMultipleAutoCover logs when the reconciler has more than one candidate type.
func (s *LeaveServiceImpl) warnMultipleAutoCover(ctx context.Context) {
	types, err := s.leaveTypeRepo.ListAutoCover(ctx)
	if err != nil {
		slog.Warn("Failed to check auto-cover leave types", "error", err)
		return
	}
	if len(types) > 1 {
		slog.Warn("More than one paid auto-cover leave type exists, payroll uses the first by name",
			"leave_type", types[0].Name, "count", len(types))
	}
}

func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (*leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.leaveTypeRepo.Create(ctx, leave.LeaveType{
		Name:             req.Name,
		YearlyLimitDays:  req.YearlyLimitDays,
		IsPaid:           req.IsPaid,
		AutoCoverAbsence: req.AutoCoverAbsence,
	})
	if err != nil {
		return nil, err
	}

	if created.CoversAbsence() {
		s.warnMultipleAutoCover(ctx)
	}
	slog.Info("Leave type created", "leave_type_id", created.ID, "name", created.Name)
	return mapLeaveTypeResponse(created), nil
}

func (s *LeaveServiceImpl) GetLeaveType(ctx context.Context, id string) (*leave.LeaveTypeResponse, error) {
	t, err := s.leaveTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapLeaveTypeResponse(t), nil
}

func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		result = append(result, *mapLeaveTypeResponse(t))
	}
	return result, nil
}

func (s *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (*leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.leaveTypeRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	updated, err := s.leaveTypeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if updated.CoversAbsence() {
		s.warnMultipleAutoCover(ctx)
	}
	return mapLeaveTypeResponse(updated), nil
}

func (s *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	return s.leaveTypeRepo.Delete(ctx, id)
}

// ========== BALANCES ==========

func (s *LeaveServiceImpl) ListBalances(ctx context.Context, filter leave.BalanceFilter) ([]leave.BalanceResponse, error) {
	balances, err := s.balanceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		result = append(result, leave.BalanceResponse{
			ID:            b.ID,
			EmployeeID:    b.EmployeeID,
			Year:          b.Year,
			LeaveTypeID:   b.LeaveTypeID,
			LeaveTypeName: b.LeaveTypeName,
			RemainingDays: b.RemainingDays,
		})
	}
	return result, nil
}

// ========== ENTRIES ==========

func mapEntryResponse(e leave.Entry) *leave.EntryResponse {
	return &leave.EntryResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		EmployeeName:   e.EmployeeName,
		LeaveTypeID:    e.LeaveTypeID,
		LeaveTypeName:  e.LeaveTypeName,
		DateFrom:       e.DateFrom.Format(dateLayout),
		DateTo:         e.DateTo.Format(dateLayout),
		DateFromJalali: jalali.Format(e.DateFrom),
		DateToJalali:   jalali.Format(e.DateTo),
		DaysCount:      e.DaysCount,
		ExcessDays:     e.ExcessDays,
		Note:           e.Note,
	}
}

// prepareEntry validates req and resolves the employee and leave type it references.
func (s *LeaveServiceImpl) prepareEntry(ctx context.Context, req leave.CreateEntryRequest) (leave.Entry, leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.Entry{}, leave.LeaveType{}, err
	}
	dateFrom, _ := time.Parse(dateLayout, req.DateFrom)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Entry{}, leave.LeaveType{}, err
	}
	leaveType, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.Entry{}, leave.LeaveType{}, err
	}

	return leave.Entry{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: leaveType.ID,
		DateFrom:    dateFrom,
		DaysCount:   req.DaysCount,
		Note:        req.Note,
	}, leaveType, nil
}

// PreviewEntry is a dry run of CreateEntry against the current balance.
func (s *LeaveServiceImpl) PreviewEntry(ctx context.Context, req leave.CreateEntryRequest) (*leave.ApplicationPreview, error) {
	entry, leaveType, err := s.prepareEntry(ctx, req)
	if err != nil {
		return nil, err
	}

	year := jalali.YearOf(entry.DateFrom)
	balance, err := s.balanceRepo.GetByKey(ctx, entry.EmployeeID, leaveType.ID, year)
	if err != nil {
		if !errors.Is(err, leave.ErrBalanceNotFound) {
			return nil, err
		}
		// First use of the year creates the balance at the yearly limit.
		balance = leave.YearBalance{EmployeeID: entry.EmployeeID, LeaveTypeID: leaveType.ID, Year: year, RemainingDays: decimal.NewFromInt(int64(leaveType.YearlyLimitDays))}
	}

	plan := PlanApplication(entry, balance, leaveType.Name)
	return &leave.ApplicationPreview{
		DateTo:           plan.DateTo.Format(dateLayout),
		BalanceYear:      plan.BalanceYear,
		CurrentRemaining: balance.RemainingDays,
		Taken:            plan.Taken,
		ExcessDays:       plan.ExcessDays,
		NewRemaining:     plan.NewRemaining,
		LeaveDates:       formatDates(plan.LeaveDates),
	}, nil
}

// CreateEntry records the leave, consumes the balance of the Jalali year of DateFrom and
// marks every non-Friday day of the span as LEAVE, all in one transaction.
func (s *LeaveServiceImpl) CreateEntry(ctx context.Context, req leave.CreateEntryRequest) (*leave.EntryResponse, error) {
	entry, leaveType, err := s.prepareEntry(ctx, req)
	if err != nil {
		return nil, err
	}

	var created leave.Entry
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		year := jalali.YearOf(entry.DateFrom)
		balance, err := s.balanceRepo.GetOrCreateForUpdate(txCtx, entry.EmployeeID, leaveType.ID, year, decimal.NewFromInt(int64(leaveType.YearlyLimitDays)))
		if err != nil {
			return err
		}

		plan := PlanApplication(entry, balance, leaveType.Name)
		entry.DateTo = plan.DateTo
		entry.ExcessDays = plan.ExcessDays

		created, err = s.entryRepo.Create(txCtx, entry)
		if err != nil {
			return err
		}
		if err := s.balanceRepo.UpdateRemaining(txCtx, balance.ID, plan.NewRemaining); err != nil {
			return err
		}

		for _, d := range plan.LeaveDates {
			if _, err := s.attendanceRepo.Upsert(txCtx, attendance.Exception{
				EmployeeID: entry.EmployeeID,
				Date:       d,
				Status:     attendance.StatusLeave,
				Note:       plan.Note,
			}); err != nil {
				return fmt.Errorf("failed to mark leave on %s: %w", d.Format(dateLayout), err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := leaveType.Name
	created.LeaveTypeName = &name
	slog.Info("Leave entry created",
		"entry_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", leaveType.Name,
		"days", created.DaysCount.String(),
		"excess_days", created.ExcessDays.String(),
	)
	return mapEntryResponse(created), nil
}

func (s *LeaveServiceImpl) ListEntries(ctx context.Context, filter leave.EntryFilter) ([]leave.EntryResponse, error) {
	if filter.Year != nil && filter.Month != nil {
		if _, err := jalali.ResolvePeriod(*filter.Year, *filter.Month); err != nil {
			return nil, err
		}
	}

	entries, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]leave.EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, *mapEntryResponse(e))
	}
	return result, nil
}

func (s *LeaveServiceImpl) planReversal(ctx context.Context, id string) (leave.Entry, leave.Reversal, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		return leave.Entry{}, leave.Reversal{}, err
	}

	others, err := s.entryRepo.ListOverlapping(ctx, entry.EmployeeID, entry.DateFrom, entry.DateTo)
	if err != nil {
		return leave.Entry{}, leave.Reversal{}, err
	}
	return entry, PlanReversal(entry, others), nil
}

func reversalPreview(entryID string, r leave.Reversal) *leave.ReversalPreview {
	return &leave.ReversalPreview{
		EntryID:    entryID,
		LeaveDates: formatDates(r.LeaveDates),
		Retained:   formatDates(r.Retained),
	}
}

// PreviewRevert lists the LEAVE rows DeleteEntry would remove.
func (s *LeaveServiceImpl) PreviewRevert(ctx context.Context, id string) (*leave.ReversalPreview, error) {
	_, reversal, err := s.planReversal(ctx, id)
	if err != nil {
		return nil, err
	}
	return reversalPreview(id, reversal), nil
}

// DeleteEntry removes the entry and the LEAVE rows only it covered. The balance is not restored.
func (s *LeaveServiceImpl) DeleteEntry(ctx context.Context, id string) (*leave.ReversalPreview, error) {
	var (
		entry    leave.Entry
		reversal leave.Reversal
		removed  int64
	)
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		entry, reversal, err = s.planReversal(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.entryRepo.Delete(txCtx, entry.ID); err != nil {
			return err
		}
		if len(reversal.LeaveDates) > 0 {
			removed, err = s.attendanceRepo.DeleteLeaveDates(txCtx, entry.EmployeeID, reversal.LeaveDates)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Leave entry deleted", "entry_id", entry.ID, "employee_id", entry.EmployeeID, "leave_rows_removed", removed, "retained", len(reversal.Retained))
	return reversalPreview(entry.ID, reversal), nil
}
