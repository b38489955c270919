package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

type AttendanceServiceImpl struct {
	tx             postgresql.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	tx postgresql.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func mapExceptionResponse(ex attendance.Exception) attendance.ExceptionResponse {
	return attendance.ExceptionResponse{
		ID:           ex.ID,
		EmployeeID:   ex.EmployeeID,
		EmployeeName: ex.EmployeeName,
		Date:         ex.Date.Format(dateLayout),
		JalaliDate:   jalali.Format(ex.Date),
		Status:       string(ex.Status),
		Note:         ex.Note,
	}
}

// ========== SINGLE EXCEPTIONS ==========

// UpsertException implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpsertException(ctx context.Context, req attendance.UpsertExceptionRequest) (attendance.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ExceptionResponse{}, err
	}

	date, _ := time.Parse(dateLayout, req.Date)
	if jalali.IsWeeklyHoliday(date) {
		return attendance.ExceptionResponse{}, attendance.ErrWeeklyHoliday
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ExceptionResponse{}, err
	}

	saved, err := s.attendanceRepo.Upsert(ctx, attendance.Exception{
		EmployeeID: emp.ID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Note:       req.Note,
	})
	if err != nil {
		return attendance.ExceptionResponse{}, err
	}
	name := emp.FullName()
	saved.EmployeeName = &name

	return mapExceptionResponse(saved), nil
}

// DeleteException implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteException(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

// ListExceptions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListExceptions(ctx context.Context, filter attendance.ExceptionFilter) ([]attendance.ExceptionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	period, err := jalali.ResolvePeriod(filter.Year, filter.Month)
	if err != nil {
		return nil, err
	}

	var employeeIDs []string
	switch {
	case filter.EmployeeID != "":
		employeeIDs = []string{filter.EmployeeID}
	case filter.DepartmentID != "":
		employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{DepartmentID: &filter.DepartmentID})
		if err != nil {
			return nil, err
		}
		if len(employees) == 0 {
			return []attendance.ExceptionResponse{}, nil
		}
		for _, e := range employees {
			employeeIDs = append(employeeIDs, e.ID)
		}
	}

	exceptions, err := s.attendanceRepo.ListByRange(ctx, employeeIDs, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.ExceptionResponse, 0, len(exceptions))
	for _, ex := range exceptions {
		result = append(result, mapExceptionResponse(ex))
	}
	return result, nil
}

// ========== MONTHLY GRID ==========

func gridDays(period jalali.Period) []attendance.GridDay {
	days := make([]attendance.GridDay, 0, period.DayCount)
	for i, d := range period.Days() {
		dari, english := jalali.WeekdayNames(d)
		days = append(days, attendance.GridDay{
			Day:             i + 1,
			Date:            d.Format(dateLayout),
			Weekday:         english,
			WeekdayDari:     dari,
			IsWeeklyHoliday: jalali.IsWeeklyHoliday(d),
		})
	}
	return days
}

func employeeIDs(employees []employee.Employee) []string {
	ids := make([]string, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids
}

func (s *AttendanceServiceImpl) buildGrid(ctx context.Context, period jalali.Period, departmentID string) (attendance.GridResponse, error) {
	employees, err := s.employeeRepo.ListWorking(ctx, departmentID)
	if err != nil {
		return attendance.GridResponse{}, err
	}

	grid := attendance.GridResponse{
		Year:      period.Year,
		Month:     period.Month,
		MonthName: jalali.MonthName(period.Month),
		Days:      gridDays(period),
		Rows:      make([]attendance.GridRow, 0, len(employees)),
	}
	if len(employees) == 0 {
		return grid, nil
	}

	exceptions, err := s.attendanceRepo.ListByRange(ctx, employeeIDs(employees), period.Start, period.End)
	if err != nil {
		return attendance.GridResponse{}, err
	}

	index := make(map[string]int, len(employees))
	for i, e := range employees {
		index[e.ID] = i
		grid.Rows = append(grid.Rows, attendance.GridRow{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName(),
			Cells:        make([]string, period.DayCount),
		})
	}

	for _, ex := range exceptions {
		row, ok := index[ex.EmployeeID]
		if !ok || jalali.IsWeeklyHoliday(ex.Date) {
			continue
		}
		_, _, jd := jalali.FromGregorian(ex.Date)
		if jd >= 1 && jd <= period.DayCount {
			grid.Rows[row].Cells[jd-1] = string(ex.Status)
		}
	}

	return grid, nil
}

// GetGrid implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetGrid(ctx context.Context, req attendance.GridQuery) (attendance.GridResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GridResponse{}, err
	}
	period, err := jalali.ResolvePeriod(req.Year, req.Month)
	if err != nil {
		return attendance.GridResponse{}, err
	}

	return s.buildGrid(ctx, period, req.DepartmentID)
}

// SaveGrid writes a whole month in one transaction. Friday cells only clear stored rows,
// blank cells mean present.
func (s *AttendanceServiceImpl) SaveGrid(ctx context.Context, req attendance.SaveGridRequest) (attendance.SaveGridResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SaveGridResponse{}, err
	}
	period, err := jalali.ResolvePeriod(req.Year, req.Month)
	if err != nil {
		return attendance.SaveGridResponse{}, err
	}

	var result attendance.SaveGridResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		employees, err := s.employeeRepo.ListWorking(txCtx, req.DepartmentID)
		if err != nil {
			return err
		}
		allowed := make(map[string]bool, len(employees))
		for _, e := range employees {
			allowed[e.ID] = true
		}

		for _, cell := range req.Cells {
			if !allowed[cell.EmployeeID] {
				return fmt.Errorf("%w: %s", attendance.ErrEmployeeNotInGrid, cell.EmployeeID)
			}
			date, err := period.Day(cell.Day)
			if err != nil {
				return fmt.Errorf("%w: %d", attendance.ErrDayOutsidePeriod, cell.Day)
			}

			status := strings.TrimSpace(cell.Status)
			if jalali.IsWeeklyHoliday(date) || status == "" {
				deleted, err := s.attendanceRepo.DeleteByEmployeeDate(txCtx, cell.EmployeeID, date)
				if err != nil {
					return err
				}
				if deleted {
					result.Deleted++
				}
				if jalali.IsWeeklyHoliday(date) {
					result.SkippedFridays++
				}
				continue
			}

			if _, err := s.attendanceRepo.Upsert(txCtx, attendance.Exception{
				EmployeeID: cell.EmployeeID,
				Date:       date,
				Status:     attendance.Status(status),
			}); err != nil {
				return err
			}
			result.Written++
		}
		return nil
	})
	if err != nil {
		return attendance.SaveGridResponse{}, err
	}

	slog.Info("Attendance grid saved",
		"period", period.Label(),
		"written", result.Written,
		"deleted", result.Deleted,
		"skipped_fridays", result.SkippedFridays,
	)
	return result, nil
}

// ExportGrid implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportGrid(ctx context.Context, req attendance.GridQuery) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	period, err := jalali.ResolvePeriod(req.Year, req.Month)
	if err != nil {
		return nil, "", err
	}

	grid, err := s.buildGrid(ctx, period, req.DepartmentID)
	if err != nil {
		return nil, "", err
	}

	data, err := export.AttendanceXLSX(period, grid.Rows)
	if err != nil {
		return nil, "", err
	}
	return data, "attendance-" + period.Label() + ".xlsx", nil
}
