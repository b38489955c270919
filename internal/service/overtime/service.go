package overtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
)

const dateLayout = "2006-01-02"

type OvertimeServiceImpl struct {
	tx           postgresql.Transactor
	overtimeRepo overtime.OvertimeRepository
	employeeRepo employee.EmployeeRepository
}

func NewOvertimeService(
	tx postgresql.Transactor,
	overtimeRepo overtime.OvertimeRepository,
	employeeRepo employee.EmployeeRepository,
) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		tx:           tx,
		overtimeRepo: overtimeRepo,
		employeeRepo: employeeRepo,
	}
}

func mapEntryResponse(e overtime.Entry) overtime.EntryResponse {
	return overtime.EntryResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Date:         e.Date.Format(dateLayout),
		JalaliDate:   jalali.Format(e.Date),
		Hours:        e.Hours,
		Note:         e.Note,
	}
}

// SetHours writes hours for one day. A nil or zero value removes the entry and returns nil.
func (s *OvertimeServiceImpl) SetHours(ctx context.Context, req overtime.SetOvertimeRequest) (*overtime.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	date, _ := time.Parse(dateLayout, req.Date)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	if req.Hours == nil || req.Hours.IsZero() {
		if _, err := s.overtimeRepo.DeleteByEmployeeDate(ctx, emp.ID, date); err != nil {
			return nil, err
		}
		return nil, nil
	}

	saved, err := s.overtimeRepo.Upsert(ctx, overtime.Entry{
		EmployeeID: emp.ID,
		Date:       date,
		Hours:      *req.Hours,
		Note:       req.Note,
	})
	if err != nil {
		return nil, err
	}
	name := emp.FullName()
	saved.EmployeeName = &name

	resp := mapEntryResponse(saved)
	return &resp, nil
}

func (s *OvertimeServiceImpl) ListEntries(ctx context.Context, filter overtime.EntryFilter) ([]overtime.EntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	period, err := jalali.ResolvePeriod(filter.Year, filter.Month)
	if err != nil {
		return nil, err
	}

	var employeeIDs []string
	if filter.EmployeeID != "" {
		employeeIDs = []string{filter.EmployeeID}
	}

	entries, err := s.overtimeRepo.ListByRange(ctx, employeeIDs, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	result := make([]overtime.EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, mapEntryResponse(e))
	}
	return result, nil
}

// ========== MONTHLY GRID ==========

func (s *OvertimeServiceImpl) buildGrid(ctx context.Context, period jalali.Period, departmentID string) (overtime.GridResponse, error) {
	employees, err := s.employeeRepo.ListWorking(ctx, departmentID)
	if err != nil {
		return overtime.GridResponse{}, err
	}

	grid := overtime.GridResponse{
		Year:      period.Year,
		Month:     period.Month,
		MonthName: jalali.MonthName(period.Month),
		DayCount:  period.DayCount,
		Rows:      make([]overtime.GridRow, 0, len(employees)),
	}
	if len(employees) == 0 {
		return grid, nil
	}

	ids := make([]string, 0, len(employees))
	index := make(map[string]int, len(employees))
	for i, e := range employees {
		ids = append(ids, e.ID)
		index[e.ID] = i

		hours := make([]decimal.Decimal, period.DayCount)
		for d := range hours {
			hours[d] = decimal.Zero
		}
		grid.Rows = append(grid.Rows, overtime.GridRow{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName(),
			Hours:        hours,
			TotalHours:   decimal.Zero,
		})
	}

	entries, err := s.overtimeRepo.ListByRange(ctx, ids, period.Start, period.End)
	if err != nil {
		return overtime.GridResponse{}, err
	}

	for _, e := range entries {
		row, ok := index[e.EmployeeID]
		if !ok {
			continue
		}
		_, _, jd := jalali.FromGregorian(e.Date)
		if jd < 1 || jd > period.DayCount {
			continue
		}
		grid.Rows[row].Hours[jd-1] = e.Hours
		grid.Rows[row].TotalHours = grid.Rows[row].TotalHours.Add(e.Hours)
	}

	return grid, nil
}

func (s *OvertimeServiceImpl) GetGrid(ctx context.Context, req overtime.GridQuery) (overtime.GridResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.GridResponse{}, err
	}
	period, err := jalali.ResolvePeriod(req.Year, req.Month)
	if err != nil {
		return overtime.GridResponse{}, err
	}

	return s.buildGrid(ctx, period, req.DepartmentID)
}

// SaveGrid writes every cell in one transaction. Zero or missing hours delete.
func (s *OvertimeServiceImpl) SaveGrid(ctx context.Context, req overtime.SaveGridRequest) (overtime.SaveGridResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.SaveGridResponse{}, err
	}
	period, err := jalali.ResolvePeriod(req.Year, req.Month)
	if err != nil {
		return overtime.SaveGridResponse{}, err
	}

	var result overtime.SaveGridResponse
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		employees, err := s.employeeRepo.ListWorking(txCtx, "")
		if err != nil {
			return err
		}
		working := make(map[string]bool, len(employees))
		for _, e := range employees {
			working[e.ID] = true
		}

		for _, cell := range req.Cells {
			if !working[cell.EmployeeID] {
				return fmt.Errorf("%w: %s", employee.ErrEmployeeNotFound, cell.EmployeeID)
			}
			date, err := period.Day(cell.Day)
			if err != nil {
				return fmt.Errorf("%w: %d", overtime.ErrDayOutsideMonth, cell.Day)
			}

			if cell.Hours == nil || cell.Hours.IsZero() {
				deleted, err := s.overtimeRepo.DeleteByEmployeeDate(txCtx, cell.EmployeeID, date)
				if err != nil {
					return err
				}
				if deleted {
					result.Deleted++
				}
				continue
			}

			if _, err := s.overtimeRepo.Upsert(txCtx, overtime.Entry{
				EmployeeID: cell.EmployeeID,
				Date:       date,
				Hours:      *cell.Hours,
			}); err != nil {
				return err
			}
			result.Written++
		}
		return nil
	})
	if err != nil {
		return overtime.SaveGridResponse{}, err
	}

	slog.Info("Overtime grid saved", "period", period.Label(), "written", result.Written, "deleted", result.Deleted)
	return result, nil
}

func (s *OvertimeServiceImpl) ExportGrid(ctx context.Context, req overtime.GridQuery) ([]byte, string, error) {
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

	data, err := export.OvertimeXLSX(period, grid.Rows)
	if err != nil {
		return nil, "", err
	}
	return data, "overtime-" + period.Label() + ".xlsx", nil
}
