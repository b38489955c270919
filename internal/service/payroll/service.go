package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/file"
)

type PayrollServiceImpl struct {
	tx              postgresql.Transactor
	runRepo         payroll.RunRepository
	lineRepo        payroll.LineRepository
	coverageRepo    payroll.CoverageRepository
	monthConfigRepo payroll.MonthConfigRepository
	adjustmentRepo  payroll.AdjustmentRepository
	employeeRepo    employee.EmployeeRepository
	overtimeRepo    overtime.OvertimeRepository
	reconciler      *Reconciler
	fileService     file.FileService
	now             func() time.Time
}

func NewPayrollService(
	tx postgresql.Transactor,
	runRepo payroll.RunRepository,
	lineRepo payroll.LineRepository,
	coverageRepo payroll.CoverageRepository,
	monthConfigRepo payroll.MonthConfigRepository,
	adjustmentRepo payroll.AdjustmentRepository,
	employeeRepo employee.EmployeeRepository,
	overtimeRepo overtime.OvertimeRepository,
	reconciler *Reconciler,
	fileService file.FileService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:              tx,
		runRepo:         runRepo,
		lineRepo:        lineRepo,
		coverageRepo:    coverageRepo,
		monthConfigRepo: monthConfigRepo,
		adjustmentRepo:  adjustmentRepo,
		employeeRepo:    employeeRepo,
		overtimeRepo:    overtimeRepo,
		reconciler:      reconciler,
		fileService:     fileService,
		now:             time.Now,
	}
}

// resolvePeriod maps calendar rejections to payroll.ErrInvalidPeriod.
func resolvePeriod(year, month int) (jalali.Period, error) {
	period, err := jalali.ResolvePeriod(year, month)
	if err != nil {
		return jalali.Period{}, fmt.Errorf("%w: %w", payroll.ErrInvalidPeriod, err)
	}
	return period, nil
}

func periodResponse(p jalali.Period) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		Year:      p.Year,
		Month:     p.Month,
		Label:     p.Label(),
		MonthName: jalali.MonthName(p.Month),
		Start:     p.Start.Format("2006-01-02"),
		End:       p.End.Format("2006-01-02"),
		DayCount:  p.DayCount,
	}
}

func mapRunResponse(r payroll.Run) payroll.RunResponse {
	return payroll.RunResponse{
		ID:           r.ID,
		Year:         r.Year,
		Month:        r.Month,
		Label:        fmt.Sprintf("%04d-%02d", r.Year, r.Month),
		MonthName:    jalali.MonthName(r.Month),
		Status:       r.Status,
		CalculatedAt: r.CalculatedAt,
		FinalizedAt:  r.FinalizedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func mapLineResponse(l payroll.Line) payroll.LineResponse {
	name := ""
	if l.EmployeeName != nil {
		name = *l.EmployeeName
	}
	return payroll.LineResponse{
		ID:                  l.ID,
		EmployeeID:          l.EmployeeID,
		EmployeeName:        name,
		BaseSalary:          l.BaseSalary,
		AttendanceDeduction: l.AttendanceDeduction,
		Salary:              l.Salary,
		BonusAmount:         l.BonusAmount,
		OvertimeAmount:      l.OvertimeAmount,
		Total:               l.Total,
		TaxAmount:           l.TaxAmount,
		PrepaidAmount:       l.PrepaidAmount,
		AmountToPay:         l.AmountToPay,
		AbsentDays:          l.AbsentDays,
		AutoPaidLeaveDays:   l.AutoPaidLeaveDays,
		UnpaidAbsentDays:    l.UnpaidAbsentDays,
		OvertimeHours:       l.OvertimeHours,
	}
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (*payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := resolvePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}

	run, err := s.runRepo.Create(ctx, payroll.Run{Year: req.Year, Month: req.Month})
	if err != nil {
		return nil, err
	}

	slog.Info("Payroll run created", "run_id", run.ID, "year", run.Year, "month", run.Month)
	resp := mapRunResponse(run)
	return &resp, nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (*payroll.RunResponse, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapRunResponse(run)
	return &resp, nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.RunFilter) ([]payroll.RunResponse, error) {
	runs, err := s.runRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		result = append(result, mapRunResponse(r))
	}
	return result, nil
}

// DeleteRun removes a draft run. Balance days its calculation consumed are credited back.
func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, id string) error {
	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		run, err := s.runRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if run.Status == payroll.RunStatusFinal {
			return payroll.ErrRunFinalized
		}

		if _, err := s.reverseCoverage(txCtx, run.ID); err != nil {
			return err
		}
		if err := s.runRepo.Delete(txCtx, run.ID); err != nil {
			return err
		}

		slog.Info("Payroll run deleted", "run_id", run.ID, "year", run.Year, "month", run.Month)
		return nil
	})
}

// FinalizeRun freezes a calculated run and archives its xlsx and pdf reports.
func (s *PayrollServiceImpl) FinalizeRun(ctx context.Context, id string) (*payroll.FinalizeResponse, error) {
	var (
		finalized payroll.Run
		files     []payroll.ArchivedFile
	)

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		run, err := s.runRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if run.Status == payroll.RunStatusFinal {
			return payroll.ErrRunFinalized
		}
		if run.CalculatedAt == nil {
			return payroll.ErrRunNotCalculated
		}

		period, err := resolvePeriod(run.Year, run.Month)
		if err != nil {
			return err
		}
		lines, totals, err := s.loadLines(txCtx, run.ID)
		if err != nil {
			return err
		}

		xlsx, err := export.PayrollXLSX(period, lines, totals)
		if err != nil {
			return err
		}
		pdf, err := export.PayrollPDF(period, lines, totals)
		if err != nil {
			return err
		}

		name := "payroll-" + period.Label()
		for _, doc := range []struct {
			ext  string
			data []byte
		}{{".xlsx", xlsx}, {".pdf", pdf}} {
			saved, err := s.fileService.SaveReport(txCtx, period.Label(), name, doc.ext, doc.data)
			if err != nil {
				return err
			}
			files = append(files, saved)
		}

		at := s.now()
		if err := s.runRepo.MarkFinal(txCtx, run.ID, at); err != nil {
			return err
		}
		run.Status = payroll.RunStatusFinal
		run.FinalizedAt = &at
		finalized = run
		return nil
	})
	if err != nil {
		for _, f := range files {
			if delErr := s.fileService.DeleteFile(ctx, f.Path); delErr != nil {
				slog.Warn("Failed to remove archived report", "path", f.Path, "error", delErr)
			}
		}
		return nil, err
	}

	slog.Info("Payroll run finalized", "run_id", finalized.ID, "files", len(files))
	return &payroll.FinalizeResponse{Run: mapRunResponse(finalized), Files: files}, nil
}

// ========== LINES & EXPORTS ==========

func (s *PayrollServiceImpl) loadLines(ctx context.Context, runID string) ([]payroll.LineResponse, payroll.Totals, error) {
	lines, err := s.lineRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, payroll.Totals{}, err
	}

	result := make([]payroll.LineResponse, 0, len(lines))
	for _, l := range lines {
		result = append(result, mapLineResponse(l))
	}
	return result, payroll.TotalsOf(lines), nil
}

func (s *PayrollServiceImpl) ListLines(ctx context.Context, runID string) (*payroll.LinesResponse, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}

	lines, totals, err := s.loadLines(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	return &payroll.LinesResponse{
		Run:    mapRunResponse(run),
		Lines:  lines,
		Totals: totals,
	}, nil
}

type renderFunc func(jalali.Period, []payroll.LineResponse, payroll.Totals) ([]byte, error)

func (s *PayrollServiceImpl) exportRun(ctx context.Context, runID, ext string, render renderFunc) ([]byte, string, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, "", err
	}
	period, err := resolvePeriod(run.Year, run.Month)
	if err != nil {
		return nil, "", err
	}

	lines, totals, err := s.loadLines(ctx, run.ID)
	if err != nil {
		return nil, "", err
	}

	data, err := render(period, lines, totals)
	if err != nil {
		return nil, "", err
	}
	return data, "payroll-" + period.Label() + ext, nil
}

func (s *PayrollServiceImpl) ExportRunXLSX(ctx context.Context, runID string) ([]byte, string, error) {
	return s.exportRun(ctx, runID, ".xlsx", export.PayrollXLSX)
}

func (s *PayrollServiceImpl) ExportRunPDF(ctx context.Context, runID string) ([]byte, string, error) {
	return s.exportRun(ctx, runID, ".pdf", export.PayrollPDF)
}
