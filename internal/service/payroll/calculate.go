package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
)

// ========== CALCULATION ==========

// CalculateRun replaces the run's lines in one transaction. Nothing is written when the run
// is final or its period does not resolve.
func (s *PayrollServiceImpl) CalculateRun(ctx context.Context, id string) (*payroll.CalculateResult, error) {
	run, err := s.runRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.Status == payroll.RunStatusFinal {
		return nil, payroll.ErrRunFinalized
	}
	period, err := resolvePeriod(run.Year, run.Month)
	if err != nil {
		return nil, err
	}

	var result *payroll.CalculateResult
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.runRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if locked.Status == payroll.RunStatusFinal {
			return payroll.ErrRunFinalized
		}

		result, err = s.recalculate(txCtx, locked, period)
		return err
	})
	if err != nil {
		slog.Error("Payroll calculation failed", "run_id", id, "period", period.Label(), "error", err)
		return nil, err
	}

	slog.Info("Payroll run calculated",
		"run_id", result.RunID,
		"period", period.Label(),
		"lines", result.LinesCount,
		"total_to_pay", result.Totals.AmountToPay.String(),
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// recalculate does the work of CalculateRun. txCtx must carry the transaction.
func (s *PayrollServiceImpl) recalculate(txCtx context.Context, run payroll.Run, period jalali.Period) (*payroll.CalculateResult, error) {
	cfg, err := s.monthConfigRepo.GetOrCreate(txCtx, period.Year, period.Month)
	if err != nil {
		return nil, err
	}

	restored, err := s.reverseCoverage(txCtx, run.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.lineRepo.DeleteByRun(txCtx, run.ID); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListWorking(txCtx, "")
	if err != nil {
		return nil, err
	}
	autoType, err := s.reconciler.AutoCoverType(txCtx)
	if err != nil {
		return nil, err
	}

	lines := make([]payroll.Line, 0, len(employees))
	warnings := []string{}
	for _, emp := range employees {
		absence, err := s.reconciler.Reconcile(txCtx, emp.ID, period, cfg, autoType)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		if absence.Coverage != nil {
			absence.Coverage.RunID = run.ID
			if err := s.coverageRepo.Create(txCtx, *absence.Coverage); err != nil {
				return nil, err
			}
		}

		hours, err := s.overtimeRepo.SumHours(txCtx, emp.ID, period.Start, period.End)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		bonus, err := s.adjustmentRepo.SumByEmployee(txCtx, payroll.AdjustmentBonus, emp.ID, period.Year, period.Month)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
		prepaid, err := s.adjustmentRepo.SumByEmployee(txCtx, payroll.AdjustmentPrepaid, emp.ID, period.Year, period.Month)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", emp.ID, err)
		}

		line := CalculateLine(LineInput{
			RunID:         run.ID,
			EmployeeID:    emp.ID,
			BaseSalary:    emp.BaseSalary,
			Absence:       absence,
			OvertimeHours: hours,
			BonusSum:      bonus,
			PrepaidSum:    prepaid,
			Config:        cfg,
		})
		name := emp.FullName()
		line.EmployeeName = &name

		if line.AmountToPay.IsNegative() {
			slog.Warn("Negative amount to pay", "run_id", run.ID, "employee_id", emp.ID, "amount_to_pay", line.AmountToPay.String())
			warnings = append(warnings, fmt.Sprintf("%s: amount to pay is negative (%s)", name, line.AmountToPay.StringFixed(money.Places)))
		}
		lines = append(lines, line)
	}

	if err := s.lineRepo.CreateBatch(txCtx, lines); err != nil {
		return nil, err
	}
	if err := s.runRepo.MarkCalculated(txCtx, run.ID, s.now()); err != nil {
		return nil, err
	}

	if restored > 0 {
		slog.Debug("Credited back previous leave coverage", "run_id", run.ID, "rows", restored)
	}

	return &payroll.CalculateResult{
		RunID:      run.ID,
		Period:     periodResponse(period),
		LinesCount: len(lines),
		Totals:     payroll.TotalsOf(lines),
		Warnings:   warnings,
	}, nil
}

// reverseCoverage credits every balance the run consumed back and clears the ledger.
func (s *PayrollServiceImpl) reverseCoverage(txCtx context.Context, runID string) (int, error) {
	coverages, err := s.coverageRepo.ListByRun(txCtx, runID)
	if err != nil {
		return 0, err
	}

	for _, c := range coverages {
		balance, err := s.reconciler.balanceRepo.GetOrCreateForUpdate(txCtx, c.EmployeeID, c.LeaveTypeID, c.Year, decimal.Zero)
		if err != nil {
			return 0, err
		}
		if err := s.reconciler.balanceRepo.UpdateRemaining(txCtx, balance.ID, balance.RemainingDays.Add(c.Days)); err != nil {
			return 0, fmt.Errorf("failed to restore leave balance: %w", err)
		}
	}

	if len(coverages) > 0 {
		if _, err := s.coverageRepo.DeleteByRun(txCtx, runID); err != nil {
			return 0, err
		}
	}
	return len(coverages), nil
}
