package payroll

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// ========== MONTH CONFIG ==========

func mapMonthConfigResponse(cfg payroll.MonthConfig) *payroll.MonthConfigResponse {
	return &payroll.MonthConfigResponse{
		Year:                cfg.Year,
		Month:               cfg.Month,
		DailyWorkHours:      cfg.DailyWorkHours,
		OvertimeRate:        cfg.OvertimeRate,
		MonthlyPaidLeaveCap: cfg.MonthlyPaidLeaveCap,
	}
}

// GetMonthConfig returns the period's configuration, storing the defaults on first access.
func (s *PayrollServiceImpl) GetMonthConfig(ctx context.Context, year, month int) (*payroll.MonthConfigResponse, error) {
	if _, err := resolvePeriod(year, month); err != nil {
		return nil, err
	}

	cfg, err := s.monthConfigRepo.GetOrCreate(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return mapMonthConfigResponse(cfg), nil
}

func (s *PayrollServiceImpl) UpdateMonthConfig(ctx context.Context, req payroll.UpdateMonthConfigRequest) (*payroll.MonthConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := resolvePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}

	var updated payroll.MonthConfig
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		cfg, err := s.monthConfigRepo.GetOrCreate(txCtx, req.Year, req.Month)
		if err != nil {
			return err
		}

		if req.DailyWorkHours != nil {
			cfg.DailyWorkHours = *req.DailyWorkHours
		}
		if req.OvertimeRate != nil {
			cfg.OvertimeRate = *req.OvertimeRate
		}
		if req.MonthlyPaidLeaveCap != nil {
			cfg.MonthlyPaidLeaveCap = *req.MonthlyPaidLeaveCap
		}

		updated, err = s.monthConfigRepo.Upsert(txCtx, cfg)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Month config updated", "year", updated.Year, "month", updated.Month)
	return mapMonthConfigResponse(updated), nil
}
