package payroll

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// AdjustmentServiceImpl manages bonus and prepaid entries. Both kinds share one code path.
type AdjustmentServiceImpl struct {
	adjustmentRepo payroll.AdjustmentRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAdjustmentService(adjustmentRepo payroll.AdjustmentRepository, employeeRepo employee.EmployeeRepository) payroll.AdjustmentService {
	return &AdjustmentServiceImpl{
		adjustmentRepo: adjustmentRepo,
		employeeRepo:   employeeRepo,
	}
}

func mapAdjustmentResponse(a payroll.Adjustment) *payroll.AdjustmentResponse {
	return &payroll.AdjustmentResponse{
		ID:           a.ID,
		Kind:         a.Kind,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Year:         a.Year,
		Month:        a.Month,
		Amount:       a.Amount,
		Note:         a.Note,
	}
}

func validKind(kind payroll.AdjustmentKind) error {
	if kind != payroll.AdjustmentBonus && kind != payroll.AdjustmentPrepaid {
		return payroll.ErrInvalidAdjustment
	}
	return nil
}

func (s *AdjustmentServiceImpl) CreateAdjustment(ctx context.Context, req payroll.CreateAdjustmentRequest) (*payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := resolvePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, payroll.ErrEmployeeNotFound
		}
		return nil, err
	}

	created, err := s.adjustmentRepo.Create(ctx, payroll.Adjustment{
		Kind:       req.Kind,
		EmployeeID: emp.ID,
		Year:       req.Year,
		Month:      req.Month,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		return nil, err
	}
	name := emp.FullName()
	created.EmployeeName = &name

	slog.Info("Adjustment created", "kind", created.Kind, "id", created.ID, "employee_id", emp.ID, "amount", created.Amount.String())
	return mapAdjustmentResponse(created), nil
}

func (s *AdjustmentServiceImpl) GetAdjustment(ctx context.Context, kind payroll.AdjustmentKind, id string) (*payroll.AdjustmentResponse, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}

	adj, err := s.adjustmentRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return mapAdjustmentResponse(adj), nil
}

func (s *AdjustmentServiceImpl) ListAdjustments(ctx context.Context, kind payroll.AdjustmentKind, filter payroll.AdjustmentFilter) ([]payroll.AdjustmentResponse, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	if filter.Year != nil && filter.Month != nil {
		if _, err := resolvePeriod(*filter.Year, *filter.Month); err != nil {
			return nil, err
		}
	}

	adjustments, err := s.adjustmentRepo.List(ctx, kind, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		result = append(result, *mapAdjustmentResponse(a))
	}
	return result, nil
}

func (s *AdjustmentServiceImpl) UpdateAdjustment(ctx context.Context, req payroll.UpdateAdjustmentRequest) (*payroll.AdjustmentResponse, error) {
	if err := validKind(req.Kind); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	updated, err := s.adjustmentRepo.GetByID(ctx, req.Kind, req.ID)
	if err != nil {
		return nil, err
	}
	return mapAdjustmentResponse(updated), nil
}

func (s *AdjustmentServiceImpl) DeleteAdjustment(ctx context.Context, kind payroll.AdjustmentKind, id string) error {
	if err := validKind(kind); err != nil {
		return err
	}
	return s.adjustmentRepo.Delete(ctx, kind, id)
}
