package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/position"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
)

const dateLayout = "2006-01-02"

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	positionRepo position.PositionRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	positionRepo position.PositionRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		positionRepo: positionRepo,
	}
}

// Helper function to map Employee to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:              emp.ID,
		FirstName:       emp.FirstName,
		FatherName:      emp.FatherName,
		FullName:        emp.FullName(),
		DepartmentID:    emp.DepartmentID,
		DepartmentName:  emp.DepartmentName,
		PositionID:      emp.PositionID,
		PositionName:    emp.PositionName,
		EmployeeType:    string(emp.EmployeeType),
		BaseSalary:      emp.BaseSalary,
		Phone:           emp.Phone,
		Address:         emp.Address,
		DateHired:       emp.DateHired.Format(dateLayout),
		DateHiredJalali: jalali.Format(emp.DateHired),
		Status:          string(emp.Status),
	}
}

// checkPlacement verifies the position exists and belongs to departmentID.
func (s *EmployeeServiceImpl) checkPlacement(ctx context.Context, departmentID, positionID string) error {
	pos, err := s.positionRepo.GetByID(ctx, positionID)
	if err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return employee.ErrInvalidReference
		}
		return fmt.Errorf("failed to get position: %w", err)
	}
	if pos.DepartmentID != departmentID {
		return employee.ErrPositionDepartment
	}
	return nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.checkPlacement(ctx, req.DepartmentID, req.PositionID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	dateHired, _ := time.Parse(dateLayout, req.DateHired)
	status := employee.StatusWorking
	if req.Status != "" {
		status = employee.Status(req.Status)
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		FatherName:   strings.TrimSpace(req.FatherName),
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		EmployeeType: employee.EmployeeType(req.EmployeeType),
		BaseSalary:   req.BaseSalary,
		Phone:        req.Phone,
		Address:      req.Address,
		DateHired:    dateHired,
		Status:       status,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "status", created.Status)
	return s.GetEmployee(ctx, created.ID)
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.DepartmentID != nil || req.PositionID != nil {
		departmentID, positionID := current.DepartmentID, current.PositionID
		if req.DepartmentID != nil {
			departmentID = *req.DepartmentID
		}
		if req.PositionID != nil {
			positionID = *req.PositionID
		}
		if err := s.checkPlacement(ctx, departmentID, positionID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Status != nil && *req.Status != string(current.Status) {
		slog.Info("Employee status changed", "employee_id", req.ID, "from", current.Status, "to", *req.Status)
	}
	return s.GetEmployee(ctx, req.ID)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if filter.Status != nil && !employee.Status(*filter.Status).IsValid() {
		return nil, employee.ErrInvalidStatus
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}
