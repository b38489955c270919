package master

import (
	"context"
	"errors"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/position"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, id string) error

	// Position operations
	CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetPosition(ctx context.Context, id string) (position.PositionResponse, error)
	ListPositions(ctx context.Context, departmentID string) ([]position.PositionResponse, error)
	UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error)
	DeletePosition(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo department.DepartmentRepository
	positionRepo   position.PositionRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	positionRepo position.PositionRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
	}
}

func mapDepartmentResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:      d.ID,
		Name:    d.Name,
		HasHead: d.HasHead,
	}
}

func mapPositionResponse(p position.Position) position.PositionResponse {
	return position.PositionResponse{
		ID:             p.ID,
		DepartmentID:   p.DepartmentID,
		DepartmentName: p.DepartmentName,
		Name:           p.Name,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:    strings.TrimSpace(req.Name),
		HasHead: req.HasHead,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return mapDepartmentResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	entity, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return mapDepartmentResponse(entity), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	entities, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]department.DepartmentResponse, 0, len(entities))
	for _, d := range entities {
		responses = append(responses, mapDepartmentResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.departmentRepo.Update(ctx, req); err != nil {
		return department.DepartmentResponse{}, err
	}
	return s.GetDepartment(ctx, req.ID)
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== POSITION OPERATIONS ====================

// ensureDepartment maps a missing department to the position-level error.
func (s *masterServiceImpl) ensureDepartment(ctx context.Context, id string) (department.Department, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return department.Department{}, position.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return d, nil
}

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	dept, err := s.ensureDepartment(ctx, req.DepartmentID)
	if err != nil {
		return position.PositionResponse{}, err
	}

	created, err := s.positionRepo.Create(ctx, position.Position{
		DepartmentID: dept.ID,
		Name:         strings.TrimSpace(req.Name),
	})
	if err != nil {
		return position.PositionResponse{}, err
	}
	created.DepartmentName = dept.Name

	return mapPositionResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string) (position.PositionResponse, error) {
	entity, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return mapPositionResponse(entity), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context, departmentID string) ([]position.PositionResponse, error) {
	entities, err := s.positionRepo.List(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]position.PositionResponse, 0, len(entities))
	for _, p := range entities {
		responses = append(responses, mapPositionResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}
	if req.DepartmentID != nil {
		if _, err := s.ensureDepartment(ctx, *req.DepartmentID); err != nil {
			return position.PositionResponse{}, err
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if err := s.positionRepo.Update(ctx, req); err != nil {
		return position.PositionResponse{}, err
	}
	return s.GetPosition(ctx, req.ID)
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, id string) error {
	return s.positionRepo.Delete(ctx, id)
}
