package employee

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/master/position"
)

type memoryEmployees struct {
	employee.EmployeeRepository
	rows map[string]employee.Employee
}

func (m *memoryEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = "emp-" + e.FirstName
	m.rows[e.ID] = e
	return e, nil
}

func (m *memoryEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memoryEmployees) Update(_ context.Context, req employee.UpdateEmployeeRequest) error {
	e := m.rows[req.ID]
	if req.DepartmentID != nil {
		e.DepartmentID = *req.DepartmentID
	}
	if req.PositionID != nil {
		e.PositionID = *req.PositionID
	}
	if req.Status != nil {
		e.Status = employee.Status(*req.Status)
	}
	m.rows[req.ID] = e
	return nil
}

type memoryPositions struct {
	position.PositionRepository
}

func (memoryPositions) GetByID(_ context.Context, id string) (position.Position, error) {
	switch id {
	case "pos-clerk":
		return position.Position{ID: id, DepartmentID: "dep-finance"}, nil
	case "pos-driver":
		return position.Position{ID: id, DepartmentID: "dep-transport"}, nil
	}
	return position.Position{}, position.ErrPositionNotFound
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:    "Ahmad",
		FatherName:   "Karim",
		DepartmentID: "dep-finance",
		PositionID:   "pos-clerk",
		EmployeeType: "PERMANENT",
		BaseSalary:   decimal.NewFromInt(26000),
		DateHired:    "2024-03-20",
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(&memoryEmployees{rows: map[string]employee.Employee{}}, memoryPositions{})

	resp, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)
	assert.Equal(t, "WORKING", resp.Status)
	assert.Equal(t, "Ahmad Karim", resp.FullName)
	assert.Equal(t, "1403-1-1", resp.DateHiredJalali)

	req := validCreate()
	req.PositionID = "pos-driver"
	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrPositionDepartment)

	req.PositionID = "pos-ghost"
	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrInvalidReference)

	req = validCreate()
	req.BaseSalary = decimal.NewFromInt(-1)
	_, err = svc.CreateEmployee(ctx, req)
	assert.Error(t, err)
}

func TestUpdateEmployee_ChecksPlacement(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(&memoryEmployees{rows: map[string]employee.Employee{}}, memoryPositions{})

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	transport := "dep-transport"
	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, DepartmentID: &transport})
	assert.ErrorIs(t, err, employee.ErrPositionDepartment)

	driver := "pos-driver"
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, DepartmentID: &transport, PositionID: &driver})
	require.NoError(t, err)
	assert.Equal(t, "dep-transport", updated.DepartmentID)

	resigned := "RESIGNED"
	updated, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Status: &resigned})
	require.NoError(t, err)
	assert.Equal(t, "RESIGNED", updated.Status)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "ghost", Status: &resigned})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
