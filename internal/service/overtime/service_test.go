package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/overtime"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type memoryOvertime struct {
	overtime.OvertimeRepository
	rows map[string]overtime.Entry
}

func key(employeeID string, d time.Time) string {
	return employeeID + "/" + d.Format(dateLayout)
}

func (m *memoryOvertime) Upsert(_ context.Context, e overtime.Entry) (overtime.Entry, error) {
	e.ID = key(e.EmployeeID, e.Date)
	m.rows[e.ID] = e
	return e, nil
}

func (m *memoryOvertime) DeleteByEmployeeDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	k := key(employeeID, date)
	_, ok := m.rows[k]
	delete(m.rows, k)
	return ok, nil
}

func (m *memoryOvertime) ListByRange(_ context.Context, employeeIDs []string, from, to time.Time) ([]overtime.Entry, error) {
	wanted := map[string]bool{}
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	var out []overtime.Entry
	for _, e := range m.rows {
		if len(wanted) > 0 && !wanted[e.EmployeeID] {
			continue
		}
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type memoryEmployees struct {
	employee.EmployeeRepository
	rows []employee.Employee
}

func (m *memoryEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range m.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memoryEmployees) ListWorking(_ context.Context, departmentID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.rows {
		if e.Status == employee.StatusWorking && (departmentID == "" || e.DepartmentID == departmentID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func hours(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newService() (overtime.OvertimeService, *memoryOvertime) {
	store := &memoryOvertime{rows: map[string]overtime.Entry{}}
	employees := &memoryEmployees{rows: []employee.Employee{
		{ID: "emp-1", FirstName: "Ahmad", DepartmentID: "dep-a", Status: employee.StatusWorking},
		{ID: "emp-2", FirstName: "Zahir", DepartmentID: "dep-a", Status: employee.StatusSuspended},
	}}
	return NewOvertimeService(passthroughTx{}, store, employees), store
}

func TestSetHours(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	resp, err := svc.SetHours(ctx, overtime.SetOvertimeRequest{EmployeeID: "emp-1", Date: "2024-03-22", Hours: hours("2.5")})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "1403-1-3", resp.JalaliDate, "fridays accept overtime")
	assert.True(t, resp.Hours.Equal(decimal.RequireFromString("2.5")))

	resp, err = svc.SetHours(ctx, overtime.SetOvertimeRequest{EmployeeID: "emp-1", Date: "2024-03-22", Hours: hours("0")})
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, store.rows)

	_, err = svc.SetHours(ctx, overtime.SetOvertimeRequest{EmployeeID: "emp-1", Date: "2024-03-22", Hours: hours("-1")})
	assert.Error(t, err)
	_, err = svc.SetHours(ctx, overtime.SetOvertimeRequest{EmployeeID: "emp-1", Date: "2024-03-22", Hours: hours("24.5")})
	assert.Error(t, err)
	_, err = svc.SetHours(ctx, overtime.SetOvertimeRequest{EmployeeID: "ghost", Date: "2024-03-22", Hours: hours("1")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSaveGridAndTotals(t *testing.T) {
	ctx := context.Background()
	svc, store := newService()

	resp, err := svc.SaveGrid(ctx, overtime.SaveGridRequest{Year: 1403, Month: 1, Cells: []overtime.GridCell{
		{EmployeeID: "emp-1", Day: 1, Hours: hours("1.5")},
		{EmployeeID: "emp-1", Day: 31, Hours: hours("2")},
		{EmployeeID: "emp-1", Day: 2, Hours: nil},
	}})
	require.NoError(t, err)
	assert.Equal(t, overtime.SaveGridResponse{Written: 2, Deleted: 0}, resp)
	assert.Len(t, store.rows, 2)

	grid, err := svc.GetGrid(ctx, overtime.GridQuery{Year: 1403, Month: 1})
	require.NoError(t, err)
	assert.Equal(t, 31, grid.DayCount)
	require.Len(t, grid.Rows, 1)
	assert.True(t, grid.Rows[0].TotalHours.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, grid.Rows[0].Hours[30].Equal(decimal.NewFromInt(2)))
	assert.True(t, grid.Rows[0].Hours[1].IsZero())

	resp, err = svc.SaveGrid(ctx, overtime.SaveGridRequest{Year: 1403, Month: 1, Cells: []overtime.GridCell{
		{EmployeeID: "emp-1", Day: 1, Hours: hours("0")},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Deleted)

	entries, err := svc.ListEntries(ctx, overtime.EntryFilter{Year: 1403, Month: 1, EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveGrid_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService()

	_, err := svc.SaveGrid(ctx, overtime.SaveGridRequest{Year: 1403, Month: 1, Cells: []overtime.GridCell{
		{EmployeeID: "emp-2", Day: 1, Hours: hours("1")},
	}})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.SaveGrid(ctx, overtime.SaveGridRequest{Year: 1403, Month: 8, Cells: []overtime.GridCell{
		{EmployeeID: "emp-1", Day: 31, Hours: hours("1")},
	}})
	assert.ErrorIs(t, err, overtime.ErrDayOutsideMonth)
}

func TestExportGrid(t *testing.T) {
	svc, _ := newService()
	data, name, err := svc.ExportGrid(context.Background(), overtime.GridQuery{Year: 1403, Month: 12})
	require.NoError(t, err)
	assert.Equal(t, "overtime-1403-12.xlsx", name)
	assert.NotEmpty(t, data)
}
