package attendance

import (
	"bytes"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
)

type passthroughTx struct{ calls int }

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type memoryAttendance struct {
	attendance.AttendanceRepository
	rows map[string]attendance.Exception
}

func key(employeeID string, d time.Time) string {
	return employeeID + "/" + d.Format(dateLayout)
}

func (m *memoryAttendance) Upsert(_ context.Context, ex attendance.Exception) (attendance.Exception, error) {
	ex.ID = key(ex.EmployeeID, ex.Date)
	m.rows[ex.ID] = ex
	return ex, nil
}

func (m *memoryAttendance) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return attendance.ErrExceptionNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryAttendance) DeleteByEmployeeDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	k := key(employeeID, date)
	_, ok := m.rows[k]
	delete(m.rows, k)
	return ok, nil
}

func (m *memoryAttendance) ListByRange(_ context.Context, employeeIDs []string, from, to time.Time) ([]attendance.Exception, error) {
	wanted := map[string]bool{}
	for _, id := range employeeIDs {
		wanted[id] = true
	}
	var out []attendance.Exception
	for _, ex := range m.rows {
		if len(wanted) > 0 && !wanted[ex.EmployeeID] {
			continue
		}
		if ex.Date.Before(from) || ex.Date.After(to) {
			continue
		}
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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

func (m *memoryEmployees) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.rows {
		if filter.DepartmentID != nil && e.DepartmentID != *filter.DepartmentID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memoryEmployees) ListWorking(_ context.Context, departmentID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.rows {
		if e.Status != employee.StatusWorking {
			continue
		}
		if departmentID != "" && e.DepartmentID != departmentID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc        attendance.AttendanceService
	tx         *passthroughTx
	attendance *memoryAttendance
}

func newFixture() *fixture {
	f := &fixture{
		tx:         &passthroughTx{},
		attendance: &memoryAttendance{rows: map[string]attendance.Exception{}},
	}
	employees := &memoryEmployees{rows: []employee.Employee{
		{ID: "emp-1", FirstName: "Ahmad", FatherName: "Karim", DepartmentID: "dep-a", Status: employee.StatusWorking},
		{ID: "emp-2", FirstName: "Wahid", DepartmentID: "dep-b", Status: employee.StatusWorking},
		{ID: "emp-3", FirstName: "Zahir", DepartmentID: "dep-a", Status: employee.StatusResigned},
	}}
	f.svc = NewAttendanceService(f.tx, f.attendance, employees)
	return f
}

func TestUpsertException(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	resp, err := f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: "emp-1", Date: "2024-03-20", Status: "ABSENT"})
	require.NoError(t, err)
	assert.Equal(t, "1403-1-1", resp.JalaliDate)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Ahmad Karim", *resp.EmployeeName)

	_, err = f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: "emp-1", Date: "2024-03-22", Status: "ABSENT"})
	assert.ErrorIs(t, err, attendance.ErrWeeklyHoliday)

	_, err = f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: "ghost", Date: "2024-03-20", Status: "ABSENT"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: "emp-1", Date: "2024-03-20", Status: "PRESENT"})
	assert.Error(t, err)

	assert.Len(t, f.attendance.rows, 1)
}

func TestListExceptions_DepartmentFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for _, emp := range []string{"emp-1", "emp-2"} {
		_, err := f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: emp, Date: "2024-03-21", Status: "SHIFT_OFF"})
		require.NoError(t, err)
	}
	// previous jalali month
	_, err := f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: "emp-1", Date: "2024-03-19", Status: "ABSENT"})
	require.NoError(t, err)

	all, err := f.svc.ListExceptions(ctx, attendance.ExceptionFilter{Year: 1403, Month: 1})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	depA, err := f.svc.ListExceptions(ctx, attendance.ExceptionFilter{Year: 1403, Month: 1, DepartmentID: "dep-a"})
	require.NoError(t, err)
	require.Len(t, depA, 1)
	assert.Equal(t, "emp-1", depA[0].EmployeeID)

	none, err := f.svc.ListExceptions(ctx, attendance.ExceptionFilter{Year: 1403, Month: 1, DepartmentID: "dep-empty"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.ListExceptions(ctx, attendance.ExceptionFilter{Year: 1403, Month: 13})
	assert.Error(t, err)
}

func TestSaveGrid_AppliesCellRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.attendance.rows[key("emp-1", day(time.March, 22))] = attendance.Exception{EmployeeID: "emp-1", Date: day(time.March, 22), Status: attendance.StatusAbsent}
	f.attendance.rows[key("emp-1", day(time.March, 23))] = attendance.Exception{EmployeeID: "emp-1", Date: day(time.March, 23), Status: attendance.StatusAbsent}

	resp, err := f.svc.SaveGrid(ctx, attendance.SaveGridRequest{
		Year:  1403,
		Month: 1,
		Cells: []attendance.GridCell{
			{EmployeeID: "emp-1", Day: 1, Status: "ABSENT"},
			{EmployeeID: "emp-1", Day: 2, Status: "HOLIDAY"},
			{EmployeeID: "emp-1", Day: 3, Status: "ABSENT"}, // friday
			{EmployeeID: "emp-1", Day: 4, Status: " "},
			{EmployeeID: "emp-2", Day: 5, Status: "LEAVE"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.SaveGridResponse{Written: 3, Deleted: 2, SkippedFridays: 1}, resp)
	assert.Equal(t, 1, f.tx.calls)

	assert.Len(t, f.attendance.rows, 3)
	_, friday := f.attendance.rows[key("emp-1", day(time.March, 22))]
	assert.False(t, friday)
}

func TestSaveGrid_RejectsForeignEmployeesAndDays(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.svc.SaveGrid(ctx, attendance.SaveGridRequest{
		Year: 1403, Month: 1, DepartmentID: "dep-a",
		Cells: []attendance.GridCell{{EmployeeID: "emp-2", Day: 1, Status: "ABSENT"}},
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotInGrid)

	_, err = f.svc.SaveGrid(ctx, attendance.SaveGridRequest{
		Year: 1403, Month: 1,
		Cells: []attendance.GridCell{{EmployeeID: "emp-3", Day: 1, Status: "ABSENT"}},
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotInGrid, "resigned employees are not on the grid")

	_, err = f.svc.SaveGrid(ctx, attendance.SaveGridRequest{
		Year: 1403, Month: 7,
		Cells: []attendance.GridCell{{EmployeeID: "emp-1", Day: 31, Status: "ABSENT"}},
	})
	assert.ErrorIs(t, err, attendance.ErrDayOutsidePeriod)
}

func TestGetGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, err := f.svc.UpsertException(ctx, attendance.UpsertExceptionRequest{EmployeeID: "emp-1", Date: "2024-03-21", Status: "ABSENT"})
	require.NoError(t, err)

	grid, err := f.svc.GetGrid(ctx, attendance.GridQuery{Year: 1403, Month: 1})
	require.NoError(t, err)

	assert.Equal(t, "حمل", grid.MonthName)
	require.Len(t, grid.Days, 31)
	assert.True(t, grid.Days[2].IsWeeklyHoliday)
	assert.Equal(t, "Friday", grid.Days[2].Weekday)
	assert.Equal(t, "2024-03-20", grid.Days[0].Date)

	require.Len(t, grid.Rows, 2)
	for _, row := range grid.Rows {
		assert.Len(t, row.Cells, 31)
		if row.EmployeeID == "emp-1" {
			assert.Equal(t, "ABSENT", row.Cells[1])
			assert.Equal(t, "", row.Cells[0])
		}
	}
}

func TestExportGrid(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	data, name, err := f.svc.ExportGrid(ctx, attendance.GridQuery{Year: 1403, Month: 1, DepartmentID: "dep-a"})
	require.NoError(t, err)
	assert.Equal(t, "attendance-1403-01.xlsx", name)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()
	assert.Equal(t, []string{"1403-01"}, book.GetSheetList())
}
