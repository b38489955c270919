package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
)

type mockAttendanceRepo struct {
	attendance.AttendanceRepository
	mock.Mock
}

func (m *mockAttendanceRepo) CountByStatus(ctx context.Context, employeeID string, from, to time.Time, status attendance.Status) (int, error) {
	args := m.Called(ctx, employeeID, from, to, status)
	return args.Int(0), args.Error(1)
}

type mockLeaveTypeRepo struct {
	leave.LeaveTypeRepository
	mock.Mock
}

func (m *mockLeaveTypeRepo) ListAutoCover(ctx context.Context) ([]leave.LeaveType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]leave.LeaveType), args.Error(1)
}

type mockBalanceRepo struct {
	leave.BalanceRepository
	mock.Mock
}

func (m *mockBalanceRepo) GetOrCreateForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int, initialDays decimal.Decimal) (leave.YearBalance, error) {
	args := m.Called(ctx, employeeID, leaveTypeID, year, initialDays)
	return args.Get(0).(leave.YearBalance), args.Error(1)
}

func (m *mockBalanceRepo) UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error {
	args := m.Called(ctx, id, remaining)
	return args.Error(0)
}

type mockEntryRepo struct {
	leave.EntryRepository
	mock.Mock
}

func (m *mockEntryRepo) SumDaysOverlapping(ctx context.Context, employeeID, leaveTypeID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, employeeID, leaveTypeID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// decEq matches a decimal argument by value.
func decEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
