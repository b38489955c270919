package leave

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPlanApplication_PartialBalance(t *testing.T) {
	entry := leave.Entry{EmployeeID: "emp-1", DateFrom: day(time.March, 20), DaysCount: dec("3")}
	balance := leave.YearBalance{RemainingDays: dec("2")}

	plan := PlanApplication(entry, balance, "Annual")

	assert.Equal(t, day(time.March, 22), plan.DateTo)
	assert.Equal(t, 1403, plan.BalanceYear)
	assert.True(t, plan.Taken.Equal(dec("2")))
	assert.True(t, plan.ExcessDays.Equal(dec("1")))
	assert.True(t, plan.NewRemaining.IsZero())
	// 2024-03-22 is a Friday and never gets a row
	assert.Equal(t, []time.Time{day(time.March, 20), day(time.March, 21)}, plan.LeaveDates)
	assert.Equal(t, "Leave: Annual", plan.Note)
}

func TestPlanApplication_FractionalDaysOccupyWholeDate(t *testing.T) {
	entry := leave.Entry{DateFrom: day(time.March, 23), DaysCount: dec("1.5")}
	plan := PlanApplication(entry, leave.YearBalance{RemainingDays: dec("10")}, "Annual")

	assert.Equal(t, day(time.March, 24), plan.DateTo)
	assert.True(t, plan.Taken.Equal(dec("1.5")))
	assert.True(t, plan.ExcessDays.IsZero())
	assert.True(t, plan.NewRemaining.Equal(dec("8.5")))
	assert.Len(t, plan.LeaveDates, 2)
}

func TestPlanApplication_BalanceYearFollowsDateFrom(t *testing.T) {
	// 2024-03-19 is the last day of 1402
	entry := leave.Entry{DateFrom: day(time.March, 19), DaysCount: dec("2")}
	plan := PlanApplication(entry, leave.YearBalance{RemainingDays: dec("0")}, "Annual")

	assert.Equal(t, 1402, plan.BalanceYear)
	assert.True(t, plan.Taken.IsZero())
	assert.True(t, plan.ExcessDays.Equal(dec("2")))
}

func TestPlanReversal_KeepsDatesOfOverlappingEntries(t *testing.T) {
	entry := leave.Entry{ID: "a", EmployeeID: "emp-1", DateFrom: day(time.March, 20), DateTo: day(time.March, 24)}
	others := []leave.Entry{
		entry,
		{ID: "b", EmployeeID: "emp-1", DateFrom: day(time.March, 23), DateTo: day(time.March, 25)},
		{ID: "c", EmployeeID: "emp-2", DateFrom: day(time.March, 21), DateTo: day(time.March, 21)},
	}

	r := PlanReversal(entry, others)

	assert.Equal(t, []time.Time{day(time.March, 20), day(time.March, 21)}, r.LeaveDates)
	assert.Equal(t, []time.Time{day(time.March, 23), day(time.March, 24)}, r.Retained)
}

func TestPlanReversal_NoOthers(t *testing.T) {
	entry := leave.Entry{ID: "a", EmployeeID: "emp-1", DateFrom: day(time.March, 22), DateTo: day(time.March, 23)}

	r := PlanReversal(entry, nil)

	assert.Equal(t, []time.Time{day(time.March, 23)}, r.LeaveDates)
	assert.Empty(t, r.Retained)
}
