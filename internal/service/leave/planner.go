package leave

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
)

// SpanEnd is the last day of a leave of days starting at from. Partial days occupy a whole date.
func SpanEnd(from time.Time, days int64) time.Time {
	if days < 1 {
		days = 1
	}
	return jalali.DateOnly(from).AddDate(0, 0, int(days-1))
}

// workingDates lists the non-Friday dates in [from, to].
func workingDates(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := jalali.DateOnly(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		if !jalali.IsWeeklyHoliday(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// PlanApplication computes what saving entry does to balance without writing anything.
// balance must belong to the Jalali year of entry.DateFrom.
func PlanApplication(entry leave.Entry, balance leave.YearBalance, leaveTypeName string) leave.Application {
	from := jalali.DateOnly(entry.DateFrom)
	dateTo := SpanEnd(from, entry.DaysCount.Ceil().IntPart())

	taken := money.NonNegative(money.MinOf(balance.RemainingDays, entry.DaysCount))

	return leave.Application{
		DateTo:       dateTo,
		BalanceYear:  jalali.YearOf(from),
		Taken:        taken,
		ExcessDays:   entry.DaysCount.Sub(taken),
		NewRemaining: balance.RemainingDays.Sub(taken),
		LeaveDates:   workingDates(from, dateTo),
		Note:         "Leave: " + leaveTypeName,
	}
}

// PlanReversal lists the LEAVE rows deleting entry removes. Dates inside another entry of
// the same employee stay, since that entry still owns them.
func PlanReversal(entry leave.Entry, others []leave.Entry) leave.Reversal {
	var reversal leave.Reversal
	for _, d := range workingDates(entry.DateFrom, entry.DateTo) {
		covered := false
		for _, o := range others {
			if o.ID == entry.ID || o.EmployeeID != entry.EmployeeID {
				continue
			}
			if o.Overlaps(d, d) {
				covered = true
				break
			}
		}

		if covered {
			reversal.Retained = append(reversal.Retained, d)
		} else {
			reversal.LeaveDates = append(reversal.LeaveDates, d)
		}
	}
	return reversal
}
