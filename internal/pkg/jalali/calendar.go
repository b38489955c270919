// Package jalali resolves Jalali (Solar Hijri) payroll periods into Gregorian date ranges.
// Every day boundary and weekly-holiday decision in the service goes through this package.
package jalali

import (
	"errors"
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

var ErrInvalidDate = errors.New("invalid jalali date")

// Period is a resolved Jalali month. Start and End are Gregorian dates at UTC midnight, both inclusive.
type Period struct {
	Year     int
	Month    int
	Start    time.Time
	End      time.Time
	DayCount int
}

// ResolvePeriod converts Jalali (jy, jm) into its Gregorian range.
// The end is the day before the first day of the next Jalali month.
func ResolvePeriod(jy, jm int) (Period, error) {
	if jm < 1 || jm > 12 {
		return Period{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, jm)
	}

	start, err := ToGregorian(jy, jm, 1)
	if err != nil {
		return Period{}, err
	}

	nextYear, nextMonth := jy, jm+1
	if jm == 12 {
		nextYear, nextMonth = jy+1, 1
	}
	nextStart, err := ToGregorian(nextYear, nextMonth, 1)
	if err != nil {
		return Period{}, err
	}

	end := nextStart.AddDate(0, 0, -1)
	return Period{
		Year:     jy,
		Month:    jm,
		Start:    start,
		End:      end,
		DayCount: daysBetween(start, end) + 1,
	}, nil
}

// ToGregorian converts a Jalali date. Day-of-month values the month does not have are rejected.
func ToGregorian(jy, jm, jd int) (time.Time, error) {
	if jy < 1 || jm < 1 || jm > 12 || jd < 1 || jd > 31 {
		return time.Time{}, fmt.Errorf("%w: %d-%02d-%02d", ErrInvalidDate, jy, jm, jd)
	}

	g := ptime.Date(jy, ptime.Month(jm), jd, 0, 0, 0, 0, time.UTC).Time()

	// The library normalizes overflowing days into the next month; a round trip exposes that.
	back := ptime.New(g)
	if back.Year() != jy || int(back.Month()) != jm || back.Day() != jd {
		return time.Time{}, fmt.Errorf("%w: %d-%02d-%02d", ErrInvalidDate, jy, jm, jd)
	}

	return DateOnly(g), nil
}

// FromGregorian returns the Jalali year, month and day of t.
func FromGregorian(t time.Time) (jy, jm, jd int) {
	pt := ptime.New(DateOnly(t))
	return pt.Year(), int(pt.Month()), pt.Day()
}

// YearOf returns the Jalali year t falls in.
func YearOf(t time.Time) int {
	jy, _, _ := FromGregorian(t)
	return jy
}

// IsWeeklyHoliday reports whether t is a Friday.
func IsWeeklyHoliday(t time.Time) bool {
	return t.Weekday() == time.Friday
}

// DateOnly drops the clock part and pins the date to UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Format renders t as a Jalali "jy-jm-jd" label.
func Format(t time.Time) string {
	jy, jm, jd := FromGregorian(t)
	return fmt.Sprintf("%d-%d-%d", jy, jm, jd)
}

// Label is the "YYYY-MM" period key used for sheet names and archive paths.
func (p Period) Label() string {
	return fmt.Sprintf("%d-%02d", p.Year, p.Month)
}

// Contains reports whether t lies inside the period, inclusive.
func (p Period) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Day returns the Gregorian date of Jalali day jd of the period.
func (p Period) Day(jd int) (time.Time, error) {
	if jd < 1 || jd > p.DayCount {
		return time.Time{}, fmt.Errorf("%w: day %d outside %s", ErrInvalidDate, jd, p.Label())
	}
	return p.Start.AddDate(0, 0, jd-1), nil
}

// Days lists every Gregorian date of the period in order.
func (p Period) Days() []time.Time {
	days := make([]time.Time, 0, p.DayCount)
	for i := 0; i < p.DayCount; i++ {
		days = append(days, p.Start.AddDate(0, 0, i))
	}
	return days
}

func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
