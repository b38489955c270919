package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToGregorian_KnownDates(t *testing.T) {
	cases := []struct {
		jy, jm, jd int
		want       time.Time
	}{
		{1403, 1, 1, date(2024, time.March, 20)},
		{1402, 1, 1, date(2023, time.March, 21)},
		{1403, 1, 3, date(2024, time.March, 22)},
		{1403, 7, 1, date(2024, time.September, 22)},
	}
	for _, c := range cases {
		got, err := ToGregorian(c.jy, c.jm, c.jd)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%d-%d-%d", c.jy, c.jm, c.jd)
	}
}

func TestToGregorian_Invalid(t *testing.T) {
	invalid := [][3]int{
		{1403, 0, 1},
		{1403, 13, 1},
		{1403, 1, 0},
		{1403, 1, 32},
		{1403, 7, 31}, // months 7-11 have 30 days
		{0, 1, 1},
	}
	for _, c := range invalid {
		_, err := ToGregorian(c[0], c[1], c[2])
		assert.ErrorIs(t, err, ErrInvalidDate, "%v", c)
	}
}

func TestResolvePeriod_InvalidMonth(t *testing.T) {
	_, err := ResolvePeriod(1403, 13)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ResolvePeriod(1403, 0)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestResolvePeriod_Farvardin1403(t *testing.T) {
	p, err := ResolvePeriod(1403, 1)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.March, 20), p.Start)
	assert.Equal(t, date(2024, time.April, 19), p.End)
	assert.Equal(t, 31, p.DayCount)
	assert.Equal(t, "1403-01", p.Label())
}

func TestResolvePeriod_Properties(t *testing.T) {
	for jy := 1395; jy <= 1410; jy++ {
		for jm := 1; jm <= 12; jm++ {
			p, err := ResolvePeriod(jy, jm)
			require.NoError(t, err)

			first, err := ToGregorian(jy, jm, 1)
			require.NoError(t, err)
			assert.Equal(t, first, p.Start)

			inclusive := int(p.End.Sub(p.Start).Hours()/24) + 1
			assert.Equal(t, inclusive, p.DayCount)
			assert.Len(t, p.Days(), p.DayCount)

			switch {
			case jm <= 6:
				assert.Equal(t, 31, p.DayCount, "%d-%d", jy, jm)
			case jm <= 11:
				assert.Equal(t, 30, p.DayCount, "%d-%d", jy, jm)
			default:
				assert.Contains(t, []int{29, 30}, p.DayCount, "%d-%d", jy, jm)
			}

			ny, nm := jy, jm+1
			if jm == 12 {
				ny, nm = jy+1, 1
			}
			next, err := ResolvePeriod(ny, nm)
			require.NoError(t, err)
			assert.Equal(t, p.End.AddDate(0, 0, 1), next.Start)
		}
	}
}

func TestPeriod_ContainsAndDay(t *testing.T) {
	p, err := ResolvePeriod(1403, 1)
	require.NoError(t, err)

	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End.Add(15*time.Hour)))
	assert.False(t, p.Contains(p.Start.AddDate(0, 0, -1)))
	assert.False(t, p.Contains(p.End.AddDate(0, 0, 1)))

	d, err := p.Day(3)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 22), d)

	_, err = p.Day(32)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestFromGregorian_RoundTrip(t *testing.T) {
	p, err := ResolvePeriod(1402, 9)
	require.NoError(t, err)

	for i, d := range p.Days() {
		jy, jm, jd := FromGregorian(d)
		assert.Equal(t, 1402, jy)
		assert.Equal(t, 9, jm)
		assert.Equal(t, i+1, jd)
	}
	assert.Equal(t, 1402, YearOf(p.Start))
}

func TestIsWeeklyHoliday(t *testing.T) {
	assert.True(t, IsWeeklyHoliday(date(2024, time.March, 22)))
	assert.False(t, IsWeeklyHoliday(date(2024, time.March, 23)))
	assert.False(t, IsWeeklyHoliday(date(2024, time.March, 21)))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "حمل", MonthName(1))
	assert.Equal(t, "حوت", MonthName(12))
	assert.Equal(t, "13", MonthName(13))

	dari, english := WeekdayNames(date(2024, time.March, 22))
	assert.Equal(t, "جمعه", dari)
	assert.Equal(t, "Friday", english)

	assert.Equal(t, "1403-1-3", Format(date(2024, time.March, 22)))
	assert.Equal(t, "جمعه 3 حمل 1403", FullLabel(date(2024, time.March, 22)))
}
