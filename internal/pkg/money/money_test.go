package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1.005", "1"},
		{"1.015", "1.02"},
		{"1.0151", "1.02"},
		{"2.344", "2.34"},
		{"-2.345", "-2.34"},
		{"10", "10"},
	}
	for _, c := range cases {
		assert.True(t, Round2(d(c.in)).Equal(d(c.want)), "Round2(%s) = %s, want %s", c.in, Round2(d(c.in)), c.want)
	}
}

func TestCeil2(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"101.3001", "101.31"},
		{"101.30", "101.3"},
		{"0.001", "0.01"},
		{"-0.019", "-0.01"},
		{"2000", "2000"},
	}
	for _, c := range cases {
		assert.True(t, Ceil2(d(c.in)).Equal(d(c.want)), "Ceil2(%s) = %s, want %s", c.in, Ceil2(d(c.in)), c.want)
	}
}

func TestHelpers(t *testing.T) {
	assert.True(t, Sum(d("1.10"), d("2.20"), d("-0.30")).Equal(d("3")))
	assert.True(t, Sum().IsZero())
	assert.True(t, MinOf(d("10"), d("3"), d("5")).Equal(d("3")))
	assert.True(t, NonNegative(d("-4")).IsZero())
	assert.True(t, NonNegative(d("4")).Equal(d("4")))
	assert.True(t, HasAtMostPlaces(d("1.25"), 2))
	assert.False(t, HasAtMostPlaces(d("1.255"), 2))
}
