package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{"01890a5d-ac96-774b-bcce-b302099a8057", "01890A5D-AC96-774B-BCCE-B302099A8057"}
	invalid := []string{"", "not-a-uuid", "123e4567-e89b-12d3-a456-426614174000"}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"+93 700 123 456", "0700-123-456", "1234567"}
	invalid := []string{"", "12345", "abc1234567", "+93 700 123 456 789 000"}
	for _, p := range valid {
		if !IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhoneNumber(p) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", p)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-03-20"); !ok {
		t.Errorf("IsValidDate(2024-03-20) = false, want true")
	}
	for _, s := range []string{"", "2024-13-01", "20-03-2024", "2024-02-30"} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	cases := []struct {
		year, month int
		want        bool
	}{
		{1403, 1, true},
		{1403, 12, true},
		{1403, 0, false},
		{1403, 13, false},
	}
	for _, c := range cases {
		if got := IsValidPeriod(c.year, c.month); got != c.want {
			t.Errorf("IsValidPeriod(%d, %d) = %v, want %v", c.year, c.month, got, c.want)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Fatalf("empty ValidationErrors should be nil")
	}

	errs.Add("year", "is required")
	errs.Add("month", "must be between 1 and 12")
	if errs.OrNil() == nil {
		t.Fatalf("non-empty ValidationErrors should not be nil")
	}
	if got := errs.Error(); got != "year: is required; month: must be between 1 and 12" {
		t.Errorf("Error() = %q", got)
	}
	if m := errs.ToMap(); m["month"] != "must be between 1 and 12" {
		t.Errorf("ToMap()[month] = %q", m["month"])
	}
}

func TestMiscHelpers(t *testing.T) {
	if !IsNonNegative(decimal.Zero) || IsNonNegative(decimal.NewFromInt(-1)) {
		t.Errorf("IsNonNegative mismatch")
	}
	if !IsInSlice("ABSENT", []string{"ABSENT", "LEAVE"}) || IsInSlice("PRESENT", []string{"ABSENT"}) {
		t.Errorf("IsInSlice mismatch")
	}
	if !MaxLen("حمل", 3) || MaxLen("abcd", 3) {
		t.Errorf("MaxLen mismatch")
	}
}
