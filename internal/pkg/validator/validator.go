package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jalali"
	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// OrNil returns v as an error, nil when empty.
func (v ValidationErrors) OrNil() error {
	if len(v) > 0 {
		return v
	}
	return nil
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

// Phone: digits with an optional leading +, spaces and dashes ignored, 7-15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	return phoneRegex.MatchString(phone)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsValidPeriod checks a Jalali year/month pair against the calendar.
func IsValidPeriod(year, month int) bool {
	_, err := jalali.ResolvePeriod(year, month)
	return err == nil
}

// IsNonNegative reports d >= 0.
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

// MaxLen reports whether s has at most n runes.
func MaxLen(s string, n int) bool {
	return len([]rune(s)) <= n
}
