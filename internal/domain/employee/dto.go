package employee

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName    string          `json:"first_name"`
	FatherName   string          `json:"father_name"`
	DepartmentID string          `json:"department_id"`
	PositionID   string          `json:"position_id"`
	EmployeeType string          `json:"employee_type"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	DateHired    string          `json:"date_hired"`
	Status       string          `json:"status,omitempty"` // defaults to WORKING
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	} else if !validator.MaxLen(r.FirstName, 80) {
		errs.Add("first_name", "first_name must not exceed 80 characters")
	}
	if !validator.MaxLen(r.FatherName, 80) {
		errs.Add("father_name", "father_name must not exceed 80 characters")
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs.Add("department_id", "department_id is required")
	}
	if validator.IsEmpty(r.PositionID) {
		errs.Add("position_id", "position_id is required")
	}
	if !EmployeeType(r.EmployeeType).IsValid() {
		errs.Add("employee_type", ErrInvalidEmployeeType.Error())
	}
	if !validator.IsNonNegative(r.BaseSalary) {
		errs.Add("base_salary", "base_salary must be non-negative")
	}
	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs.Add("phone", "phone must contain 7-15 digits")
	}
	if _, ok := validator.IsValidDate(r.DateHired); !ok {
		errs.Add("date_hired", "date_hired must be in YYYY-MM-DD format")
	}
	if r.Status != "" && !Status(r.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}

	return errs.OrNil()
}

type UpdateEmployeeRequest struct {
	ID           string           `json:"-"`
	FirstName    *string          `json:"first_name,omitempty"`
	FatherName   *string          `json:"father_name,omitempty"`
	DepartmentID *string          `json:"department_id,omitempty"`
	PositionID   *string          `json:"position_id,omitempty"`
	EmployeeType *string          `json:"employee_type,omitempty"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	Phone        *string          `json:"phone,omitempty"`
	Address      *string          `json:"address,omitempty"`
	DateHired    *string          `json:"date_hired,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs.Add("first_name", "first_name must not be empty")
	}
	if r.EmployeeType != nil && !EmployeeType(*r.EmployeeType).IsValid() {
		errs.Add("employee_type", ErrInvalidEmployeeType.Error())
	}
	if r.BaseSalary != nil && !validator.IsNonNegative(*r.BaseSalary) {
		errs.Add("base_salary", "base_salary must be non-negative")
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must contain 7-15 digits")
	}
	if r.DateHired != nil {
		if _, ok := validator.IsValidDate(*r.DateHired); !ok {
			errs.Add("date_hired", "date_hired must be in YYYY-MM-DD format")
		}
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}

	return errs.OrNil()
}

type EmployeeFilter struct {
	Status       *string
	DepartmentID *string
	Search       *string
}

type EmployeeResponse struct {
	ID              string          `json:"id"`
	FirstName       string          `json:"first_name"`
	FatherName      string          `json:"father_name"`
	FullName        string          `json:"full_name"`
	DepartmentID    string          `json:"department_id"`
	DepartmentName  *string         `json:"department_name,omitempty"`
	PositionID      string          `json:"position_id"`
	PositionName    *string         `json:"position_name,omitempty"`
	EmployeeType    string          `json:"employee_type"`
	BaseSalary      decimal.Decimal `json:"base_salary"`
	Phone           string          `json:"phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	DateHired       string          `json:"date_hired"`
	DateHiredJalali string          `json:"date_hired_jalali"`
	Status          string          `json:"status"`
}
