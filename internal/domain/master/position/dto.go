package position

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"

type CreatePositionRequest struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DepartmentID) {
		errs.Add("department_id", "department_id is required")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if !validator.MaxLen(r.Name, 120) {
		errs.Add("name", "name must not exceed 120 characters")
	}

	return errs.OrNil()
}

type UpdatePositionRequest struct {
	ID           string  `json:"-"`
	DepartmentID *string `json:"department_id,omitempty"`
	Name         *string `json:"name,omitempty"`
}

func (r *UpdatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		errs.Add("department_id", "department_id must not be empty")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if !validator.MaxLen(*r.Name, 120) {
			errs.Add("name", "name must not exceed 120 characters")
		}
	}

	return errs.OrNil()
}

type PositionResponse struct {
	ID             string `json:"id"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
	Name           string `json:"name"`
}
