package department

import "github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"

const maxNameLength = 120

type CreateDepartmentRequest struct {
	Name    string `json:"name"`
	HasHead bool   `json:"has_head"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if !validator.MaxLen(r.Name, maxNameLength) {
		errs.Add("name", "name must not exceed 120 characters")
	}

	return errs.OrNil()
}

type UpdateDepartmentRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name,omitempty"`
	HasHead *bool   `json:"has_head,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if !validator.MaxLen(*r.Name, maxNameLength) {
			errs.Add("name", "name must not exceed 120 characters")
		}
	}

	return errs.OrNil()
}

type DepartmentResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	HasHead bool   `json:"has_head"`
}
