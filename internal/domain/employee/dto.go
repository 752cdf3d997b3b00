package employee

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name"`
	Email      *string `json:"email"`
	Position   *string `json:"position"`
	ExternalID string  `json:"external_id"`
	ShiftID    *string `json:"shift_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if validator.IsEmpty(r.ExternalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "external_id",
			Message: "external_id is required",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}
	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Position *string `json:"position"`
	ShiftID  *string `json:"shift_id"`
	Status   *string `json:"status"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name cannot be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Search  string
	Status  string
	ShiftID string
	Page    int
	Limit   int
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Email      *string `json:"email,omitempty"`
	Position   *string `json:"position,omitempty"`
	ExternalID string  `json:"external_id"`
	ShiftID    *string `json:"shift_id,omitempty"`
	ShiftName  *string `json:"shift_name,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Position:   e.Position,
		ExternalID: e.ExternalID,
		ShiftID:    e.ShiftID,
		ShiftName:  e.ShiftName,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
