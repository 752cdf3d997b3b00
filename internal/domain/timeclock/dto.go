package timeclock

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/validator"
)

// ClockEventRequest is one raw badge/biometric event. The device does not say
// whether it is an entrance or an exit; the service decides by looking for an
// open session for the same (employee, device) pair.
type ClockEventRequest struct {
	EmployeeExternalID string `json:"employee_external_id"`
	DeviceID           string `json:"device_id"`
	Timestamp          string `json:"timestamp"` // RFC3339
}

func (r *ClockEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeExternalID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_external_id",
			Message: "employee_external_id is required",
		})
	}
	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_id",
			Message: "device_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid RFC3339 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CorrectSessionRequest is a manual fix of a session's timestamps by an
// operator. The edit trail (edited_by/edited_at) is stamped by the service.
type CorrectSessionRequest struct {
	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Comment  *string `json:"comment"`
}

func (r *CorrectSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn == nil && r.ClockOut == nil && r.Comment == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "nothing to update",
		})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be a valid RFC3339 datetime",
			})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionFilter struct {
	EmployeeExternalID string
	From               *time.Time
	To                 *time.Time
	OpenOnly           bool
	ForceClosedOnly    bool
	Page               int
	Limit              int
}

type SessionResponse struct {
	ID                 string  `json:"id"`
	EmployeeExternalID string  `json:"employee_external_id"`
	EmployeeName       *string `json:"employee_name,omitempty"`
	DeviceID           string  `json:"device_id"`
	ClockIn            *string `json:"clock_in"`
	ClockOut           *string `json:"clock_out"`
	Comment            *string `json:"comment,omitempty"`
	ForceClosed        bool    `json:"force_closed"`
	EditedBy           *string `json:"edited_by,omitempty"`
	EditedAt           *string `json:"edited_at,omitempty"`
}

func NewSessionResponse(s ClockSession) SessionResponse {
	return SessionResponse{
		ID:                 s.ID,
		EmployeeExternalID: s.EmployeeExternalID,
		EmployeeName:       s.EmployeeName,
		DeviceID:           s.DeviceID,
		ClockIn:            formatTimePtr(s.ClockIn),
		ClockOut:           formatTimePtr(s.ClockOut),
		Comment:            s.Comment,
		ForceClosed:        s.ForceClosed,
		EditedBy:           s.EditedBy,
		EditedAt:           formatTimePtr(s.EditedAt),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
