package shift

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/validator"
)

type SlotPayload struct {
	Weekday         int     `json:"weekday"`
	StartTime       string  `json:"start_time"` // "15:04"
	EndTime         string  `json:"end_time"`
	Percent         float64 `json:"percent"`
	CrossesMidnight bool    `json:"crosses_midnight"`
}

type CreateShiftRequest struct {
	Name  string        `json:"name"`
	Slots []SlotPayload `json:"slots"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	seen := make(map[int]bool)
	for i, slot := range r.Slots {
		field := "slots[" + validator.Itoa(i) + "]"
		if !Weekday(slot.Weekday).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".weekday",
				Message: "weekday must be between 1 (Monday) and 7 (Sunday)",
			})
		}
		if seen[slot.Weekday] {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".weekday",
				Message: "duplicate weekday in slot list",
			})
		}
		seen[slot.Weekday] = true

		if _, ok := validator.IsValidTimeOfDay(slot.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		if _, ok := validator.IsValidTimeOfDay(slot.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
		if slot.Percent <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".percent",
				Message: "percent must be greater than zero",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	Name  *string       `json:"name"`
	Slots []SlotPayload `json:"slots"`
}

func (r *UpdateShiftRequest) Validate() error {
	if r.Slots == nil && r.Name == nil {
		return validator.ValidationErrors{{
			Field:   "body",
			Message: "nothing to update",
		}}
	}
	probe := CreateShiftRequest{Name: "x", Slots: r.Slots}
	if r.Name != nil {
		probe.Name = *r.Name
	}
	return probe.Validate()
}

type SlotResponse struct {
	ID              string  `json:"id"`
	Weekday         int     `json:"weekday"`
	WeekdayName     string  `json:"weekday_name"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Percent         float64 `json:"percent"`
	CrossesMidnight bool    `json:"crosses_midnight"`
}

type ShiftResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Slots     []SlotResponse `json:"slots"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:        s.ID,
		Name:      s.Name,
		Slots:     make([]SlotResponse, 0, len(s.Slots)),
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
	for _, slot := range s.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:              slot.ID,
			Weekday:         int(slot.Weekday),
			WeekdayName:     slot.Weekday.String(),
			StartTime:       slot.StartTime.Format("15:04"),
			EndTime:         slot.EndTime.Format("15:04"),
			Percent:         slot.Percent,
			CrossesMidnight: slot.CrossesMidnight,
		})
	}
	return resp
}
