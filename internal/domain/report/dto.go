package report

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/validator"
)

// PeriodLedger is the per-employee output of time accounting over a date
// range: hour totals bucketed by ISO weekday, plus the raw per-session
// breakdown kept for manual audit.
type PeriodLedger struct {
	EmployeeID   string
	EmployeeName string
	PerWeekday   map[shift.Weekday]float64
	TotalHours   float64
	ExtraHours   float64
	Breakdown    []timeclock.ReconciledSession
}

type TimeAccountingRequest struct {
	From        string   `json:"from"` // "2006-01-02", business timezone
	To          string   `json:"to"`
	EmployeeIDs []string `json:"employee_ids"` // empty means all active employees
}

func (r *TimeAccountingRequest) Validate() error {
	var errs validator.ValidationErrors

	from, fromOK := validator.IsValidDate(r.From)
	if !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be a date in YYYY-MM-DD format",
		})
	}
	to, toOK := validator.IsValidDate(r.To)
	if !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be a date in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must not be before from",
		})
	}
	for i, id := range r.EmployeeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids[" + validator.Itoa(i) + "]",
				Message: "must be a valid UUID",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SessionRowResponse struct {
	SessionID           string  `json:"session_id"`
	ClockIn             *string `json:"clock_in"`
	ClockOut            *string `json:"clock_out"`
	Weekday             string  `json:"weekday"`
	RegularHours        float64 `json:"regular_hours"`
	ExtraHours          float64 `json:"extra_hours"`
	EarlyDepartureHours float64 `json:"early_departure_hours"`
	Scheduled           bool    `json:"scheduled"`
	ForceClosed         bool    `json:"force_closed"`
}

type LedgerResponse struct {
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	PerWeekday   map[string]float64   `json:"per_weekday"`
	TotalHours   float64              `json:"total_hours"`
	ExtraHours   float64              `json:"extra_hours"`
	Breakdown    []SessionRowResponse `json:"breakdown"`
}

func NewLedgerResponse(l PeriodLedger) LedgerResponse {
	resp := LedgerResponse{
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		PerWeekday:   make(map[string]float64, len(l.PerWeekday)),
		TotalHours:   l.TotalHours,
		ExtraHours:   l.ExtraHours,
		Breakdown:    make([]SessionRowResponse, 0, len(l.Breakdown)),
	}
	for w := shift.Monday; w <= shift.Sunday; w++ {
		if hours, ok := l.PerWeekday[w]; ok {
			resp.PerWeekday[w.String()] = hours
		}
	}
	for _, row := range l.Breakdown {
		resp.Breakdown = append(resp.Breakdown, SessionRowResponse{
			SessionID:           row.Session.ID,
			ClockIn:             formatTimePtr(row.Session.ClockIn),
			ClockOut:            formatTimePtr(row.Session.ClockOut),
			Weekday:             row.Weekday.String(),
			RegularHours:        row.RegularHours,
			ExtraHours:          row.ExtraHours,
			EarlyDepartureHours: row.EarlyDepartureHours,
			Scheduled:           row.Scheduled,
			ForceClosed:         row.Session.ForceClosed,
		})
	}
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
