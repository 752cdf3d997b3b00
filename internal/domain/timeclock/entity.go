package timeclock

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
)

// ClockSession is one biometric clock-in paired (eventually) with a clock-out.
// A session with a nil ClockOut is open.
type ClockSession struct {
	ID                 string
	EmployeeExternalID string
	DeviceID           string
	ClockIn            *time.Time
	ClockOut           *time.Time
	Comment            *string
	ForceClosed        bool
	EditedBy           *string
	EditedAt           *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
}

func (s ClockSession) Open() bool {
	return s.ClockOut == nil
}

// ForceClosure is one pending sweep write: close the session at ClockOut and
// append Marker to its comment. Applied conditionally (only while the session
// is still open) so a legitimate clock-out is never clobbered.
type ForceClosure struct {
	SessionID string
	ClockOut  time.Time
	Marker    string
}

// ResolvedWindow is the materialized schedule window for one calendar date.
// ScheduledEnd is the nominal end of the slot; EndOfShiftCutoff additionally
// carries the legacy end-of-shift correction and is what the sweeper compares
// against.
type ResolvedWindow struct {
	ScheduledStart   time.Time
	ScheduledEnd     time.Time
	EndOfShiftCutoff time.Time
	Percent          float64
}

// ReconciledSession is the per-session output of reconciliation.
type ReconciledSession struct {
	Session ClockSession
	Weekday shift.Weekday

	RegularHours float64
	ExtraHours   float64

	// EarlyDepartureHours is how long before the scheduled end the employee
	// left. Computed for diagnostics only; never subtracted from totals.
	EarlyDepartureHours float64

	// Scheduled is false when no time slot matched the session's weekday; the
	// session then contributes nothing to any numeric total.
	Scheduled bool
}
