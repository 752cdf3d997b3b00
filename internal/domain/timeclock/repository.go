package timeclock

import (
	"context"
	"time"
)

// ClockSessionRepository defines data access for raw attendance sessions.
type ClockSessionRepository interface {
	// Create inserts a new session (normally with only clock_in set)
	Create(ctx context.Context, session ClockSession) (ClockSession, error)

	// GetByID retrieves a session
	GetByID(ctx context.Context, id string) (ClockSession, error)

	// GetOpenSession returns the most recent open session for an
	// (employee external id, device id) pair, or ErrSessionNotFound.
	GetOpenSession(ctx context.Context, employeeExternalID, deviceID string) (ClockSession, error)

	// Update replaces the mutable fields of a session
	Update(ctx context.Context, session ClockSession) error

	// List retrieves sessions with filters and pagination
	List(ctx context.Context, filter SessionFilter) ([]ClockSession, int64, error)

	// ListOpenInWindow returns open sessions whose clock_in falls in [from, to].
	// This is the sweeper's read; a failure here aborts the whole sweep tick.
	ListOpenInWindow(ctx context.Context, from, to time.Time) ([]ClockSession, error)

	// ListClosedByEmployeeInRange returns closed sessions for one employee
	// whose clock_in falls in [from, to], ordered by clock_in.
	ListClosedByEmployeeInRange(ctx context.Context, employeeExternalID string, from, to time.Time) ([]ClockSession, error)

	// ForceCloseMany applies the closures in one batch. Each write re-checks
	// clock_out IS NULL so a session closed between read and write is skipped.
	// Returns the number of sessions actually closed; per-record failures are
	// reported through the error without rolling back the rest.
	ForceCloseMany(ctx context.Context, closures []ForceClosure) (int, error)
}
