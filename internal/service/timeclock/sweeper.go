package timeclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

const (
	// DefaultSweepGrace is how long past the (corrected) scheduled end a
	// session may stay open before the sweeper closes it.
	DefaultSweepGrace = 3 * time.Hour

	// FallbackOpenLimit closes sessions of employees with no matching slot
	// (no shift, or an off-day clock-in) after a flat 12 hours.
	FallbackOpenLimit = 12 * time.Hour

	// Markers appended to the session comment on force-close.
	MarkerClosedPastSchedule = "[auto-closed: no clock-out after scheduled end]"
	MarkerClosedPastLimit    = "[auto-closed: session open past 12h limit]"
)

// Sweeper finds clock sessions that were never closed and force-closes the
// ones that exceeded their permitted open duration.
type Sweeper struct {
	sessions timeclock.ClockSessionRepository
	shifts   shift.ShiftRepository
	resolver *Resolver
	grace    time.Duration
}

func NewSweeper(sessions timeclock.ClockSessionRepository, shifts shift.ShiftRepository, resolver *Resolver, grace time.Duration) *Sweeper {
	if grace <= 0 {
		grace = DefaultSweepGrace
	}
	return &Sweeper{
		sessions: sessions,
		shifts:   shifts,
		resolver: resolver,
		grace:    grace,
	}
}

// Sweep runs one sweep tick. It reads open sessions whose clock-in falls
// between the start of the previous business day and the end of the current
// one, decides per session whether its deadline has passed, and submits all
// closures as one conditional batch. A read failure aborts the tick with no
// partial state; the next scheduled tick retries from scratch. Returns the
// number of sessions closed.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) (int, error) {
	nowLocal := now.In(s.resolver.Location())
	year, month, day := nowLocal.Date()
	windowStart := time.Date(year, month, day, 0, 0, 0, 0, s.resolver.Location()).AddDate(0, 0, -1)
	windowEnd := windowStart.AddDate(0, 0, 2)

	open, err := s.sessions.ListOpenInWindow(ctx, windowStart, windowEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to list open sessions: %w", err)
	}

	slotCache := make(map[string][]shift.TimeSlot)
	var closures []timeclock.ForceClosure

	for _, session := range open {
		if session.ClockIn == nil {
			slog.Warn("Sweep: open session has no clock-in, skipping",
				"session_id", session.ID,
				"employee_external_id", session.EmployeeExternalID)
			continue
		}
		clockIn := *session.ClockIn

		slots, cached := slotCache[session.EmployeeExternalID]
		if !cached {
			slots, err = s.shifts.GetSlotsByEmployeeExternalID(ctx, session.EmployeeExternalID)
			if err != nil && !errors.Is(err, shift.ErrNoShiftAssignment) {
				slog.Error("Sweep: failed to load shift slots",
					"employee_external_id", session.EmployeeExternalID,
					"error", err)
				continue
			}
			slotCache[session.EmployeeExternalID] = slots
		}

		window, resolveErr := s.resolver.Resolve(slots, clockIn)
		switch {
		case resolveErr == nil:
			deadline := window.EndOfShiftCutoff.Add(s.grace)
			if !now.Before(deadline) {
				closures = append(closures, timeclock.ForceClosure{
					SessionID: session.ID,
					ClockOut:  now,
					Marker:    MarkerClosedPastSchedule,
				})
			}
		case errors.Is(resolveErr, shift.ErrNoSlotForWeekday):
			// No shift or an off-day: flat open-duration rule.
			if now.Sub(clockIn) >= FallbackOpenLimit {
				closures = append(closures, timeclock.ForceClosure{
					SessionID: session.ID,
					ClockOut:  now,
					Marker:    MarkerClosedPastLimit,
				})
			}
		default:
			slog.Error("Sweep: failed to resolve schedule window",
				"session_id", session.ID, "error", resolveErr)
		}
	}

	if len(closures) == 0 {
		return 0, nil
	}

	closed, err := s.sessions.ForceCloseMany(ctx, closures)
	if err != nil {
		// Batch semantics: whatever closed, closed. Surface the rest.
		slog.Error("Sweep: batch force-close finished with errors",
			"attempted", len(closures), "closed", closed, "error", err)
	}

	slog.Info("Sweep: force-closed stale clock sessions",
		"open_considered", len(open), "closed", closed)
	return closed, nil
}
