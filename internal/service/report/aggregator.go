package report

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/report"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
	timeclockService "github.com/vigilo-hq/vigilo-backend-go/internal/service/timeclock"
)

// Aggregator folds reconciled sessions for one employee over a date range
// into a PeriodLedger. Pure in-memory work: the caller loads sessions and
// slots, the aggregator never touches the store.
type Aggregator struct {
	resolver   *timeclockService.Resolver
	reconciler *timeclockService.Reconciler
}

func NewAggregator(resolver *timeclockService.Resolver, reconciler *timeclockService.Reconciler) *Aggregator {
	return &Aggregator{
		resolver:   resolver,
		reconciler: reconciler,
	}
}

// Aggregate filters sessions to those fully closed inside [from, to] (dates
// in the business timezone, inclusive), reconciles each against the
// employee's slot set and accumulates the totals. A session whose weekday has
// no slot stays visible in the breakdown but contributes nothing to any
// numeric total; that is a master-data gap for operators, not an error.
func (a *Aggregator) Aggregate(employeeID, employeeName string, sessions []timeclock.ClockSession, slots []shift.TimeSlot, from, to time.Time) report.PeriodLedger {
	loc := a.resolver.Location()
	rangeStart := dateInLocation(from, loc)
	rangeEnd := dateInLocation(to, loc).AddDate(0, 0, 1)

	ledger := report.PeriodLedger{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		PerWeekday:   make(map[shift.Weekday]float64),
		Breakdown:    make([]timeclock.ReconciledSession, 0, len(sessions)),
	}

	for _, session := range sessions {
		if session.ClockIn == nil || session.ClockOut == nil {
			continue
		}
		if session.ClockIn.Before(rangeStart) || !session.ClockOut.Before(rangeEnd) {
			continue
		}

		window, err := a.resolver.Resolve(slots, *session.ClockIn)
		if err != nil {
			if !errors.Is(err, shift.ErrNoSlotForWeekday) {
				slog.Error("Aggregate: failed to resolve schedule window",
					"session_id", session.ID, "error", err)
			} else {
				slog.Warn("Aggregate: session has no matching time slot",
					"session_id", session.ID,
					"employee_id", employeeID)
			}
			ledger.Breakdown = append(ledger.Breakdown, timeclock.ReconciledSession{
				Session:   session,
				Weekday:   shift.ISOWeekday(session.ClockIn.In(loc)),
				Scheduled: false,
			})
			continue
		}

		rec := a.reconciler.Reconcile(session, window)
		ledger.Breakdown = append(ledger.Breakdown, rec)

		ledger.PerWeekday[rec.Weekday] += rec.RegularHours + rec.ExtraHours
		ledger.TotalHours += rec.RegularHours
		ledger.ExtraHours += rec.ExtraHours
	}

	return ledger
}

// dateInLocation reinterprets the calendar date carried by t as midnight in
// loc. Request dates arrive parsed at UTC midnight; converting them through
// zones would shift the day.
func dateInLocation(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
