package timeclock

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

// EndOfShiftCorrection is added to every materialized scheduled end before the
// sweeper compares against it. Carried verbatim from the legacy system, which
// applied it with no recorded rationale; kept as a named constant so it stays
// visible instead of being folded into the date arithmetic.
const EndOfShiftCorrection = 3 * time.Hour

// Resolver materializes schedule windows for concrete calendar dates, in the
// business timezone it was constructed with.
type Resolver struct {
	loc *time.Location
}

func NewResolver(loc *time.Location) *Resolver {
	return &Resolver{loc: loc}
}

// Location returns the business timezone the resolver operates in.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Resolve finds the time slot matching onDate's ISO weekday and materializes
// its start and end instants for that date. A slot crossing midnight ends on
// the following day. Returns shift.ErrNoSlotForWeekday when the slot set has
// no entry for the weekday; duplicates are a caller error and the first match
// wins. Pure: no I/O, deterministic for given inputs.
func (r *Resolver) Resolve(slots []shift.TimeSlot, onDate time.Time) (timeclock.ResolvedWindow, error) {
	local := onDate.In(r.loc)
	weekday := shift.ISOWeekday(local)

	for _, slot := range slots {
		if slot.Weekday != weekday {
			continue
		}

		year, month, day := local.Date()
		start := time.Date(year, month, day, slot.StartTime.Hour(), slot.StartTime.Minute(), 0, 0, r.loc)
		end := time.Date(year, month, day, slot.EndTime.Hour(), slot.EndTime.Minute(), 0, 0, r.loc)
		if slot.CrossesMidnight {
			end = end.AddDate(0, 0, 1)
		}

		return timeclock.ResolvedWindow{
			ScheduledStart:   start,
			ScheduledEnd:     end,
			EndOfShiftCutoff: end.Add(EndOfShiftCorrection),
			Percent:          slot.Percent,
		}, nil
	}

	return timeclock.ResolvedWindow{}, shift.ErrNoSlotForWeekday
}
