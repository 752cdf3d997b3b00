package timeclock

import (
	"time"

	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

const (
	// Tolerance is the band around each scheduled boundary within which an
	// actual timestamp still counts as on schedule.
	Tolerance = 15 * time.Minute

	// ExtraThreshold is the minimum off-schedule stretch that counts as extra
	// hours; anything shorter is discarded to keep badge-time drift out of
	// the totals.
	ExtraThreshold = time.Hour
)

// Reconciler computes worked and extra hours for closed sessions against
// their resolved schedule windows.
type Reconciler struct {
	loc *time.Location
}

func NewReconciler(loc *time.Location) *Reconciler {
	return &Reconciler{loc: loc}
}

// Reconcile compares one closed session against its schedule window. Both
// ClockIn and ClockOut must be set; the caller filters open or malformed
// sessions upstream, and feeding one here is a programming error.
//
// A session whose stamps both fall inside the tolerance bands snaps to the
// nominal shift duration with no extra hours. Otherwise early arrival and
// late exit each add extra time when they reach ExtraThreshold, and the
// regular portion is the nominal duration when the session fully spans the
// window, or clock-out minus scheduled start (never negative) when it does
// not. Leaving early is measured but only reported as a diagnostic.
func (rc *Reconciler) Reconcile(session timeclock.ClockSession, window timeclock.ResolvedWindow) timeclock.ReconciledSession {
	clockIn := *session.ClockIn
	clockOut := *session.ClockOut

	rec := timeclock.ReconciledSession{
		Session:   session,
		Weekday:   shift.ISOWeekday(clockIn.In(rc.loc)),
		Scheduled: true,
	}

	start := window.ScheduledStart
	end := window.ScheduledEnd
	nominal := end.Sub(start)

	if withinTolerance(clockIn, start) && withinTolerance(clockOut, end) {
		rec.RegularHours = nominal.Hours()
		return rec
	}

	var extra time.Duration
	if before := start.Sub(clockIn); before >= ExtraThreshold {
		extra += before
	}
	if clockOut.After(end) {
		if after := clockOut.Sub(end); after >= ExtraThreshold {
			extra += after
		}
	} else {
		rec.EarlyDepartureHours = end.Sub(clockOut).Hours()
	}

	var regular time.Duration
	if clockIn.Before(start) && end.Before(clockOut) {
		// Actual session fully spans the nominal window.
		regular = nominal
	} else {
		regular = clockOut.Sub(start)
		if regular < 0 {
			regular = 0
		}
	}

	rec.RegularHours = regular.Hours()
	rec.ExtraHours = extra.Hours()
	return rec
}

func withinTolerance(actual, scheduled time.Time) bool {
	diff := actual.Sub(scheduled)
	if diff < 0 {
		diff = -diff
	}
	return diff <= Tolerance
}
