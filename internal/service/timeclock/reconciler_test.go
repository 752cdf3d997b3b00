package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

func closedSession(clockIn, clockOut time.Time) timeclock.ClockSession {
	in := clockIn.UTC()
	out := clockOut.UTC()
	return timeclock.ClockSession{
		ID:                 "sess-1",
		EmployeeExternalID: "1042",
		DeviceID:           "gate-1",
		ClockIn:            &in,
		ClockOut:           &out,
	}
}

// mondayWindow is the resolved 08:00-16:00 Monday window for 2026-03-16.
func mondayWindow(t *testing.T) timeclock.ResolvedWindow {
	t.Helper()
	resolver := NewResolver(testLoc)
	slots := []shift.TimeSlot{slotAt(shift.Monday, "08:00", "16:00", false)}
	window, err := resolver.Resolve(slots, time.Date(2026, 3, 16, 8, 0, 0, 0, testLoc))
	require.NoError(t, err)
	return window
}

func TestReconciler_Reconcile(t *testing.T) {
	window := mondayWindow(t)
	reconciler := NewReconciler(testLoc)
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 16, hour, min, 0, 0, testLoc)
	}

	tests := []struct {
		name         string
		clockIn      time.Time
		clockOut     time.Time
		wantRegular  float64
		wantExtra    float64
		wantEarlyDep float64
	}{
		{
			name:        "on schedule snaps to nominal duration",
			clockIn:     day(7, 50),
			clockOut:    day(16, 10),
			wantRegular: 8,
		},
		{
			name:        "fourteen minutes off is still on schedule",
			clockIn:     day(8, 14),
			clockOut:    day(15, 46),
			wantRegular: 8,
		},
		{
			name:        "sixteen minutes late leaves the tolerance band",
			clockIn:     day(8, 16),
			clockOut:    day(16, 0),
			wantRegular: 8,
		},
		{
			name:        "early arrival and late exit both over threshold",
			clockIn:     day(6, 30),
			clockOut:    day(17, 30),
			wantRegular: 8,
			wantExtra:   3,
		},
		{
			name:        "forty-five early minutes fall under the threshold",
			clockIn:     day(7, 15),
			clockOut:    day(16, 0),
			wantRegular: 8,
		},
		{
			name:        "sixty-five early minutes count in full",
			clockIn:     day(6, 55),
			clockOut:    day(16, 5),
			wantRegular: 8,
			wantExtra:   65.0 / 60.0,
		},
		{
			name:         "leaving early shrinks regular and is reported",
			clockIn:      day(8, 0),
			clockOut:     day(14, 0),
			wantRegular:  6,
			wantEarlyDep: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := reconciler.Reconcile(closedSession(tt.clockIn, tt.clockOut), window)

			assert.True(t, rec.Scheduled)
			assert.Equal(t, shift.Monday, rec.Weekday)
			assert.InDelta(t, tt.wantRegular, rec.RegularHours, 1e-9)
			assert.InDelta(t, tt.wantExtra, rec.ExtraHours, 1e-9)
			assert.InDelta(t, tt.wantEarlyDep, rec.EarlyDepartureHours, 1e-9)
		})
	}
}

// The worked example the legacy operators validated against: badge in 07:50,
// badge out 18:20 against an 08:00-16:00 Monday shift.
func TestReconciler_Reconcile_SpanningSession(t *testing.T) {
	window := mondayWindow(t)
	reconciler := NewReconciler(testLoc)

	rec := reconciler.Reconcile(closedSession(
		time.Date(2026, 3, 16, 7, 50, 0, 0, testLoc),
		time.Date(2026, 3, 16, 18, 20, 0, 0, testLoc),
	), window)

	// Ten early minutes are under the threshold; the 2h20m after the
	// scheduled end count as extra. The regular part snaps to the nominal
	// eight hours because the session fully spans the window.
	assert.InDelta(t, 8, rec.RegularHours, 1e-9)
	assert.InDelta(t, 140.0/60.0, rec.ExtraHours, 1e-9)
	assert.Zero(t, rec.EarlyDepartureHours)
}

func TestReconciler_Reconcile_WeekdayFollowsClockIn(t *testing.T) {
	resolver := NewResolver(testLoc)
	reconciler := NewReconciler(testLoc)
	slots := []shift.TimeSlot{slotAt(shift.Monday, "22:00", "06:00", true)}

	clockIn := time.Date(2026, 3, 16, 21, 58, 0, 0, testLoc)
	clockOut := time.Date(2026, 3, 17, 6, 3, 0, 0, testLoc)

	window, err := resolver.Resolve(slots, clockIn)
	require.NoError(t, err)

	rec := reconciler.Reconcile(closedSession(clockIn, clockOut), window)

	// The whole overnight session lands on Monday, the clock-in's weekday.
	assert.Equal(t, shift.Monday, rec.Weekday)
	assert.InDelta(t, 8, rec.RegularHours, 1e-9)
	assert.Zero(t, rec.ExtraHours)
}
