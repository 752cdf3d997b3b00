package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
	timeclockService "github.com/vigilo-hq/vigilo-backend-go/internal/service/timeclock"
)

var testLoc = time.FixedZone("UTC-3", -3*3600)

func newTestAggregator() *Aggregator {
	return NewAggregator(
		timeclockService.NewResolver(testLoc),
		timeclockService.NewReconciler(testLoc),
	)
}

func testSlot(weekday shift.Weekday, start, end string) shift.TimeSlot {
	startTime, _ := time.Parse("15:04", start)
	endTime, _ := time.Parse("15:04", end)
	return shift.TimeSlot{
		Weekday:   weekday,
		StartTime: startTime,
		EndTime:   endTime,
		Percent:   100,
	}
}

func session(id string, clockIn time.Time, clockOut *time.Time) timeclock.ClockSession {
	in := clockIn.UTC()
	s := timeclock.ClockSession{
		ID:                 id,
		EmployeeExternalID: "1042",
		DeviceID:           "gate-1",
		ClockIn:            &in,
	}
	if clockOut != nil {
		out := clockOut.UTC()
		s.ClockOut = &out
	}
	return s
}

func closedAt(id string, clockIn, clockOut time.Time) timeclock.ClockSession {
	return session(id, clockIn, &clockOut)
}

// Request dates arrive parsed at UTC midnight, same as in the HTTP layer.
func reqDate(value string) time.Time {
	parsed, _ := time.Parse("2006-01-02", value)
	return parsed
}

func TestAggregator_Aggregate_BucketsByWeekday(t *testing.T) {
	aggregator := newTestAggregator()
	slots := []shift.TimeSlot{
		testSlot(shift.Monday, "08:00", "16:00"),
		testSlot(shift.Tuesday, "08:00", "12:00"),
	}

	sessions := []timeclock.ClockSession{
		// Monday, spans the window with 2h20m extra after the end.
		closedAt("mon",
			time.Date(2026, 3, 16, 7, 50, 0, 0, testLoc),
			time.Date(2026, 3, 16, 18, 20, 0, 0, testLoc)),
		// Tuesday, exactly on schedule.
		closedAt("tue",
			time.Date(2026, 3, 17, 8, 0, 0, 0, testLoc),
			time.Date(2026, 3, 17, 12, 0, 0, 0, testLoc)),
	}

	ledger := aggregator.Aggregate("emp-1", "Dana Reyes", sessions, slots,
		reqDate("2026-03-16"), reqDate("2026-03-18"))

	assert.InDelta(t, 8+140.0/60.0, ledger.PerWeekday[shift.Monday], 1e-9)
	assert.InDelta(t, 4, ledger.PerWeekday[shift.Tuesday], 1e-9)
	assert.InDelta(t, 12, ledger.TotalHours, 1e-9)
	assert.InDelta(t, 140.0/60.0, ledger.ExtraHours, 1e-9)
	assert.Len(t, ledger.Breakdown, 2)
}

// The weekday buckets carry regular plus extra hours, so their sum always
// equals total plus extra.
func TestAggregator_Aggregate_BucketConservation(t *testing.T) {
	aggregator := newTestAggregator()
	slots := []shift.TimeSlot{
		testSlot(shift.Monday, "08:00", "16:00"),
		testSlot(shift.Wednesday, "10:00", "18:00"),
		testSlot(shift.Friday, "06:00", "14:00"),
	}

	sessions := []timeclock.ClockSession{
		closedAt("a",
			time.Date(2026, 3, 16, 6, 30, 0, 0, testLoc),
			time.Date(2026, 3, 16, 17, 30, 0, 0, testLoc)),
		closedAt("b",
			time.Date(2026, 3, 18, 10, 5, 0, 0, testLoc),
			time.Date(2026, 3, 18, 16, 40, 0, 0, testLoc)),
		closedAt("c",
			time.Date(2026, 3, 20, 5, 58, 0, 0, testLoc),
			time.Date(2026, 3, 20, 15, 30, 0, 0, testLoc)),
	}

	ledger := aggregator.Aggregate("emp-1", "Dana Reyes", sessions, slots,
		reqDate("2026-03-16"), reqDate("2026-03-20"))

	var bucketSum float64
	for _, hours := range ledger.PerWeekday {
		bucketSum += hours
	}
	assert.InDelta(t, ledger.TotalHours+ledger.ExtraHours, bucketSum, 1e-9)
}

func TestAggregator_Aggregate_UnscheduledSessionStaysOutOfTotals(t *testing.T) {
	aggregator := newTestAggregator()
	slots := []shift.TimeSlot{testSlot(shift.Monday, "08:00", "16:00")}

	sessions := []timeclock.ClockSession{
		// Saturday clock-in with no Saturday slot: visible, never counted.
		closedAt("sat",
			time.Date(2026, 3, 21, 9, 0, 0, 0, testLoc),
			time.Date(2026, 3, 21, 17, 0, 0, 0, testLoc)),
	}

	ledger := aggregator.Aggregate("emp-1", "Dana Reyes", sessions, slots,
		reqDate("2026-03-16"), reqDate("2026-03-22"))

	require.Len(t, ledger.Breakdown, 1)
	assert.False(t, ledger.Breakdown[0].Scheduled)
	assert.Equal(t, shift.Saturday, ledger.Breakdown[0].Weekday)
	assert.Zero(t, ledger.TotalHours)
	assert.Zero(t, ledger.ExtraHours)
	assert.Empty(t, ledger.PerWeekday)
}

func TestAggregator_Aggregate_FiltersRangeAndOpenSessions(t *testing.T) {
	aggregator := newTestAggregator()
	slots := []shift.TimeSlot{testSlot(shift.Monday, "08:00", "16:00")}

	sessions := []timeclock.ClockSession{
		// In range.
		closedAt("in",
			time.Date(2026, 3, 16, 8, 0, 0, 0, testLoc),
			time.Date(2026, 3, 16, 16, 0, 0, 0, testLoc)),
		// The following Monday, past the requested range.
		closedAt("late",
			time.Date(2026, 3, 23, 8, 0, 0, 0, testLoc),
			time.Date(2026, 3, 23, 16, 0, 0, 0, testLoc)),
		// Still open: reconciliation needs both stamps.
		session("open", time.Date(2026, 3, 16, 8, 0, 0, 0, testLoc), nil),
	}

	ledger := aggregator.Aggregate("emp-1", "Dana Reyes", sessions, slots,
		reqDate("2026-03-16"), reqDate("2026-03-20"))

	require.Len(t, ledger.Breakdown, 1)
	assert.Equal(t, "in", ledger.Breakdown[0].Session.ID)
	assert.InDelta(t, 8, ledger.TotalHours, 1e-9)
}
