package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
)

var testLoc = time.FixedZone("UTC-3", -3*3600)

func slotAt(weekday shift.Weekday, start, end string, crossesMidnight bool) shift.TimeSlot {
	startTime, _ := time.Parse("15:04", start)
	endTime, _ := time.Parse("15:04", end)
	return shift.TimeSlot{
		Weekday:         weekday,
		StartTime:       startTime,
		EndTime:         endTime,
		Percent:         100,
		CrossesMidnight: crossesMidnight,
	}
}

func TestResolver_Resolve_DaytimeSlot(t *testing.T) {
	resolver := NewResolver(testLoc)
	slots := []shift.TimeSlot{slotAt(shift.Monday, "08:00", "16:00", false)}

	// 2026-03-16 is a Monday.
	onDate := time.Date(2026, 3, 16, 7, 55, 0, 0, testLoc)
	window, err := resolver.Resolve(slots, onDate)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 16, 8, 0, 0, 0, testLoc), window.ScheduledStart)
	assert.Equal(t, time.Date(2026, 3, 16, 16, 0, 0, 0, testLoc), window.ScheduledEnd)
	assert.Equal(t, time.Date(2026, 3, 16, 19, 0, 0, 0, testLoc), window.EndOfShiftCutoff)
	assert.Equal(t, float64(100), window.Percent)
}

func TestResolver_Resolve_OvernightSlotEndsNextDay(t *testing.T) {
	resolver := NewResolver(testLoc)
	slots := []shift.TimeSlot{slotAt(shift.Monday, "22:00", "06:00", true)}

	onDate := time.Date(2026, 3, 16, 22, 5, 0, 0, testLoc)
	window, err := resolver.Resolve(slots, onDate)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 16, 22, 0, 0, 0, testLoc), window.ScheduledStart)
	assert.Equal(t, time.Date(2026, 3, 17, 6, 0, 0, 0, testLoc), window.ScheduledEnd)
	assert.Equal(t, time.Date(2026, 3, 17, 9, 0, 0, 0, testLoc), window.EndOfShiftCutoff)
}

func TestResolver_Resolve_WeekdayFromBusinessTimezone(t *testing.T) {
	resolver := NewResolver(testLoc)
	slots := []shift.TimeSlot{slotAt(shift.Sunday, "20:00", "23:00", false)}

	// 01:00 UTC on Monday is still 22:00 Sunday in UTC-3.
	onDate := time.Date(2026, 3, 16, 1, 0, 0, 0, time.UTC)
	window, err := resolver.Resolve(slots, onDate)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 15, 20, 0, 0, 0, testLoc).UTC(), window.ScheduledStart.UTC())
}

func TestResolver_Resolve_NoSlotForWeekday(t *testing.T) {
	resolver := NewResolver(testLoc)
	slots := []shift.TimeSlot{slotAt(shift.Monday, "08:00", "16:00", false)}

	// A Tuesday.
	onDate := time.Date(2026, 3, 17, 8, 0, 0, 0, testLoc)
	_, err := resolver.Resolve(slots, onDate)
	assert.ErrorIs(t, err, shift.ErrNoSlotForWeekday)
}

func TestResolver_Resolve_EmptySlotSet(t *testing.T) {
	resolver := NewResolver(testLoc)

	_, err := resolver.Resolve(nil, time.Date(2026, 3, 16, 8, 0, 0, 0, testLoc))
	assert.ErrorIs(t, err, shift.ErrNoSlotForWeekday)
}
