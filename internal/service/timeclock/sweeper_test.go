package timeclock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/shift"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

// fakeSessionRepo keeps sessions in memory and mimics the conditional
// force-close semantics of the real store.
type fakeSessionRepo struct {
	sessions map[string]*timeclock.ClockSession
	listErr  error
	seq      int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*timeclock.ClockSession)}
}

func (f *fakeSessionRepo) add(id, employeeExternalID string, clockIn time.Time) {
	in := clockIn.UTC()
	f.sessions[id] = &timeclock.ClockSession{
		ID:                 id,
		EmployeeExternalID: employeeExternalID,
		DeviceID:           "gate-1",
		ClockIn:            &in,
	}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session timeclock.ClockSession) (timeclock.ClockSession, error) {
	if session.ID == "" {
		f.seq++
		session.ID = fmt.Sprintf("fake-%d", f.seq)
	}
	f.sessions[session.ID] = &session
	return session, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (timeclock.ClockSession, error) {
	if s, ok := f.sessions[id]; ok {
		return *s, nil
	}
	return timeclock.ClockSession{}, timeclock.ErrSessionNotFound
}

func (f *fakeSessionRepo) GetOpenSession(ctx context.Context, employeeExternalID, deviceID string) (timeclock.ClockSession, error) {
	for _, s := range f.sessions {
		if s.EmployeeExternalID == employeeExternalID && s.DeviceID == deviceID && s.Open() {
			return *s, nil
		}
	}
	return timeclock.ClockSession{}, timeclock.ErrSessionNotFound
}

func (f *fakeSessionRepo) Update(ctx context.Context, session timeclock.ClockSession) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return timeclock.ErrSessionNotFound
	}
	f.sessions[session.ID] = &session
	return nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filter timeclock.SessionFilter) ([]timeclock.ClockSession, int64, error) {
	var out []timeclock.ClockSession
	for _, s := range f.sessions {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionRepo) ListOpenInWindow(ctx context.Context, from, to time.Time) ([]timeclock.ClockSession, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []timeclock.ClockSession
	for _, s := range f.sessions {
		if !s.Open() || s.ClockIn == nil {
			continue
		}
		if s.ClockIn.Before(from) || s.ClockIn.After(to) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSessionRepo) ListClosedByEmployeeInRange(ctx context.Context, employeeExternalID string, from, to time.Time) ([]timeclock.ClockSession, error) {
	var out []timeclock.ClockSession
	for _, s := range f.sessions {
		if s.EmployeeExternalID != employeeExternalID || s.Open() {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSessionRepo) ForceCloseMany(ctx context.Context, closures []timeclock.ForceClosure) (int, error) {
	closed := 0
	for _, c := range closures {
		s, ok := f.sessions[c.SessionID]
		if !ok || !s.Open() {
			continue
		}
		out := c.ClockOut.UTC()
		s.ClockOut = &out
		s.ForceClosed = true
		marker := c.Marker
		s.Comment = &marker
		closed++
	}
	return closed, nil
}

// fakeShiftRepo serves slot sets keyed by employee external id.
type fakeShiftRepo struct {
	slotsByEmployee map[string][]shift.TimeSlot
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) { return s, nil }
func (f *fakeShiftRepo) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	return shift.Shift{}, shift.ErrShiftNotFound
}
func (f *fakeShiftRepo) List(ctx context.Context) ([]shift.Shift, error)    { return nil, nil }
func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) error    { return nil }
func (f *fakeShiftRepo) Delete(ctx context.Context, id string) error        { return nil }
func (f *fakeShiftRepo) GetSlotsByEmployeeExternalID(ctx context.Context, externalID string) ([]shift.TimeSlot, error) {
	slots, ok := f.slotsByEmployee[externalID]
	if !ok {
		return nil, shift.ErrNoShiftAssignment
	}
	return slots, nil
}

func newSweeperFixture(slotsByEmployee map[string][]shift.TimeSlot) (*Sweeper, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	shifts := &fakeShiftRepo{slotsByEmployee: slotsByEmployee}
	sweeper := NewSweeper(sessions, shifts, NewResolver(testLoc), DefaultSweepGrace)
	return sweeper, sessions
}

func TestSweeper_ClosesSessionPastDeadline(t *testing.T) {
	sweeper, sessions := newSweeperFixture(map[string][]shift.TimeSlot{
		"1042": {slotAt(shift.Monday, "08:00", "16:00", false)},
	})

	// Shift ends 16:00; cutoff 19:00; grace pushes the deadline to 22:00.
	sessions.add("s1", "1042", time.Date(2026, 3, 16, 7, 55, 0, 0, testLoc))

	closed, err := sweeper.Sweep(context.Background(), time.Date(2026, 3, 16, 22, 0, 0, 0, testLoc))
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	s := *sessions.sessions["s1"]
	require.NotNil(t, s.ClockOut)
	assert.True(t, s.ForceClosed)
	require.NotNil(t, s.Comment)
	assert.True(t, strings.Contains(*s.Comment, MarkerClosedPastSchedule))
}

func TestSweeper_LeavesSessionBeforeDeadline(t *testing.T) {
	sweeper, sessions := newSweeperFixture(map[string][]shift.TimeSlot{
		"1042": {slotAt(shift.Monday, "08:00", "16:00", false)},
	})

	sessions.add("s1", "1042", time.Date(2026, 3, 16, 7, 55, 0, 0, testLoc))

	closed, err := sweeper.Sweep(context.Background(), time.Date(2026, 3, 16, 21, 59, 0, 0, testLoc))
	require.NoError(t, err)
	assert.Zero(t, closed)
	assert.True(t, sessions.sessions["s1"].Open())
}

func TestSweeper_SecondSweepIsIdempotent(t *testing.T) {
	sweeper, sessions := newSweeperFixture(map[string][]shift.TimeSlot{
		"1042": {slotAt(shift.Monday, "08:00", "16:00", false)},
	})

	sessions.add("s1", "1042", time.Date(2026, 3, 16, 7, 55, 0, 0, testLoc))
	now := time.Date(2026, 3, 16, 22, 30, 0, 0, testLoc)

	closed, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	closed, err = sweeper.Sweep(context.Background(), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, closed)
}

func TestSweeper_FallbackLimitForUnscheduledEmployees(t *testing.T) {
	sweeper, sessions := newSweeperFixture(nil)

	now := time.Date(2026, 3, 16, 12, 0, 0, 0, testLoc)
	sessions.add("overdue", "2001", now.Add(-13*time.Hour))
	sessions.add("recent", "2002", now.Add(-11*time.Hour))

	closed, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	overdue := *sessions.sessions["overdue"]
	require.NotNil(t, overdue.Comment)
	assert.True(t, strings.Contains(*overdue.Comment, MarkerClosedPastLimit))
	assert.True(t, sessions.sessions["recent"].Open())
}

func TestSweeper_ReadFailureAbortsTick(t *testing.T) {
	sweeper, sessions := newSweeperFixture(nil)
	sessions.listErr = errors.New("connection reset")
	sessions.add("s1", "2001", time.Date(2026, 3, 16, 0, 0, 0, 0, testLoc))

	closed, err := sweeper.Sweep(context.Background(), time.Date(2026, 3, 17, 12, 0, 0, 0, testLoc))
	assert.Error(t, err)
	assert.Zero(t, closed)
	assert.True(t, sessions.sessions["s1"].Open())
}

func TestSweeper_SkipsSessionsOutsideLookbackWindow(t *testing.T) {
	sweeper, sessions := newSweeperFixture(nil)

	// Clocked in four days ago: outside the sweep lookback, left alone even
	// though it is far past the fallback limit.
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, testLoc)
	sessions.add("ancient", "2001", now.AddDate(0, 0, -4))

	closed, err := sweeper.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, closed)
	assert.True(t, sessions.sessions["ancient"].Open())
}
