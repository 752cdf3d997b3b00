package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/employee"
	"github.com/vigilo-hq/vigilo-backend-go/internal/domain/timeclock"
)

type fakeEmployeeRepo struct {
	byExternalID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}
func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) GetByExternalID(ctx context.Context, externalID string) (employee.Employee, error) {
	if e, ok := f.byExternalID[externalID]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, e employee.Employee) error { return nil }
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error           { return nil }

func newSessionServiceFixture() (timeclock.ClockSessionService, *fakeSessionRepo) {
	sessions := newFakeSessionRepo()
	employees := &fakeEmployeeRepo{byExternalID: map[string]employee.Employee{
		"1042": {ID: "emp-1", FullName: "Dana Reyes", ExternalID: "1042", Status: employee.StatusActive},
	}}
	return NewClockSessionService(sessions, employees), sessions
}

func TestClockSessionService_RecordEvent_OpensThenCloses(t *testing.T) {
	svc, sessions := newSessionServiceFixture()
	ctx := context.Background()

	first, err := svc.RecordEvent(ctx, timeclock.ClockEventRequest{
		EmployeeExternalID: "1042",
		DeviceID:           "gate-1",
		Timestamp:          "2026-03-16T11:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, first.ClockIn)
	assert.Nil(t, first.ClockOut)

	second, err := svc.RecordEvent(ctx, timeclock.ClockEventRequest{
		EmployeeExternalID: "1042",
		DeviceID:           "gate-1",
		Timestamp:          "2026-03-16T19:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, second.ClockOut)
	assert.Equal(t, "2026-03-16T19:00:00Z", *second.ClockOut)

	// The pair collapsed into one stored session.
	open, err := sessions.GetOpenSession(ctx, "1042", "gate-1")
	assert.ErrorIs(t, err, timeclock.ErrSessionNotFound)
	assert.Empty(t, open.ID)
}

func TestClockSessionService_RecordEvent_DifferentDeviceOpensNewSession(t *testing.T) {
	svc, _ := newSessionServiceFixture()
	ctx := context.Background()

	_, err := svc.RecordEvent(ctx, timeclock.ClockEventRequest{
		EmployeeExternalID: "1042",
		DeviceID:           "gate-1",
		Timestamp:          "2026-03-16T11:00:00Z",
	})
	require.NoError(t, err)

	// Same employee on another device does not close the gate-1 session.
	second, err := svc.RecordEvent(ctx, timeclock.ClockEventRequest{
		EmployeeExternalID: "1042",
		DeviceID:           "door-2",
		Timestamp:          "2026-03-16T12:00:00Z",
	})
	require.NoError(t, err)
	assert.Nil(t, second.ClockOut)
}

func TestClockSessionService_RecordEvent_UnknownEmployee(t *testing.T) {
	svc, _ := newSessionServiceFixture()

	_, err := svc.RecordEvent(context.Background(), timeclock.ClockEventRequest{
		EmployeeExternalID: "9999",
		DeviceID:           "gate-1",
		Timestamp:          "2026-03-16T11:00:00Z",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockSessionService_Correct_StampsEditTrail(t *testing.T) {
	svc, sessions := newSessionServiceFixture()
	ctx := context.Background()

	in := time.Date(2026, 3, 16, 11, 0, 0, 0, time.UTC)
	sessions.add("s1", "1042", in)

	newOut := "2026-03-16T19:30:00Z"
	comment := "badge reader jammed at the exit"
	corrected, err := svc.Correct(ctx, "s1", timeclock.CorrectSessionRequest{
		ClockOut: &newOut,
		Comment:  &comment,
	})
	require.NoError(t, err)

	require.NotNil(t, corrected.ClockOut)
	assert.Equal(t, newOut, *corrected.ClockOut)
	require.NotNil(t, corrected.Comment)
	assert.Equal(t, comment, *corrected.Comment)
	require.NotNil(t, corrected.EditedAt)
}

func TestClockSessionService_Correct_NothingToUpdate(t *testing.T) {
	svc, _ := newSessionServiceFixture()

	_, err := svc.Correct(context.Background(), "s1", timeclock.CorrectSessionRequest{})
	assert.Error(t, err)
}
