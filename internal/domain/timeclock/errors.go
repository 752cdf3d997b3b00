package timeclock

import "errors"

// Timeclock domain errors
var (
	ErrSessionNotFound      = errors.New("clock session not found")
	ErrSessionAlreadyClosed = errors.New("clock session is already closed")
	ErrSessionStillOpen     = errors.New("clock session is still open")
	ErrMissingClockIn       = errors.New("clock session has no clock-in timestamp")
)
