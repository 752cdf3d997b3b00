package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrNoSlotForWeekday  = errors.New("no time slot scheduled for this weekday")
	ErrDuplicateWeekday  = errors.New("shift already has a time slot for this weekday")
	ErrShiftInUse        = errors.New("shift is still assigned to employees")
	ErrNoShiftAssignment = errors.New("employee has no shift assigned")
)
