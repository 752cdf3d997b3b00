package shift

import "context"

// ShiftRepository defines data access for shifts and their weekly time slots.
type ShiftRepository interface {
	// Create creates a shift together with its slots
	Create(ctx context.Context, shift Shift) (Shift, error)

	// GetByID retrieves a shift with its slots
	GetByID(ctx context.Context, id string) (Shift, error)

	// List retrieves all non-deleted shifts with their slots
	List(ctx context.Context) ([]Shift, error)

	// Update replaces shift metadata and its slot set
	Update(ctx context.Context, shift Shift) error

	// Delete soft-deletes a shift
	Delete(ctx context.Context, id string) error

	// GetSlotsByEmployeeExternalID returns the slot set of the shift assigned
	// to the employee with the given biometric external id. Returns
	// ErrNoShiftAssignment when the employee has no active shift.
	GetSlotsByEmployeeExternalID(ctx context.Context, externalID string) ([]TimeSlot, error)
}
