package employee

import "time"

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

type Employee struct {
	ID         string
	FullName   string
	Email      *string
	Position   *string
	ExternalID string // identity on the biometric devices
	ShiftID    *string
	Status     EmploymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time

	// DTO
	ShiftName *string
}
