package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrExternalIDExists = errors.New("biometric external id already registered")
	ErrEmailExists      = errors.New("email already registered")
)
