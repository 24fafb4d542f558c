// Package domain holds the error kinds shared by every layer of the ledger.
// Specific errors wrap one of these so callers can branch with errors.Is.
package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrIO is returned when reading or writing persisted state fails
	ErrIO = errors.New("io error")
)
