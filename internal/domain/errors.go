package domain

import "errors"

// Sentinel errors. Repositories and services wrap these with context
// via fmt.Errorf("...: %w", ...); the HTTP layer maps them to status
// codes with errors.Is.
var (
	// ErrInvalidInput marks a validation failure. Nothing has been
	// written when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an absent project, design, BOQ or message.
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict marks a design version uniqueness violation:
	// a concurrent mutation won the race. The operation is retryable
	// against the new latest version.
	ErrVersionConflict = errors.New("design version conflict")
)
