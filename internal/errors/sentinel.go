package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid metadata, input or configuration.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates the database or a listener could not be reached.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a module, file or snapshot was not found.
	ErrNotFound = errors.New("not found")
)
