package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)

	// Schema errors
	ErrSchemaUnrecognized = errors.New("no recognizable game columns after alias mapping")
	ErrEmptyFile          = errors.New("file has no data rows")
	ErrUnsupportedFormat  = errors.New("unsupported file format")

	// Generation errors
	ErrInvalidRowCount = errors.New("row count must be positive")
)

// Error constructors with context
func NewSchemaError(headers []string) error {
	return fmt.Errorf("%w (headers: %v)", ErrSchemaUnrecognized, headers)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchemaUnrecognized)
}
