package ledger

import (
	"errors"
	"fmt"
)

// Failures returned by Store operations. None of them leaves a partial
// mutation behind.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInUse              = errors.New("category in use")
	ErrFutureDate         = errors.New("date is in the future")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
