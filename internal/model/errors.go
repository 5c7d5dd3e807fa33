package model

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is matched by every ValidationError.
var ErrInvalidQuery = errors.New("invalid search query")

// ValidationError describes a search query that was rejected before any
// scoring took place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidQuery, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidQuery) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation returns true if err (or any error in its chain) is an input
// validation failure.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var ve *ValidationError
	return errors.As(err, &ve)
}
