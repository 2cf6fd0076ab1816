package note

import (
	"errors"
	"fmt"
)

// ErrValidation indicates required input was empty after trimming.
var ErrValidation = errors.New("invalid input")

// ValidationError names the field that failed client-side validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s is required", ErrValidation, e.Field)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
