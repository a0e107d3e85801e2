package galaxy

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrGeneration       = errors.New("generation failed")
)

// InvalidParameterError is returned before generation starts. No buffer is
// produced and the installed one stays in place.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func invalidParameter(field string, value any, reason string) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// GenerationError aborts a generation mid-loop. Index is the particle being
// computed when the failure was detected.
type GenerationError struct {
	Index int
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at particle %d: %v", e.Index, e.Cause)
}

func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

func (e *GenerationError) Unwrap() error { return e.Cause }
