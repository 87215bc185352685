package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("invalid calculator input")
	ErrConfiguration = errors.New("calculator configuration")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigurationError reports a fold level missing from the fold price table.
type ConfigurationError struct {
	Folds int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no base price configured for %d-fold extract", e.Folds)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Field returns the input field blamed by err, or "" if err is not a
// calculator error.
func Field(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	var cerr *ConfigurationError
	if errors.As(err, &cerr) {
		return FieldFolds
	}
	return ""
}
