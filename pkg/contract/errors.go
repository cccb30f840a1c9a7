package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is wrapped by structural validation failures.
	ErrMissingField = errors.New("missing required field")

	// ErrPatternMismatch is wrapped when a concrete value does not satisfy
	// the pattern on the other side of a property or in a body matcher.
	ErrPatternMismatch = errors.New("value does not match pattern")

	// ErrCoercion is wrapped when no value of the requested numeric kind can
	// be drawn from a pattern.
	ErrCoercion = errors.New("numeric coercion failed")

	// ErrInvalidPattern is wrapped when a regular expression cannot be used.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// at attaches field to err. A *ValidationError that already names a field
// is returned unchanged.
func at(field string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Field: field, Message: err.Error(), Err: err}
	}
	if ve.Field != "" {
		return err
	}
	return &ValidationError{Field: field, Message: ve.Message, Err: ve.Err}
}

func missing(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrMissingField}
}
