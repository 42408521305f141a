package grading

import (
	"errors"
	"fmt"
)

// SchemaError indicates the stored question definition blob is unusable:
// absent, syntactically invalid, not a list, or containing no usable
// questions after tolerant filtering. Not retryable.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question schema error: %s: %v", e.Reason, e.Err)
	}
	return "question schema error: " + e.Reason
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValidationError indicates the submission itself is unusable, e.g. a
// learner submitted no answers at all. Caller error, not retryable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission: %s %s", e.Field, e.Message)
}

// IsSchemaError checks if error represents an unusable question definition
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsValidationError checks if error represents an unusable submission
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
