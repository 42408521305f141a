package services

import (
	"errors"

	apperrors "github.com/edusync/grading-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Assessment specific errors
	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentInvalidBlob  = errors.New("assessment questions must be valid JSON")
	ErrAssessmentInvalidScore = errors.New("assessment max score must be positive")
	ErrAssessmentHasAttempts  = errors.New("assessment cannot be deleted - has recorded attempts")

	// Course specific errors
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("student already enrolled in course")

	// Attempt specific errors
	ErrAttemptNotFound = errors.New("attempt not found")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrAttemptNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrAssessmentInvalidBlob) ||
		errors.Is(err, ErrAssessmentInvalidScore) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrAssessmentHasAttempts)
}
