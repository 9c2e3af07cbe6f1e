package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSubmissionNotPending = errors.New("submission is not pending")
	ErrRestaurantNotFound   = errors.New("restaurant not found")
)

// ValidationError reports a client input problem on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RequiredFieldError reports a missing required field.
func RequiredFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("'%s' is required", field)}
}
