package kratos

import (
	"errors"
	"fmt"
)

// ErrMissingField matches every *MissingFieldError via errors.Is.
var ErrMissingField = errors.New("kratos: required field missing")

// StatusError is returned when the identity provider answers with a non-200 status.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("kratos: GET %s returned status %d", e.Endpoint, e.Code)
}

// MissingFieldError names a required response field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "kratos: required field missing: " + e.Field
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// MalformedFieldError names a response field whose value could not be parsed.
type MalformedFieldError struct {
	Field string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("kratos: malformed field %s: %v", e.Field, e.Err)
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}
