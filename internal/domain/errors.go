package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidDate  = errors.New("invalid date")
)

// MissingFieldsMessage is the client-facing message for a request with absent required fields.
const MissingFieldsMessage = "Missing required fields"

// ValidationError lists every required field that was absent or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return MissingFieldsMessage + ": " + strings.Join(e.Fields, ", ")
}

// Unwrap lets callers match a ValidationError with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
