package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an operation references an unknown id.
	ErrNotFound = errors.New("app not found")

	// ErrStorage wraps any failure to read or write the persisted document.
	ErrStorage = errors.New("storage error")
)

// Issue describes one failed field rule.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any mutation when input breaks a field rule.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", is.Field, is.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	e.Issues = append(e.Issues, Issue{Field: field, Message: msg})
}

// errOrNil returns e only when it carries issues.
func (e *ValidationError) errOrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
