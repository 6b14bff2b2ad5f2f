// Package pricing builds a ground's bookable half-hour grid and prices a
// user's selection on it. Nothing in this package performs I/O or keeps
// state between calls, so every function is safe for concurrent use.
package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller breaks a precondition, such
// as deriving a booking window from an empty selection.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError reports a malformed input value. Field names the input
// that failed (open_time, close_time, base_price, multiplier, ...).
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}
