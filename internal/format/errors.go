package format

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount is returned for negative, non-finite or out-of-range
	// amounts, and for text that does not parse as an amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDate is returned when a date cannot be parsed. Callers must
	// abort instead of printing a placeholder.
	ErrInvalidDate = errors.New("invalid date")
)

// FormatError records which conversion failed and on what input.
type FormatError struct {
	// Op is the conversion that failed (e.g., "ToWords", "FormatDate").
	Op string

	// Input is the offending value as text.
	Input string

	// Err is ErrInvalidAmount or ErrInvalidDate.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("format: %s(%q): %v", e.Op, e.Input, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *FormatError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func invalidAmount(op string, input any) error {
	return &FormatError{Op: op, Input: fmt.Sprint(input), Err: ErrInvalidAmount}
}

func invalidDate(op string, input string) error {
	return &FormatError{Op: op, Input: input, Err: ErrInvalidDate}
}
