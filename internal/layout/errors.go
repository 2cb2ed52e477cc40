package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrNilInvoice is returned when no invoice is passed.
	ErrNilInvoice = errors.New("invoice is nil")

	// ErrNoLineItems is returned for an invoice without line items.
	ErrNoLineItems = errors.New("invoice has no line items")

	// ErrEmptyAddress is returned when the delivery address is blank.
	ErrEmptyAddress = errors.New("delivery address is empty")

	// ErrContentTooTall is returned when a row or band does not fit even on
	// an empty page.
	ErrContentTooTall = errors.New("content does not fit on a page")

	// ErrInvalidGeometry is returned for page geometries that cannot hold the
	// table.
	ErrInvalidGeometry = errors.New("invalid page geometry")

	// ErrUnknownInstruction is returned by Replay for an unrecognized kind.
	ErrUnknownInstruction = errors.New("unknown draw instruction")
)

// LayoutError wraps layout failures with the operation that detected them.
type LayoutError struct {
	// Op is the operation that failed (e.g., "Layout", "Validate").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *LayoutError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("layout: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("layout: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *LayoutError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *LayoutError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewLayoutError creates a LayoutError for op.
func NewLayoutError(op string, err error, details string) *LayoutError {
	return &LayoutError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
