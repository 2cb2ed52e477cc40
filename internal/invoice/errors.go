package invoice

import (
	"errors"
	"fmt"
	"strings"
)

// Common generation errors
var (
	// ErrInvalidInvoice is returned when the invoice fails field validation
	// before layout starts.
	ErrInvalidInvoice = errors.New("invalid invoice data")
)

// GenericFailureMessage is the single notification shown to end users for
// any generation failure. Details go to the log.
const GenericFailureMessage = "The invoice document could not be generated. Please check the invoice details and try again."

// GenerationError wraps errors with the stage of document generation that
// failed.
type GenerationError struct {
	// Op is the stage that failed (e.g., "Validate", "Layout", "Render").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string

	// InvoiceNumber identifies the invoice being generated (if available).
	InvoiceNumber string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	if e.InvoiceNumber != "" {
		return fmt.Sprintf("invoice: %s failed (invoice: %s): %v", e.Op, e.InvoiceNumber, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *GenerationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewGenerationError creates a new GenerationError with the specified operation and underlying error.
func NewGenerationError(op string, err error, details string) *GenerationError {
	return &GenerationError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapGenerationError wraps an error as a GenerationError if it isn't already one.
func WrapGenerationError(op string, err error, invoiceNumber string) error {
	if err == nil {
		return nil
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	return &GenerationError{Op: op, Err: err, InvoiceNumber: invoiceNumber}
}

// ValidationError describes one invoice field that failed validation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// joinValidationErrors renders field errors for GenerationError.Details.
func joinValidationErrors(errs []*ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

// UserMessage maps any generation failure to the generic end-user
// notification. It returns "" for a nil error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return GenericFailureMessage
}
