package render

import (
	"errors"
	"fmt"
)

// ErrRenderFailed is returned when the backend cannot produce a document.
var ErrRenderFailed = errors.New("render failed")

// RenderError describes a failure while painting or serializing a document.
type RenderError struct {
	// Op is the operation that failed (e.g., "Render", "Output").
	Op string

	// Page is the page being painted when the failure happened, 0 if none.
	Page int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("render: %s failed on page %d: %v", e.Op, e.Page, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is reports ErrRenderFailed for every RenderError, plus whatever the
// wrapped error matches.
func (e *RenderError) Is(target error) bool {
	return target == ErrRenderFailed || errors.Is(e.Err, target)
}

func newRenderError(op string, page int, err error) *RenderError {
	return &RenderError{Op: op, Page: page, Err: err}
}
