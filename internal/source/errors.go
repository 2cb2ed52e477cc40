package source

import (
	"errors"
	"fmt"
)

var (
	// ErrInvoiceNotFound is returned when no row carries the requested
	// invoice number.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrMissingColumn is returned when a required header is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrEmptyTable is returned for a table without a header row.
	ErrEmptyTable = errors.New("table is empty")
)

// RowError points at the cell a value could not be read from.
type RowError struct {
	// Table is the sheet or table name.
	Table string

	// Row is the 1-based row number as shown by spreadsheet tools.
	Row int

	// Column is the header of the offending column.
	Column string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("source: %s row %d, column %q: %v", e.Table, e.Row, e.Column, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RowError) Unwrap() error {
	return e.Err
}
