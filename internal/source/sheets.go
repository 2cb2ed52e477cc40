package source

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// RangeReader reads an A1 range; *sheets.Service satisfies it.
// ReadRangeUnformatted returns stored values, with dates as serial numbers.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
	ReadRangeUnformatted(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// SheetsSource loads invoices kept in a Google spreadsheet.
type SheetsSource struct {
	reader       RangeReader
	invoiceSheet string
	itemSheet    string
	log          zerolog.Logger
}

// NewSheetsSource returns a SheetsSource reading the given sheets. Empty
// names fall back to Invoices and LineItems.
func NewSheetsSource(reader RangeReader, invoiceSheet, itemSheet string) *SheetsSource {
	if invoiceSheet == "" {
		invoiceSheet = InvoiceTable
	}
	if itemSheet == "" {
		itemSheet = LineItemTable
	}
	return &SheetsSource{
		reader:       reader,
		invoiceSheet: invoiceSheet,
		itemSheet:    itemSheet,
		log:          logger.WithComponent("source-sheets"),
	}
}

// Load reads invoice number and its line items.
func (s *SheetsSource) Load(ctx context.Context, number string) (*models.Invoice, error) {
	const op = "SheetsSource.Load"

	s.log.Info().
		Str("invoice_number", number).
		Str("invoice_sheet", s.invoiceSheet).
		Str("item_sheet", s.itemSheet).
		Msg("Reading invoice from spreadsheet")

	invoices, err := s.reader.ReadRange(ctx, s.invoiceSheet+"!A:Z")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, s.invoiceSheet, err)
	}
	serials, err := s.reader.ReadRangeUnformatted(ctx, s.invoiceSheet+"!A:Z")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, s.invoiceSheet, err)
	}
	items, err := s.reader.ReadRange(ctx, s.itemSheet+"!A:Z")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, s.itemSheet, err)
	}

	rows := resolveDateSerials(toStrings(invoices), toStrings(serials), false)
	inv, err := FromSheets(s.invoiceSheet, rows, s.itemSheet, toStrings(items), number)
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("invoice_number", number).
		Int("line_items", len(inv.LineItems)).
		Msg("Invoice read from spreadsheet")

	return inv, nil
}

func toStrings(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = make([]string, len(row))
		for j := range row {
			rows[i][j] = getString(row, j)
		}
	}
	return rows
}

// getString safely gets a string value from a row
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	if s, ok := row[index].(string); ok {
		return s
	}
	return fmt.Sprint(row[index])
}
