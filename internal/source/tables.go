package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"invoicer/internal/format"
	"invoicer/pkg/models"
)

// Default sheet names of the tabular format.
const (
	InvoiceTable  = "Invoices"
	LineItemTable = "LineItems"
)

// Invoice table headers.
const (
	colInvoiceNumber  = "Invoice Number"
	colInvoiceDate    = "Invoice Date"
	colDueDate        = "Due Date"
	colPONumber       = "PO Number"
	colPODate         = "PO Date"
	colVendor         = "Vendor"
	colGSTPercent     = "GST %"
	colTransportation = "Transportation"
	colTotal          = "Total"
	colPending        = "Pending"
)

// Line item table headers.
const (
	colParticulars = "Particulars"
	colCode        = "Code"
	colQuantity    = "Quantity"
	colBasicAmount = "Basic Amount"
	colLineTotal   = "Line Total"
)

// table is a header-addressed view over raw rows.
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func newTable(name string, raw [][]string, required ...string) (*table, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}

	t := &table{name: name, columns: make(map[string]int), rows: raw[1:]}
	for i, h := range raw[0] {
		key := normalizeHeader(h)
		if _, dup := t.columns[key]; key != "" && !dup {
			t.columns[key] = i
		}
	}

	for _, col := range required {
		if !t.has(col) {
			return nil, fmt.Errorf("%s: %w: %q", name, ErrMissingColumn, col)
		}
	}
	return t, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func (t *table) has(col string) bool {
	_, ok := t.columns[normalizeHeader(col)]
	return ok
}

// cell returns the trimmed value of col in row, or "" when the row is short
// or the column is absent.
func (t *table) cell(row []string, col string) string {
	i, ok := t.columns[normalizeHeader(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowNumber converts an index into t.rows to the sheet row number.
func (t *table) rowNumber(i int) int {
	return i + 2
}

func (t *table) rowError(i int, col string, err error) error {
	return &RowError{Table: t.name, Row: t.rowNumber(i), Column: col, Err: err}
}

// amount parses an optional money cell; blank is zero.
func (t *table) amount(i int, row []string, col string) (decimal.Decimal, error) {
	raw := t.cell(row, col)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := format.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, t.rowError(i, col, err)
	}
	return d, nil
}

// FromTables builds invoice number from the rows of an Invoices table and a
// LineItems table, each starting with its header row. Headers are matched
// case-insensitively; line items keep their sheet order.
func FromTables(invoices, items [][]string, number string) (*models.Invoice, error) {
	return FromSheets(InvoiceTable, invoices, LineItemTable, items, number)
}

// FromSheets is FromTables for sheets with custom names. Row errors name the
// sheet the bad cell came from.
func FromSheets(invoiceSheet string, invoices [][]string, itemSheet string, items [][]string, number string) (*models.Invoice, error) {
	const op = "FromTables"

	number = strings.TrimSpace(number)

	invTable, err := newTable(invoiceSheet, invoices, colInvoiceNumber, colInvoiceDate, colDueDate, colVendor, colTotal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	itemTable, err := newTable(itemSheet, items, colInvoiceNumber, colParticulars, colQuantity, colBasicAmount, colLineTotal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	inv, err := findInvoice(invTable, number)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, row := range itemTable.rows {
		if itemTable.cell(row, colInvoiceNumber) != number {
			continue
		}
		item, err := parseLineItem(itemTable, i, row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		inv.LineItems = append(inv.LineItems, item)
	}

	return inv, nil
}

func findInvoice(t *table, number string) (*models.Invoice, error) {
	for i, row := range t.rows {
		if t.cell(row, colInvoiceNumber) != number {
			continue
		}
		return parseInvoice(t, i, row)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvoiceNotFound, number)
}

func parseInvoice(t *table, i int, row []string) (*models.Invoice, error) {
	inv := &models.Invoice{
		InvoiceNumber: t.cell(row, colInvoiceNumber),
		InvoiceDate:   t.cell(row, colInvoiceDate),
		DueDate:       t.cell(row, colDueDate),
		Vendor:        t.cell(row, colVendor),
	}

	if po := t.cell(row, colPONumber); po != "" {
		inv.PurchaseOrder = &models.PurchaseOrderRef{Number: po, Date: t.cell(row, colPODate)}
	}

	if raw := strings.TrimSuffix(t.cell(row, colGSTPercent), "%"); raw != "" {
		gst, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, t.rowError(i, colGSTPercent, err)
		}
		inv.GSTPercent = gst
	}

	var err error
	if inv.TransportationCost, err = t.amount(i, row, colTransportation); err != nil {
		return nil, err
	}
	if inv.TotalCost, err = t.amount(i, row, colTotal); err != nil {
		return nil, err
	}

	// A blank pending cell means nothing has been paid yet.
	inv.PendingAmount = inv.TotalCost
	if t.cell(row, colPending) != "" {
		if inv.PendingAmount, err = t.amount(i, row, colPending); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

func parseLineItem(t *table, i int, row []string) (models.LineItem, error) {
	item := models.LineItem{
		Particulars: t.cell(row, colParticulars),
		Code:        t.cell(row, colCode),
	}

	qty, err := parseQuantity(t.cell(row, colQuantity))
	if err != nil {
		return item, t.rowError(i, colQuantity, err)
	}
	item.Quantity = qty

	if item.BasicAmount, err = t.amount(i, row, colBasicAmount); err != nil {
		return item, err
	}
	if item.LineTotal, err = t.amount(i, row, colLineTotal); err != nil {
		return item, err
	}

	return item, nil
}

// parseQuantity accepts whole numbers, including spreadsheet renderings
// such as "3.00" or "1,200".
func parseQuantity(raw string) (int, error) {
	raw = strings.ReplaceAll(raw, ",", "")
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", raw)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantity %q is not a whole number", raw)
	}
	return int(d.IntPart()), nil
}

// dateColumns are the invoice columns a spreadsheet may store as date serials.
var dateColumns = []string{colInvoiceDate, colDueDate, colPODate}

const isoDate = "2006-01-02"

// resolveDateSerials rewrites the date cells of rows (header first) as ISO
// dates, taking the value from the serial number at the same position in
// serials. Cells whose serial is not a positive number keep their text.
func resolveDateSerials(rows, serials [][]string, date1904 bool) [][]string {
	if len(rows) == 0 {
		return rows
	}

	var idx []int
	for j, h := range rows[0] {
		for _, col := range dateColumns {
			if normalizeHeader(h) == normalizeHeader(col) {
				idx = append(idx, j)
			}
		}
	}

	for i := 1; i < len(rows) && i < len(serials); i++ {
		for _, j := range idx {
			if j >= len(rows[i]) || j >= len(serials[i]) {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(serials[i][j]), 64)
			if err != nil || serial <= 0 {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, date1904)
			if err != nil {
				continue
			}
			rows[i][j] = t.Format(isoDate)
		}
	}
	return rows
}
