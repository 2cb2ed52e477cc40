package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"invoicer/pkg/models"
)

// LoadXLSX reads invoice number from a workbook holding the Invoices and
// LineItems sheets.
func LoadXLSX(r io.Reader, number string) (*models.Invoice, error) {
	return LoadXLSXSheets(r, number, InvoiceTable, LineItemTable)
}

// LoadXLSXSheets is LoadXLSX with custom sheet names. Date cells may be typed
// as dates or entered as text.
func LoadXLSXSheets(r io.Reader, number, invoiceSheet, itemSheet string) (*models.Invoice, error) {
	const op = "LoadXLSX"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open workbook: %w", op, err)
	}
	defer f.Close()

	invoices, err := f.GetRows(invoiceSheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %s: %w", op, invoiceSheet, err)
	}
	serials, err := f.GetRows(invoiceSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read raw values of sheet %s: %w", op, invoiceSheet, err)
	}
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read workbook properties: %w", op, err)
	}
	date1904 := props.Date1904 != nil && *props.Date1904
	invoices = resolveDateSerials(invoices, serials, date1904)

	items, err := f.GetRows(itemSheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %s: %w", op, itemSheet, err)
	}

	return FromSheets(invoiceSheet, invoices, itemSheet, items, number)
}
