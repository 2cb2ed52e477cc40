package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRanges map[string][][]interface{}

func (f fakeRanges) ReadRange(_ context.Context, rangeSpec string) ([][]interface{}, error) {
	sheet, _, _ := strings.Cut(rangeSpec, "!")
	values, ok := f[sheet]
	if !ok {
		return nil, errors.New("unable to parse range: " + rangeSpec)
	}
	return values, nil
}

func (f fakeRanges) ReadRangeUnformatted(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	return f.ReadRange(ctx, rangeSpec)
}

// serialSheets serves display strings from ReadRange and stored values from
// ReadRangeUnformatted.
type serialSheets struct {
	fakeRanges
	stored fakeRanges
}

func (s serialSheets) ReadRangeUnformatted(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	return s.stored.ReadRange(ctx, rangeSpec)
}

func toInterfaces(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		for _, v := range row {
			out[i] = append(out[i], v)
		}
	}
	return out
}

func TestSheetsSourceLoad(t *testing.T) {
	items := toInterfaces(itemRows)
	items[1][3] = float64(10) // unformatted numeric cell

	src := NewSheetsSource(fakeRanges{
		"Bills": toInterfaces(invoiceRows),
		"Rows":  items,
	}, "Bills", "Rows")

	inv, err := src.Load(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", inv.Vendor)
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, 10, inv.LineItems[0].Quantity)
}

func TestSheetsSourceDefaultsAndErrors(t *testing.T) {
	src := NewSheetsSource(fakeRanges{InvoiceTable: toInterfaces(invoiceRows)}, "", "")

	_, err := src.Load(context.Background(), "INV-1")
	assert.ErrorContains(t, err, LineItemTable)

	src = NewSheetsSource(fakeRanges{
		InvoiceTable:  toInterfaces(invoiceRows),
		LineItemTable: toInterfaces(itemRows),
	}, "", "")
	_, err = src.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestGetString(t *testing.T) {
	row := []interface{}{"a", float64(2.5), nil}
	assert.Equal(t, "a", getString(row, 0))
	assert.Equal(t, "2.5", getString(row, 1))
	assert.Equal(t, "", getString(row, 2))
	assert.Equal(t, "", getString(row, 9))
}

func TestSheetsSourceDateSerials(t *testing.T) {
	shown := toInterfaces(invoiceRows)
	shown[1][1] = "3/15/2024"
	shown[1][2] = "Sunday, April 14, 2024"

	stored := toInterfaces(invoiceRows)
	stored[1][1] = float64(45366)
	stored[1][2] = float64(45396)

	src := NewSheetsSource(serialSheets{
		fakeRanges: fakeRanges{InvoiceTable: shown, LineItemTable: toInterfaces(itemRows)},
		stored:     fakeRanges{InvoiceTable: stored},
	}, "", "")

	inv, err := src.Load(context.Background(), "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", inv.InvoiceDate)
	assert.Equal(t, "2024-04-14", inv.DueDate)
	assert.Equal(t, "2024-03-01", inv.PurchaseOrder.Date)
}

func TestSheetsSourceRowErrorNamesSheet(t *testing.T) {
	items := toInterfaces(itemRows)
	items[1][3] = "ten"

	src := NewSheetsSource(fakeRanges{
		"Bills": toInterfaces(invoiceRows),
		"Rows":  items,
	}, "Bills", "Rows")

	_, err := src.Load(context.Background(), "INV-1")
	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "Rows", rowErr.Table)
	assert.Equal(t, 2, rowErr.Row)
}
