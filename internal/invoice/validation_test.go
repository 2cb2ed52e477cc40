package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func validInvoice() *models.Invoice {
	return &models.Invoice{
		InvoiceNumber:      "INV-1",
		InvoiceDate:        "2024-03-15",
		DueDate:            "2024-04-14",
		Vendor:             "Acme",
		GSTPercent:         decimal.NewFromInt(18),
		TotalCost:          decimal.NewFromInt(1230),
		PendingAmount:      decimal.NewFromInt(1230),
		TransportationCost: decimal.NewFromInt(50),
		LineItems: []models.LineItem{
			{Particulars: "Angle", Quantity: 10, BasicAmount: decimal.NewFromInt(1000), LineTotal: decimal.NewFromInt(1180)},
		},
	}
}

func TestValidateInvoice(t *testing.T) {
	v := newValidator()
	assert.Empty(t, validateInvoice(v, validInvoice()))

	inv := validInvoice()
	inv.PendingAmount = decimal.RequireFromString("-0.01")
	inv.LineItems[0].Quantity = -1

	errs := validateInvoice(v, inv)
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.Contains(t, fields, "Invoice.PendingAmount")
	assert.Contains(t, fields, "Invoice.LineItems[0].Quantity")
	assert.Contains(t, joinValidationErrors(errs), "failed 'gte=0' check")
}

func TestValidateInvoicePurchaseOrder(t *testing.T) {
	v := newValidator()

	inv := validInvoice()
	inv.PurchaseOrder = &models.PurchaseOrderRef{Date: "2024-03-01"}
	errs := validateInvoice(v, inv)
	require.Len(t, errs, 1)
	assert.Equal(t, "Invoice.PurchaseOrder.Number", errs[0].Field)
}

func TestTotalsCheckConsistent(t *testing.T) {
	result := NewTotalsCheck().Check(validInvoice())

	assert.False(t, result.HasDiscrepancy)
	assert.Empty(t, result.Warnings)
	assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.ResidualTax.Equal(decimal.NewFromInt(180)))
	assert.True(t, result.ExpectedTax.Equal(decimal.NewFromInt(180)))
}

func TestTotalsCheckWithinRounding(t *testing.T) {
	inv := validInvoice()
	inv.TotalCost = decimal.RequireFromString("1230.60")
	inv.PendingAmount = inv.TotalCost

	assert.False(t, NewTotalsCheck().Check(inv).HasDiscrepancy)
}

func TestTotalsCheckDiscrepancies(t *testing.T) {
	inv := validInvoice()
	inv.LineItems[0].LineTotal = decimal.NewFromInt(1100)
	inv.PendingAmount = decimal.NewFromInt(5000)

	result := NewTotalsCheck().Check(inv)

	assert.True(t, result.HasDiscrepancy)
	// line total, total vs lines, pending over total
	assert.Len(t, result.Warnings, 3)
	assert.True(t, result.ResidualTax.Equal(decimal.NewFromInt(180)), "stored totals are not corrected")
}
