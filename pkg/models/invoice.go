package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Invoice is the read-only input to document generation.
type Invoice struct {
	// Core identifiers
	InvoiceNumber string `json:"invoice_number" validate:"required"`

	// Dates are kept as entered upstream and parsed at render time
	InvoiceDate string `json:"invoice_date" validate:"required"`
	DueDate     string `json:"due_date" validate:"required"`

	PurchaseOrder *PurchaseOrderRef `json:"purchase_order,omitempty"`

	// Vendor is the buyer the invoice is addressed to
	Vendor string `json:"vendor" validate:"required"`

	// Amounts
	GSTPercent         decimal.Decimal `json:"gst_percent" validate:"gte=0,lte=100"`
	TransportationCost decimal.Decimal `json:"transportation_cost" validate:"gte=0"`
	TotalCost          decimal.Decimal `json:"total_cost" validate:"gte=0"`
	PendingAmount      decimal.Decimal `json:"pending_amount" validate:"gte=0"`

	LineItems []LineItem `json:"line_items" validate:"required,min=1,dive"`
}

// PurchaseOrderRef is the buyer's purchase order the invoice bills against.
type PurchaseOrderRef struct {
	Number string `json:"number" validate:"required"`
	Date   string `json:"date"`
}

// LineItem is one billable row of an invoice.
type LineItem struct {
	Particulars string          `json:"particulars"`
	Code        string          `json:"code,omitempty"` // HSN/SAC
	Quantity    int             `json:"quantity" validate:"gt=0"`
	BasicAmount decimal.Decimal `json:"basic_amount" validate:"gte=0"` // pre-tax
	LineTotal   decimal.Decimal `json:"line_total" validate:"gte=0"`
}

// HasPurchaseOrder reports whether a PO reference should be printed.
func (inv *Invoice) HasPurchaseOrder() bool {
	return inv.PurchaseOrder != nil && strings.TrimSpace(inv.PurchaseOrder.Number) != ""
}

// Subtotal sums the pre-tax basic amounts of all line items.
func (inv *Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range inv.LineItems {
		sum = sum.Add(item.BasicAmount)
	}
	return sum
}

// UnitPrice derives the per-unit rate from the basic amount.
func (li LineItem) UnitPrice() decimal.Decimal {
	if li.Quantity <= 0 {
		return decimal.Zero
	}
	return li.BasicAmount.Div(decimal.NewFromInt(int64(li.Quantity))).Round(2)
}

// TaxAmount is the tax share of the line as implied by the trusted line total.
func (li LineItem) TaxAmount() decimal.Decimal {
	return li.LineTotal.Sub(li.BasicAmount)
}
