package invoice

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// roundingTolerance is how far stored totals may drift from recomputed ones
// before a warning is logged.
var roundingTolerance = decimal.NewFromInt(1)

var hundred = decimal.NewFromInt(100)

// newValidator returns a validator that understands decimal amounts, so
// tags such as gte=0 apply to decimal.Decimal fields.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validateInvoice checks the struct tags on inv and returns one
// ValidationError per failing field.
func validateInvoice(v *validator.Validate, inv *models.Invoice) []*ValidationError {
	err := v.Struct(inv)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ValidationError{{Field: "invoice", Message: err.Error()}}
	}

	out := make([]*ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fmt.Sprintf("failed '%s' check", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed '%s=%s' check", fe.Tag(), fe.Param())
		}
		out = append(out, &ValidationError{
			Field:   fe.Namespace(),
			Value:   fe.Value(),
			Message: msg,
		})
	}
	return out
}

// TotalsCheck cross-checks the stored invoice totals against each other.
// Stored totals are authoritative for the document, so discrepancies are
// reported, never corrected.
type TotalsCheck struct {
	log zerolog.Logger
}

// NewTotalsCheck creates a new totals check
func NewTotalsCheck() *TotalsCheck {
	return &TotalsCheck{
		log: logger.WithComponent("totals-check"),
	}
}

// TotalsResult lists what the check found
type TotalsResult struct {
	Subtotal       decimal.Decimal
	ResidualTax    decimal.Decimal
	ExpectedTax    decimal.Decimal
	Warnings       []string
	HasDiscrepancy bool
}

// Check compares line totals, the tax residual and the pending amount with
// what the GST rate and line amounts imply.
func (tc *TotalsCheck) Check(inv *models.Invoice) *TotalsResult {
	result := &TotalsResult{Subtotal: inv.Subtotal()}

	rate := inv.GSTPercent.Div(hundred)
	result.ExpectedTax = result.Subtotal.Mul(rate).Round(2)
	result.ResidualTax = inv.TotalCost.Sub(result.Subtotal).Sub(inv.TransportationCost)

	lineSum := decimal.Zero
	for i, item := range inv.LineItems {
		lineSum = lineSum.Add(item.LineTotal)

		expected := item.BasicAmount.Add(item.BasicAmount.Mul(rate)).Round(2)
		if diff := expected.Sub(item.LineTotal).Abs(); diff.GreaterThan(roundingTolerance) {
			tc.warn(result, fmt.Sprintf("line %d total %s differs from basic plus %s%% GST (%s)",
				i+1, item.LineTotal.StringFixed(2), inv.GSTPercent.String(), expected.StringFixed(2)))
		}
	}

	if diff := result.ExpectedTax.Sub(result.ResidualTax).Abs(); diff.GreaterThan(roundingTolerance) {
		tc.warn(result, fmt.Sprintf("tax implied by total is %s but %s%% of subtotal is %s",
			result.ResidualTax.StringFixed(2), inv.GSTPercent.String(), result.ExpectedTax.StringFixed(2)))
	}

	if expected := lineSum.Add(inv.TransportationCost); expected.Sub(inv.TotalCost).Abs().GreaterThan(roundingTolerance) {
		tc.warn(result, fmt.Sprintf("total %s differs from line totals plus transportation (%s)",
			inv.TotalCost.StringFixed(2), expected.StringFixed(2)))
	}

	if inv.PendingAmount.GreaterThan(inv.TotalCost) {
		tc.warn(result, fmt.Sprintf("pending amount %s exceeds total %s",
			inv.PendingAmount.StringFixed(2), inv.TotalCost.StringFixed(2)))
	}

	tc.log.Debug().
		Str("invoice_number", inv.InvoiceNumber).
		Str("subtotal", result.Subtotal.StringFixed(2)).
		Str("residual_tax", result.ResidualTax.StringFixed(2)).
		Str("expected_tax", result.ExpectedTax.StringFixed(2)).
		Bool("has_discrepancy", result.HasDiscrepancy).
		Msg("Totals check completed")

	return result
}

func (tc *TotalsCheck) warn(result *TotalsResult, warning string) {
	result.Warnings = append(result.Warnings, warning)
	result.HasDiscrepancy = true
	tc.log.Warn().Msg(warning)
}
