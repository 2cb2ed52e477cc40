// Package invoice turns invoice data into a finished, printable document.
//
// A Generator validates the invoice, cross-checks its stored totals, lays it
// out with the layout engine and renders the result. Nothing is handed back
// unless every stage succeeds; there is no partially generated document.
//
// Stored totals are authoritative. The totals check only logs warnings and
// the tax line printed on the document is always the residual of the stored
// total after subtotal and transportation.
package invoice

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/delivery"
	"invoicer/internal/layout"
	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/pkg/models"
)

// Request is everything needed to generate one document.
type Request struct {
	Invoice *models.Invoice

	// Issuer is optional; empty fields are left off the document.
	Issuer *models.IssuerProfile

	// DeliveryAddress is the buyer's ship-to address and must not be blank.
	DeliveryAddress string
}

// Document is a generated invoice ready for delivery.
type Document struct {
	FileName     string
	Data         []byte
	Pages        int
	Instructions []layout.Instruction
	Subtotal     decimal.Decimal

	// Warnings are totals discrepancies found before layout.
	Warnings []string
}

// Generator produces invoice documents. It is safe for concurrent use.
type Generator struct {
	engine   *layout.Engine
	renderer render.Renderer
	validate *validator.Validate
	totals   *TotalsCheck
	log      zerolog.Logger
}

// NewGenerator creates a Generator laying out with engine and rendering with
// renderer.
func NewGenerator(engine *layout.Engine, renderer render.Renderer) *Generator {
	return &Generator{
		engine:   engine,
		renderer: renderer,
		validate: newValidator(),
		totals:   NewTotalsCheck(),
		log:      logger.WithComponent("invoice"),
	}
}

// Generate validates, lays out and renders req.
func (g *Generator) Generate(ctx context.Context, req Request) (*Document, error) {
	start := time.Now()

	doc, err := g.prepare(req)
	if err != nil {
		return nil, err
	}
	log := logger.WithInvoice(g.log, req.Invoice.InvoiceNumber)

	if err := ctx.Err(); err != nil {
		return nil, WrapGenerationError("Generate", err, req.Invoice.InvoiceNumber)
	}

	data, err := g.renderer.Render(ctx, g.engine.Geometry(), doc.Instructions)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render invoice")
		return nil, WrapGenerationError("Render", err, req.Invoice.InvoiceNumber)
	}
	doc.Data = data

	log.Info().
		Int("pages", doc.Pages).
		Int("bytes", len(data)).
		Int("warnings", len(doc.Warnings)).
		Dur("duration", time.Since(start)).
		Msg("Invoice generated")

	return doc, nil
}

// Layout validates and lays out req without rendering. The returned
// Document has no Data.
func (g *Generator) Layout(req Request) (*Document, error) {
	return g.prepare(req)
}

func (g *Generator) prepare(req Request) (*Document, error) {
	inv := req.Invoice
	if inv == nil {
		return nil, NewGenerationError("Validate", ErrInvalidInvoice, "invoice is nil")
	}
	log := logger.WithInvoice(g.log, inv.InvoiceNumber)

	if errs := validateInvoice(g.validate, inv); len(errs) > 0 {
		err := &GenerationError{
			Op:            "Validate",
			Err:           ErrInvalidInvoice,
			Details:       joinValidationErrors(errs),
			InvoiceNumber: inv.InvoiceNumber,
		}
		log.Error().Err(err).Msg("Invoice failed validation")
		return nil, err
	}

	totals := g.totals.Check(inv)

	instructions, err := g.engine.Layout(inv, req.Issuer, req.DeliveryAddress)
	if err != nil {
		log.Error().Err(err).Msg("Failed to lay out invoice")
		return nil, WrapGenerationError("Layout", err, inv.InvoiceNumber)
	}

	return &Document{
		FileName:     delivery.FileName(inv.InvoiceNumber),
		Pages:        layout.PageCount(instructions),
		Instructions: instructions,
		Subtotal:     totals.Subtotal,
		Warnings:     totals.Warnings,
	}, nil
}
