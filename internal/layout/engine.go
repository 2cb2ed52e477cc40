// Package layout computes the printable layout of an invoice document.
//
// The engine walks the invoice top to bottom in a single pass, advancing a
// vertical cursor band by band (header, parties, purchase order, line items,
// summary, amount in words, payment details, terms, signature). Before a band
// or table row is drawn its height is known; if it would cross the page limit
// a new page is started first, so nothing is ever split across pages.
//
// The result is a slice of Instructions that any Sink can replay. The engine
// performs no I/O and keeps no state between calls; an Engine is safe for
// concurrent use.
package layout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"invoicer/internal/format"
	"invoicer/pkg/models"
)

// DefaultCurrencySymbol is printed before amounts in the summary band.
const DefaultCurrencySymbol = "Rs. "

// Fixed band dimensions.
const (
	bandGap            = 10
	headerDividerGap   = 6
	headerBottomGap    = 10
	titleHeight        = 24
	partyGutter        = 20
	poBandHeight       = 26
	summaryRowHeight   = 16
	summaryPadding     = 4
	summaryDividerGap  = 6
	signatureWidth     = 200
	signatureSpace     = 30
	defaultTitle       = "INVOICE"
	thankYouLine       = "Thank you for your business!"
	amountInWordsLabel = "Amount in words: "

	// No discount model exists; the line is always printed as zero.
	zeroDiscount = "0.00"
)

// ColumnLabels are the fixed table header labels, indexed by the Col* constants.
var ColumnLabels = [ColumnCount]string{"Particulars", "HSN/SAC", "Qty", "Rate", "GST", "Amount"}

var columnAlign = [ColumnCount]Align{AlignLeft, AlignCenter, AlignRight, AlignRight, AlignRight, AlignRight}

// Terms are printed verbatim on every invoice.
var Terms = []string{
	"Goods once sold will not be taken back or exchanged.",
	"Interest at 18% per annum will be charged on payments delayed beyond the due date.",
	"All disputes are subject to local jurisdiction only.",
}

// Engine lays invoices out against a fixed page geometry.
type Engine struct {
	geometry PageGeometry
	measurer Measurer
	symbol   string
	title    string
}

// Option configures an Engine.
type Option func(*Engine)

// WithGeometry replaces the default A4 geometry.
func WithGeometry(g PageGeometry) Option {
	return func(e *Engine) { e.geometry = g }
}

// WithMeasurer replaces the Helvetica string metrics used for wrapping.
func WithMeasurer(m Measurer) Option {
	return func(e *Engine) { e.measurer = m }
}

// WithCurrencySymbol sets the symbol printed before summary amounts.
func WithCurrencySymbol(symbol string) Option {
	return func(e *Engine) { e.symbol = symbol }
}

// WithTitle sets the document title in the header band.
func WithTitle(title string) Option {
	return func(e *Engine) { e.title = title }
}

// NewEngine returns an Engine with the given options applied over the A4
// defaults.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		geometry: A4,
		measurer: HelveticaMetrics{},
		symbol:   DefaultCurrencySymbol,
		title:    defaultTitle,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.geometry.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Geometry returns the page geometry the engine lays out against.
func (e *Engine) Geometry() PageGeometry {
	return e.geometry
}

// Layout lays out inv with an optional issuer profile and the buyer's delivery
// address. It returns the full instruction sequence or an error; on error no
// instructions are returned.
func Layout(inv *models.Invoice, issuer *models.IssuerProfile, deliveryAddress string) ([]Instruction, error) {
	e, err := NewEngine()
	if err != nil {
		return nil, err
	}
	return e.Layout(inv, issuer, deliveryAddress)
}

// Layout lays out inv. See the package-level Layout.
func (e *Engine) Layout(inv *models.Invoice, issuer *models.IssuerProfile, deliveryAddress string) ([]Instruction, error) {
	const op = "Layout"

	switch {
	case inv == nil:
		return nil, NewLayoutError(op, ErrNilInvoice, "")
	case len(inv.LineItems) == 0:
		return nil, NewLayoutError(op, ErrNoLineItems, inv.InvoiceNumber)
	case strings.TrimSpace(deliveryAddress) == "":
		return nil, NewLayoutError(op, ErrEmptyAddress, inv.InvoiceNumber)
	}

	if issuer == nil {
		issuer = &models.IssuerProfile{}
	}

	r := &run{
		e:       e,
		g:       e.geometry,
		rec:     NewRecorder(),
		inv:     inv,
		issuer:  issuer,
		address: strings.TrimSpace(deliveryAddress),
	}

	bands := []func() error{
		r.headerBand,
		r.partyBand,
		r.purchaseOrderBand,
		r.lineItemsTable,
		r.summaryBand,
		r.amountInWordsBand,
		r.thankYouBand,
		r.paymentDetailsBand,
		r.termsBand,
		r.authorizationBand,
	}

	r.newPage()
	for _, band := range bands {
		if err := band(); err != nil {
			return nil, err
		}
	}

	return r.rec.Instructions(), nil
}

// run is the per-call cursor state.
type run struct {
	e   *Engine
	g   PageGeometry
	rec *Recorder

	inv     *models.Invoice
	issuer  *models.IssuerProfile
	address string

	y        float64
	subtotal decimal.Decimal

	// segmentTop is where the table's border box starts on the current page.
	segmentTop float64
}

// line is one line of text with its style, used to measure a band before it
// is drawn.
type line struct {
	text  string
	style Style
}

func (r *run) newPage() {
	r.rec.NewPage()
	r.y = r.g.Top()
}

// ensure starts a new page when a block of height h would cross the limit.
func (r *run) ensure(h float64, what string) error {
	if h > r.g.Limit()-r.g.Top() {
		return NewLayoutError("Layout", ErrContentTooTall, fmt.Sprintf("%s needs %.1fpt", what, h))
	}
	if r.y+h > r.g.Limit() {
		r.newPage()
	}
	return nil
}

func (r *run) regular() Style {
	return Style{Weight: Regular, Size: r.g.FontSize, Color: Black, Align: AlignLeft}
}

func (r *run) bold() Style {
	return Style{Weight: Bold, Size: r.g.FontSize, Color: Black, Align: AlignLeft}
}

func (r *run) rule() Style {
	return Style{Color: RuleGray, LineWidth: 0.5}
}

// wrap turns text into styled lines fitting width.
func (r *run) wrap(text string, width float64, style Style) []line {
	var out []line
	for _, s := range Wrap(r.e.measurer, text, width, style.Size, style.Weight) {
		out = append(out, line{text: s, style: style})
	}
	return out
}

// drawLines places lines top-down starting at (x, y) in a box of width w.
func (r *run) drawLines(lines []line, x, y, w float64, align Align) {
	for i, l := range lines {
		st := l.style
		st.Align = align
		r.rec.PlaceText(x, y+float64(i)*r.g.LineHeight, w, r.g.LineHeight, l.text, st)
	}
}

func (r *run) money(amount decimal.Decimal, what string) (string, error) {
	s, err := format.FormatCurrency(amount, r.e.symbol)
	if err != nil {
		return "", fmt.Errorf("%s: %w", what, err)
	}
	return s, nil
}
