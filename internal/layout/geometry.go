package layout

import "fmt"

// Column indexes of the line-items table, left to right.
const (
	ColDescription = iota
	ColCode
	ColQuantity
	ColUnitPrice
	ColTax
	ColLineTotal

	ColumnCount
)

// PageGeometry is the fixed page and table configuration a layout is computed
// against. All values are in points (1" = 72pt) with the origin at the top
// left of the page.
type PageGeometry struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Margin applies to all four sides.
	Margin float64 `json:"margin"`

	// BottomMargin is reserved above the bottom page margin; content never
	// extends into it.
	BottomMargin float64 `json:"bottom_margin"`

	// Columns holds the table column widths, indexed by the Col* constants.
	Columns [ColumnCount]float64 `json:"columns"`

	LineHeight      float64 `json:"line_height"`
	MinRowHeight    float64 `json:"min_row_height"`
	HeaderRowHeight float64 `json:"header_row_height"`
	CellPadding     float64 `json:"cell_padding"`

	FontSize      float64 `json:"font_size"`
	TitleFontSize float64 `json:"title_font_size"`
}

// A4 is the default invoice page.
var A4 = PageGeometry{
	Name:            "A4",
	Width:           595.28,
	Height:          841.89,
	Margin:          40,
	BottomMargin:    20,
	Columns:         [ColumnCount]float64{195, 60, 45, 75, 60, 80},
	LineHeight:      12,
	MinRowHeight:    20,
	HeaderRowHeight: 20,
	CellPadding:     4,
	FontSize:        9,
	TitleFontSize:   20,
}

// UsableWidth is the page width inside the side margins.
func (g PageGeometry) UsableWidth() float64 {
	return g.Width - 2*g.Margin
}

// PrintableHeight is the y coordinate of the bottom page margin.
func (g PageGeometry) PrintableHeight() float64 {
	return g.Height - g.Margin
}

// Limit is the lowest y coordinate content may reach.
func (g PageGeometry) Limit() float64 {
	return g.PrintableHeight() - g.BottomMargin
}

// Top is where the cursor starts on every page.
func (g PageGeometry) Top() float64 {
	return g.Margin
}

// TableWidth is the sum of all column widths.
func (g PageGeometry) TableWidth() float64 {
	var w float64
	for _, c := range g.Columns {
		w += c
	}
	return w
}

// ColumnX returns the left edge of column i.
func (g PageGeometry) ColumnX(i int) float64 {
	x := g.Margin
	for _, c := range g.Columns[:i] {
		x += c
	}
	return x
}

// Boundaries returns the x positions of all column edges, outer edges included.
func (g PageGeometry) Boundaries() []float64 {
	b := make([]float64, 0, ColumnCount+1)
	for i := 0; i <= ColumnCount; i++ {
		b = append(b, g.ColumnX(i))
	}
	return b
}

// Validate checks that the geometry can hold a table at all.
func (g PageGeometry) Validate() error {
	const op = "Validate"

	switch {
	case g.Width <= 0 || g.Height <= 0:
		return NewLayoutError(op, ErrInvalidGeometry, "page size must be positive")
	case g.Margin < 0 || g.BottomMargin < 0:
		return NewLayoutError(op, ErrInvalidGeometry, "margins must not be negative")
	case g.LineHeight <= 0 || g.MinRowHeight <= 0 || g.HeaderRowHeight <= 0 || g.FontSize <= 0:
		return NewLayoutError(op, ErrInvalidGeometry, "line and row heights must be positive")
	case g.Limit() <= g.Top():
		return NewLayoutError(op, ErrInvalidGeometry, "margins leave no printable height")
	}

	for i, c := range g.Columns {
		if c <= 2*g.CellPadding {
			return NewLayoutError(op, ErrInvalidGeometry, fmt.Sprintf("column %d is narrower than its padding", i))
		}
	}

	if g.TableWidth() > g.UsableWidth() {
		return NewLayoutError(op, ErrInvalidGeometry,
			fmt.Sprintf("columns need %.2fpt but only %.2fpt are usable", g.TableWidth(), g.UsableWidth()))
	}

	return nil
}
