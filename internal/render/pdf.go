// Package render turns layout instructions into document bytes.
package render

import (
	"bytes"
	"context"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"invoicer/internal/layout"
	"invoicer/internal/logger"
)

// Renderer produces a finished document from a laid-out instruction
// sequence. Implementations must not reorder or drop instructions.
type Renderer interface {
	Render(ctx context.Context, geometry layout.PageGeometry, instructions []layout.Instruction) ([]byte, error)
}

const fontFamily = "Helvetica"

// PDFRenderer renders instructions to PDF with the core Helvetica font.
type PDFRenderer struct {
	author string
	log    zerolog.Logger
}

// NewPDFRenderer returns a PDFRenderer. author is written to the document
// metadata when non-empty.
func NewPDFRenderer(author string) *PDFRenderer {
	return &PDFRenderer{
		author: author,
		log:    logger.WithComponent("render"),
	}
}

// Render paints instructions onto a new PDF sized to geometry.
func (r *PDFRenderer) Render(ctx context.Context, geometry layout.PageGeometry, instructions []layout.Instruction) ([]byte, error) {
	const op = "Render"

	if err := ctx.Err(); err != nil {
		return nil, newRenderError(op, 0, err)
	}

	canvas := NewCanvas(geometry)
	if r.author != "" {
		canvas.pdf.SetAuthor(r.author, true)
	}

	for _, in := range instructions {
		if in.Kind == layout.KindNewPage {
			if err := ctx.Err(); err != nil {
				return nil, newRenderError(op, canvas.page, err)
			}
		}
		if err := layout.Replay([]layout.Instruction{in}, canvas); err != nil {
			return nil, newRenderError(op, canvas.page, err)
		}
		if canvas.pdf.Err() {
			return nil, newRenderError(op, canvas.page, canvas.pdf.Error())
		}
	}

	data, err := canvas.Bytes()
	if err != nil {
		return nil, err
	}

	r.log.Debug().
		Int("pages", canvas.page).
		Int("instructions", len(instructions)).
		Int("bytes", len(data)).
		Msg("Rendered PDF")

	return data, nil
}

// Canvas is a layout.Sink backed by a gofpdf document. Coordinates are in
// points from the top-left corner, matching the layout engine.
type Canvas struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	page      int
}

// NewCanvas starts an empty document with pages of the given geometry.
func NewCanvas(geometry layout.PageGeometry) *Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geometry.Width, Ht: geometry.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetCreator("invoicer", true)

	return &Canvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *Canvas) NewPage() {
	c.page++
	c.pdf.AddPage()
}

func (c *Canvas) PlaceText(x, y, w, h float64, text string, style layout.Style) {
	fontStyle := ""
	if style.Weight == layout.Bold {
		fontStyle = "B"
	}
	c.pdf.SetFont(fontFamily, fontStyle, style.Size)
	c.pdf.SetTextColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.translate(text), "", 0, alignString(style.Align), false, 0, "")
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64, style layout.Style) {
	c.pdf.SetDrawColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))
	c.pdf.SetLineWidth(style.LineWidth)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *Canvas) DrawRect(x, y, w, h float64, style layout.Style) {
	if style.Fill {
		c.pdf.SetFillColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))
		c.pdf.Rect(x, y, w, h, "F")
		return
	}
	c.pdf.SetDrawColor(int(style.Color.R), int(style.Color.G), int(style.Color.B))
	c.pdf.SetLineWidth(style.LineWidth)
	c.pdf.Rect(x, y, w, h, "D")
}

// Pages returns the number of pages started on the canvas.
func (c *Canvas) Pages() int {
	return c.page
}

// Bytes closes the document and returns its serialized form.
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, newRenderError("Output", c.page, err)
	}
	return buf.Bytes(), nil
}

func alignString(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "CM"
	case layout.AlignRight:
		return "RM"
	default:
		return "LM"
	}
}
