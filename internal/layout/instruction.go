package layout

import "fmt"

// Kind identifies a draw instruction variant.
type Kind string

const (
	KindText    Kind = "text"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindNewPage Kind = "new_page"
)

// Weight is a font weight.
type Weight string

const (
	Regular Weight = "regular"
	Bold    Weight = "bold"
)

// Align is the horizontal alignment of text within its box.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black      = RGB{0, 0, 0}
	Accent     = RGB{31, 78, 121}
	RuleGray   = RGB{150, 150, 150}
	HeaderFill = RGB{232, 236, 241}
)

// Style carries font and paint attributes. Text uses Weight, Size, Color and
// Align; lines use Color and LineWidth; rectangles use Color and Fill.
type Style struct {
	Weight    Weight  `json:"weight,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Color     RGB     `json:"color"`
	Align     Align   `json:"align,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`

	// Fill paints the rectangle instead of stroking its outline.
	Fill bool `json:"fill,omitempty"`
}

// Instruction is one renderer-agnostic paint command. The sequence a layout
// returns is in paint order.
//
// Text occupies the box (X, Y, W, H) with Y at the top of the line. Lines run
// from (X, Y) to (X2, Y2). Rectangles span (X, Y, W, H).
type Instruction struct {
	Kind Kind `json:"kind"`

	// Page is the 1-based page the instruction paints on; for KindNewPage it
	// is the page being started.
	Page int `json:"page"`

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	W  float64 `json:"w,omitempty"`
	H  float64 `json:"h,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Text  string `json:"text,omitempty"`
	Style Style  `json:"style"`
}

// Bottom is the lowest y coordinate the instruction paints at.
func (in Instruction) Bottom() float64 {
	switch in.Kind {
	case KindLine:
		return max(in.Y, in.Y2)
	case KindText, KindRect:
		return in.Y + in.H
	default:
		return 0
	}
}

// Sink is a drawing backend. The layout engine records into a Sink and any
// paginated renderer can replay the result through one.
type Sink interface {
	NewPage()
	PlaceText(x, y, w, h float64, text string, style Style)
	DrawLine(x1, y1, x2, y2 float64, style Style)
	DrawRect(x, y, w, h float64, style Style)
}

// Recorder is a Sink that keeps every call as an Instruction.
type Recorder struct {
	instructions []Instruction
	page         int
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewPage() {
	r.page++
	r.instructions = append(r.instructions, Instruction{Kind: KindNewPage, Page: r.page})
}

func (r *Recorder) PlaceText(x, y, w, h float64, text string, style Style) {
	r.instructions = append(r.instructions, Instruction{
		Kind: KindText, Page: r.page, X: x, Y: y, W: w, H: h, Text: text, Style: style,
	})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64, style Style) {
	r.instructions = append(r.instructions, Instruction{
		Kind: KindLine, Page: r.page, X: x1, Y: y1, X2: x2, Y2: y2, Style: style,
	})
}

func (r *Recorder) DrawRect(x, y, w, h float64, style Style) {
	r.instructions = append(r.instructions, Instruction{
		Kind: KindRect, Page: r.page, X: x, Y: y, W: w, H: h, Style: style,
	})
}

// Instructions returns everything recorded so far.
func (r *Recorder) Instructions() []Instruction {
	return r.instructions
}

// Pages returns the number of pages started.
func (r *Recorder) Pages() int {
	return r.page
}

// Replay sends instructions to sink in order.
func Replay(instructions []Instruction, sink Sink) error {
	for i, in := range instructions {
		switch in.Kind {
		case KindNewPage:
			sink.NewPage()
		case KindText:
			sink.PlaceText(in.X, in.Y, in.W, in.H, in.Text, in.Style)
		case KindLine:
			sink.DrawLine(in.X, in.Y, in.X2, in.Y2, in.Style)
		case KindRect:
			sink.DrawRect(in.X, in.Y, in.W, in.H, in.Style)
		default:
			return NewLayoutError("Replay", ErrUnknownInstruction, fmt.Sprintf("instruction %d has kind %q", i, in.Kind))
		}
	}
	return nil
}

// PageCount counts the pages started in instructions.
func PageCount(instructions []Instruction) int {
	n := 0
	for _, in := range instructions {
		if in.Kind == KindNewPage {
			n++
		}
	}
	return n
}
