package layout

// Measurer reports the rendered width of a string in points.
type Measurer interface {
	StringWidth(text string, size float64, weight Weight) float64
}

// HelveticaMetrics measures with the standard Helvetica and Helvetica-Bold
// advance widths, the core font the PDF renderer draws with.
type HelveticaMetrics struct{}

// Glyph advance widths for ASCII 32..126 in 1/1000 em.
var (
	helveticaWidths = [95]uint16{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556,
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556,
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556,
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
	}
	helveticaBoldWidths = [95]uint16{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333, 584, 584, 584, 611,
		975, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778,
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 333, 278, 333, 584, 556,
		333, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611,
		611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
	}
)

// fallbackWidth is used for runes outside printable ASCII.
const fallbackWidth = 556

func (HelveticaMetrics) StringWidth(text string, size float64, weight Weight) float64 {
	table := &helveticaWidths
	if weight == Bold {
		table = &helveticaBoldWidths
	}

	var units int
	for _, r := range text {
		if r >= 32 && r <= 126 {
			units += int(table[r-32])
		} else {
			units += fallbackWidth
		}
	}

	return float64(units) * size / 1000
}
