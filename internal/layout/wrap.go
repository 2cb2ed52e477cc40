package layout

import "strings"

// Wrap breaks text into lines no wider than width. Words are kept whole unless
// a single word is wider than a line, in which case it is split by runes.
// Explicit newlines start a new line; blank lines are dropped.
func Wrap(m Measurer, text string, width, size float64, weight Weight) []string {
	var lines []string

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, paragraph := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(paragraph) {
			for m.StringWidth(word, size, weight) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				var head string
				head, word = splitWord(m, word, width, size, weight)
				lines = append(lines, head)
			}
			if word == "" {
				continue
			}

			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if m.StringWidth(candidate, size, weight) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = word
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// splitWord returns the longest prefix of word that fits width (at least one
// rune) and the remainder.
func splitWord(m Measurer, word string, width, size float64, weight Weight) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && m.StringWidth(string(runes[:n+1]), size, weight) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
