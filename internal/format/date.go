package format

import (
	"strings"
	"time"
)

// DisplayLayout is the pattern dates are printed with.
const DisplayLayout = "02 Jan 2006"

// inputLayouts are tried in order.
var inputLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate reads a date as stored upstream.
func ParseDate(input string) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, invalidDate("ParseDate", input)
	}

	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}

	return time.Time{}, invalidDate("ParseDate", input)
}

// FormatDate renders a stored date as "15 Mar 2024".
func FormatDate(input string) (string, error) {
	t, err := ParseDate(input)
	if err != nil {
		return "", err
	}
	return FormatTime(t), nil
}

// FormatTime renders an already parsed date.
func FormatTime(t time.Time) string {
	return t.Format(DisplayLayout)
}
