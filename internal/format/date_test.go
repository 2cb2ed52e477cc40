package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/format"
)

func TestFormatDate(t *testing.T) {
	for _, in := range []string{
		"2024-03-05",
		"2024-03-05T10:30:00Z",
		"2024-03-05T10:30:00.123Z",
		"2024-03-05T10:30:00",
		"2024-03-05 10:30:00",
		"05/03/2024",
	} {
		got, err := format.FormatDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "05 Mar 2024", got, in)
	}
}

func TestFormatDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "Invalid Date", "2024-13-40", "yesterday"} {
		got, err := format.FormatDate(in)
		assert.ErrorIs(t, err, format.ErrInvalidDate, in)
		assert.Empty(t, got)
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "31 Dec 1999", format.FormatTime(time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC)))
}
