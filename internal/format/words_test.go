package format_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/format"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "zero", amount: "0", want: "Zero Rupees"},
		{name: "single digit", amount: "7", want: "Seven Rupees"},
		{name: "teens", amount: "19", want: "Nineteen Rupees"},
		{name: "round tens", amount: "40", want: "Forty Rupees"},
		{name: "hundreds", amount: "305", want: "Three Hundred Five Rupees"},
		{name: "thousands", amount: "1001", want: "One Thousand One Rupees"},
		{name: "lakh and thousand", amount: "150000", want: "One Lakh Fifty Thousand Rupees"},
		{
			name:   "crore grouping",
			amount: "12345678",
			want:   "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees",
		},
		{name: "paise", amount: "99.5", want: "Ninety Nine Rupees and 50 Paise"},
		{name: "paise only", amount: "0.05", want: "Zero Rupees and 5 Paise"},
		{name: "rounds to nearest paise", amount: "10.005", want: "Ten Rupees and 1 Paise"},
		{name: "rounds up into rupees", amount: "10.999", want: "Eleven Rupees"},
		{
			name:   "crore count above ninety nine",
			amount: "1230000000",
			want:   "One Hundred Twenty Three Crore Rupees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.ToWords(decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWordsNeverAppendsOnly(t *testing.T) {
	got, err := format.ToWords(decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.NotContains(t, got, "Only")
}

func TestToWordsRejectsInvalidAmounts(t *testing.T) {
	_, err := format.ToWords(decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, format.ErrInvalidAmount)

	_, err = format.ToWords(decimal.New(1, 15))
	assert.ErrorIs(t, err, format.ErrInvalidAmount)

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5} {
		_, err = format.ToWordsFloat(f)
		assert.ErrorIs(t, err, format.ErrInvalidAmount)
	}

	var fe *format.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "FromFloat", fe.Op)
}

func TestToWordsFloat(t *testing.T) {
	got, err := format.ToWordsFloat(99.5)
	require.NoError(t, err)
	assert.Contains(t, got, "and 50 Paise")
}
