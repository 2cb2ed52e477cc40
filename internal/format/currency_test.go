package format_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/internal/format"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Rs. 0.00"},
		{"5.5", "Rs. 5.50"},
		{"999", "Rs. 999.00"},
		{"1000", "Rs. 1,000.00"},
		{"99999.999", "Rs. 1,00,000.00"},
		{"1234567.8", "Rs. 12,34,567.80"},
		{"123456789.01", "Rs. 12,34,56,789.01"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := format.FormatCurrency(decimal.RequireFromString(tt.amount), "Rs. ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmountRejectsNegative(t *testing.T) {
	_, err := format.FormatAmount(decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, format.ErrInvalidAmount)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1,50,000.25", want: "150000.25"},
		{in: " ₹ 1,000 ", want: "1000"},
		{in: "Rs. 12.5", want: "12.5"},
		{in: "1,000,000", want: "1000000"},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "-10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := format.ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, format.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}
