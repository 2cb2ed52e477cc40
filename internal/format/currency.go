package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount with two decimals, South-Asian thousands
// separators and the given symbol prefixed: 1234567.8 -> "Rs. 12,34,567.80".
func FormatCurrency(amount decimal.Decimal, symbol string) (string, error) {
	s, err := formatAmount("FormatCurrency", amount)
	if err != nil {
		return "", err
	}
	return symbol + s, nil
}

// FormatAmount is FormatCurrency without a symbol.
func FormatAmount(amount decimal.Decimal) (string, error) {
	return formatAmount("FormatAmount", amount)
}

func formatAmount(op string, amount decimal.Decimal) (string, error) {
	if amount.IsNegative() || amount.GreaterThanOrEqual(maxAmount) {
		return "", invalidAmount(op, amount.String())
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	return groupDigits(intPart) + "." + frac, nil
}

// groupDigits inserts separators: the last three digits form one group, the
// rest are grouped in pairs.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	groups = append(groups, head)

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		b.WriteByte(',')
	}
	b.WriteString(tail)

	return b.String()
}

// ParseAmount parses amount text as typed into spreadsheets or flags. It
// accepts grouping separators and a leading rupee symbol.
func ParseAmount(text string) (decimal.Decimal, error) {
	const op = "ParseAmount"

	cleaned := strings.TrimSpace(text)
	for _, prefix := range []string{"₹", "Rs.", "Rs", "INR"} {
		cleaned = strings.TrimPrefix(cleaned, prefix)
	}
	cleaned = strings.NewReplacer(",", "", " ", "").Replace(cleaned)

	if cleaned == "" {
		return decimal.Zero, invalidAmount(op, text)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return decimal.Zero, invalidAmount(op, text)
	}

	return d, nil
}
