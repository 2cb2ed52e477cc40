// Package format turns amounts and dates into the strings printed on invoice
// documents.
//
// Amounts use the South-Asian numbering scale: after the first three digits
// from the right, digits are grouped in pairs (thousand, lakh, crore), both
// when spelled out in words and when printed with separators.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	lakh  = 100_000
	crore = 10_000_000
)

// maxAmount bounds what ToWords and FormatAmount accept.
var maxAmount = decimal.New(1, 15)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// ToWords spells a rupee amount in words, e.g. 150000.25 becomes
// "One Lakh Fifty Thousand Rupees and 25 Paise". The amount is rounded to the
// nearest paise. The trailing "Only" belongs to the caller's template.
func ToWords(amount decimal.Decimal) (string, error) {
	const op = "ToWords"

	if amount.IsNegative() || amount.GreaterThanOrEqual(maxAmount) {
		return "", invalidAmount(op, amount.String())
	}

	rounded := amount.Round(2)
	rupees := rounded.IntPart()
	paise := rounded.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(strings.Join(spell(rupees), " "))
	}
	b.WriteString(" Rupees")

	if paise != 0 {
		b.WriteString(" and ")
		b.WriteString(strconv.FormatInt(paise, 10))
		b.WriteString(" Paise")
	}

	return b.String(), nil
}

// ToWordsFloat is ToWords for float inputs; NaN and infinities are rejected.
func ToWordsFloat(amount float64) (string, error) {
	d, err := FromFloat(amount)
	if err != nil {
		return "", err
	}
	return ToWords(d)
}

// FromFloat converts a float to a decimal, rejecting non-finite and negative
// values.
func FromFloat(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return decimal.Zero, invalidAmount("FromFloat", amount)
	}
	return decimal.NewFromFloat(amount), nil
}

// spell returns the words for n > 0. Crore counts above 99 are spelled with
// the same scale, so 1,23,00,00,000 is "One Hundred Twenty Three Crore".
func spell(n int64) []string {
	var words []string

	if c := n / crore; c > 0 {
		words = append(words, spell(c)...)
		words = append(words, "Crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		words = append(words, belowHundred(l), "Lakh")
		n %= lakh
	}
	if t := n / 1000; t > 0 {
		words = append(words, belowHundred(t), "Thousand")
		n %= 1000
	}
	if h := n / 100; h > 0 {
		words = append(words, ones[h], "Hundred")
		n %= 100
	}
	if n > 0 {
		words = append(words, belowHundred(n))
	}

	return words
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
