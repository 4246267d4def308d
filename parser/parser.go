// Package parser converts raw page text into typed values.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePrice extracts a numeric amount from raw price text. It strips every
// rune that is not a digit or a decimal point, so "$1,299.99" and "US$ 19.99"
// both parse. The second return value is false when the text carries no
// usable number; callers must record the field as absent in that case,
// never as zero.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// Discount is the derived saving between a reference price and the current
// price. Amount and Percent keep full precision; the display strings follow
// the storefront format ("$20.00", "20.0%").
type Discount struct {
	Amount         float64
	Percent        float64
	DisplayAmount  string
	DisplayPercent string
}

// DeriveDiscount computes the discount for a current/reference price pair.
// It returns false unless the reference price is positive; a zero or missing
// reference makes the percentage meaningless.
func DeriveDiscount(current, reference float64) (Discount, bool) {
	if reference <= 0 {
		return Discount{}, false
	}

	amount := reference - current
	percent := amount / reference * 100
	return Discount{
		Amount:         amount,
		Percent:        percent,
		DisplayAmount:  fmt.Sprintf("$%.2f", amount),
		DisplayPercent: fmt.Sprintf("%.1f%%", percent),
	}, true
}

// currencyMarkers are the symbols accepted by the price-field gate.
const currencyMarkers = "$£€¥"

// ContainsCurrency reports whether text carries a currency marker. Price
// strategy chains use this to reject matches like "4.5 out of 5 stars" that
// happen to contain digits.
func ContainsCurrency(text string) bool {
	return strings.ContainsAny(text, currencyMarkers)
}

// CleanText collapses interior whitespace runs and trims the result; page
// text frequently arrives with newlines and non-breaking padding.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
