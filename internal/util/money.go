package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amounts travel as decimal strings on the wire ("1234.50") and are
// stored as int64 paise. Parsing happens once at the request boundary;
// malformed input is rejected there and never reaches arithmetic.

// maxPaise caps amounts at one hundred crore rupees.
const maxPaise = int64(1_000_000_000) * 100

var hundred = decimal.NewFromInt(100)

// ParsePaise converts a decimal rupee string to paise. Sub-paise
// precision is rejected, not rounded. Negative values are allowed
// (opening balances of credit accounts).
func ParsePaise(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	p := d.Mul(hundred)
	if !p.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-paise precision", s)
	}
	if p.Abs().GreaterThan(decimal.NewFromInt(maxPaise)) {
		return 0, fmt.Errorf("amount too large")
	}
	return p.IntPart(), nil
}

// ParseAmountPaise parses a strictly positive amount (transactions,
// limits, targets).
func ParseAmountPaise(s string) (int64, error) {
	p, err := ParsePaise(s)
	if err != nil {
		return 0, err
	}
	if p <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return p, nil
}

// FormatPaise renders paise as a rupee string with two decimals.
func FormatPaise(p int64) string {
	return decimal.New(p, -2).StringFixed(2)
}

// ParseQuantityMilli parses a non-negative quantity with up to three
// decimals into milli units.
func ParseQuantityMilli(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("quantity is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return d.Mul(decimal.NewFromInt(1000)).Round(0).IntPart(), nil
}

// FormatQuantityMilli renders milli units with three decimals.
func FormatQuantityMilli(q int64) string {
	return decimal.New(q, -3).StringFixed(3)
}

// dateLayouts accepted for date fields, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date field. Empty input is an error; callers
// decide their own defaults.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ValidCurrency checks a three-letter uppercase currency code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
