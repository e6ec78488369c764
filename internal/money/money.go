// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     money
// Description: Whole-unit currency formatting and parsing
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency describes how amounts are displayed
type Currency struct {
	Code   string // ISO 4217 code
	Symbol string
	Name   string
	Locale language.Tag
}

// NGN is the Nigerian naira
var NGN = Currency{
	Code:   "NGN",
	Symbol: "₦",
	Name:   "Nigerian Naira",
	Locale: language.MustParse("en-NG"),
}

var registry = map[string]Currency{
	"NGN": NGN,
}

// Lookup returns a known currency by code
func Lookup(code string) (Currency, bool) {
	c, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Group renders an integer with locale grouping (1500000 -> 1,500,000)
func (c Currency) Group(amount decimal.Decimal) string {
	units := amount.Round(0)
	p := message.NewPrinter(c.Locale)
	if units.IsInteger() && units.Abs().LessThan(maxInt64) {
		return p.Sprintf("%d", units.IntPart())
	}
	return groupDigits(units.String())
}

// Format renders amount rounded to whole units with the currency symbol
func (c Currency) Format(amount decimal.Decimal) string {
	units := amount.Round(0)
	if units.IsNegative() {
		return "-" + c.Symbol + c.Group(units.Abs())
	}
	return c.Symbol + c.Group(units)
}

// FormatCode renders amount with the ISO code instead of the symbol
func (c Currency) FormatCode(amount decimal.Decimal) string {
	units := amount.Round(0)
	if units.IsNegative() {
		return "-" + c.Code + " " + c.Group(units.Abs())
	}
	return c.Code + " " + c.Group(units)
}

// Parse reads a formatted amount back into a whole-unit decimal.
// It accepts the symbol, the ISO code, grouping separators and a leading minus.
func (c Currency) Parse(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, c.Symbol)
	raw = strings.TrimPrefix(raw, c.Code)

	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ',' || r == ' ' || r == '\u00a0' || r == '_':
		default:
			return decimal.Zero, apperror.Newf(apperror.CodeInvalidInput, "invalid %s amount", c.Code).
				WithDetail("input", s)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero, apperror.Newf(apperror.CodeInvalidInput, "invalid %s amount", c.Code).
			WithDetail("input", s)
	}

	v, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, apperror.Wrap(err, apperror.CodeInvalidInput, "invalid amount")
	}
	if negative {
		v = v.Neg()
	}
	return v, nil
}

// Format renders amount in naira
func Format(amount decimal.Decimal) string {
	return NGN.Format(amount)
}

// FormatPercent renders a percentage value (20.25 -> "20.3%")
func FormatPercent(percent decimal.Decimal, places int32) string {
	return percent.StringFixed(places) + "%"
}

// FormatRate renders a fractional rate as a whole percentage (0.07 -> "7%")
func FormatRate(rate decimal.Decimal) string {
	return fmt.Sprintf("%s%%", rate.Mul(decimal.NewFromInt(100)).Round(2).String())
}

var maxInt64 = decimal.NewFromInt(1<<63 - 1)

// groupDigits inserts comma separators into a plain integer string
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	var b strings.Builder
	pre := n % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
