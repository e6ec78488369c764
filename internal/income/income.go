// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     income
// Description: Input boundary for free-form income text
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

// Package income turns user-entered text into a validated positive income.
// Nothing that fails here reaches the tax engine.
package income

import (
	"strings"
	"unicode"

	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/shopspring/decimal"
)

// InvalidMessage is shown to the user for any rejected entry
const InvalidMessage = "Please enter a valid monthly income"

// Parse validates raw input and returns a strictly positive whole amount.
// Grouping separators and a leading naira sign or NGN code are ignored.
// Empty, non-numeric, fractional, signed, and zero entries are rejected.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, money.NGN.Symbol)
	s = strings.TrimPrefix(strings.TrimSpace(s), money.NGN.Code)

	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case isSeparator(r):
		default:
			return decimal.Zero, invalid(raw, "non-numeric input")
		}
	}

	if digits.Len() == 0 {
		return decimal.Zero, invalid(raw, "empty input")
	}

	v, err := decimal.NewFromString(digits.String())
	if err != nil {
		return decimal.Zero, invalid(raw, err.Error())
	}
	if !v.IsPositive() {
		return decimal.Zero, invalid(raw, "income must be positive")
	}
	return v, nil
}

// Validate rejects amounts that did not come through Parse
func Validate(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid(amount.String(), "income must be positive")
	}
	if !amount.IsInteger() {
		return invalid(amount.String(), "income must be a whole amount")
	}
	return nil
}

// FormatLive is the as-you-type formatter: it keeps only digits and regroups
// them ("1500000" -> "1,500,000"). An entry without digits becomes empty.
func FormatLive(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	v, err := decimal.NewFromString(digits.String())
	if err != nil {
		return ""
	}
	return money.NGN.Group(v)
}

func isSeparator(r rune) bool {
	return r == ',' || r == '_' || r == ' ' || unicode.IsSpace(r)
}

func invalid(input, reason string) error {
	return apperror.New(apperror.CodeInvalidInput, InvalidMessage).
		WithDetail("input", input).
		WithDetail("reason", reason)
}
