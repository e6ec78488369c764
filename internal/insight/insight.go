// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     insight
// Description: Natural-language commentary selected by income thresholds
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package insight

import (
	"fmt"

	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/shopspring/decimal"
)

// Rule pairs a predicate with a text template. Rules are evaluated in order
// and the first match wins.
type Rule struct {
	Name   string
	Match  func(tax.Result) bool
	Render func(tax.Result) string
}

// Thresholds are annual income levels separating the commentary tiers
type Thresholds struct {
	TaxFree decimal.Decimal // at or below: no tax owed
	Middle  decimal.Decimal
	High    decimal.Decimal
	Top     decimal.Decimal // above: top marginal bracket
	TopRate decimal.Decimal
}

// Fixed thresholds of the 2026 table
var (
	defaultTaxFree = decimal.NewFromInt(500_000)
	defaultMiddle  = decimal.NewFromInt(2_000_000)
	defaultHigh    = decimal.NewFromInt(4_000_000)
	defaultTop     = decimal.NewFromInt(8_000_000)
	defaultTopRate = decimal.RequireFromString("0.24")
)

// DefaultThresholds derives thresholds from the table boundaries: the first
// limit, the third and fourth limits, and the last bounded limit. Tables with
// fewer than four bounded brackets fall back to the 2026 numbers.
func DefaultThresholds(table tax.Table) Thresholds {
	limits := table.Limits()
	if len(limits) < 4 {
		return Thresholds{
			TaxFree: defaultTaxFree,
			Middle:  defaultMiddle,
			High:    defaultHigh,
			Top:     defaultTop,
			TopRate: defaultTopRate,
		}
	}
	return Thresholds{
		TaxFree: limits[0],
		Middle:  limits[2],
		High:    limits[3],
		Top:     limits[len(limits)-1],
		TopRate: table.TopRate(),
	}
}

// Rules returns the default decision table for th
func Rules(th Thresholds) []Rule {
	return []Rule{
		{
			Name:  "tax-free",
			Match: func(r tax.Result) bool { return r.AnnualIncome.LessThanOrEqual(th.TaxFree) },
			Render: func(tax.Result) string {
				return "You're tax-free! Your income falls below the taxable threshold."
			},
		},
		{
			Name:  "top-tier",
			Match: func(r tax.Result) bool { return r.AnnualIncome.GreaterThan(th.Top) },
			Render: func(r tax.Result) string {
				return fmt.Sprintf("You fall into the %s bracket - about %s of your yearly income goes to tax. You're in the top earning tier!",
					money.FormatRate(th.TopRate), effective(r))
			},
		},
		{
			Name:  "higher-earner",
			Match: func(r tax.Result) bool { return r.AnnualIncome.GreaterThan(th.High) },
			Render: func(r tax.Result) string {
				return fmt.Sprintf("Your effective tax rate is %s. You're in the %s bracket, placing you among higher earners in Nigeria.",
					effective(r), r.TopBracketLabel)
			},
		},
		{
			Name:  "middle",
			Match: func(r tax.Result) bool { return r.AnnualIncome.GreaterThan(th.Middle) },
			Render: func(r tax.Result) string {
				return fmt.Sprintf("You're in the %s bracket with an effective rate of %s. Your tax contribution supports national development.",
					r.TopBracketLabel, effective(r))
			},
		},
		{
			Name:  "default",
			Match: func(tax.Result) bool { return true },
			Render: func(r tax.Result) string {
				return fmt.Sprintf("Your effective tax rate is %s. You're in the %s bracket, and you're doing great!",
					effective(r), r.TopBracketLabel)
			},
		},
	}
}

// Generate returns the text of the first matching rule, or "" if none match
func Generate(r tax.Result, rules []Rule) string {
	if rule, ok := Select(r, rules); ok {
		return rule.Render(r)
	}
	return ""
}

// Select returns the first rule matching r
func Select(r tax.Result, rules []Rule) (Rule, bool) {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule, true
		}
	}
	return Rule{}, false
}

func effective(r tax.Result) string {
	return money.FormatPercent(r.EffectiveRatePercent, 1)
}
