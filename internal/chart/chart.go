// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     chart
// Description: Proportional tax distribution by bracket
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Slice is one bracket's share of the total tax
type Slice struct {
	Label        string          `json:"label"`
	Tax          decimal.Decimal `json:"tax"`
	RatePercent  decimal.Decimal `json:"rate_percent"`
	SharePercent decimal.Decimal `json:"share_percent"`
}

// Palette is the grayscale ramp used for slices, darkest first
var Palette = []lipgloss.Color{"#000000", "#1a1a1a", "#333333", "#4d4d4d", "#666666", "#808080", "#999999"}

var hundred = decimal.NewFromInt(100)

// Build keeps the contributions that owe tax and computes each one's share
func Build(breakdown []tax.Contribution) []Slice {
	taxed := lo.Filter(breakdown, func(c tax.Contribution, _ int) bool {
		return c.Tax.IsPositive()
	})
	if len(taxed) == 0 {
		return []Slice{}
	}

	total := lo.Reduce(taxed, func(acc decimal.Decimal, c tax.Contribution, _ int) decimal.Decimal {
		return acc.Add(c.Tax)
	}, decimal.Zero)

	return lo.Map(taxed, func(c tax.Contribution, _ int) Slice {
		return Slice{
			Label:        c.Label,
			Tax:          c.Tax,
			RatePercent:  c.Rate.Mul(hundred),
			SharePercent: c.Tax.Div(total).Mul(hundred),
		}
	})
}

// RenderBars draws a horizontal bar per slice, scaled so the largest share
// fills width cells. Colors are taken from Palette; on light themes the ramp
// is reversed so the first slice stays the most prominent.
func RenderBars(slices []Slice, width int, cur money.Currency, light bool) string {
	if len(slices) == 0 {
		return lipgloss.NewStyle().Italic(true).Render("No tax owed in any bracket.")
	}
	if width < 10 {
		width = 10
	}

	largest := lo.MaxBy(slices, func(a, b Slice) bool {
		return a.SharePercent.GreaterThan(b.SharePercent)
	}).SharePercent

	labelWidth := lo.Max(lo.Map(slices, func(s Slice, _ int) int {
		return lipgloss.Width(s.Label)
	}))

	palette := Palette
	if light {
		palette = lo.Reverse(append([]lipgloss.Color(nil), Palette...))
	}

	var b strings.Builder
	for i, s := range slices {
		cells := int(s.SharePercent.Div(largest).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
		if cells < 1 {
			cells = 1
		}
		color := palette[i%len(palette)]
		bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", cells))

		fmt.Fprintf(&b, "%-*s %s %s (%s, %s)\n",
			labelWidth, s.Label,
			bar,
			money.FormatPercent(s.SharePercent, 1),
			cur.Format(s.Tax),
			money.FormatPercent(s.RatePercent, 0),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
