// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     report
// Description: Calculation summary assembly and export formats
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msto63/taxwise/internal/chart"
	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/shopspring/decimal"
)

// Disclaimer is printed on every exported summary
const Disclaimer = "Based on 2026 Nigeria tax brackets. Results are estimates for educational purposes."

// Report is everything a presentation layer needs to show one calculation
type Report struct {
	ID          uuid.UUID     `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	TableName   string        `json:"table"`
	Currency    string        `json:"currency"`
	Result      tax.Result    `json:"result"`
	Insight     string        `json:"insight"`
	Chart       []chart.Slice `json:"chart"`
	currency    money.Currency
}

// New assembles a report for result
func New(result tax.Result, insight string, table tax.Table, cur money.Currency, now time.Time) *Report {
	return &Report{
		ID:          uuid.New(),
		GeneratedAt: now.UTC(),
		TableName:   table.Name,
		Currency:    cur.Code,
		Result:      result,
		Insight:     insight,
		Chart:       chart.Build(result.Breakdown),
		currency:    cur,
	}
}

// Money returns the currency used for formatting
func (r *Report) Money() money.Currency {
	if r.currency.Code == "" {
		if c, ok := money.Lookup(r.Currency); ok {
			return c
		}
		return money.NGN
	}
	return r.currency
}

// Stat is a labelled headline figure
type Stat struct {
	Label     string
	Amount    decimal.Decimal
	Value     string
	Highlight bool
}

// Stats returns the four headline figures in display order
func (r *Report) Stats() []Stat {
	cur := r.Money()
	stat := func(label string, amount decimal.Decimal, highlight bool) Stat {
		return Stat{Label: label, Amount: amount, Value: cur.Format(amount), Highlight: highlight}
	}
	return []Stat{
		stat("Annual Income", r.Result.AnnualIncome, false),
		stat("Total Annual Tax", r.Result.TotalTax, true),
		stat("Monthly Tax", r.Result.PeriodTax, true),
		stat("Monthly Take-Home", r.Result.NetPeriodIncome, false),
	}
}

// EffectiveRate returns the effective rate with one decimal
func (r *Report) EffectiveRate() string {
	return money.FormatPercent(r.Result.EffectiveRatePercent, 1)
}

// BreakdownLine renders one contribution as "amount × rate%"
func BreakdownLine(cur money.Currency, c tax.Contribution) string {
	return fmt.Sprintf("%s × %s", cur.Format(c.TaxableAmount), money.FormatRate(c.Rate))
}

// Markdown renders the report as a Markdown document
func Markdown(r *Report) string {
	cur := r.Money()
	var b strings.Builder

	b.WriteString("# Your Tax Summary\n\n")
	for _, s := range r.Stats() {
		if s.Highlight {
			fmt.Fprintf(&b, "- **%s:** **%s**\n", s.Label, s.Value)
		} else {
			fmt.Fprintf(&b, "- **%s:** %s\n", s.Label, s.Value)
		}
	}
	fmt.Fprintf(&b, "\n## Effective Tax Rate: %s\n\n", r.EffectiveRate())
	fmt.Fprintf(&b, "> %s\n\n", r.Insight)

	b.WriteString("## How It's Calculated\n\n")
	if len(r.Result.Breakdown) == 0 {
		b.WriteString("_No taxable income._\n\n")
	} else {
		b.WriteString("| Bracket | Taxable | Rate | Tax |\n")
		b.WriteString("|---|---:|---:|---:|\n")
		for _, c := range r.Result.Breakdown {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				c.Label, cur.Format(c.TaxableAmount), money.FormatRate(c.Rate), cur.Format(c.Tax))
		}
		fmt.Fprintf(&b, "| **Total** | %s | | **%s** |\n",
			cur.Format(r.Result.TaxableTotal()), cur.Format(r.Result.TotalTax))
		b.WriteString("\n")
	}

	if len(r.Chart) > 0 {
		b.WriteString("## Tax Distribution by Bracket\n\n")
		for _, s := range r.Chart {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", s.Label, money.FormatPercent(s.SharePercent, 1), cur.Format(s.Tax))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n\n_%s_ Table `%s`, report `%s`.\n", Disclaimer, r.TableName, r.ID)
	return b.String()
}

// WriteJSON writes the report as indented JSON
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Filename returns a default export file name for the report
func Filename(r *Report) string {
	return fmt.Sprintf("taxwise-summary-%s-%s.pdf", r.GeneratedAt.Format("20060102"), r.ID.String()[:8])
}
