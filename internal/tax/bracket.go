// ============================================================================
// TaxWise NG - Progressive Income Tax Calculator
// ============================================================================
//
// Package:     tax
// Description: Bracket and table types, default table, table validation
// Author:      TaxWise NG Team
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package tax

import (
	"fmt"
	"strings"

	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/shopspring/decimal"
)

// Bracket is a contiguous income range taxed at one marginal rate.
// The range is (previous limit, Limit]; an Unbounded bracket has no upper limit.
type Bracket struct {
	Limit     decimal.Decimal `json:"limit"`
	Unbounded bool            `json:"unbounded,omitempty"`
	Rate      decimal.Decimal `json:"rate"`
	Label     string          `json:"label"`
}

// UpTo creates a bounded bracket
func UpTo(limit int64, rate, label string) Bracket {
	return Bracket{
		Limit: decimal.NewFromInt(limit),
		Rate:  decimal.RequireFromString(rate),
		Label: label,
	}
}

// Above creates the open-ended top bracket
func Above(rate, label string) Bracket {
	return Bracket{
		Unbounded: true,
		Rate:      decimal.RequireFromString(rate),
		Label:     label,
	}
}

// upper returns min(amount, limit) for this bracket
func (b Bracket) upper(amount decimal.Decimal) decimal.Decimal {
	if b.Unbounded {
		return amount
	}
	return decimal.Min(amount, b.Limit)
}

// RatePercent returns the rate as a percentage (0.07 -> 7)
func (b Bracket) RatePercent() decimal.Decimal {
	return b.Rate.Mul(hundred)
}

// LimitString returns the limit as text, "unbounded" for the top bracket
func (b Bracket) LimitString() string {
	if b.Unbounded {
		return "unbounded"
	}
	return b.Limit.String()
}

// ParseBracket builds a bracket from its text form.
// An empty limit, "inf", ".inf", "infinity" or "unbounded" denotes the top
// bracket.
// The rate may be a fraction ("0.07") or a percentage ("7%").
func ParseBracket(limit, rate, label string) (Bracket, error) {
	b := Bracket{Label: strings.TrimSpace(label)}

	switch l := strings.ToLower(strings.TrimSpace(limit)); l {
	case "", "inf", "+inf", ".inf", "+.inf", "infinity", "unbounded":
		b.Unbounded = true
	default:
		d, err := decimal.NewFromString(strings.ReplaceAll(l, "_", ""))
		if err != nil {
			return Bracket{}, apperror.Wrap(err, apperror.CodeConfigInvariant, "invalid bracket limit").
				WithDetail("limit", limit)
		}
		b.Limit = d
	}

	r := strings.TrimSpace(rate)
	percent := strings.HasSuffix(r, "%")
	r = strings.TrimSuffix(r, "%")
	d, err := decimal.NewFromString(strings.TrimSpace(r))
	if err != nil {
		return Bracket{}, apperror.Wrap(err, apperror.CodeConfigInvariant, "invalid bracket rate").
			WithDetail("rate", rate)
	}
	if percent {
		d = d.Div(hundred)
	}
	b.Rate = d

	return b, nil
}

// Table is an ordered bracket table for one tax year or jurisdiction
type Table struct {
	Name     string    `json:"name"`
	Brackets []Bracket `json:"brackets"`
}

// DefaultTableName identifies the built-in table
const DefaultTableName = "NG-2026"

// DefaultTable returns the 2026 Nigerian personal income tax table
func DefaultTable() Table {
	return Table{
		Name: DefaultTableName,
		Brackets: []Bracket{
			UpTo(500_000, "0", "0 - 500k"),
			UpTo(1_000_000, "0.07", "500k - 1M"),
			UpTo(2_000_000, "0.11", "1M - 2M"),
			UpTo(4_000_000, "0.15", "2M - 4M"),
			UpTo(6_000_000, "0.19", "4M - 6M"),
			UpTo(8_000_000, "0.21", "6M - 8M"),
			Above("0.24", "8M+"),
		},
	}
}

// Validate checks the ordering invariant: rates in [0,1), labels present,
// bounded limits positive and strictly increasing, exactly one unbounded
// bracket and it is last.
func (t Table) Validate() error {
	if len(t.Brackets) == 0 {
		return apperror.New(apperror.CodeConfigInvariant, "bracket table is empty").
			WithDetail("table", t.Name)
	}

	one := decimal.NewFromInt(1)
	floor := decimal.Zero
	last := len(t.Brackets) - 1

	for i, b := range t.Brackets {
		fail := func(msg string) error {
			return apperror.New(apperror.CodeConfigInvariant, msg).
				WithDetail("table", t.Name).
				WithDetail("index", i)
		}

		if b.Label == "" {
			return fail("bracket label is empty")
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(one) {
			return fail(fmt.Sprintf("bracket rate %s outside [0,1)", b.Rate))
		}
		if b.Unbounded {
			if i != last {
				return fail("unbounded bracket must be last")
			}
			continue
		}
		if i == last {
			return fail("last bracket must be unbounded")
		}
		if !b.Limit.GreaterThan(floor) {
			return fail(fmt.Sprintf("bracket limit %s not greater than %s", b.Limit, floor))
		}
		floor = b.Limit
	}

	return nil
}

// TopRate returns the marginal rate of the last bracket
func (t Table) TopRate() decimal.Decimal {
	if len(t.Brackets) == 0 {
		return decimal.Zero
	}
	return t.Brackets[len(t.Brackets)-1].Rate
}

// Limits returns the bounded upper limits in order
func (t Table) Limits() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(t.Brackets))
	for _, b := range t.Brackets {
		if !b.Unbounded {
			out = append(out, b.Limit)
		}
	}
	return out
}

// Compute runs the engine against this table
func (t Table) Compute(periodIncome decimal.Decimal, periodsPerYear int) Result {
	return Compute(periodIncome, t.Brackets, periodsPerYear)
}
