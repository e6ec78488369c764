package tax

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the default number of pay periods
const MonthsPerYear = 12

var hundred = decimal.NewFromInt(100)

// Contribution is the share of income and tax falling into one bracket
type Contribution struct {
	Label         string          `json:"bracket"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	Rate          decimal.Decimal `json:"rate"`
	Tax           decimal.Decimal `json:"tax"`
}

// Result is the outcome of one tax computation
type Result struct {
	PeriodIncome         decimal.Decimal `json:"period_income"`
	PeriodsPerYear       int             `json:"periods_per_year"`
	AnnualIncome         decimal.Decimal `json:"annual_income"`
	TotalTax             decimal.Decimal `json:"total_tax"`
	PeriodTax            decimal.Decimal `json:"period_tax"`
	NetPeriodIncome      decimal.Decimal `json:"net_period_income"`
	EffectiveRatePercent decimal.Decimal `json:"effective_rate_percent"`
	Breakdown            []Contribution  `json:"breakdown"`
	TopBracketLabel      string          `json:"top_bracket"`
}

// Compute partitions the annualized income across brackets and applies each
// bracket's marginal rate. brackets must satisfy Table.Validate; the result
// is undefined otherwise. Zero or negative income yields zero tax and an
// empty breakdown. A non-positive periodsPerYear is treated as 1.
func Compute(periodIncome decimal.Decimal, brackets []Bracket, periodsPerYear int) Result {
	if periodsPerYear <= 0 {
		periodsPerYear = 1
	}
	periods := decimal.NewFromInt(int64(periodsPerYear))
	annual := periodIncome.Mul(periods)

	res := Result{
		PeriodIncome:   periodIncome,
		PeriodsPerYear: periodsPerYear,
		AnnualIncome:   annual,
		Breakdown:      []Contribution{},
	}

	total := decimal.Zero
	floor := decimal.Zero
	for _, b := range brackets {
		if !annual.GreaterThan(floor) {
			break
		}
		taxable := b.upper(annual).Sub(floor)
		if taxable.IsPositive() {
			owed := taxable.Mul(b.Rate)
			res.Breakdown = append(res.Breakdown, Contribution{
				Label:         b.Label,
				TaxableAmount: taxable,
				Rate:          b.Rate,
				Tax:           owed,
			})
			total = total.Add(owed)
			res.TopBracketLabel = b.Label
		}
		if b.Unbounded {
			break
		}
		floor = b.Limit
	}

	res.TotalTax = total
	res.PeriodTax = total.Div(periods)
	res.NetPeriodIncome = periodIncome.Sub(res.PeriodTax)
	res.EffectiveRatePercent = decimal.Zero
	if !annual.IsZero() {
		res.EffectiveRatePercent = total.Div(annual).Mul(hundred)
	}

	return res
}

// TaxableTotal returns the sum of taxable amounts across the breakdown
func (r Result) TaxableTotal() decimal.Decimal {
	return lo.Reduce(r.Breakdown, func(acc decimal.Decimal, c Contribution, _ int) decimal.Decimal {
		return acc.Add(c.TaxableAmount)
	}, decimal.Zero)
}
