package calculator

import (
	"fmt"

	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/report"
)

// Formatted holds display strings for a report
type Formatted struct {
	AnnualIncome    string   `json:"annual_income"`
	TotalTax        string   `json:"total_tax"`
	MonthlyTax      string   `json:"monthly_tax"`
	MonthlyTakeHome string   `json:"monthly_take_home"`
	EffectiveRate   string   `json:"effective_rate"`
	Breakdown       []string `json:"breakdown"`
}

// Response is a report plus its display strings, the shape served by the
// HTTP, WebSocket and gRPC APIs
type Response struct {
	*report.Report
	Formatted Formatted `json:"formatted"`
}

// NewResponse attaches display strings to a report
func NewResponse(rep *report.Report) Response {
	cur := rep.Money()
	res := rep.Result
	lines := make([]string, 0, len(res.Breakdown))
	for _, c := range res.Breakdown {
		lines = append(lines, fmt.Sprintf("%s: %s = %s", c.Label, report.BreakdownLine(cur, c), cur.Format(c.Tax)))
	}
	return Response{
		Report: rep,
		Formatted: Formatted{
			AnnualIncome:    cur.Format(res.AnnualIncome),
			TotalTax:        cur.Format(res.TotalTax),
			MonthlyTax:      cur.Format(res.PeriodTax),
			MonthlyTakeHome: cur.Format(res.NetPeriodIncome),
			EffectiveRate:   rep.EffectiveRate(),
			Breakdown:       lines,
		},
	}
}

// BracketInfo describes one bracket of the active table
type BracketInfo struct {
	Label       string `json:"label"`
	Limit       string `json:"limit"`
	RatePercent string `json:"rate_percent"`
	Unbounded   bool   `json:"unbounded,omitempty"`
}

// BracketList describes the active table
type BracketList struct {
	Table          string        `json:"table"`
	Currency       string        `json:"currency"`
	PeriodsPerYear int           `json:"periods_per_year"`
	Brackets       []BracketInfo `json:"brackets"`
}

// Brackets describes the service's table
func (s *Service) Brackets() BracketList {
	list := BracketList{
		Table:          s.table.Name,
		Currency:       s.cur.Code,
		PeriodsPerYear: s.periods,
		Brackets:       make([]BracketInfo, 0, len(s.table.Brackets)),
	}
	for _, b := range s.table.Brackets {
		list.Brackets = append(list.Brackets, BracketInfo{
			Label:       b.Label,
			Limit:       b.LimitString(),
			RatePercent: money.FormatRate(b.Rate),
			Unbounded:   b.Unbounded,
		})
	}
	return list
}
