package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/msto63/taxwise/internal/insight"
	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newReport(t *testing.T, monthly int64) *Report {
	t.Helper()
	table := tax.DefaultTable()
	res := table.Compute(decimal.NewFromInt(monthly), tax.MonthsPerYear)
	text := insight.Generate(res, insight.Rules(insight.DefaultThresholds(table)))
	return New(res, text, table, money.NGN, fixedNow)
}

func TestNew(t *testing.T) {
	r := newReport(t, 1_500_000)

	if r.TableName != tax.DefaultTableName {
		t.Errorf("TableName = %q", r.TableName)
	}
	if r.Currency != "NGN" {
		t.Errorf("Currency = %q", r.Currency)
	}
	if len(r.Chart) != 6 {
		t.Errorf("len(Chart) = %d, want 6", len(r.Chart))
	}
	if r.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("ID not generated")
	}
	if !r.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v", r.GeneratedAt)
	}
}

func TestStats(t *testing.T) {
	r := newReport(t, 1_500_000)

	want := []struct {
		label string
		value string
	}{
		{"Annual Income", "₦18,000,000"},
		{"Total Annual Tax", "₦3,645,000"},
		{"Monthly Tax", "₦303,750"},
		{"Monthly Take-Home", "₦1,196,250"},
	}

	stats := r.Stats()
	if len(stats) != len(want) {
		t.Fatalf("len(Stats()) = %d", len(stats))
	}
	for i, w := range want {
		if stats[i].Label != w.label || stats[i].Value != w.value {
			t.Errorf("Stats()[%d] = %s %s, want %s %s", i, stats[i].Label, stats[i].Value, w.label, w.value)
		}
	}
	if r.EffectiveRate() != "20.3%" {
		t.Errorf("EffectiveRate() = %q", r.EffectiveRate())
	}
}

func TestBreakdownLine(t *testing.T) {
	c := tax.Contribution{
		Label:         "500k - 1M",
		TaxableAmount: decimal.NewFromInt(500_000),
		Rate:          decimal.RequireFromString("0.07"),
	}
	if got := BreakdownLine(money.NGN, c); got != "₦500,000 × 7%" {
		t.Errorf("BreakdownLine() = %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		monthly  int64
		contains []string
		excludes []string
	}{
		{
			name:     "taxed income",
			monthly:  1_500_000,
			contains: []string{"# Your Tax Summary", "₦3,645,000", "| 8M+ | ₦10,000,000 | 24% | ₦2,400,000 |", "| **Total** | ₦18,000,000 | | **₦3,645,000** |", "Tax Distribution by Bracket", "top earning tier"},
		},
		{
			name:     "tax free income",
			monthly:  40_000,
			contains: []string{"tax-free", "| 0 - 500k | ₦480,000 | 0% | ₦0 |"},
			excludes: []string{"Tax Distribution by Bracket"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := Markdown(newReport(t, tt.monthly))
			for _, s := range tt.contains {
				if !strings.Contains(md, s) {
					t.Errorf("Markdown() missing %q:\n%s", s, md)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(md, s) {
					t.Errorf("Markdown() should not contain %q", s)
				}
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	r := newReport(t, 1_500_000)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"id", "generated_at", "table", "currency", "result", "insight", "chart"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("JSON missing key %q", key)
		}
	}
	result := decoded["result"].(map[string]interface{})
	if result["total_tax"] != "3645000" {
		t.Errorf("result.total_tax = %v", result["total_tax"])
	}
}

func TestWritePDF(t *testing.T) {
	for _, monthly := range []int64{40_000, 1_500_000} {
		var buf bytes.Buffer
		if err := WritePDF(&buf, newReport(t, monthly)); err != nil {
			t.Fatalf("WritePDF(%d) error = %v", monthly, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Errorf("WritePDF(%d) output is not a PDF", monthly)
		}
	}
}

func TestFilename(t *testing.T) {
	r := newReport(t, 100_000)
	name := Filename(r)
	if !strings.HasPrefix(name, "taxwise-summary-20260301-") || !strings.HasSuffix(name, ".pdf") {
		t.Errorf("Filename() = %q", name)
	}
}

func TestMoney_FallsBackToCode(t *testing.T) {
	r := &Report{Currency: "NGN"}
	if r.Money().Symbol != "₦" {
		t.Errorf("Money() = %+v", r.Money())
	}
}
