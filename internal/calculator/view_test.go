package calculator

import (
	"context"
	"testing"
)

func TestNewResponse(t *testing.T) {
	svc := newService(t)
	r, err := svc.Calculate(context.Background(), "1500000")
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	f := NewResponse(r).Formatted
	want := Formatted{
		AnnualIncome:    "₦18,000,000",
		TotalTax:        "₦3,645,000",
		MonthlyTax:      "₦303,750",
		MonthlyTakeHome: "₦1,196,250",
		EffectiveRate:   "20.3%",
	}
	if f.AnnualIncome != want.AnnualIncome || f.TotalTax != want.TotalTax ||
		f.MonthlyTax != want.MonthlyTax || f.MonthlyTakeHome != want.MonthlyTakeHome ||
		f.EffectiveRate != want.EffectiveRate {
		t.Errorf("Formatted = %+v, want %+v", f, want)
	}
	if len(f.Breakdown) != 7 {
		t.Fatalf("len(Breakdown) = %d, want 7", len(f.Breakdown))
	}
	if f.Breakdown[1] != "500k - 1M: ₦500,000 × 7% = ₦35,000" {
		t.Errorf("Breakdown[1] = %q", f.Breakdown[1])
	}
}

func TestService_Brackets(t *testing.T) {
	list := newService(t).Brackets()
	if list.Table != "NG-2026" || list.Currency != "NGN" || list.PeriodsPerYear != 12 {
		t.Errorf("list = %+v", list)
	}
	if len(list.Brackets) != 7 {
		t.Fatalf("len(Brackets) = %d", len(list.Brackets))
	}
	last := list.Brackets[6]
	if last.Label != "8M+" || last.RatePercent != "24%" || !last.Unbounded {
		t.Errorf("last = %+v", last)
	}
}
