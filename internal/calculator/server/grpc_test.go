package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/msto63/taxwise/internal/calculator"
	coreGrpc "github.com/msto63/taxwise/pkg/core/grpc"
	"github.com/msto63/taxwise/pkg/core/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startTaxServer(t *testing.T) *Client {
	t.Helper()

	calcCfg := calculator.DefaultConfig()
	calcCfg.Logger = logging.Nop()
	calc, err := calculator.New(calcCfg)
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Logger = logging.Nop()
	srv := New(cfg, calc)

	lis := bufconn.Listen(1024 * 1024)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	ccfg := coreGrpc.DefaultClientConfig("passthrough:///bufnet")
	ccfg.Logger = logging.Nop()
	ccfg.Timeout = 5 * time.Second
	client, err := Dial(ccfg, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	})
	return client
}

func TestClient_Calculate(t *testing.T) {
	client := startTaxServer(t)

	tests := []struct {
		input        string
		totalTax     string
		monthlyTax   string
		effective    string
		contribution int
	}{
		{"1500000", "₦3,645,000", "₦303,750", "20.3%", 7},
		{"1,500,000", "₦3,645,000", "₦303,750", "20.3%", 7},
		{"125000", "₦90,000", "₦7,500", "6.0%", 3},
		{"40000", "₦0", "₦0", "0.0%", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			resp, err := client.Calculate(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Calculate() error = %v", err)
			}
			if resp.Formatted.TotalTax != tt.totalTax {
				t.Errorf("TotalTax = %q, want %q", resp.Formatted.TotalTax, tt.totalTax)
			}
			if resp.Formatted.MonthlyTax != tt.monthlyTax {
				t.Errorf("MonthlyTax = %q, want %q", resp.Formatted.MonthlyTax, tt.monthlyTax)
			}
			if resp.Formatted.EffectiveRate != tt.effective {
				t.Errorf("EffectiveRate = %q, want %q", resp.Formatted.EffectiveRate, tt.effective)
			}
			if resp.Report == nil {
				t.Fatal("Report not decoded")
			}
			if got := len(resp.Result.Breakdown); got != tt.contribution {
				t.Errorf("len(Breakdown) = %d, want %d", got, tt.contribution)
			}
			if resp.Currency != "NGN" {
				t.Errorf("Currency = %q", resp.Currency)
			}
		})
	}
}

func TestClient_CalculateInvalid(t *testing.T) {
	client := startTaxServer(t)

	for _, input := range []string{"", "abc", "-5", "12.5"} {
		t.Run(input, func(t *testing.T) {
			_, err := client.Calculate(context.Background(), input)
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("Calculate(%q) code = %v, want InvalidArgument", input, status.Code(err))
			}
		})
	}
}

func TestClient_ListBrackets(t *testing.T) {
	client := startTaxServer(t)

	list, err := client.ListBrackets(context.Background())
	if err != nil {
		t.Fatalf("ListBrackets() error = %v", err)
	}
	if len(list.Brackets) != 7 {
		t.Fatalf("len(Brackets) = %d, want 7", len(list.Brackets))
	}
	if !list.Brackets[6].Unbounded {
		t.Error("last bracket should be unbounded")
	}
	if list.Currency != "NGN" || list.PeriodsPerYear != 12 {
		t.Errorf("Currency = %q, PeriodsPerYear = %d", list.Currency, list.PeriodsPerYear)
	}
}

func TestClient_FormatIncome(t *testing.T) {
	client := startTaxServer(t)

	got, err := client.FormatIncome(context.Background(), "1500000")
	if err != nil {
		t.Fatalf("FormatIncome() error = %v", err)
	}
	if got != "1,500,000" {
		t.Errorf("FormatIncome() = %q, want 1,500,000", got)
	}
}

func TestIncomeOf(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"string", "250,000", "250,000"},
		{"number", float64(1500000), "1500000"},
		{"bool", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := structpb.NewStruct(map[string]interface{}{IncomeField: tt.value})
			if err != nil {
				t.Fatalf("NewStruct() error = %v", err)
			}
			if got := incomeOf(req); got != tt.want {
				t.Errorf("incomeOf() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := incomeOf(&structpb.Struct{}); got != "" {
		t.Errorf("incomeOf(empty) = %q", got)
	}
}
