package income

import (
	"testing"

	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"grouped", "1,500,000", 1500000, false},
		{"naira sign", "₦1,500,000", 1500000, false},
		{"code prefix", "NGN 250000", 250000, false},
		{"padded", "  40000 ", 40000, false},
		{"underscores", "1_000", 1000, false},
		{"leading zeros", "0005", 5, false},
		{"empty", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"letters", "abc", 0, true},
		{"mixed", "12k", 0, true},
		{"zero", "0", 0, true},
		{"grouped zero", "0,000", 0, true},
		{"negative", "-5", 0, true},
		{"plus sign", "+5", 0, true},
		{"fraction", "12.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !apperror.HasCode(err, apperror.CodeInvalidInput) {
					t.Errorf("Parse(%q) code = %v, want %v", tt.input, apperror.CodeOf(err), apperror.CodeInvalidInput)
				}
				if apperror.MessageOf(err) != InvalidMessage {
					t.Errorf("Parse(%q) message = %q", tt.input, apperror.MessageOf(err))
				}
				return
			}
			if !got.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("Parse(%q) = %s, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		amount  string
		wantErr bool
	}{
		{"1", false},
		{"1500000", false},
		{"0", true},
		{"-1", true},
		{"10.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := Validate(decimal.RequireFromString(tt.amount))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%s) error = %v, wantErr %v", tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestFormatLive(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abc", ""},
		{"1500000", "1,500,000"},
		{"1,5000", "15,000"},
		{"₦40000x", "40,000"},
		{"999", "999"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatLive(tt.input); got != tt.expected {
				t.Errorf("FormatLive(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatLive_ParseAgreement(t *testing.T) {
	for _, in := range []string{"1", "12345", "1500000", "987654321"} {
		formatted := FormatLive(in)
		v, err := Parse(formatted)
		if err != nil {
			t.Fatalf("Parse(FormatLive(%q)) error = %v", in, err)
		}
		if v.String() != in {
			t.Errorf("Parse(FormatLive(%q)) = %s", in, v)
		}
	}
}
