package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{"plain", New(CodeInvalidInput, "bad value"), "[INVALID_INPUT] bad value"},
		{"with detail", New(CodeConfigInvariant, "limits").WithDetail("index", 2), "[CONFIG_INVARIANT] limits (index=2)"},
		{"sorted details", New(CodeInternal, "x").WithDetail("b", 1).WithDetail("a", 2), "[INTERNAL] x (a=2, b=1)"},
		{"wrapped", Wrap(fmt.Errorf("disk full"), CodeExportFailed, "write pdf"), "[EXPORT_FAILED] write pdf: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, CodeInternal, "nothing") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := New(CodeInvalidInput, "bad")
	_ = base.WithDetail("input", "abc")

	if len(base.Details()) != 0 {
		t.Errorf("original details mutated: %v", base.Details())
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(CodeInvalidInput, "bad"))

	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"nil", nil, ""},
		{"direct", New(CodeNotFound, "missing"), CodeNotFound},
		{"wrapped by fmt", wrapped, CodeInvalidInput},
		{"foreign error", errors.New("boom"), CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.expected {
				t.Errorf("CodeOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorsIs_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(CodeInvalidInput, "first"))

	if !errors.Is(err, New(CodeInvalidInput, "other message")) {
		t.Error("errors.Is should match on code")
	}
	if errors.Is(err, New(CodeInternal, "first")) {
		t.Error("errors.Is should not match a different code")
	}
}

func TestMessageOf(t *testing.T) {
	err := Wrap(errors.New("cause"), CodeInvalidInput, "Please enter a valid monthly income")
	if got := MessageOf(err); got != "Please enter a valid monthly income" {
		t.Errorf("MessageOf() = %q", got)
	}
	if got := MessageOf(errors.New("plain")); got != "plain" {
		t.Errorf("MessageOf(plain) = %q", got)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		http int
		grpc codes.Code
	}{
		{CodeInvalidInput, http.StatusBadRequest, codes.InvalidArgument},
		{CodeNotFound, http.StatusNotFound, codes.NotFound},
		{CodeConfigInvariant, http.StatusInternalServerError, codes.FailedPrecondition},
		{CodeExportFailed, http.StatusInternalServerError, codes.Internal},
		{CodeUnknown, http.StatusInternalServerError, codes.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := HTTPStatus(tt.code); got != tt.http {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.http)
			}
			if got := GRPCCode(tt.code); got != tt.grpc {
				t.Errorf("GRPCCode() = %v, want %v", got, tt.grpc)
			}
		})
	}
}

func TestDetailsOf(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeInvalidInput, "bad").WithDetail("input", "abc"))
	if got := DetailsOf(err); got["input"] != "abc" {
		t.Errorf("DetailsOf() = %v", got)
	}
	if got := DetailsOf(New(CodeInternal, "plain")); got != nil {
		t.Errorf("DetailsOf() without details = %v, want nil", got)
	}
	if got := DetailsOf(errors.New("foreign")); got != nil {
		t.Errorf("DetailsOf(foreign) = %v, want nil", got)
	}
}
