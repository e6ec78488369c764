package server

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/internal/income"
	"github.com/msto63/taxwise/pkg/core/apperror"
	coreGrpc "github.com/msto63/taxwise/pkg/core/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// IncomeField is the request field holding the monthly income
const IncomeField = "monthly_income"

// Ensure Server implements TaxServiceServer
var _ TaxServiceServer = (*Server)(nil)

// Calculate implements TaxServiceServer.Calculate
func (s *Server) Calculate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	rep, err := s.calc.Calculate(ctx, incomeOf(req))
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeInvalidInput) {
			s.logger.Error("Calculate failed", "error", err)
		}
		return nil, coreGrpc.ToStatus(err)
	}
	return toStruct(calculator.NewResponse(rep))
}

// ListBrackets implements TaxServiceServer.ListBrackets
func (s *Server) ListBrackets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return toStruct(s.calc.Brackets())
}

// FormatIncome implements TaxServiceServer.FormatIncome
func (s *Server) FormatIncome(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw := incomeOf(req)
	return structpb.NewStruct(map[string]interface{}{
		"input":     raw,
		"formatted": income.FormatLive(raw),
	})
}

// incomeOf reads the income field as text; numbers are rendered without
// exponent so the boundary sees the same digits a user would type
func incomeOf(req *structpb.Struct) string {
	v, ok := req.GetFields()[IncomeField]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	default:
		return ""
	}
}

func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, coreGrpc.ToStatus(apperror.Wrap(err, apperror.CodeInternal, "failed to encode response"))
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, coreGrpc.ToStatus(apperror.Wrap(err, apperror.CodeInternal, "failed to encode response"))
	}
	return out, nil
}

func fromStruct(in *structpb.Struct, v interface{}) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "failed to decode response")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "failed to decode response")
	}
	return nil
}
