package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully qualified names of the tax service
const (
	ServiceName            = "taxwise.v1.TaxService"
	CalculateFullMethod    = "/" + ServiceName + "/Calculate"
	ListBracketsFullMethod = "/" + ServiceName + "/ListBrackets"
	FormatIncomeFullMethod = "/" + ServiceName + "/FormatIncome"
)

// TaxServiceServer is implemented by the gRPC tax service. Messages are
// google.protobuf.Struct values carrying the same JSON shapes as the HTTP API.
type TaxServiceServer interface {
	Calculate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBrackets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FormatIncome(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterTaxServiceServer registers srv on s
func RegisterTaxServiceServer(s grpc.ServiceRegistrar, srv TaxServiceServer) {
	s.RegisterService(&TaxServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(TaxServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TaxServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(TaxServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TaxServiceDesc describes taxwise.v1.TaxService
var TaxServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaxServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Calculate",
			Handler:    unaryHandler(CalculateFullMethod, TaxServiceServer.Calculate),
		},
		{
			MethodName: "ListBrackets",
			Handler:    unaryHandler(ListBracketsFullMethod, TaxServiceServer.ListBrackets),
		},
		{
			MethodName: "FormatIncome",
			Handler:    unaryHandler(FormatIncomeFullMethod, TaxServiceServer.FormatIncome),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taxwise/v1/tax.proto",
}
