package grpc

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "cryptodash.v1.DashboardService"

// Method names. Requests and responses are google.protobuf.Struct messages,
// so the service needs no generated code.
const (
	MethodListMarket    = "ListMarket"
	MethodGetHistory    = "GetHistory"
	MethodGetPrediction = "GetPrediction"
	MethodConvert       = "Convert"
	MethodSearchNews    = "SearchNews"
	MethodGetWallet     = "GetWallet"
	MethodExecuteTrade  = "ExecuteTrade"
	MethodGetSummary    = "GetSummary"
)

// DashboardServiceServer is the server API for DashboardService
type DashboardServiceServer interface {
	ListMarket(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPrediction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Convert(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchNews(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetWallet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExecuteTrade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSummary(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(DashboardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(DashboardServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes DashboardService for grpc.Server.RegisterService
var ServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: MethodListMarket, Handler: unaryHandler(MethodListMarket, DashboardServiceServer.ListMarket)},
		{MethodName: MethodGetHistory, Handler: unaryHandler(MethodGetHistory, DashboardServiceServer.GetHistory)},
		{MethodName: MethodGetPrediction, Handler: unaryHandler(MethodGetPrediction, DashboardServiceServer.GetPrediction)},
		{MethodName: MethodConvert, Handler: unaryHandler(MethodConvert, DashboardServiceServer.Convert)},
		{MethodName: MethodSearchNews, Handler: unaryHandler(MethodSearchNews, DashboardServiceServer.SearchNews)},
		{MethodName: MethodGetWallet, Handler: unaryHandler(MethodGetWallet, DashboardServiceServer.GetWallet)},
		{MethodName: MethodExecuteTrade, Handler: unaryHandler(MethodExecuteTrade, DashboardServiceServer.ExecuteTrade)},
		{MethodName: MethodGetSummary, Handler: unaryHandler(MethodGetSummary, DashboardServiceServer.GetSummary)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "cryptodash/v1/dashboard.proto",
}

// RegisterDashboardServiceServer registers srv on s
func RegisterDashboardServiceServer(s grpclib.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls DashboardService methods on a connection
type Client struct {
	cc grpclib.ClientConnInterface
}

// NewClient wraps a client connection
func NewClient(cc grpclib.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with a request built from fields
func (c *Client) Call(ctx context.Context, method string, fields map[string]interface{}, opts ...grpclib.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
