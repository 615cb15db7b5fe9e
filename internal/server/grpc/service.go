package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "speeddial.v1.SpeedDial"

// Method names of the SpeedDial service.
const (
	MethodAddNumber       = "AddNumber"
	MethodGetPhoneNumber  = "GetPhoneNumber"
	MethodRemoveNumber    = "RemoveNumber"
	MethodListEntries     = "ListEntries"
	MethodListDirectories = "ListDirectories"
	MethodDial            = "Dial"
)

// SpeedDialServer is the server API of the SpeedDial service. Requests
// are Structs with "directory", "code" and "number" fields as needed, so
// only well-known protobuf types cross the wire.
type SpeedDialServer interface {
	AddNumber(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetPhoneNumber(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	RemoveNumber(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ListEntries(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	ListDirectories(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	Dial(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
}

// ServiceDesc describes the SpeedDial service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SpeedDialServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodAddNumber,
			Handler: unaryHandler(MethodAddNumber, newStruct, func(s SpeedDialServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.AddNumber(ctx, in)
			}),
		},
		{
			MethodName: MethodGetPhoneNumber,
			Handler: unaryHandler(MethodGetPhoneNumber, newStruct, func(s SpeedDialServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.GetPhoneNumber(ctx, in)
			}),
		},
		{
			MethodName: MethodRemoveNumber,
			Handler: unaryHandler(MethodRemoveNumber, newStruct, func(s SpeedDialServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.RemoveNumber(ctx, in)
			}),
		},
		{
			MethodName: MethodListEntries,
			Handler: unaryHandler(MethodListEntries, newStruct, func(s SpeedDialServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.ListEntries(ctx, in)
			}),
		},
		{
			MethodName: MethodListDirectories,
			Handler: unaryHandler(MethodListDirectories, newEmpty, func(s SpeedDialServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListDirectories(ctx, in)
			}),
		},
		{
			MethodName: MethodDial,
			Handler: unaryHandler(MethodDial, newStruct, func(s SpeedDialServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.Dial(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "speeddial/v1/speeddial.proto",
}

// RegisterSpeedDialServer registers srv on s.
func RegisterSpeedDialServer(s grpc.ServiceRegistrar, srv SpeedDialServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newStruct() *structpb.Struct { return new(structpb.Struct) }

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

// unaryHandler adapts a typed method to grpc.MethodHandler, running the
// server interceptor when one is installed.
func unaryHandler[Req proto.Message](method string, newReq func() Req, call func(SpeedDialServer, context.Context, Req) (any, error)) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method

	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}

		s := srv.(SpeedDialServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(Req))
		})
	}
}
