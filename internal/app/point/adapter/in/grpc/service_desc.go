package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// 訊息一律使用 google.protobuf.Struct，不需要額外產生 pb 程式碼
const (
	ServiceName = "point.v1.PointService"

	MethodGetPoint = "/" + ServiceName + "/GetPoint"
	MethodCharge   = "/" + ServiceName + "/Charge"
	MethodUse      = "/" + ServiceName + "/Use"
	MethodHistory  = "/" + ServiceName + "/History"
)

// pointServer gRPC 伺服器端需要實作的方法
type pointServer interface {
	GetPoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Charge(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Use(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	History(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv pointServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// unaryHandler 對應 protoc-gen-go-grpc 產生的 _Handler 函式
func unaryHandler(fullMethod string, call unaryCall) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(pointServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(pointServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var pointServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*pointServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetPoint",
			Handler: unaryHandler(MethodGetPoint, func(srv pointServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetPoint(ctx, req)
			}),
		},
		{
			MethodName: "Charge",
			Handler: unaryHandler(MethodCharge, func(srv pointServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.Charge(ctx, req)
			}),
		},
		{
			MethodName: "Use",
			Handler: unaryHandler(MethodUse, func(srv pointServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.Use(ctx, req)
			}),
		},
		{
			MethodName: "History",
			Handler: unaryHandler(MethodHistory, func(srv pointServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.History(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "point/v1/point.proto",
}

// RegisterPointServiceServer 註冊到 grpc.Server
func RegisterPointServiceServer(s grpc.ServiceRegistrar, srv *GrpcServer) {
	s.RegisterService(&pointServiceDesc, srv)
}
