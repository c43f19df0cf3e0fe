package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "copyit.CopyItService"

const (
	CopyItService_Ping_FullMethodName          = "/copyit.CopyItService/Ping"
	CopyItService_SignUp_FullMethodName        = "/copyit.CopyItService/SignUp"
	CopyItService_SignIn_FullMethodName        = "/copyit.CopyItService/SignIn"
	CopyItService_RefreshToken_FullMethodName  = "/copyit.CopyItService/RefreshToken"
	CopyItService_SignOut_FullMethodName       = "/copyit.CopyItService/SignOut"
	CopyItService_CreateEntry_FullMethodName   = "/copyit.CopyItService/CreateEntry"
	CopyItService_UpdateEntry_FullMethodName   = "/copyit.CopyItService/UpdateEntry"
	CopyItService_DeleteEntry_FullMethodName   = "/copyit.CopyItService/DeleteEntry"
	CopyItService_WatchEntries_FullMethodName  = "/copyit.CopyItService/WatchEntries"
	CopyItService_ExportEntries_FullMethodName = "/copyit.CopyItService/ExportEntries"
)

// CopyItServiceClient is the client API for CopyItService.
type CopyItServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error)
	SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*Session, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Session, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error)
	CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error)
	UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*UpdateEntryResponse, error)
	DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error)
	WatchEntries(ctx context.Context, in *WatchEntriesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[EntrySnapshot], error)
	ExportEntries(ctx context.Context, in *ExportEntriesRequest, opts ...grpc.CallOption) (*ExportEntriesResponse, error)
}

type copyItServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCopyItServiceClient(cc grpc.ClientConnInterface) CopyItServiceClient {
	return &copyItServiceClient{cc}
}

func invoke[Req, Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *copyItServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, CopyItService_Ping_FullMethodName, in, opts)
}

func (c *copyItServiceClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpRequest, SignUpResponse](ctx, c.cc, CopyItService_SignUp_FullMethodName, in, opts)
}

func (c *copyItServiceClient) SignIn(ctx context.Context, in *SignInRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[SignInRequest, Session](ctx, c.cc, CopyItService_SignIn_FullMethodName, in, opts)
}

func (c *copyItServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*Session, error) {
	return invoke[RefreshTokenRequest, Session](ctx, c.cc, CopyItService_RefreshToken_FullMethodName, in, opts)
}

func (c *copyItServiceClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutRequest, SignOutResponse](ctx, c.cc, CopyItService_SignOut_FullMethodName, in, opts)
}

func (c *copyItServiceClient) CreateEntry(ctx context.Context, in *CreateEntryRequest, opts ...grpc.CallOption) (*CreateEntryResponse, error) {
	return invoke[CreateEntryRequest, CreateEntryResponse](ctx, c.cc, CopyItService_CreateEntry_FullMethodName, in, opts)
}

func (c *copyItServiceClient) UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*UpdateEntryResponse, error) {
	return invoke[UpdateEntryRequest, UpdateEntryResponse](ctx, c.cc, CopyItService_UpdateEntry_FullMethodName, in, opts)
}

func (c *copyItServiceClient) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*DeleteEntryResponse, error) {
	return invoke[DeleteEntryRequest, DeleteEntryResponse](ctx, c.cc, CopyItService_DeleteEntry_FullMethodName, in, opts)
}

func (c *copyItServiceClient) WatchEntries(ctx context.Context, in *WatchEntriesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[EntrySnapshot], error) {
	stream, err := c.cc.NewStream(ctx, &CopyItService_ServiceDesc.Streams[0], CopyItService_WatchEntries_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[WatchEntriesRequest, EntrySnapshot]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *copyItServiceClient) ExportEntries(ctx context.Context, in *ExportEntriesRequest, opts ...grpc.CallOption) (*ExportEntriesResponse, error) {
	return invoke[ExportEntriesRequest, ExportEntriesResponse](ctx, c.cc, CopyItService_ExportEntries_FullMethodName, in, opts)
}

// CopyItServiceServer is the server API for CopyItService.
type CopyItServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	SignIn(context.Context, *SignInRequest) (*Session, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*Session, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error)
	UpdateEntry(context.Context, *UpdateEntryRequest) (*UpdateEntryResponse, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error)
	WatchEntries(*WatchEntriesRequest, grpc.ServerStreamingServer[EntrySnapshot]) error
	ExportEntries(context.Context, *ExportEntriesRequest) (*ExportEntriesResponse, error)
}

// UnimplementedCopyItServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedCopyItServiceServer struct{}

func (UnimplementedCopyItServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedCopyItServiceServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedCopyItServiceServer) SignIn(context.Context, *SignInRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedCopyItServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*Session, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedCopyItServiceServer) SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedCopyItServiceServer) CreateEntry(context.Context, *CreateEntryRequest) (*CreateEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateEntry not implemented")
}
func (UnimplementedCopyItServiceServer) UpdateEntry(context.Context, *UpdateEntryRequest) (*UpdateEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateEntry not implemented")
}
func (UnimplementedCopyItServiceServer) DeleteEntry(context.Context, *DeleteEntryRequest) (*DeleteEntryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteEntry not implemented")
}
func (UnimplementedCopyItServiceServer) WatchEntries(*WatchEntriesRequest, grpc.ServerStreamingServer[EntrySnapshot]) error {
	return status.Error(codes.Unimplemented, "method WatchEntries not implemented")
}
func (UnimplementedCopyItServiceServer) ExportEntries(context.Context, *ExportEntriesRequest) (*ExportEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportEntries not implemented")
}

func RegisterCopyItServiceServer(s grpc.ServiceRegistrar, srv CopyItServiceServer) {
	s.RegisterService(&CopyItService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Res any](method string, call func(CopyItServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CopyItServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CopyItServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func _CopyItService_WatchEntries_Handler(srv any, stream grpc.ServerStream) error {
	m := new(WatchEntriesRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CopyItServiceServer).WatchEntries(m, &grpc.GenericServerStream[WatchEntriesRequest, EntrySnapshot]{ServerStream: stream})
}

// CopyItService_ServiceDesc is the grpc.ServiceDesc for CopyItService.
var CopyItService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CopyItServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(CopyItService_Ping_FullMethodName, CopyItServiceServer.Ping)},
		{MethodName: "SignUp", Handler: unaryHandler(CopyItService_SignUp_FullMethodName, CopyItServiceServer.SignUp)},
		{MethodName: "SignIn", Handler: unaryHandler(CopyItService_SignIn_FullMethodName, CopyItServiceServer.SignIn)},
		{MethodName: "RefreshToken", Handler: unaryHandler(CopyItService_RefreshToken_FullMethodName, CopyItServiceServer.RefreshToken)},
		{MethodName: "SignOut", Handler: unaryHandler(CopyItService_SignOut_FullMethodName, CopyItServiceServer.SignOut)},
		{MethodName: "CreateEntry", Handler: unaryHandler(CopyItService_CreateEntry_FullMethodName, CopyItServiceServer.CreateEntry)},
		{MethodName: "UpdateEntry", Handler: unaryHandler(CopyItService_UpdateEntry_FullMethodName, CopyItServiceServer.UpdateEntry)},
		{MethodName: "DeleteEntry", Handler: unaryHandler(CopyItService_DeleteEntry_FullMethodName, CopyItServiceServer.DeleteEntry)},
		{MethodName: "ExportEntries", Handler: unaryHandler(CopyItService_ExportEntries_FullMethodName, CopyItServiceServer.ExportEntries)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchEntries",
			Handler:       _CopyItService_WatchEntries_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "copyit",
}
