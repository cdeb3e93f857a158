// Package authrpc declares the authkit.Auth gRPC service. Messages are plain
// structs encoded with the JSON codec registered by this package.
package authrpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "authkit.Auth"

const (
	Auth_Register_FullMethodName             = "/authkit.Auth/Register"
	Auth_VerifyOTP_FullMethodName            = "/authkit.Auth/VerifyOTP"
	Auth_Login_FullMethodName                = "/authkit.Auth/Login"
	Auth_Refresh_FullMethodName              = "/authkit.Auth/Refresh"
	Auth_Me_FullMethodName                   = "/authkit.Auth/Me"
	Auth_RequestPasswordReset_FullMethodName = "/authkit.Auth/RequestPasswordReset"
	Auth_ResetPassword_FullMethodName        = "/authkit.Auth/ResetPassword"
)

// AuthServer is the server API for the Auth service.
type AuthServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	VerifyOTP(context.Context, *VerifyOTPRequest) (*MessageResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Refresh(context.Context, *RefreshRequest) (*TokenResponse, error)
	Me(context.Context, *MeRequest) (*User, error)
	RequestPasswordReset(context.Context, *PasswordResetRequest) (*MessageResponse, error)
	ResetPassword(context.Context, *ResetPasswordRequest) (*MessageResponse, error)
}

func unary[Req, Resp any](fullMethod string, call func(AuthServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Auth_ServiceDesc is the grpc.ServiceDesc for the Auth service.
var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(Auth_Register_FullMethodName, AuthServer.Register)},
		{MethodName: "VerifyOTP", Handler: unary(Auth_VerifyOTP_FullMethodName, AuthServer.VerifyOTP)},
		{MethodName: "Login", Handler: unary(Auth_Login_FullMethodName, AuthServer.Login)},
		{MethodName: "Refresh", Handler: unary(Auth_Refresh_FullMethodName, AuthServer.Refresh)},
		{MethodName: "Me", Handler: unary(Auth_Me_FullMethodName, AuthServer.Me)},
		{MethodName: "RequestPasswordReset", Handler: unary(Auth_RequestPasswordReset_FullMethodName, AuthServer.RequestPasswordReset)},
		{MethodName: "ResetPassword", Handler: unary(Auth_ResetPassword_FullMethodName, AuthServer.ResetPassword)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authkit/auth",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// AuthClient is the client API for the Auth service.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, Auth_Register_FullMethodName, in, opts)
}

func (c *AuthClient) VerifyOTP(ctx context.Context, in *VerifyOTPRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, Auth_VerifyOTP_FullMethodName, in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, Auth_Login_FullMethodName, in, opts)
}

func (c *AuthClient) Refresh(ctx context.Context, in *RefreshRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, Auth_Refresh_FullMethodName, in, opts)
}

func (c *AuthClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, Auth_Me_FullMethodName, in, opts)
}

func (c *AuthClient) RequestPasswordReset(ctx context.Context, in *PasswordResetRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, Auth_RequestPasswordReset_FullMethodName, in, opts)
}

func (c *AuthClient) ResetPassword(ctx context.Context, in *ResetPasswordRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, Auth_ResetPassword_FullMethodName, in, opts)
}
