package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	RegistrationServiceName = "airgo.accounts.v1.Registration"
	SessionServiceName      = "airgo.accounts.v1.Session"
	AccountServiceName      = "airgo.accounts.v1.Account"
)

// Full method names.
const (
	RegistrationCheckUnique = "/" + RegistrationServiceName + "/CheckUnique"
	RegistrationRequestCode = "/" + RegistrationServiceName + "/RequestCode"
	RegistrationVerifyCode  = "/" + RegistrationServiceName + "/VerifyCode"
	RegistrationRegister    = "/" + RegistrationServiceName + "/Register"

	SessionLogin          = "/" + SessionServiceName + "/Login"
	SessionChangePassword = "/" + SessionServiceName + "/ChangePassword"

	AccountGetProfile         = "/" + AccountServiceName + "/GetProfile"
	AccountDeleteAccount      = "/" + AccountServiceName + "/DeleteAccount"
	AccountGetNationalIDImage = "/" + AccountServiceName + "/GetNationalIDImage"
	AccountListAddresses      = "/" + AccountServiceName + "/ListAddresses"
	AccountAddAddress         = "/" + AccountServiceName + "/AddAddress"
	AccountUpdateAddress      = "/" + AccountServiceName + "/UpdateAddress"
	AccountDeleteAddress      = "/" + AccountServiceName + "/DeleteAddress"
)

type RegistrationServer interface {
	CheckUnique(context.Context, *CheckUniqueRequest) (*CheckUniqueResponse, error)
	RequestCode(context.Context, *RequestCodeRequest) (*Empty, error)
	VerifyCode(context.Context, *VerifyCodeRequest) (*Empty, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
}

type SessionServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*Empty, error)
}

type AccountServer interface {
	GetProfile(context.Context, *Empty) (*Profile, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*Empty, error)
	GetNationalIDImage(context.Context, *Empty) (*NationalIDImageResponse, error)
	ListAddresses(context.Context, *Empty) (*AddressList, error)
	AddAddress(context.Context, *AddAddressRequest) (*AddressList, error)
	UpdateAddress(context.Context, *UpdateAddressRequest) (*AddressList, error)
	DeleteAddress(context.Context, *DeleteAddressRequest) (*AddressList, error)
}

// unary adapts a typed method of server S into a grpc.MethodHandler.
func unary[S any, Req any, Resp any](fullMethod string, call func(S, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var RegistrationServiceDesc = grpc.ServiceDesc{
	ServiceName: RegistrationServiceName,
	HandlerType: (*RegistrationServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckUnique", Handler: unary(RegistrationCheckUnique, RegistrationServer.CheckUnique)},
		{MethodName: "RequestCode", Handler: unary(RegistrationRequestCode, RegistrationServer.RequestCode)},
		{MethodName: "VerifyCode", Handler: unary(RegistrationVerifyCode, RegistrationServer.VerifyCode)},
		{MethodName: "Register", Handler: unary(RegistrationRegister, RegistrationServer.Register)},
	},
	Metadata: "airgo/accounts/v1/registration",
}

var SessionServiceDesc = grpc.ServiceDesc{
	ServiceName: SessionServiceName,
	HandlerType: (*SessionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Login", Handler: unary(SessionLogin, SessionServer.Login)},
		{MethodName: "ChangePassword", Handler: unary(SessionChangePassword, SessionServer.ChangePassword)},
	},
	Metadata: "airgo/accounts/v1/session",
}

var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: AccountServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProfile", Handler: unary(AccountGetProfile, AccountServer.GetProfile)},
		{MethodName: "DeleteAccount", Handler: unary(AccountDeleteAccount, AccountServer.DeleteAccount)},
		{MethodName: "GetNationalIDImage", Handler: unary(AccountGetNationalIDImage, AccountServer.GetNationalIDImage)},
		{MethodName: "ListAddresses", Handler: unary(AccountListAddresses, AccountServer.ListAddresses)},
		{MethodName: "AddAddress", Handler: unary(AccountAddAddress, AccountServer.AddAddress)},
		{MethodName: "UpdateAddress", Handler: unary(AccountUpdateAddress, AccountServer.UpdateAddress)},
		{MethodName: "DeleteAddress", Handler: unary(AccountDeleteAddress, AccountServer.DeleteAddress)},
	},
	Metadata: "airgo/accounts/v1/account",
}

func RegisterRegistrationServer(s grpc.ServiceRegistrar, srv RegistrationServer) {
	s.RegisterService(&RegistrationServiceDesc, srv)
}

func RegisterSessionServer(s grpc.ServiceRegistrar, srv SessionServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}
