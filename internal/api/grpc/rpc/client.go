package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/airgo-accounts/internal/api/grpc/codec"
)

// CallOption selects the JSON codec for a call. Clients pass it through
// grpc.WithDefaultCallOptions or per call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(codec.Name)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type RegistrationClient struct{ cc grpc.ClientConnInterface }

func NewRegistrationClient(cc grpc.ClientConnInterface) *RegistrationClient {
	return &RegistrationClient{cc: cc}
}

func (c *RegistrationClient) CheckUnique(ctx context.Context, in *CheckUniqueRequest, opts ...grpc.CallOption) (*CheckUniqueResponse, error) {
	return invoke[CheckUniqueResponse](ctx, c.cc, RegistrationCheckUnique, in, opts)
}

func (c *RegistrationClient) RequestCode(ctx context.Context, in *RequestCodeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, RegistrationRequestCode, in, opts)
}

func (c *RegistrationClient) VerifyCode(ctx context.Context, in *VerifyCodeRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, RegistrationVerifyCode, in, opts)
}

func (c *RegistrationClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, RegistrationRegister, in, opts)
}

type SessionClient struct{ cc grpc.ClientConnInterface }

func NewSessionClient(cc grpc.ClientConnInterface) *SessionClient {
	return &SessionClient{cc: cc}
}

func (c *SessionClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, SessionLogin, in, opts)
}

func (c *SessionClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, SessionChangePassword, in, opts)
}

type AccountClient struct{ cc grpc.ClientConnInterface }

func NewAccountClient(cc grpc.ClientConnInterface) *AccountClient {
	return &AccountClient{cc: cc}
}

func (c *AccountClient) GetProfile(ctx context.Context, opts ...grpc.CallOption) (*Profile, error) {
	return invoke[Profile](ctx, c.cc, AccountGetProfile, &Empty{}, opts)
}

func (c *AccountClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, AccountDeleteAccount, in, opts)
}

func (c *AccountClient) GetNationalIDImage(ctx context.Context, opts ...grpc.CallOption) (*NationalIDImageResponse, error) {
	return invoke[NationalIDImageResponse](ctx, c.cc, AccountGetNationalIDImage, &Empty{}, opts)
}

func (c *AccountClient) ListAddresses(ctx context.Context, opts ...grpc.CallOption) (*AddressList, error) {
	return invoke[AddressList](ctx, c.cc, AccountListAddresses, &Empty{}, opts)
}

func (c *AccountClient) AddAddress(ctx context.Context, in *AddAddressRequest, opts ...grpc.CallOption) (*AddressList, error) {
	return invoke[AddressList](ctx, c.cc, AccountAddAddress, in, opts)
}

func (c *AccountClient) UpdateAddress(ctx context.Context, in *UpdateAddressRequest, opts ...grpc.CallOption) (*AddressList, error) {
	return invoke[AddressList](ctx, c.cc, AccountUpdateAddress, in, opts)
}

func (c *AccountClient) DeleteAddress(ctx context.Context, in *DeleteAddressRequest, opts ...grpc.CallOption) (*AddressList, error) {
	return invoke[AddressList](ctx, c.cc, AccountDeleteAddress, in, opts)
}
