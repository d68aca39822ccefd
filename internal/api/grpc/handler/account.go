package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/api/grpc/rpc"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ rpc.AccountServer = (*Account)(nil)

// maxImageSize bounds the image returned in a single message.
const maxImageSize = 4 << 20

// Account handles the owner-scoped endpoints. Every call requires an authenticated context.
type Account struct {
	accounts       AccountService
	addresses      AddressService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAccount(accounts AccountService, addresses AddressService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accounts:       accounts,
		addresses:      addresses,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Account) accountID(ctx context.Context) (uuid.UUID, error) {
	id, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return uuid.Nil, handleError(apiErrors.NewErrMissingAuthorizationToken())
	}
	return id, nil
}

func (h *Account) GetProfile(ctx context.Context, _ *rpc.Empty) (*rpc.Profile, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := h.accounts.Profile(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}

	out := toRPCProfile(profile)
	return &out, nil
}

func (h *Account) DeleteAccount(ctx context.Context, req *rpc.DeleteAccountRequest) (*rpc.Empty, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.accounts.Delete(ctx, id, req.Password); err != nil {
		return nil, handleError(err)
	}

	h.logger.Info("Account handler: account deleted",
		"account_id", id)

	return &rpc.Empty{}, nil
}

func (h *Account) GetNationalIDImage(ctx context.Context, _ *rpc.Empty) (*rpc.NationalIDImageResponse, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	rc, err := h.accounts.NationalIDImage(ctx, id)
	if err != nil {
		return nil, handleError(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxImageSize+1))
	if err != nil {
		h.logger.Error("Account handler: failed to read national id image",
			"account_id", id,
			"error", err.Error())
		return nil, handleError(fmt.Errorf("failed to read image: %w", err))
	}
	if len(data) > maxImageSize {
		h.logger.Error("Account handler: national id image too large",
			"account_id", id)
		return nil, handleError(fmt.Errorf("image exceeds %d bytes", maxImageSize))
	}

	return &rpc.NationalIDImageResponse{Data: data}, nil
}

func (h *Account) ListAddresses(ctx context.Context, _ *rpc.Empty) (*rpc.AddressList, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}
	return h.addressList(h.addresses.List(ctx, id))
}

func (h *Account) AddAddress(ctx context.Context, req *rpc.AddAddressRequest) (*rpc.AddressList, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}
	return h.addressList(h.addresses.Add(ctx, id, req.Label, req.Address))
}

func (h *Account) UpdateAddress(ctx context.Context, req *rpc.UpdateAddressRequest) (*rpc.AddressList, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}
	return h.addressList(h.addresses.Update(ctx, id, req.AddressID, model.AddressPatch{
		Label:   req.Label,
		Address: req.Address,
	}))
}

func (h *Account) DeleteAddress(ctx context.Context, req *rpc.DeleteAddressRequest) (*rpc.AddressList, error) {
	id, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}
	return h.addressList(h.addresses.Remove(ctx, id, req.AddressID))
}

func (h *Account) addressList(addresses []model.Address, err error) (*rpc.AddressList, error) {
	if err != nil {
		return nil, handleError(err)
	}
	return &rpc.AddressList{Addresses: toRPCAddresses(addresses)}, nil
}
