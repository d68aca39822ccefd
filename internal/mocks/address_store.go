package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/airgo-accounts/internal/model"
)

// AddressStore is a mock of model.AddressStore.
type AddressStore struct {
	mock.Mock
}

// NewAddressStore creates an AddressStore mock and registers expectation checks on cleanup.
func NewAddressStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *AddressStore {
	m := &AddressStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AddressStore) ListAddresses(ctx context.Context, accountID uuid.UUID) ([]model.Address, error) {
	args := m.Called(ctx, accountID)
	var addresses []model.Address
	if v := args.Get(0); v != nil {
		addresses = v.([]model.Address)
	}
	return addresses, args.Error(1)
}

func (m *AddressStore) AddAddress(ctx context.Context, accountID uuid.UUID, address model.Address) error {
	args := m.Called(ctx, accountID, address)
	return args.Error(0)
}

func (m *AddressStore) UpdateAddress(ctx context.Context, accountID uuid.UUID, address model.Address) error {
	args := m.Called(ctx, accountID, address)
	return args.Error(0)
}

func (m *AddressStore) DeleteAddress(ctx context.Context, accountID, addressID uuid.UUID) error {
	args := m.Called(ctx, accountID, addressID)
	return args.Error(0)
}
