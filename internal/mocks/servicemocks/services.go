// Package servicemocks holds mocks of the service layer used by transport tests.
package servicemocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/airgo-accounts/internal/model"
	"github.com/dtroode/airgo-accounts/internal/service"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// RegistrationService is a mock of the transport-facing registration service.
type RegistrationService struct {
	mock.Mock
}

// NewRegistrationService creates a RegistrationService mock and registers expectation checks on cleanup.
func NewRegistrationService(t testingT) *RegistrationService {
	m := &RegistrationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *RegistrationService) CheckUnique(ctx context.Context, fields service.UniqueFields) (map[string]string, error) {
	args := m.Called(ctx, fields)
	conflicts, _ := args.Get(0).(map[string]string)
	return conflicts, args.Error(1)
}

func (m *RegistrationService) RequestCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *RegistrationService) VerifyCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *RegistrationService) Register(ctx context.Context, params service.RegisterParams) (uuid.UUID, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// SessionService is a mock of the transport-facing session service.
type SessionService struct {
	mock.Mock
}

// NewSessionService creates a SessionService mock and registers expectation checks on cleanup.
func NewSessionService(t testingT) *SessionService {
	m := &SessionService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *SessionService) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.LoginResult), args.Error(1)
}

func (m *SessionService) ChangePassword(ctx context.Context, accountID uuid.UUID, current, next string) error {
	args := m.Called(ctx, accountID, current, next)
	return args.Error(0)
}

// AccountService is a mock of the transport-facing account service.
type AccountService struct {
	mock.Mock
}

// NewAccountService creates an AccountService mock and registers expectation checks on cleanup.
func NewAccountService(t testingT) *AccountService {
	m := &AccountService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AccountService) Profile(ctx context.Context, id uuid.UUID) (model.AccountProfile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.AccountProfile), args.Error(1)
}

func (m *AccountService) NationalIDImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *AccountService) Delete(ctx context.Context, id uuid.UUID, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

// AddressService is a mock of the transport-facing address service.
type AddressService struct {
	mock.Mock
}

// NewAddressService creates an AddressService mock and registers expectation checks on cleanup.
func NewAddressService(t testingT) *AddressService {
	m := &AddressService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AddressService) List(ctx context.Context, accountID uuid.UUID) ([]model.Address, error) {
	args := m.Called(ctx, accountID)
	addresses, _ := args.Get(0).([]model.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) Add(ctx context.Context, accountID uuid.UUID, label, address string) ([]model.Address, error) {
	args := m.Called(ctx, accountID, label, address)
	addresses, _ := args.Get(0).([]model.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) Update(ctx context.Context, accountID uuid.UUID, addressID string, patch model.AddressPatch) ([]model.Address, error) {
	args := m.Called(ctx, accountID, addressID, patch)
	addresses, _ := args.Get(0).([]model.Address)
	return addresses, args.Error(1)
}

func (m *AddressService) Remove(ctx context.Context, accountID uuid.UUID, addressID string) ([]model.Address, error) {
	args := m.Called(ctx, accountID, addressID)
	addresses, _ := args.Get(0).([]model.Address)
	return addresses, args.Error(1)
}
