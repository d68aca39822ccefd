package handler

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/dtroode/airgo-accounts/internal/model"
	"github.com/dtroode/airgo-accounts/internal/service"
)

// RegistrationService drives the sign-up flow.
type RegistrationService interface {
	CheckUnique(ctx context.Context, fields service.UniqueFields) (map[string]string, error)
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	Register(ctx context.Context, params service.RegisterParams) (uuid.UUID, error)
}

// SessionService logs accounts in and changes their passwords.
type SessionService interface {
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	ChangePassword(ctx context.Context, accountID uuid.UUID, current, next string) error
}

// AccountService serves the owner's account.
type AccountService interface {
	Profile(ctx context.Context, id uuid.UUID) (model.AccountProfile, error)
	NationalIDImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID, password string) error
}

// AddressService manages the owner's saved addresses.
type AddressService interface {
	List(ctx context.Context, accountID uuid.UUID) ([]model.Address, error)
	Add(ctx context.Context, accountID uuid.UUID, label, address string) ([]model.Address, error)
	Update(ctx context.Context, accountID uuid.UUID, addressID string, patch model.AddressPatch) ([]model.Address, error)
	Remove(ctx context.Context, accountID uuid.UUID, addressID string) ([]model.Address, error)
}

// CodeInbox exposes the last code sent to an address. Only the development outbox implements it.
type CodeInbox interface {
	Last(email string) (string, bool)
}
