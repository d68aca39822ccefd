package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// Accounts serves the authenticated owner's view of their account.
type Accounts struct {
	accounts model.AccountStore
	images   model.Storage
	hasher   PasswordHasher
	logger   *logger.Logger
}

// NewAccounts creates the service. images may be nil when object storage is disabled.
func NewAccounts(accounts model.AccountStore, images model.Storage, hasher PasswordHasher, logger *logger.Logger) *Accounts {
	return &Accounts{
		accounts: accounts,
		images:   images,
		hasher:   hasher,
		logger:   logger,
	}
}

func (a *Accounts) get(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := a.accounts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apiErrors.NewErrAccountNotFound()
	}
	if err != nil {
		a.logger.Error("Accounts service: failed to get account",
			"account_id", id,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// Profile returns the public-safe projection of the account.
func (a *Accounts) Profile(ctx context.Context, id uuid.UUID) (model.AccountProfile, error) {
	account, err := a.get(ctx, id)
	if err != nil {
		return model.AccountProfile{}, err
	}
	return account.Profile(), nil
}

// NationalIDImage opens the stored national id image. The caller closes the reader.
func (a *Accounts) NationalIDImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	account, err := a.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.NationalIDImage == "" || a.images == nil {
		return nil, apiErrors.NewErrImageNotFound()
	}

	exists, err := a.images.Exists(ctx, account.NationalIDImage)
	if err != nil {
		return nil, fmt.Errorf("failed to check image: %w", err)
	}
	if !exists {
		return nil, apiErrors.NewErrImageNotFound()
	}

	rc, err := a.images.Download(ctx, account.NationalIDImage)
	if err != nil {
		a.logger.Error("Accounts service: failed to download national id image",
			"account_id", id,
			"error", err.Error())
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	return rc, nil
}

// Delete removes the account after checking its password. Addresses go with it.
func (a *Accounts) Delete(ctx context.Context, id uuid.UUID, password string) error {
	if password == "" {
		return apiErrors.NewErrMissingFields("password")
	}

	account, err := a.get(ctx, id)
	if err != nil {
		return err
	}

	if !a.hasher.Verify(password, account.PasswordHash) {
		return apiErrors.NewErrWrongPassword()
	}

	if err := a.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apiErrors.NewErrAccountNotFound()
		}
		a.logger.Error("Accounts service: failed to delete account",
			"account_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if account.NationalIDImage != "" && a.images != nil {
		if err := a.images.Delete(ctx, account.NationalIDImage); err != nil {
			a.logger.Error("Accounts service: failed to remove national id image",
				"account_id", id,
				"error", err.Error())
		}
	}

	a.logger.Info("Accounts service: account deleted",
		"account_id", id)

	return nil
}
