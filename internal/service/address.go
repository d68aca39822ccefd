package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// Addresses manages the saved addresses of the authenticated account.
// The owner id always comes from the session, never from the request body.
type Addresses struct {
	store  model.AddressStore
	logger *logger.Logger
}

func NewAddresses(store model.AddressStore, logger *logger.Logger) *Addresses {
	return &Addresses{
		store:  store,
		logger: logger,
	}
}

// List returns the addresses in insertion order.
func (a *Addresses) List(ctx context.Context, accountID uuid.UUID) ([]model.Address, error) {
	addresses, err := a.store.ListAddresses(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apiErrors.NewErrAccountNotFound()
	}
	if err != nil {
		a.logger.Error("Addresses service: failed to list addresses",
			"account_id", accountID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	return addresses, nil
}

// Add appends an address and returns the full list.
func (a *Addresses) Add(ctx context.Context, accountID uuid.UUID, label, address string) ([]model.Address, error) {
	var missing []string
	if strings.TrimSpace(label) == "" {
		missing = append(missing, "label")
	}
	if strings.TrimSpace(address) == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, apiErrors.NewErrMissingFields(missing...)
	}

	err := a.store.AddAddress(ctx, accountID, model.Address{
		ID:      uuid.New(),
		Label:   label,
		Address: address,
	})
	if errors.Is(err, model.ErrNotFound) {
		return nil, apiErrors.NewErrAccountNotFound()
	}
	if err != nil {
		a.logger.Error("Addresses service: failed to add address",
			"account_id", accountID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to add address: %w", err)
	}

	a.logger.Debug("Addresses service: address added",
		"account_id", accountID)

	return a.List(ctx, accountID)
}

// Update changes the non-blank fields of patch on the address and returns the full list.
func (a *Addresses) Update(ctx context.Context, accountID uuid.UUID, addressID string, patch model.AddressPatch) ([]model.Address, error) {
	current, err := a.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(addressID)
	if err != nil {
		return nil, apiErrors.NewErrAddressNotFound(addressID)
	}

	idx := -1
	for i, addr := range current {
		if addr.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apiErrors.NewErrAddressNotFound(addressID)
	}

	updated := current[idx]
	if patch.Label != nil && strings.TrimSpace(*patch.Label) != "" {
		updated.Label = *patch.Label
	}
	if patch.Address != nil && strings.TrimSpace(*patch.Address) != "" {
		updated.Address = *patch.Address
	}

	err = a.store.UpdateAddress(ctx, accountID, updated)
	if errors.Is(err, model.ErrNotFound) {
		return nil, apiErrors.NewErrAddressNotFound(addressID)
	}
	if err != nil {
		a.logger.Error("Addresses service: failed to update address",
			"account_id", accountID,
			"address_id", id,
			"error", err.Error())
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return a.List(ctx, accountID)
}

// Remove deletes the address if it belongs to the account and returns the remaining list.
// An unknown address id is not an error.
func (a *Addresses) Remove(ctx context.Context, accountID uuid.UUID, addressID string) ([]model.Address, error) {
	if id, err := uuid.Parse(addressID); err == nil {
		err = a.store.DeleteAddress(ctx, accountID, id)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			a.logger.Error("Addresses service: failed to delete address",
				"account_id", accountID,
				"address_id", id,
				"error", err.Error())
			return nil, fmt.Errorf("failed to delete address: %w", err)
		}
	}

	return a.List(ctx, accountID)
}
