package service

import (
	"context"
	"fmt"

	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// UniqueFields holds the identity values to check before registration.
// Empty values are skipped.
type UniqueFields struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"cnicNumber"`
}

// Conflict keys match the request field names.
var conflicts = map[model.IdentityField]struct{ key, message string }{
	model.FieldEmail:      {"email", "This email is already registered."},
	model.FieldPhone:      {"phone", "This phone number is already registered."},
	model.FieldNationalID: {"cnicNumber", "This CNIC is already registered."},
}

// Uniqueness reports which identity fields already belong to an account.
// Its answers are advisory; the store's unique constraints decide at write time.
type Uniqueness struct {
	accounts model.AccountStore
	logger   *logger.Logger
}

func NewUniqueness(accounts model.AccountStore, logger *logger.Logger) *Uniqueness {
	return &Uniqueness{
		accounts: accounts,
		logger:   logger,
	}
}

// CheckUnique returns the colliding fields mapped to a human readable message.
// An empty map means there are no conflicts.
func (u *Uniqueness) CheckUnique(ctx context.Context, fields UniqueFields) (map[string]string, error) {
	checks := []struct {
		field model.IdentityField
		value string
	}{
		{model.FieldEmail, fields.Email},
		{model.FieldPhone, fields.Phone},
		{model.FieldNationalID, normalizeNationalID(fields.NationalID)},
	}

	found := make(map[string]string)
	for _, c := range checks {
		if c.value == "" {
			continue
		}

		exists, err := u.accounts.ExistsBy(ctx, c.field, c.value)
		if err != nil {
			u.logger.Error("Uniqueness service: failed to look up account",
				"field", c.field,
				"error", err.Error())
			return nil, fmt.Errorf("failed to check %s: %w", c.field, err)
		}
		if exists {
			conflict := conflicts[c.field]
			found[conflict.key] = conflict.message
		}
	}

	u.logger.Debug("Uniqueness service: check finished",
		"conflicts", len(found))

	return found, nil
}

// EmailTaken reports whether email belongs to an existing account.
func (u *Uniqueness) EmailTaken(ctx context.Context, email string) (bool, error) {
	return u.accounts.ExistsBy(ctx, model.FieldEmail, email)
}
