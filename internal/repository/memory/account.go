package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/airgo-accounts/internal/model"
)

var (
	_ model.AccountStore = (*AccountRepository)(nil)
	_ model.AddressStore = (*AccountRepository)(nil)
)

// AccountRepository keeps accounts and their addresses in memory. Unique fields are
// checked and inserted under one lock, mirroring the database constraints.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]model.Account
}

// NewAccountRepository returns an empty repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[uuid.UUID]model.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		switch {
		case existing.Email == account.Email:
			return model.Account{}, &model.ConstraintError{Field: model.FieldEmail}
		case existing.Phone == account.Phone:
			return model.Account{}, &model.ConstraintError{Field: model.FieldPhone}
		case existing.NationalID == account.NationalID:
			return model.Account{}, &model.ConstraintError{Field: model.FieldNationalID}
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	account.Addresses = slices.Clone(account.Addresses)
	r.accounts[account.ID] = account

	return cloneAccount(account), nil
}

func (r *AccountRepository) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return cloneAccount(account), nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return cloneAccount(account), nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (r *AccountRepository) ExistsBy(_ context.Context, field model.IdentityField, value string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		var got string
		switch field {
		case model.FieldEmail:
			got = account.Email
		case model.FieldPhone:
			got = account.Phone
		case model.FieldNationalID:
			got = account.NationalID
		}
		if got == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	account.PasswordHash = passwordHash
	account.TokenEpoch++
	account.UpdatedAt = time.Now().UTC()
	r.accounts[id] = account

	return cloneAccount(account), nil
}

func (r *AccountRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

func (r *AccountRepository) ListAddresses(_ context.Context, accountID uuid.UUID) ([]model.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return cloneAddresses(account.Addresses), nil
}

func (r *AccountRepository) AddAddress(_ context.Context, accountID uuid.UUID, address model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return model.ErrNotFound
	}
	account.Addresses = append(cloneAddresses(account.Addresses), address)
	account.UpdatedAt = time.Now().UTC()
	r.accounts[accountID] = account
	return nil
}

func (r *AccountRepository) UpdateAddress(_ context.Context, accountID uuid.UUID, address model.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return model.ErrNotFound
	}
	idx := slices.IndexFunc(account.Addresses, func(a model.Address) bool { return a.ID == address.ID })
	if idx < 0 {
		return model.ErrNotFound
	}
	account.Addresses = cloneAddresses(account.Addresses)
	account.Addresses[idx] = address
	account.UpdatedAt = time.Now().UTC()
	r.accounts[accountID] = account
	return nil
}

func (r *AccountRepository) DeleteAddress(_ context.Context, accountID, addressID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountID]
	if !ok {
		return model.ErrNotFound
	}
	account.Addresses = slices.DeleteFunc(cloneAddresses(account.Addresses), func(a model.Address) bool {
		return a.ID == addressID
	})
	account.UpdatedAt = time.Now().UTC()
	r.accounts[accountID] = account
	return nil
}

func cloneAccount(a model.Account) model.Account {
	a.Addresses = cloneAddresses(a.Addresses)
	return a
}

func cloneAddresses(in []model.Address) []model.Address {
	out := make([]model.Address, len(in))
	copy(out, in)
	return out
}
