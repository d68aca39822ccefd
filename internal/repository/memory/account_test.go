package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/airgo-accounts/internal/model"
)

func newAccount(email, phone, nationalID string) model.Account {
	return model.Account{
		FullName:     "Ali Khan",
		GuardianName: "Imran Khan",
		Email:        email,
		PasswordHash: "hash",
		NationalID:   nationalID,
		Phone:        phone,
	}
}

func TestAccountRepository_CreateEnforcesUniqueFields(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()

	saved, err := r.Create(ctx, newAccount("a@x.com", "3001234567", "3520212345671"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	tests := []struct {
		name    string
		account model.Account
		field   model.IdentityField
	}{
		{"email", newAccount("a@x.com", "3009999999", "1111111111111"), model.FieldEmail},
		{"phone", newAccount("b@x.com", "3001234567", "1111111111111"), model.FieldPhone},
		{"national id", newAccount("b@x.com", "3009999999", "3520212345671"), model.FieldNationalID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Create(ctx, tt.account)
			var cErr *model.ConstraintError
			require.ErrorAs(t, err, &cErr)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}
}

func TestAccountRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	saved, err := r.Create(ctx, newAccount("a@x.com", "3001234567", "3520212345671"))
	require.NoError(t, err)

	byEmail, err := r.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byEmail.ID)

	_, err = r.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = r.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)

	exists, err := r.ExistsBy(ctx, model.FieldPhone, "3001234567")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.ExistsBy(ctx, model.FieldNationalID, "0000000000000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAccountRepository_UpdatePasswordAdvancesEpoch(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	saved, err := r.Create(ctx, newAccount("a@x.com", "3001234567", "3520212345671"))
	require.NoError(t, err)

	updated, err := r.UpdatePassword(ctx, saved.ID, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.PasswordHash)
	assert.Equal(t, saved.TokenEpoch+1, updated.TokenEpoch)

	_, err = r.UpdatePassword(ctx, uuid.New(), "x")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_AddressesAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	a, err := r.Create(ctx, newAccount("a@x.com", "3001234567", "3520212345671"))
	require.NoError(t, err)
	b, err := r.Create(ctx, newAccount("b@x.com", "3007654321", "3520212345672"))
	require.NoError(t, err)

	home := model.Address{ID: uuid.New(), Label: "Home", Address: "1 Main St"}
	require.NoError(t, r.AddAddress(ctx, a.ID, home))

	require.ErrorIs(t, r.UpdateAddress(ctx, b.ID, model.Address{ID: home.ID, Label: "Stolen"}), model.ErrNotFound)
	require.NoError(t, r.DeleteAddress(ctx, b.ID, home.ID))

	list, err := r.ListAddresses(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Address{home}, list)

	list[0].Label = "mutated"
	again, err := r.ListAddresses(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", again[0].Label)

	require.NoError(t, r.DeleteAddress(ctx, a.ID, home.ID))
	list, err = r.ListAddresses(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAccountRepository_DeleteCascadesAddresses(t *testing.T) {
	ctx := context.Background()
	r := NewAccountRepository()
	a, err := r.Create(ctx, newAccount("a@x.com", "3001234567", "3520212345671"))
	require.NoError(t, err)
	require.NoError(t, r.AddAddress(ctx, a.ID, model.Address{ID: uuid.New(), Label: "Home", Address: "1 Main St"}))

	require.NoError(t, r.Delete(ctx, a.ID))

	_, err = r.ListAddresses(ctx, a.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, a.ID), model.ErrNotFound)
}
