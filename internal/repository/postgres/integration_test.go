//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/airgo-accounts/internal/model"
	repo "github.com/dtroode/airgo-accounts/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "airgo_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/airgo_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newAccount(email, phone, nationalID string) model.Account {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return model.Account{
		ID:           uuid.New(),
		FullName:     "Test User",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		NationalID:   nationalID,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	accounts := repo.NewAccountRepository(conn)
	addresses := repo.NewAddressRepository(conn)

	owner := newAccount("owner@example.com", "3001111111", "1111111111111")

	t.Run("account_repository", func(t *testing.T) {
		saved, err := accounts.Create(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, saved.ID)
		assert.Zero(t, saved.TokenEpoch)

		byEmail, err := accounts.GetByEmail(ctx, owner.Email)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, byEmail.ID)
		assert.Empty(t, byEmail.Addresses)

		exists, err := accounts.ExistsBy(ctx, model.FieldNationalID, owner.NationalID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = accounts.ExistsBy(ctx, model.FieldPhone, "3009999999")
		require.NoError(t, err)
		assert.False(t, exists)

		updated, err := accounts.UpdatePassword(ctx, owner.ID, "$2a$10$other")
		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.TokenEpoch)
		assert.Equal(t, "$2a$10$other", updated.PasswordHash)

		_, err = accounts.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("unique_constraints", func(t *testing.T) {
		cases := []struct {
			account model.Account
			field   model.IdentityField
		}{
			{newAccount(owner.Email, "3002222222", "2222222222222"), model.FieldEmail},
			{newAccount("p@example.com", owner.Phone, "3333333333333"), model.FieldPhone},
			{newAccount("n@example.com", "3004444444", owner.NationalID), model.FieldNationalID},
		}
		for _, c := range cases {
			_, err := accounts.Create(ctx, c.account)
			var constraintErr *model.ConstraintError
			require.True(t, errors.As(err, &constraintErr), "field %s", c.field)
			assert.Equal(t, c.field, constraintErr.Field)
		}
	})

	t.Run("address_repository", func(t *testing.T) {
		home := model.Address{ID: uuid.New(), Label: "Home", Address: "Street 1"}
		office := model.Address{ID: uuid.New(), Label: "Office", Address: "Plaza 2"}
		require.NoError(t, addresses.AddAddress(ctx, owner.ID, home))
		require.NoError(t, addresses.AddAddress(ctx, owner.ID, office))

		list, err := addresses.ListAddresses(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, home.ID, list[0].ID)
		assert.Equal(t, office.ID, list[1].ID)

		home.Label = "Parents"
		require.NoError(t, addresses.UpdateAddress(ctx, owner.ID, home))

		other := uuid.New()
		assert.ErrorIs(t, addresses.UpdateAddress(ctx, other, home), model.ErrNotFound)
		assert.NoError(t, addresses.DeleteAddress(ctx, other, home.ID))

		account, err := accounts.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, account.Addresses, 2)
		assert.Equal(t, "Parents", account.Addresses[0].Label)

		require.NoError(t, addresses.DeleteAddress(ctx, owner.ID, office.ID))
		list, err = addresses.ListAddresses(ctx, owner.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		assert.ErrorIs(t, addresses.AddAddress(ctx, other, office), model.ErrNotFound)
		_, err = addresses.ListAddresses(ctx, other)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("delete_cascades", func(t *testing.T) {
		require.NoError(t, accounts.Delete(ctx, owner.ID))
		assert.ErrorIs(t, accounts.Delete(ctx, owner.ID), model.ErrNotFound)

		var count int
		require.NoError(t, conn.QueryRow(ctx, `SELECT count(*) FROM addresses WHERE account_id = $1`, owner.ID).Scan(&count))
		assert.Zero(t, count)
	})
}
