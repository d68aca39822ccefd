package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ model.AddressStore = (*AddressRepository)(nil)

// AddressRepository stores addresses in insertion order per account.
type AddressRepository struct {
	db *Connection
}

func NewAddressRepository(db *Connection) *AddressRepository {
	return &AddressRepository{
		db: db,
	}
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listAddresses(ctx context.Context, q querier, accountID uuid.UUID) ([]model.Address, error) {
	rows, err := q.Query(ctx, `SELECT id, label, address FROM addresses WHERE account_id = $1 ORDER BY seq`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	addresses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Address, error) {
		var a model.Address
		err := row.Scan(&a.ID, &a.Label, &a.Address)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan addresses: %w", err)
	}

	return addresses, nil
}

func accountExists(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !exists {
		return model.ErrNotFound
	}
	return nil
}

func (r *AddressRepository) ListAddresses(ctx context.Context, accountID uuid.UUID) ([]model.Address, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := accountExists(ctx, tx, accountID); err != nil {
		return nil, err
	}

	addresses, err := listAddresses(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return addresses, nil
}

func (r *AddressRepository) AddAddress(ctx context.Context, accountID uuid.UUID, address model.Address) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO addresses (id, account_id, label, address) VALUES ($1, $2, $3, $4)`,
		address.ID, accountID, address.Label, address.Address)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to add address: %w", err)
	}
	return nil
}

func (r *AddressRepository) UpdateAddress(ctx context.Context, accountID uuid.UUID, address model.Address) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE addresses SET label = $3, address = $4 WHERE account_id = $1 AND id = $2`,
		accountID, address.ID, address.Label, address.Address)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteAddress removes the address if the account owns it and is silent otherwise.
func (r *AddressRepository) DeleteAddress(ctx context.Context, accountID, addressID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE account_id = $1 AND id = $2`, accountID, addressID)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}
