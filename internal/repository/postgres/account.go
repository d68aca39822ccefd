package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

const accountColumns = `id, full_name, guardian_name, email, password_hash, national_id, national_id_image,
	phone_country_code, phone, country, city, date_of_birth, education_level, token_epoch, created_at, updated_at`

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.FullName, &a.GuardianName, &a.Email, &a.PasswordHash, &a.NationalID, &a.NationalIDImage,
		&a.PhoneCountryCode, &a.Phone, &a.Country, &a.City, &a.DateOfBirth, &a.EducationLevel, &a.TokenEpoch,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, full_name, guardian_name, email, password_hash, national_id, national_id_image,
				phone_country_code, phone, country, city, date_of_birth, education_level, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.FullName, account.GuardianName, account.Email, account.PasswordHash,
		account.NationalID, account.NationalIDImage, account.PhoneCountryCode, account.Phone,
		account.Country, account.City, account.DateOfBirth, account.EducationLevel,
		account.CreatedAt, account.UpdatedAt,
	))
	if err != nil {
		if constraintErr, ok := asConstraintError(err); ok {
			return model.Account{}, constraintErr
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	saved.Addresses = []model.Address{}
	return saved, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.get(ctx, query, id)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.get(ctx, query, email)
}

func (r *AccountRepository) get(ctx context.Context, query string, arg any) (model.Account, error) {
	account, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}

	account.Addresses, err = listAddresses(ctx, r.db, account.ID)
	if err != nil {
		return model.Account{}, err
	}

	return account, nil
}

var identityColumns = map[model.IdentityField]string{
	model.FieldEmail:      "email",
	model.FieldPhone:      "phone",
	model.FieldNationalID: "national_id",
}

func (r *AccountRepository) ExistsBy(ctx context.Context, field model.IdentityField, value string) (bool, error) {
	column, ok := identityColumns[field]
	if !ok {
		return false, fmt.Errorf("unknown identity field %q", field)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE ` + column + ` = $1)`
	if err := r.db.QueryRow(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", field, err)
	}

	return exists, nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (model.Account, error) {
	query := `UPDATE accounts
			  SET password_hash = $2, token_epoch = token_epoch + 1, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, id, passwordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to update password: %w", err)
	}

	return account, nil
}

// Delete removes the account. Its addresses are removed by the foreign key cascade.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
