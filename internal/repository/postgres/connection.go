// Package postgres implements the account and address stores on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/airgo-accounts/database"
	"github.com/dtroode/airgo-accounts/internal/model"
)

type Connection struct {
	*pgxpool.Pool
}

// NewConnection opens a pool to dsn and brings the schema up to date.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := database.Migrate(ctx, dsn); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		Pool: pool,
	}, nil
}

func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return fmt.Errorf("connection pool is nil")
	}
	return c.Pool.Ping(ctx)
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

var constraintFields = map[string]model.IdentityField{
	"accounts_email_key":       model.FieldEmail,
	"accounts_phone_key":       model.FieldPhone,
	"accounts_national_id_key": model.FieldNationalID,
}

// asConstraintError converts a unique violation on an identity column into *model.ConstraintError.
func asConstraintError(err error) (*model.ConstraintError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil, false
	}
	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		return nil, false
	}
	return &model.ConstraintError{Field: field, Err: err}, true
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
