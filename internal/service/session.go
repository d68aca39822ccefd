package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   model.AccountProfile
}

// Session issues and verifies bearer tokens and manages password credentials.
type Session struct {
	accounts     model.AccountStore
	hasher       PasswordHasher
	tokens       model.TokenManager
	enforceEpoch bool
	logger       *logger.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithRevokeOnPasswordChange makes the gate reject tokens issued before the
// account's most recent password change.
func WithRevokeOnPasswordChange(enabled bool) SessionOption {
	return func(s *Session) {
		s.enforceEpoch = enabled
	}
}

func NewSession(
	accounts model.AccountStore,
	hasher PasswordHasher,
	tokens model.TokenManager,
	logger *logger.Logger,
	opts ...SessionOption,
) *Session {
	s := &Session{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a token for account.
func (s *Session) Issue(account model.Account) (string, time.Time, error) {
	token, expiresAt, err := s.tokens.Generate(account.ID, account.TokenEpoch)
	if err != nil {
		s.logger.Error("Session service: failed to generate token",
			"account_id", account.ID,
			"error", err.Error())
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify checks the token signature and expiry and returns its subject.
func (s *Session) Verify(token string) (uuid.UUID, error) {
	claims, err := s.verify(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.Subject, nil
}

func (s *Session) verify(token string) (model.SessionClaims, error) {
	if strings.TrimSpace(token) == "" {
		return model.SessionClaims{}, apiErrors.NewErrMissingAuthorizationToken()
	}

	claims, err := s.tokens.Parse(token)
	switch {
	case errors.Is(err, model.ErrTokenExpired):
		return model.SessionClaims{}, apiErrors.NewErrExpiredAuthorizationToken()
	case err != nil:
		return model.SessionClaims{}, apiErrors.NewErrMalformedAuthorizationToken()
	}

	return claims, nil
}

// Authenticate resolves token to the id of an existing account. It is the gate in front
// of every owner-scoped operation.
func (s *Session) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.verify(token)
	if err != nil {
		return uuid.Nil, err
	}

	account, err := s.accounts.GetByID(ctx, claims.Subject)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Session service: token subject no longer exists",
			"account_id", claims.Subject)
		return uuid.Nil, apiErrors.NewErrUnknownTokenSubject()
	}
	if err != nil {
		s.logger.Error("Session service: failed to get account",
			"account_id", claims.Subject,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to get account: %w", err)
	}

	if s.enforceEpoch && claims.Epoch != account.TokenEpoch {
		s.logger.Info("Session service: token predates password change",
			"account_id", account.ID)
		return uuid.Nil, apiErrors.NewErrExpiredAuthorizationToken()
	}

	return account.ID, nil
}

// Login checks the password for email and issues a session token.
func (s *Session) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return LoginResult{}, apiErrors.NewErrMissingFields(missing...)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Info("Session service: login for unknown email",
			"email", email)
		return LoginResult{}, apiErrors.NewErrUnknownEmail(email)
	}
	if err != nil {
		s.logger.Error("Session service: failed to get account by email",
			"email", email,
			"error", err.Error())
		return LoginResult{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.Info("Session service: wrong password",
			"account_id", account.ID)
		return LoginResult{}, apiErrors.NewErrWrongPassword()
	}

	token, expiresAt, err := s.Issue(account)
	if err != nil {
		return LoginResult{}, err
	}

	s.logger.Info("Session service: login successful",
		"account_id", account.ID)

	return LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account.Profile(),
	}, nil
}

// ChangePassword replaces the password of accountID after checking the current one.
func (s *Session) ChangePassword(ctx context.Context, accountID uuid.UUID, current, next string) error {
	var missing []string
	if current == "" {
		missing = append(missing, "currentPassword")
	}
	if next == "" {
		missing = append(missing, "newPassword")
	}
	if len(missing) > 0 {
		return apiErrors.NewErrMissingFields(missing...)
	}

	if utf8.RuneCountInString(next) < MinPasswordLength {
		return apiErrors.NewErrWeakPassword(MinPasswordLength)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return apiErrors.NewErrAccountNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	if !s.hasher.Verify(current, account.PasswordHash) {
		s.logger.Info("Session service: wrong current password",
			"account_id", accountID)
		return apiErrors.NewErrWrongCurrentPassword()
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apiErrors.NewErrInvalidField("newPassword", "password cannot be used")
	}

	if _, err := s.accounts.UpdatePassword(ctx, accountID, hash); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apiErrors.NewErrAccountNotFound()
		}
		s.logger.Error("Session service: failed to update password",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Session service: password changed",
		"account_id", accountID)

	return nil
}
