package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// EmailChecker reports whether an email already belongs to an account.
type EmailChecker interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// OTPLedger issues and checks single-use email verification codes.
// Every read-modify-write on a record runs under that email's lock.
type OTPLedger struct {
	store    model.OTPStore
	emails   EmailChecker
	locks    *keyLocker
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
	logger   *logger.Logger
}

// NewOTPLedger creates a ledger over store. A non-positive ttl falls back to model.OTPDuration.
func NewOTPLedger(store model.OTPStore, emails EmailChecker, ttl time.Duration, logger *logger.Logger) *OTPLedger {
	if ttl <= 0 {
		ttl = model.OTPDuration
	}
	return &OTPLedger{
		store:    store,
		emails:   emails,
		locks:    newKeyLocker(),
		ttl:      ttl,
		now:      time.Now,
		generate: generateCode,
		logger:   logger,
	}
}

// Issue creates a fresh code for email, replacing any previous record and restarting the window.
func (l *OTPLedger) Issue(ctx context.Context, email string) (string, error) {
	taken, err := l.emails.EmailTaken(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		l.logger.Info("OTP ledger: email already registered", "email", email)
		return "", apiErrors.NewErrAlreadyRegistered(email)
	}

	code, err := l.generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	unlock := l.locks.Lock(email)
	defer unlock()

	expiresAt := l.now().Add(l.ttl)
	l.store.Put(ctx, email, model.OTPRecord{
		Code:      code,
		ExpiresAt: expiresAt,
	})

	l.logger.Debug("OTP ledger: code issued", "email", email, "expires_at", expiresAt)

	return code, nil
}

// Check marks the record verified when code matches. A mismatch keeps the record so the
// caller may retry until expiry; an expired record is purged.
func (l *OTPLedger) Check(ctx context.Context, email, code string) error {
	unlock := l.locks.Lock(email)
	defer unlock()

	record, ok := l.store.Get(ctx, email)
	if !ok {
		return apiErrors.NewErrOTPNotRequested()
	}

	if record.Expired(l.now()) {
		l.store.Delete(ctx, email)
		l.logger.Debug("OTP ledger: expired code purged", "email", email)
		return apiErrors.NewErrOTPExpired()
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return apiErrors.NewErrOTPMismatch()
	}

	record.Verified = true
	l.store.Put(ctx, email, record)

	return nil
}

// ConsumeOnRegister removes and returns the record when it is verified and not expired.
// Otherwise the record is left untouched and ok is false.
func (l *OTPLedger) ConsumeOnRegister(ctx context.Context, email string) (model.OTPRecord, bool) {
	unlock := l.locks.Lock(email)
	defer unlock()

	record, ok := l.store.Get(ctx, email)
	if !ok || !record.Verified || record.Expired(l.now()) {
		return model.OTPRecord{}, false
	}

	l.store.Delete(ctx, email)

	return record, true
}

// Restore puts back a record taken by ConsumeOnRegister. It does nothing when a newer
// record was issued meanwhile or the record has expired.
func (l *OTPLedger) Restore(ctx context.Context, email string, record model.OTPRecord) bool {
	unlock := l.locks.Lock(email)
	defer unlock()

	if _, ok := l.store.Get(ctx, email); ok {
		return false
	}
	if record.Expired(l.now()) {
		return false
	}

	l.store.Put(ctx, email, record)

	return true
}

var otpSpace = big.NewInt(1_000_000)

// generateCode returns a uniformly random, zero-padded numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", model.OTPLength, n.Int64()), nil
}
