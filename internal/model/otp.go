package model

import (
	"context"
	"time"
)

const (
	// OTPLength is the number of digits in a verification code.
	OTPLength = 6
	// OTPDuration is how long an issued verification code stays valid.
	OTPDuration = 60 * time.Second
)

// OTPStore keeps at most one verification record per email.
type OTPStore interface {
	Get(ctx context.Context, email string) (OTPRecord, bool)
	Put(ctx context.Context, email string, record OTPRecord)
	Delete(ctx context.Context, email string)
}

// OTPRecord is an issued email verification code.
type OTPRecord struct {
	Code      string
	ExpiresAt time.Time
	Verified  bool
}

// Expired reports whether the record is past its expiry at now.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
