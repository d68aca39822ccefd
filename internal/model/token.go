package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionDuration is the lifetime of an issued session token.
const SessionDuration = 7 * 24 * time.Hour

// TokenManager generates and validates session tokens.
type TokenManager interface {
	Generate(subject uuid.UUID, epoch int64) (token string, expiresAt time.Time, err error)
	Parse(token string) (SessionClaims, error)
}

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	Subject   uuid.UUID
	Epoch     int64
	ExpiresAt time.Time
}
