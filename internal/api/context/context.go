// Package context carries the authenticated account id through request contexts.
// Both transports store it here after the session gate has accepted the bearer token.
package context

import (
	"context"

	"github.com/google/uuid"
)

type accountIDKey struct{}

// Manager sets and reads the authenticated account id.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAccountIDToContext returns a copy of ctx carrying accountID.
func (m *Manager) SetAccountIDToContext(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey{}, accountID)
}

// GetAccountIDFromContext returns the account id placed by SetAccountIDToContext.
// The zero id is reported as absent.
func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
