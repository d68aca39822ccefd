package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/api/http/handler"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// Authenticator resolves the account behind a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates the bearer token of a request and injects the account ID into its context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid session token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			handler.WriteError(w, m.logger, apiErrors.NewErrMissingAuthorizationToken())
			return
		}

		accountID, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			handler.WriteError(w, m.logger, err)
			return
		}
		if accountID == uuid.Nil {
			handler.WriteError(w, m.logger, apiErrors.NewErrMalformedAuthorizationToken())
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetAccountIDToContext(r.Context(), accountID)))
	})
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
