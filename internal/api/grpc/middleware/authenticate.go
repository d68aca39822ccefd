package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/status"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// Authenticator resolves the account behind a session token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the account ID into context.
type Authenticate struct {
	authenticator  Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authenticator: authenticator, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the bearer token from the authorization metadata, validates it
// and returns a context carrying the account ID.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, "bearer")
	if err != nil || token == "" {
		return nil, toStatus(apiErrors.NewErrMissingAuthorizationToken())
	}

	accountID, err := m.authenticator.Authenticate(ctx, token)
	if err != nil {
		apiErr := apiErrors.FromError(err)
		if apiErr.Kind == apiErrors.KindInternal {
			m.logger.Error("Authenticate middleware: failed to authenticate",
				"error", err.Error())
		}
		return nil, toStatus(apiErr)
	}

	if accountID == uuid.Nil {
		return nil, toStatus(apiErrors.NewErrMalformedAuthorizationToken())
	}

	return m.contextManager.SetAccountIDToContext(ctx, accountID), nil
}

func toStatus(apiErr *apiErrors.APIError) error {
	return status.Error(apiErr.GRPCCode, apiErr.Message)
}
