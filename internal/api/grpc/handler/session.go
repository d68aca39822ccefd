package handler

import (
	"context"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/api/grpc/rpc"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

var _ rpc.SessionServer = (*Session)(nil)

// Session handles login and password changes.
type Session struct {
	session        SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewSession(session SessionService, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{
		session:        session,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Session) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	result, err := h.session.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, handleError(err)
	}

	h.logger.Debug("Session handler: login completed",
		"account_id", result.Account.ID)

	return &rpc.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      toRPCProfile(result.Account),
	}, nil
}

func (h *Session) ChangePassword(ctx context.Context, req *rpc.ChangePasswordRequest) (*rpc.Empty, error) {
	accountID, ok := h.contextManager.GetAccountIDFromContext(ctx)
	if !ok {
		return nil, handleError(apiErrors.NewErrMissingAuthorizationToken())
	}

	if err := h.session.ChangePassword(ctx, accountID, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, handleError(err)
	}
	return &rpc.Empty{}, nil
}
