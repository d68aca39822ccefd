package handler

import (
	"net/http"
	"time"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message   string               `json:"message"`
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expiresAt"`
	User      model.AccountProfile `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Session serves login and password changes.
type Session struct {
	session        SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewSession(session SessionService, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{session: session, contextManager: contextManager, logger: logger}
}

func (h *Session) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	result, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.Account,
	})
}

func (h *Session) ChangePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.contextManager.GetAccountIDFromContext(r.Context())
	if !ok {
		WriteError(w, h.logger, apiErrors.NewErrMissingAuthorizationToken())
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.session.ChangePassword(r.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Message: "Password updated successfully"})
}
