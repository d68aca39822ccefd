package handler

import (
	"bufio"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// AddressIDParam is the route parameter naming an address.
const AddressIDParam = "addressID"

type deleteAccountRequest struct {
	Password string `json:"password"`
}

type addAddressRequest struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

type updateAddressRequest struct {
	Label   *string `json:"label"`
	Address *string `json:"address"`
}

// Account serves the owner-scoped endpoints behind the auth middleware.
type Account struct {
	accounts       AccountService
	addresses      AddressService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAccount(accounts AccountService, addresses AddressService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		accounts:       accounts,
		addresses:      addresses,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Account) accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := h.contextManager.GetAccountIDFromContext(r.Context())
	if !ok {
		WriteError(w, h.logger, apiErrors.NewErrMissingAuthorizationToken())
	}
	return id, ok
}

func (h *Account) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	profile, err := h.accounts.Profile(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

func (h *Account) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req deleteAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.accounts.Delete(r.Context(), id, req.Password); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, messageResponse{Message: "Account deleted successfully"})
}

func (h *Account) NationalIDImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	rc, err := h.accounts.NationalIDImage(r.Context(), id)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		WriteError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, br); err != nil {
		h.logger.Warn("Account handler: image stream interrupted",
			"account_id", id,
			"error", err.Error())
	}
}

func (h *Account) ListAddresses(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	addresses, err := h.addresses.List(r.Context(), id)
	h.writeAddresses(w, http.StatusOK, addresses, err)
}

func (h *Account) AddAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req addAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	addresses, err := h.addresses.Add(r.Context(), id, req.Label, req.Address)
	h.writeAddresses(w, http.StatusCreated, addresses, err)
}

func (h *Account) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req updateAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	addresses, err := h.addresses.Update(r.Context(), id, chi.URLParam(r, AddressIDParam), model.AddressPatch{
		Label:   req.Label,
		Address: req.Address,
	})
	h.writeAddresses(w, http.StatusOK, addresses, err)
}

func (h *Account) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}
	addresses, err := h.addresses.Remove(r.Context(), id, chi.URLParam(r, AddressIDParam))
	h.writeAddresses(w, http.StatusOK, addresses, err)
}

func (h *Account) writeAddresses(w http.ResponseWriter, status int, addresses []model.Address, err error) {
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if addresses == nil {
		addresses = []model.Address{}
	}
	WriteJSON(w, status, addresses)
}
