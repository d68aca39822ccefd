// Package errors defines the error kinds returned to API callers and their
// mapping onto gRPC codes and HTTP statuses.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
)

// Kind classifies an APIError.
type Kind string

const (
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindAuth       Kind = "auth"
	KindState      Kind = "state"
	KindNotFound   Kind = "not_found"
	KindDelivery   Kind = "delivery"
	KindInternal   Kind = "internal"
)

// Error codes carried by APIError.Code.
const (
	CodeMissingFields        = "missing_fields"
	CodeInvalidField         = "invalid_field"
	CodeDuplicateEmail       = "duplicate_email"
	CodeDuplicateField       = "duplicate_field"
	CodeAlreadyRegistered    = "already_registered"
	CodeOTPNotRequested      = "otp_not_requested"
	CodeOTPExpired           = "otp_expired"
	CodeOTPMismatch          = "otp_mismatch"
	CodeEmailNotVerified     = "email_not_verified"
	CodeUnknownEmail         = "unknown_email"
	CodeWrongPassword        = "wrong_password"
	CodeWrongCurrentPassword = "wrong_current_password"
	CodeWeakPassword         = "weak_password"
	CodeTokenMissing         = "token_missing"
	CodeTokenMalformed       = "token_malformed"
	CodeTokenExpired         = "token_expired"
	CodeTokenSubjectUnknown  = "token_subject_unknown"
	CodeAccountNotFound      = "account_not_found"
	CodeAddressNotFound      = "address_not_found"
	CodeImageNotFound        = "image_not_found"
	CodeDeliveryFailed       = "delivery_failed"
	CodeInternal             = "internal"
)

// APIError is an error that is safe to return to a caller.
type APIError struct {
	Kind       Kind
	Code       string
	Message    string
	Field      string
	GRPCCode   codes.Code
	HTTPStatus int
}

func (e *APIError) Error() string {
	return e.Message
}

// Is matches another APIError with the same code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

func newError(kind Kind, code, field, message string) *APIError {
	grpcCode, httpStatus := kind.statuses()
	return &APIError{
		Kind:       kind,
		Code:       code,
		Message:    message,
		Field:      field,
		GRPCCode:   grpcCode,
		HTTPStatus: httpStatus,
	}
}

func (k Kind) statuses() (codes.Code, int) {
	switch k {
	case KindValidation:
		return codes.InvalidArgument, http.StatusBadRequest
	case KindConflict:
		return codes.AlreadyExists, http.StatusConflict
	case KindAuth:
		return codes.Unauthenticated, http.StatusUnauthorized
	case KindState:
		return codes.FailedPrecondition, http.StatusBadRequest
	case KindNotFound:
		return codes.NotFound, http.StatusNotFound
	case KindDelivery:
		return codes.Unavailable, http.StatusBadGateway
	default:
		return codes.Internal, http.StatusInternalServerError
	}
}

// As extracts an APIError from err.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// CodeOf returns the APIError code carried by err, or CodeInternal.
func CodeOf(err error) string {
	if apiErr, ok := As(err); ok {
		return apiErr.Code
	}
	return CodeInternal
}

// FromError converts any error into an APIError. Unknown errors become internal
// errors with a generic message so that no details leak to the caller.
func FromError(err error) *APIError {
	if apiErr, ok := As(err); ok {
		return apiErr
	}
	return NewErrInternalServerError(err)
}

func NewErrMissingFields(fields ...string) *APIError {
	msg := "missing required fields"
	if len(fields) > 0 {
		msg = fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", "))
	}
	return newError(KindValidation, CodeMissingFields, strings.Join(fields, ","), msg)
}

func NewErrInvalidField(field, message string) *APIError {
	return newError(KindValidation, CodeInvalidField, field, message)
}

func NewErrDuplicateEmail(email string) *APIError {
	return newError(KindConflict, CodeDuplicateEmail, "email", fmt.Sprintf("email %s is already registered", email))
}

func NewErrDuplicateField(field string) *APIError {
	return newError(KindConflict, CodeDuplicateField, field, fmt.Sprintf("%s is already registered", field))
}

func NewErrAlreadyRegistered(email string) *APIError {
	return newError(KindConflict, CodeAlreadyRegistered, "email", fmt.Sprintf("email %s is already registered", email))
}

func NewErrOTPNotRequested() *APIError {
	return newError(KindState, CodeOTPNotRequested, "otp", "verification code was not requested")
}

func NewErrOTPExpired() *APIError {
	return newError(KindState, CodeOTPExpired, "otp", "verification code expired")
}

func NewErrOTPMismatch() *APIError {
	return newError(KindState, CodeOTPMismatch, "otp", "invalid verification code")
}

func NewErrEmailNotVerified() *APIError {
	return newError(KindState, CodeEmailNotVerified, "email", "please verify your email before registering")
}

func NewErrUnknownEmail(email string) *APIError {
	return newError(KindAuth, CodeUnknownEmail, "email", fmt.Sprintf("no account found with email %s", email))
}

func NewErrWrongPassword() *APIError {
	return newError(KindAuth, CodeWrongPassword, "password", "incorrect password")
}

func NewErrWrongCurrentPassword() *APIError {
	return newError(KindAuth, CodeWrongCurrentPassword, "currentPassword", "current password is incorrect")
}

func NewErrWeakPassword(minLength int) *APIError {
	return newError(KindValidation, CodeWeakPassword, "newPassword", fmt.Sprintf("new password must be at least %d characters", minLength))
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(KindAuth, CodeTokenMissing, "", "no token provided")
}

func NewErrMalformedAuthorizationToken() *APIError {
	e := newError(KindAuth, CodeTokenMalformed, "", "token is not valid")
	e.HTTPStatus = http.StatusForbidden
	return e
}

func NewErrExpiredAuthorizationToken() *APIError {
	e := newError(KindAuth, CodeTokenExpired, "", "token has expired")
	e.HTTPStatus = http.StatusForbidden
	return e
}

// NewErrUnknownTokenSubject rejects a valid token whose account no longer exists.
func NewErrUnknownTokenSubject() *APIError {
	return newError(KindAuth, CodeTokenSubjectUnknown, "", "token account no longer exists")
}

func NewErrAccountNotFound() *APIError {
	return newError(KindNotFound, CodeAccountNotFound, "", "account not found")
}

func NewErrAddressNotFound(addressID string) *APIError {
	return newError(KindNotFound, CodeAddressNotFound, "addressId", fmt.Sprintf("address %s not found", addressID))
}

func NewErrImageNotFound() *APIError {
	return newError(KindNotFound, CodeImageNotFound, "cnicImage", "national id image not found")
}

func NewErrDeliveryFailed() *APIError {
	return newError(KindDelivery, CodeDeliveryFailed, "email", "failed to send verification code")
}

func NewErrInternalServerError(_ error) *APIError {
	return newError(KindInternal, CodeInternal, "", "internal server error")
}
