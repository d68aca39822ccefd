package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
	"github.com/dtroode/airgo-accounts/internal/testutil"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   errorResponse
	}{
		{
			name:       "field error",
			err:        apiErrors.NewErrOTPMismatch(),
			wantStatus: http.StatusBadRequest,
			wantBody:   errorResponse{Message: "invalid verification code", Code: "otp_mismatch", Errors: map[string]string{"otp": "invalid verification code"}},
		},
		{
			name:       "no field",
			err:        apiErrors.NewErrAccountNotFound(),
			wantStatus: http.StatusNotFound,
			wantBody:   errorResponse{Message: "account not found", Code: "account_not_found"},
		},
		{
			name:       "internal hidden",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   errorResponse{Message: "internal server error", Code: "internal"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var v struct {
		Email string `json:"email"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com"}`))
	require.NoError(t, decodeJSON(req, &v))
	assert.Equal(t, "a@x.com", v.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.NoError(t, decodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com","admin":true}`))
	assert.Equal(t, apiErrors.CodeInvalidField, apiErrors.CodeOf(decodeJSON(req, &v)))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	assert.Equal(t, apiErrors.CodeInvalidField, apiErrors.CodeOf(decodeJSON(req, &v)))
}
