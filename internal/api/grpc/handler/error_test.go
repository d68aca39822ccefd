package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{"validation", apiErrors.NewErrMissingFields("email"), codes.InvalidArgument, "missing required fields: email"},
		{"wrapped conflict", fmt.Errorf("register: %w", apiErrors.NewErrDuplicateField("phone")), codes.AlreadyExists, "phone is already registered"},
		{"not found", apiErrors.NewErrAccountNotFound(), codes.NotFound, "account not found"},
		{"plain error", errors.New("pq: connection refused"), codes.Internal, "internal server error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st, ok := status.FromError(handleError(tt.err))
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
