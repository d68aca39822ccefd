package handler

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apiErrors "github.com/dtroode/airgo-accounts/internal/api/errors"
)

// handleError converts a service error into a gRPC status. Errors that are not
// API errors are reported as internal without details.
func handleError(err error) error {
	if apiErr, ok := apiErrors.As(err); ok {
		return status.Error(apiErr.GRPCCode, apiErr.Message)
	}
	return status.Error(codes.Internal, "internal server error")
}
