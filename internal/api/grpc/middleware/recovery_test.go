package middleware

import (
	"bytes"
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/airgo-accounts/internal/logger"
)

func TestRecoveryHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	interceptor := recovery.UnaryServerInterceptor(
		recovery.WithRecoveryHandlerContext(RecoveryHandler(logger.NewWithWriter(&buf, 0, "text"))),
	)

	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("kaboom")
	})

	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, buf.String(), "kaboom")
}
