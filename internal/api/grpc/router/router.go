package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/airgo-accounts/internal/api/grpc/handler"
	"github.com/dtroode/airgo-accounts/internal/api/grpc/middleware"
	"github.com/dtroode/airgo-accounts/internal/api/grpc/rpc"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// maxRecvMsgSize leaves room for a national ID image inside a Register call.
const maxRecvMsgSize = 8 << 20

// SessionService logs accounts in and authenticates their tokens.
type SessionService interface {
	handler.SessionService
	middleware.Authenticator
}

// Router represents a gRPC router for account operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	registration   handler.RegistrationService
	session        SessionService
	accounts       handler.AccountService
	addresses      handler.AddressService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	registration handler.RegistrationService,
	session SessionService,
	accounts handler.AccountService,
	addresses handler.AddressService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		registration:   registration,
		session:        session,
		accounts:       accounts,
		addresses:      addresses,
		contextManager: contextManager,
		logger:         logger,
	}
}

// requiresAuth reports whether the call must carry a session token.
// Registration and login are the only public methods.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	method := c.FullMethod()
	switch {
	case strings.HasPrefix(method, "/"+rpc.RegistrationServiceName+"/"):
		return false
	case method == rpc.SessionLogin:
		return false
	case strings.HasPrefix(method, "/"+healthpb.Health_ServiceDesc.ServiceName+"/"):
		return false
	default:
		return true
	}
}

// Register registers all gRPC services and middleware.
// It sets up the gRPC server with panic recovery, request logging, tracing and
// authentication interceptors.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.session, r.contextManager, r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(middleware.RecoveryHandler(r.logger))

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.MaxRecvMsgSize(maxRecvMsgSize),
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	r.registerRegistrationRoutes(s)
	r.registerSessionRoutes(s)
	r.registerAccountRoutes(s)
	healthpb.RegisterHealthServer(s, health.NewServer())

	return s
}

func (r *Router) registerRegistrationRoutes(server *grpc.Server) {
	rpc.RegisterRegistrationServer(server, handler.NewRegistration(r.registration, r.logger))
}

func (r *Router) registerSessionRoutes(server *grpc.Server) {
	rpc.RegisterSessionServer(server, handler.NewSession(r.session, r.contextManager, r.logger))
}

func (r *Router) registerAccountRoutes(server *grpc.Server) {
	rpc.RegisterAccountServer(server, handler.NewAccount(r.accounts, r.addresses, r.contextManager, r.logger))
}
