package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/airgo-accounts/internal/api/http/handler"
	"github.com/dtroode/airgo-accounts/internal/api/http/middleware"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/model"
)

// SessionService logs accounts in and authenticates their tokens.
type SessionService interface {
	handler.SessionService
	middleware.Authenticator
}

// Router represents the HTTP router for account operations.
type Router struct {
	registration   handler.RegistrationService
	session        SessionService
	accounts       handler.AccountService
	addresses      handler.AddressService
	inbox          handler.CodeInbox
	requestTimeout time.Duration
	contextManager model.ContextManager
	logger         *logger.Logger
}

// Option configures optional routes.
type Option func(*Router)

// WithDevInbox mounts GET /api/auth/dev/otp backed by inbox.
func WithDevInbox(inbox handler.CodeInbox) Option {
	return func(r *Router) {
		r.inbox = inbox
	}
}

// WithRequestTimeout cancels request contexts after d.
func WithRequestTimeout(d time.Duration) Option {
	return func(r *Router) {
		r.requestTimeout = d
	}
}

// New creates new HTTP Router instance.
func New(
	registration handler.RegistrationService,
	session SessionService,
	accounts handler.AccountService,
	addresses handler.AddressService,
	contextManager model.ContextManager,
	logger *logger.Logger,
	opts ...Option,
) *Router {
	r := &Router{
		registration:   registration,
		session:        session,
		accounts:       accounts,
		addresses:      addresses,
		contextManager: contextManager,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register builds the handler tree with request IDs, logging, panic recovery and tracing.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.session, r.contextManager, r.logger)

	registration := handler.NewRegistration(r.registration, r.logger)
	session := handler.NewSession(r.session, r.contextManager, r.logger)
	account := handler.NewAccount(r.accounts, r.addresses, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(chiMiddleware.RequestID)
	mux.Use(chiMiddleware.RealIP)
	mux.Use(logging.Handle)
	mux.Use(chiMiddleware.Recoverer)
	if r.requestTimeout > 0 {
		mux.Use(chiMiddleware.Timeout(r.requestTimeout))
	}

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Route("/api/auth", func(api chi.Router) {
		api.Post("/check-unique", registration.CheckUnique)
		api.Post("/send-otp", registration.SendCode)
		api.Post("/verify-otp", registration.VerifyCode)
		api.Post("/register", registration.Register)
		api.Post("/login", session.Login)

		if r.inbox != nil {
			api.Get("/dev/otp", handler.DevCode(r.inbox, r.logger))
		}

		api.Group(func(private chi.Router) {
			private.Use(authenticate.Handle)

			private.Post("/change-password", session.ChangePassword)
			private.Get("/profile", account.Profile)
			private.Delete("/profile", account.Delete)
			private.Get("/profile/cnic-image", account.NationalIDImage)
			private.Get("/addresses", account.ListAddresses)
			private.Post("/addresses", account.AddAddress)
			private.Put("/addresses/{"+handler.AddressIDParam+"}", account.UpdateAddress)
			private.Delete("/addresses/{"+handler.AddressIDParam+"}", account.DeleteAddress)
		})
	})

	return otelhttp.NewHandler(mux, "accounts-http",
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + req.URL.Path
		}),
	)
}
