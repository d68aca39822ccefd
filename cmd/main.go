package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	apiContext "github.com/dtroode/airgo-accounts/internal/api/context"
	grpcRouter "github.com/dtroode/airgo-accounts/internal/api/grpc/router"
	grpcServer "github.com/dtroode/airgo-accounts/internal/api/grpc/server"
	httpRouter "github.com/dtroode/airgo-accounts/internal/api/http/router"
	httpServer "github.com/dtroode/airgo-accounts/internal/api/http/server"
	"github.com/dtroode/airgo-accounts/internal/config"
	"github.com/dtroode/airgo-accounts/internal/logger"
	"github.com/dtroode/airgo-accounts/internal/mail"
	"github.com/dtroode/airgo-accounts/internal/model"
	"github.com/dtroode/airgo-accounts/internal/password"
	"github.com/dtroode/airgo-accounts/internal/repository/memory"
	"github.com/dtroode/airgo-accounts/internal/repository/postgres"
	"github.com/dtroode/airgo-accounts/internal/server"
	"github.com/dtroode/airgo-accounts/internal/service"
	storage "github.com/dtroode/airgo-accounts/internal/storage/minio"
	"github.com/dtroode/airgo-accounts/internal/telemetry"
	"github.com/dtroode/airgo-accounts/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	accounts  model.AccountStore
	addresses model.AddressStore
	close     func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	providers, err := telemetry.NewProviders(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName, buildVersion)
	if err != nil {
		logger.Fatal("failed to initialize telemetry", "error", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to flush telemetry", "error", err)
		}
	}()

	st, err := newStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Database.Driver)
	}
	defer st.close()

	mailer, outbox, err := newMailer(cfg)
	if err != nil {
		logger.Fatal("failed to initialize mailer", "error", err)
	}

	images, err := newImageStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize object storage", "error", err)
	}
	if images == nil {
		logger.Warn("object storage disabled, national id images will be rejected")
	}

	otps := memory.NewOTPStore()
	go otps.Run(ctx, cfg.OTP.SweepInterval)

	hasher := password.NewHasher(cfg.Bcrypt.Cost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	uniqueness := service.NewUniqueness(st.accounts, logger)
	ledger := service.NewOTPLedger(otps, uniqueness, cfg.OTP.TTL, logger)
	registration := service.NewRegistration(st.accounts, ledger, uniqueness, hasher, mailer, images, logger)
	session := service.NewSession(st.accounts, hasher, tokenManager, logger,
		service.WithRevokeOnPasswordChange(cfg.JWT.RevokeOnPasswordChange))
	accounts := service.NewAccounts(st.accounts, images, hasher, logger)
	addresses := service.NewAddresses(st.addresses, logger)
	ctxMgr := apiContext.NewManager()

	var servers []model.Server
	if cfg.GRPC.Enabled {
		r := grpcRouter.New(registration, session, accounts, addresses, ctxMgr, logger)
		servers = append(servers, grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}
	if cfg.HTTP.Enabled {
		opts := []httpRouter.Option{httpRouter.WithRequestTimeout(cfg.HTTP.RequestTimeout)}
		if outbox != nil {
			logger.Warn("development outbox enabled, codes are served at /api/auth/dev/otp")
			opts = append(opts, httpRouter.WithDevInbox(outbox))
		}
		r := httpRouter.New(registration, session, accounts, addresses, ctxMgr, logger, opts...)
		servers = append(servers, httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), httpServer.Timeouts{
			ReadHeader: cfg.HTTP.ReadHeaderTimeout,
			Read:       cfg.HTTP.ReadTimeout,
			Write:      cfg.HTTP.WriteTimeout,
			Idle:       cfg.HTTP.IdleTimeout,
		}))
	}

	securityLayers := map[model.Server]model.SecurityLayer{}
	for _, s := range servers {
		securityLayers[s] = securityLayer(cfg, s)
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(securityLayers[s]); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func newStores(ctx context.Context, cfg config.Database) (stores, error) {
	if cfg.Driver == "memory" {
		repo := memory.NewAccountRepository()
		return stores{accounts: repo, addresses: repo, close: func() error { return nil }}, nil
	}

	db, err := postgres.NewConnection(ctx, cfg.DSN)
	if err != nil {
		return stores{}, err
	}
	return stores{
		accounts:  postgres.NewAccountRepository(db),
		addresses: postgres.NewAddressRepository(db),
		close:     db.Close,
	}, nil
}

// newMailer returns the outbox as well when codes stay in memory.
func newMailer(cfg *config.Config) (model.Mailer, *mail.Outbox, error) {
	if cfg.OTP.DevOutbox {
		outbox := mail.NewOutbox(cfg.OTP.TTL)
		return outbox, outbox, nil
	}

	smtp, err := mail.NewSMTP(mail.Options{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		CodeTTL:  cfg.OTP.TTL,
	})
	if err != nil {
		return nil, nil, err
	}
	return smtp, nil, nil
}

// newImageStore returns a nil interface when object storage is disabled.
func newImageStore(ctx context.Context, cfg config.Storage) (model.Storage, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	images, err := storage.Connect(ctx, storage.Options{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func securityLayer(cfg *config.Config, s model.Server) model.SecurityLayer {
	enableTLS := cfg.GRPC.EnableHTTPS
	if _, ok := s.(*httpServer.HTTPServer); ok {
		enableTLS = cfg.HTTP.EnableHTTPS
	}
	if enableTLS {
		return server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	}
	return server.NewPlainListener()
}
