// Command server runs the certificate REST API.
//
// @title                       Certificate System API
// @version                     1.0
// @description                 Issue, sign, approve and verify student certificates.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/certchain/certificate-system/docs"
	"github.com/certchain/certificate-system/internal/api"
	"github.com/certchain/certificate-system/internal/api/handler"
	"github.com/certchain/certificate-system/internal/core/service"
	"github.com/certchain/certificate-system/internal/infrastructure/config"
	mongodb "github.com/certchain/certificate-system/internal/infrastructure/db/mongo"
	redisdb "github.com/certchain/certificate-system/internal/infrastructure/db/redis"
	"github.com/certchain/certificate-system/internal/infrastructure/queue"
	"github.com/certchain/certificate-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		log := logger.Get()
		log.Fatal().Err(err).Msg("load config")
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "certificate-api",
	})
	log := logger.Get()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	ledgerRepo := mongodb.NewLedgerRepository(db)

	dispatcher := queue.NewDispatcher(cfg.Ledger.Workers, ledgerRepo, logger.Component("ledger"))
	dispatcher.Start(ctx)

	certService := service.NewCertificateService(service.CertificateDeps{
		Certificates: mongodb.NewCertificateRepository(db),
		Types:        mongodb.NewCertificateTypeRepository(db),
		Users:        userRepo,
		Ledger:       ledgerRepo,
		Cache:        redisdb.NewVerifyCache(rdb, cfg.Redis.VerifyCacheTTL),
		Anchorer:     dispatcher,
	}, logger.Component("certificates"))

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL),
		Users:        service.NewUserService(userRepo, logger.Component("users")),
		Certificates: certService,
		JWTSecret:    cfg.JWTSecret,
		Logger:       logger.Component("http"),
		Readiness: []handler.DependencyCheck{
			{Name: "mongodb", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = e.Shutdown(shutdownCtx)

	// ctx is done, so the ledger workers are draining their buffers.
	dispatcher.Wait()
	log.Info().Msg("ledger workers stopped")
	return err
}
