// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripay-gateway/internal/config"
	"tripay-gateway/internal/domain/model"
	pg "tripay-gateway/internal/infra/db/postgres"
	"tripay-gateway/internal/infra/logging"
	"tripay-gateway/internal/infra/metrics"
	red "tripay-gateway/internal/infra/redis"
	"tripay-gateway/internal/infra/tripay"
	"tripay-gateway/internal/infra/web"
	"tripay-gateway/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (optional, only backs the webhook rate limiter) ----
	var limiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; webhook rate limiting disabled")
	}

	// ---- Repositories ----
	invoiceRepo := pg.NewInvoiceRepo(pool)
	auditLog := pg.NewAuditLogRepo(pool, logger)

	// ---- Gateway & use cases ----
	merchantCfg := model.MerchantConfig{
		MerchantCode: cfg.Tripay.MerchantCode,
		APIKey:       cfg.Tripay.APIKey,
		PrivateKey:   cfg.Tripay.PrivateKey,
		Sandbox:      cfg.Tripay.Sandbox,
		DurationDays: cfg.Tripay.DurationDays,
	}
	gateway := tripay.NewClient(cfg.Tripay.APIKey, cfg.Tripay.Sandbox)

	reconcileUC := usecase.NewReconcileUseCase(merchantCfg, invoiceRepo, invoiceRepo, auditLog, logger)
	checkoutUC := usecase.NewCheckoutUseCase(merchantCfg, invoiceRepo, invoiceRepo, gateway, cfg.Tripay.CallbackURL, cfg.Tripay.ReturnURL, logger)

	srv := web.NewServer(cfg, reconcileUC, checkoutUC, limiter, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info().
		Str("merchant_code", logging.Redact(cfg.Tripay.MerchantCode, cfg.Runtime.Dev)).
		Bool("sandbox", cfg.Tripay.Sandbox).
		Msg("tripay gateway core started")

	// ---- Graceful shutdown ----
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
