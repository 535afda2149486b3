package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"userdesk/internal/app/form"
	"userdesk/internal/cache"
	"userdesk/internal/clients/usersapi"
	"userdesk/internal/config"
	"userdesk/internal/http/handlers/console"
	"userdesk/internal/http/handlers/health"
	"userdesk/internal/http/router"
	"userdesk/internal/kafka"
	"userdesk/internal/live"
	"userdesk/internal/logging"
	"userdesk/internal/session"
	"userdesk/internal/telemetry"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1) Load configuration (settings file, then environment)
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2) Initialize logger
	logger := logging.New(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceEnv,
		cfg.LogLevel,
	)

	logger.Info("starting service",
		"env", cfg.Environment,
		"locale", cfg.Locale,
		"users_api", cfg.UsersAPI.BaseURL,
	)

	// 3) Initialize telemetry (OpenTelemetry)
	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	// 4) Initialize Redis and the submission limiter
	var (
		redisPinger health.Pinger
		limiter     cache.SubmissionLimiter
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Error("failed to init redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		redisPinger = redisClient
		limiter = cache.NewRedisLimiter(redisClient, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	} else {
		limiter = cache.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}
	defer limiter.Close()

	// 5) Initialize Kafka bus (Watermill)
	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()
	formEvents := kafka.NewFormEvents(bus, cfg.Kafka, logger)

	// 6) Users API client
	usersClient, err := usersapi.New(cfg.UsersAPI.BaseURL, cfg.UsersAPI.Timeout, logger)
	if err != nil {
		logger.Error("failed to init users api client", "error", err)
		os.Exit(1)
	}

	// 7) Live updates and per-session form controllers
	hub := live.NewHub()
	defer hub.Close()

	messages := form.CatalogueFor(cfg.Locale)
	registry := session.NewRegistry(func(sessionID string) *form.Controller {
		ctrl := form.NewController(usersClient, form.Options{
			Key:      sessionID,
			Messages: messages,
			Events:   formEvents,
			Limiter:  limiter,
			Logger:   logger,
		})
		ctrl.Subscribe(live.SnapshotPublisher(hub, sessionID, logger))
		return ctrl
	}, cfg.Session.TTL)
	defer registry.Close()

	sessions, err := session.NewManager(cfg.Session, registry, logger)
	if err != nil {
		logger.Error("failed to init sessions", "error", err)
		os.Exit(1)
	}

	// 8) HTTP handlers
	healthHandler := health.NewHandler(redisPinger, logger)
	consoleHandler := console.NewHandler(sessions, hub, logger)

	// 9) HTTP router
	httpRouter := router.NewRouter(
		logger,
		healthHandler,
		consoleHandler,
	)

	// 10) HTTP server
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: otelhttp.NewHandler(
			httpRouter,
			cfg.Observability.ServiceName, // span name prefix
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 11) Wait for shutdown signal or an error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from http server", "error", err)
		stop()
	}

	// 12) Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}
