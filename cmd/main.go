/**
 * @description
 * Main entry point for the dashboard service. Wires configuration, the
 * snapshot store, the event publisher and the application services, runs
 * the one-shot billing sweep, then serves HTTP until shutdown.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/akshay12-del/subzz/internal/api"
	"github.com/akshay12-del/subzz/internal/app"
	"github.com/akshay12-del/subzz/internal/config"
	"github.com/akshay12-del/subzz/internal/store"
	"github.com/akshay12-del/subzz/pkg/rabbitmq"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env if present, then configuration from environment variables
	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Select the snapshot backend
	var snapshots store.Store
	switch cfg.StoreBackend {
	case "postgres":
		dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("unable to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbpool.Close()
		snapshots, err = store.NewPostgresStore(ctx, dbpool, logger)
		if err != nil {
			logger.Error("failed to initialize postgres store", "error", err)
			os.Exit(1)
		}
		logger.Info("using postgres snapshot store")
	default:
		fs, err := store.NewFileStore(cfg.DataDir, logger)
		if err != nil {
			logger.Error("failed to initialize file store", "error", err)
			os.Exit(1)
		}
		snapshots = fs
		logger.Info("using file snapshot store", "dir", cfg.DataDir)
	}

	// Event publisher, with a logging fallback when no broker is configured
	var events rabbitmq.Publisher
	if cfg.AMQPURL != "" {
		producer, err := rabbitmq.NewEventProducer(cfg.AMQPURL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, falling back to no-op publisher", "error", err)
			events = &rabbitmq.NoopPublisher{Logger: logger}
		} else {
			events = producer
		}
	} else {
		events = &rabbitmq.NoopPublisher{Logger: logger}
	}
	defer events.Close()

	// Initialize application services
	wallet, err := app.NewWalletService(ctx, snapshots, events, logger, cfg.WalletTopUpCap)
	if err != nil {
		logger.Error("failed to initialize wallet service", "error", err)
		os.Exit(1)
	}
	subs, err := app.NewSubscriptionService(ctx, snapshots, wallet, events, logger)
	if err != nil {
		logger.Error("failed to initialize subscription service", "error", err)
		os.Exit(1)
	}
	auth, err := app.NewAuthService(ctx, snapshots, logger, cfg.JWTSecret, cfg.TokenTTL(), cfg.SimulatedDelay())
	if err != nil {
		logger.Error("failed to initialize auth service", "error", err)
		os.Exit(1)
	}
	settings, err := app.NewSettingsService(ctx, snapshots, logger)
	if err != nil {
		logger.Error("failed to initialize settings service", "error", err)
		os.Exit(1)
	}
	catalog := app.NewCatalogService(store.SeedRegionalServices(), store.SeedBundles(), logger, cfg.SimulatedDelay())

	// Reconcile due subscriptions once per session start
	subs.RunStartupSweep(ctx)

	// Optional recurring sweeps for long-lived deployments
	scheduler := app.NewScheduler(subs, logger, cfg.BillingSweepSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(auth, wallet, subs, catalog, settings)
	router := api.NewRouter(handler, cfg.JWTSecret)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
