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

	"github.com/josh-kwaku/pin-ledger/internal/config"
	"github.com/josh-kwaku/pin-ledger/internal/handler"
	"github.com/josh-kwaku/pin-ledger/internal/logging"
	"github.com/josh-kwaku/pin-ledger/internal/middleware"
	"github.com/josh-kwaku/pin-ledger/internal/repository"
	"github.com/josh-kwaku/pin-ledger/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("ledger-api", cfg.LogLevel, cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	}, 30)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to prepare schema", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(db)
	accountRepo := repository.NewAccountRepository(store)
	txRepo := repository.NewTransactionRepository(store)
	typeRepo := repository.NewTransactionTypeRepository(store)
	registryRepo := repository.NewRegistryRepository(store)

	ledger := service.NewLedger(accountRepo, txRepo, typeRepo, store, service.LedgerOptions{
		Serializable:         cfg.SerializablePosting,
		SerializationRetries: cfg.SerializationRetries,
	})
	allocator := service.NewAllocator(registryRepo, cfg.MaxAllocationAttempts)
	accountSvc := service.NewAccountService(accountRepo, allocator, ledger)

	mux := http.NewServeMux()
	handler.Register(mux,
		handler.NewAccountHandler(accountSvc),
		handler.NewLedgerHandler(ledger),
		handler.NewHealthHandler(db),
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Chain(mux, middleware.Tracing, middleware.Logging, middleware.Recovery),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "serializable_posting", cfg.SerializablePosting)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
