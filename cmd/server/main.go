package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/app"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/config"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/database"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/logging"
	"github.com/ICTMAXELO2025/Maxelobs-applications/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config, clock clockwork.Clock) *database.DB {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	policy := database.RetryPolicy{
		Attempts: cfg.DBConnectAttempts,
		Backoff:  cfg.DBConnectBackoff,
	}
	db, err := database.Connect(ctx, cfg.DatabaseURL, policy, clock)
	if err != nil {
		logging.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}

	if err := db.RunMigrations(ctx); err != nil {
		logging.WithError(err).Error("Failed to run migrations")
		os.Exit(1)
	}

	return db
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	db := setupDB(cfg, clock)
	defer func() { _ = db.Close() }()

	adminRepo := database.NewAdminRepo(db)
	appRepo := database.NewApplicationRepo(db, clock)

	svc := app.NewService(adminRepo, appRepo)

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Bootstrap(bootstrapCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logging.WithError(err).Error("Failed to bootstrap default admin")
		os.Exit(1)
	}

	srv, err := server.NewServer(cfg, svc, db)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
