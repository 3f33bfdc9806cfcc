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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/luckyvista/feedbackpulse/internal/analytics"
	"github.com/luckyvista/feedbackpulse/internal/config"
	"github.com/luckyvista/feedbackpulse/internal/database"
	"github.com/luckyvista/feedbackpulse/internal/emotion"
	"github.com/luckyvista/feedbackpulse/internal/feedback"
	"github.com/luckyvista/feedbackpulse/internal/logging"
	"github.com/luckyvista/feedbackpulse/internal/server"
)

func setupConfig() *config.Config {
	// Local dev convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupModel(cfg *config.Config) *emotion.Service {
	model := emotion.NewService(cfg.ConfidenceThreshold)
	if cfg.ModelArtifactPath == "" {
		slog.Warn("No model artifact configured, classification degrades to Unclassified")
		return model
	}

	if err := model.Reload(cfg.ModelArtifactPath); err != nil {
		if !cfg.ModelOptional {
			slog.Error("Failed to load model artifact", "error", err, "path", cfg.ModelArtifactPath)
			os.Exit(1)
		}
		slog.Warn("Model artifact unavailable, starting degraded", "error", err, "path", cfg.ModelArtifactPath)
	}
	return model
}

func runGracefulShutdown(srv *server.Server, stopEviction func()) <-chan struct{} {
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

		stopEviction()
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

	pool := setupDB(cfg)
	defer pool.Close()

	model := setupModel(cfg)

	repo := database.NewFeedbackRepo(pool)
	feedbackSvc := feedback.NewService(repo, model, clock)
	aggregator := analytics.NewAggregator(repo, clock)

	snapshots := analytics.NewSnapshotCache(cfg.SnapshotCacheTTL, clock)
	stopEviction := snapshots.StartEvictionTimer(1 * time.Minute)

	srv := server.NewServer(cfg, feedbackSvc, aggregator, snapshots, model, pool, clock)

	done := runGracefulShutdown(srv, stopEviction)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
