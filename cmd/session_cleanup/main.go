// Purges session rows that can never become usable again: expired ones, and
// revoked ones older than 30 days (kept briefly for audit). Intended to run
// from cron.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"petcare/internal/config"
	"petcare/internal/database"
	"petcare/internal/repository"
)

const revokedRetention = 30 * 24 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions := repository.NewSessionRepository(db, cfg.RefreshTTL())
	deleted, err := sessions.DeleteExpired(context.Background(), time.Now().Add(-revokedRetention))
	if err != nil {
		logger.Error("session cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("session cleanup completed", slog.Int64("deleted", deleted))
}
