package main

import (
	"log/slog"
	"os"

	"petcare/internal/app"
	"petcare/internal/config"
	"petcare/internal/database"
)

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
	if err := database.Migrate(db, app.Models()...); err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	a := app.New(cfg, db, logger)

	logger.Info("server starting", slog.String("port", cfg.Port), slog.String("env", cfg.AppEnv))
	if err := a.Router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
