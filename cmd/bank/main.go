package main

import (
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"xavier-bank/internal/config"
	"xavier-bank/internal/domain"
	"xavier-bank/internal/service"
	"xavier-bank/internal/store"
	"xavier-bank/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the menus; logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Error("Failed to open log file", "path", cfg.LogFile, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	domain.DefaultOverdraftLimit = decimal.NewFromFloat(cfg.DefaultOverdraftLimit)

	st := store.New(cfg.DataFile, logger)
	svc := service.NewBankService(st, logger)

	logger.Info("Bank started", "data_file", cfg.DataFile)
	ui.New(svc, os.Stdin, os.Stdout).Run()
	logger.Info("Bank stopped")
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
