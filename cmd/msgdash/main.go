// Command msgdash is the terminal message dashboard: it unlocks with the
// shared dashboard password and reads, filters, deletes and exports the
// stored contact messages.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/dashboard"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// stdout belongs to the console
	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.StoreDriver, cfg.StoreDSN())
	if err != nil {
		logging.Fatal("failed to open store", "driver", cfg.StoreDriver, "error", err)
	}
	defer store.Close()

	flagPath := cfg.SessionFile
	if flagPath == "" {
		flagPath = dashboard.DefaultFlagPath()
	}

	gate := dashboard.NewGate(cfg.DashboardPassword, dashboard.FileFlag{Path: flagPath})
	board := dashboard.NewBoard(store, time.Local)
	console := dashboard.NewConsole(gate, board, os.Stdin, os.Stdout, time.Local)

	if err := console.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("console stopped", "error", err)
	}
}
