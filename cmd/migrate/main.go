package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/migrate"
	"github.com/portfolio/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  status      list pending migrations
  down        roll back the latest migration
  reset       drop every table and recreate from the consolidated schema
  fresh       drop every table and apply all migrations in order`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if cfg.StoreDriver == repository.DriverSQLite {
		slog.Info("sqlite store creates its schema on open; nothing to migrate")
		return
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	m := migrate.New(pool, os.DirFS(findMigrationDir()))

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		up(ctx, m)
	case "status":
		pending, err := m.Pending(ctx)
		if err != nil {
			logging.Fatal("status failed", "error", err)
		}
		slog.Info("pending migrations", "count", len(pending), "migrations", pending)
	case "down":
		name, err := m.Down(ctx)
		if err != nil {
			logging.Fatal("rollback failed", "error", err)
		}
		if name == "" {
			slog.Info("no migration to roll back")
		} else {
			slog.Info("migration rolled back", "migration", name)
		}
	case "reset":
		dropAll(ctx, m)
		n, err := m.Consolidated(ctx)
		if err != nil {
			logging.Fatal("consolidated apply failed", "error", err)
		}
		slog.Info("consolidated schema applied", "migrations_marked", n)
	case "fresh":
		dropAll(ctx, m)
		up(ctx, m)
	default:
		usage()
	}
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}

func up(ctx context.Context, m *migrate.Migrator) {
	n, err := m.Up(ctx)
	if err != nil {
		logging.Fatal("migration failed", "applied", n, "error", err)
	}
	if n == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", n)
	}
}

func dropAll(ctx context.Context, m *migrate.Migrator) {
	slog.Info("dropping all tables")
	if err := m.DropAll(ctx); err != nil {
		logging.Fatal("drop all failed", "error", err)
	}
}
