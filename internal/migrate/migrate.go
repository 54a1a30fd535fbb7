// Package migrate applies the SQL files under migrations/ to PostgreSQL and
// records them in schema_migrations.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	upSuffix         = ".up.sql"
	downSuffix       = ".down.sql"
	dropAllFile      = "000_drop_all.sql"
	consolidatedFile = "000_consolidated.sql"
)

// DB is the part of *pgxpool.Pool the migrator uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrator runs migrations read from fsys against db.
type Migrator struct {
	db   DB
	fsys fs.FS
}

func New(db DB, fsys fs.FS) *Migrator {
	return &Migrator{db: db, fsys: fsys}
}

// upNames returns the migration names (file name without ".up.sql"), sorted.
func (m *Migrator) upNames() ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), upSuffix) {
			names = append(names, strings.TrimSuffix(e.Name(), upSuffix))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Migrator) ensureSchemaMigrations(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (m *Migrator) applied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	return exists, err
}

func (m *Migrator) execFile(ctx context.Context, file string) error {
	sql, err := fs.ReadFile(m.fsys, file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	if _, err := m.db.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", file, err)
	}
	return nil
}

// Pending lists the migrations not yet recorded.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return nil, err
	}
	names, err := m.upNames()
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, name := range names {
		ok, err := m.applied(ctx, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

// Up applies every pending migration in order and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}
	for i, name := range pending {
		if err := m.execFile(ctx, name+upSuffix); err != nil {
			return i, err
		}
		if _, err := m.db.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return i, fmt.Errorf("record %s: %w", name, err)
		}
		slog.Info("migration completed", "migration", name)
	}
	return len(pending), nil
}

// Down rolls back the most recently applied migration. It returns "" when
// nothing is applied.
func (m *Migrator) Down(ctx context.Context) (string, error) {
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return "", err
	}
	var name string
	err := m.db.QueryRow(ctx, "SELECT name FROM schema_migrations ORDER BY name DESC LIMIT 1").Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := m.execFile(ctx, name+downSuffix); err != nil {
		return "", err
	}
	if _, err := m.db.Exec(ctx, "DELETE FROM schema_migrations WHERE name=$1", name); err != nil {
		return "", fmt.Errorf("unrecord %s: %w", name, err)
	}
	return name, nil
}

// DropAll drops every table through 000_drop_all.sql.
func (m *Migrator) DropAll(ctx context.Context) error {
	return m.execFile(ctx, dropAllFile)
}

// Consolidated applies the consolidated schema and marks every migration as applied.
func (m *Migrator) Consolidated(ctx context.Context) (int, error) {
	if err := m.execFile(ctx, consolidatedFile); err != nil {
		return 0, err
	}
	if err := m.ensureSchemaMigrations(ctx); err != nil {
		return 0, err
	}
	names, err := m.upNames()
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		if _, err := m.db.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return 0, fmt.Errorf("record %s: %w", name, err)
		}
	}
	return len(names), nil
}
