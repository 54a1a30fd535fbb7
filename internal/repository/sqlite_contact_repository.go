package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
	_ "modernc.org/sqlite"
)

const createContactsTable = `
CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at INTEGER -- unix milliseconds, NULL for documents without a timestamp
)`

// nowMillis is evaluated by SQLite so the timestamp always comes from the store clock.
const nowMillis = `CAST((julianday('now') - 2440587.5) * 86400000 AS INTEGER)`

// SqliteContactRepository is a ContactRepository on an embedded SQLite file.
type SqliteContactRepository struct {
	db *sql.DB
}

var _ Store = (*SqliteContactRepository)(nil)

// OpenSqliteContactRepository opens (or creates) the database at path and makes
// sure the contacts table exists.
func OpenSqliteContactRepository(ctx context.Context, path string) (*SqliteContactRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases shared and serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createContactsTable); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteContactRepository{db: db}, nil
}

// Save inserts msg with a fresh UUID and the store's current time.
func (r *SqliteContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	id := uuid.NewString()
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contacts (id, name, email, message, created_at)
		 VALUES (?, ?, ?, ?, `+nowMillis+`)
		 RETURNING created_at`,
		id, msg.Name, msg.Email, msg.Message,
	).Scan(&createdAt)
	if err != nil {
		return err
	}
	t := time.UnixMilli(createdAt).UTC()
	msg.ID = id
	msg.CreatedAt = &t
	return nil
}

// List returns all documents, newest first, untimestamped ones last.
func (r *SqliteContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM contacts
		 ORDER BY created_at IS NULL, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		var createdAt sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			t := time.UnixMilli(createdAt.Int64).UTC()
			m.CreatedAt = &t
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// Delete removes one document by id.
func (r *SqliteContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SqliteContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SqliteContactRepository) Close() {
	_ = r.db.Close()
}
