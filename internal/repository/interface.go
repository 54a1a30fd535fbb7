package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB reports whether the underlying connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists documents of the contacts collection.
// There is no update operation: documents are only created and deleted.
type ContactRepository interface {
	// Save inserts msg and fills in the store-assigned ID and CreatedAt.
	Save(ctx context.Context, msg *model.ContactMessage) error
	// List returns the whole collection ordered by CreatedAt descending.
	// Documents without a timestamp come last.
	List(ctx context.Context) ([]*model.ContactMessage, error)
	// Delete removes one document. It returns ErrNotFound when id does not exist.
	Delete(ctx context.Context, id string) error
}

// Store is a ContactRepository that owns its connection.
type Store interface {
	ContactRepository
	DB
	Close()
}
