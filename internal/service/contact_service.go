package service

import (
	"context"
	"sort"
	"strings"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic shared by the submission and dashboard flows.
type ContactService interface {
	// Submit validates form, notifies the owner and stores a new message.
	// It returns *ValidationError when a field is invalid; nothing is sent or
	// stored in that case. Relay failures never fail the submission.
	Submit(ctx context.Context, form model.ContactForm) (*model.ContactMessage, error)

	// List returns every stored message, newest first.
	List(ctx context.Context) ([]*model.ContactMessage, error)

	// Delete removes one message by id.
	Delete(ctx context.Context, id string) error

	// Drain blocks until in-flight notifications finish or ctx is done.
	Drain(ctx context.Context) error
}

// ValidationError carries every invalid form field.
type ValidationError struct {
	Fields model.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}
