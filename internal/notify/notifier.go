// Package notify delivers "new contact message" notifications to the site owner.
package notify

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/model"
)

// ErrNotConfigured is returned by a relay whose credentials are missing.
// Callers treat it as "skipped", not as a failure.
var ErrNotConfigured = errors.New("notify: not configured")

// Notifier sends one notification for a validated contact message.
type Notifier interface {
	Notify(ctx context.Context, msg *model.ContactMessage) error
}

// Multi calls every notifier in order and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg *model.ContactMessage) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
