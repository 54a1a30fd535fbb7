package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/internal/repository"
)

// DefaultNotifyTimeout bounds one background relay attempt.
const DefaultNotifyTimeout = 10 * time.Second

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo          repository.ContactRepository
	notifier      notify.Notifier
	notifyTimeout time.Duration
	wg            sync.WaitGroup
}

// NewContactService creates a ContactService backed by the given repository.
// notifier may be nil, in which case no notification is attempted.
func NewContactService(repo repository.ContactRepository, notifier notify.Notifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier, notifyTimeout: DefaultNotifyTimeout}
}

// Submit validates, starts the notification in the background, then persists.
// The notification outcome is only logged; the persistence outcome is the result.
// Neither step is cancelled when ctx is.
func (s *contactServiceImpl) Submit(ctx context.Context, form model.ContactForm) (*model.ContactMessage, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	ctx = context.WithoutCancel(ctx)
	msg := form.ToMessage()
	s.notifyAsync(ctx, *msg)

	if err := s.repo.Save(ctx, msg); err != nil {
		slog.Error("contact save failed", "error", err)
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	slog.Info("contact message stored", "id", msg.ID)
	return msg, nil
}

// notifyAsync relays a copy of msg so Save can fill in ID and CreatedAt concurrently.
func (s *contactServiceImpl) notifyAsync(ctx context.Context, msg model.ContactMessage) {
	if s.notifier == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
		defer cancel()
		s.notify(ctx, &msg)
	}()
}

// Drain waits for background notifications started by Submit.
func (s *contactServiceImpl) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *contactServiceImpl) notify(ctx context.Context, msg *model.ContactMessage) {
	err := s.notifier.Notify(ctx, msg)
	switch {
	case err == nil:
	case errors.Is(err, notify.ErrNotConfigured) && !hasOtherThan(err, notify.ErrNotConfigured):
		slog.Warn("notification relay credentials not configured; skipping", "error", err)
	default:
		slog.Error("contact notification failed", "error", err)
	}
}

// hasOtherThan reports whether a (possibly joined) error contains anything besides target.
func hasOtherThan(err, target error) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return !errors.Is(err, target)
	}
	for _, e := range joined.Unwrap() {
		if hasOtherThan(e, target) {
			return true
		}
	}
	return false
}

// List returns the whole collection as ordered by the store.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := s.repo.List(ctx)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		return nil, err
	}
	return messages, nil
}

// Delete removes one message.
func (s *contactServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("contact delete failed", "id", id, "error", err)
		}
		return err
	}
	slog.Info("contact message deleted", "id", id)
	return nil
}
