package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/notify"
	"github.com/portfolio/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockContactRepository: in-memory stub for testing
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	saveFunc   func(ctx context.Context, msg *model.ContactMessage) error
	listFunc   func(ctx context.Context) ([]*model.ContactMessage, error)
	deleteFunc func(ctx context.Context, id string) error
	saveCalls  int
}

func (m *mockContactRepository) Save(ctx context.Context, msg *model.ContactMessage) error {
	m.saveCalls++
	if m.saveFunc != nil {
		return m.saveFunc(ctx, msg)
	}
	return nil
}

func (m *mockContactRepository) List(ctx context.Context) ([]*model.ContactMessage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockNotifier records calls and returns err. Notify runs on a background
// goroutine, so read calls only after drain.
type mockNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockNotifier) Notify(ctx context.Context, msg *model.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.err
}

// blockingNotifier holds every Notify until release is closed or ctx ends.
type blockingNotifier struct {
	started chan struct{}
	release chan struct{}
	ctxErr  chan error
}

func newBlockingNotifier() *blockingNotifier {
	return &blockingNotifier{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		ctxErr:  make(chan error, 1),
	}
}

func (b *blockingNotifier) Notify(ctx context.Context, msg *model.ContactMessage) error {
	b.started <- struct{}{}
	select {
	case <-b.release:
		b.ctxErr <- nil
		return nil
	case <-ctx.Done():
		b.ctxErr <- ctx.Err()
		return ctx.Err()
	}
}

func drain(t *testing.T, svc ContactService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := svc.Drain(ctx); err != nil {
		t.Fatalf("notifications did not finish: %v", err)
	}
}

var validForm = model.ContactForm{Name: "A", Email: "a@b.com", Message: "hi"}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestContactService_Submit_Success(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			msg.ID = "doc-1"
			msg.CreatedAt = &created
			return nil
		},
	}
	n := &mockNotifier{}
	svc := NewContactService(repo, n)

	msg, err := svc.Submit(context.Background(), validForm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.ID != "doc-1" || msg.CreatedAt == nil || !msg.CreatedAt.Equal(created) {
		t.Errorf("expected store-assigned fields, got %+v", msg)
	}
	if msg.Name != "A" || msg.Email != "a@b.com" || msg.Message != "hi" {
		t.Errorf("fields not forwarded: %+v", msg)
	}
	drain(t, svc)
	if n.calls != 1 {
		t.Errorf("expected 1 notification, got %d", n.calls)
	}
}

func TestContactService_Submit_InvalidBlocksSideEffects(t *testing.T) {
	forms := []model.ContactForm{
		{Name: "", Email: "a@b.com", Message: "hi"},
		{Name: "A", Email: "  ", Message: "hi"},
		{Name: "A", Email: "a@b.com", Message: "   "},
		{Name: "A", Email: "a@b", Message: "hi"},
	}
	for _, f := range forms {
		repo := &mockContactRepository{}
		n := &mockNotifier{}
		svc := NewContactService(repo, n)

		_, err := svc.Submit(context.Background(), f)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("form %+v: expected ValidationError, got %v", f, err)
			continue
		}
		if len(verr.Fields) == 0 {
			t.Errorf("form %+v: expected field errors", f)
		}
		if repo.saveCalls != 0 || n.calls != 0 {
			t.Errorf("form %+v: expected no store/relay calls, got save=%d notify=%d", f, repo.saveCalls, n.calls)
		}
	}
}

func TestContactService_Submit_NotifierUnconfiguredStillSaves(t *testing.T) {
	repo := &mockContactRepository{}
	svc := NewContactService(repo, &mockNotifier{err: notify.ErrNotConfigured})

	if _, err := svc.Submit(context.Background(), validForm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.saveCalls != 1 {
		t.Errorf("expected Save to be called once, got %d", repo.saveCalls)
	}
	drain(t, svc)
}

func TestContactService_Submit_NotifierFailureStillSaves(t *testing.T) {
	repo := &mockContactRepository{}
	svc := NewContactService(repo, &mockNotifier{err: errors.New("relay down")})

	if _, err := svc.Submit(context.Background(), validForm); err != nil {
		t.Fatalf("relay failure must not fail the submission: %v", err)
	}
	if repo.saveCalls != 1 {
		t.Errorf("expected Save to be called once, got %d", repo.saveCalls)
	}
	drain(t, svc)
}

func TestContactService_Submit_NilNotifier(t *testing.T) {
	repo := &mockContactRepository{}
	svc := NewContactService(repo, nil)

	if _, err := svc.Submit(context.Background(), validForm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestContactService_Submit_RepositoryError propagates repository errors.
func TestContactService_Submit_RepositoryError(t *testing.T) {
	dbErr := errors.New("db write failed")
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			return dbErr
		},
	}
	n := &mockNotifier{}
	svc := NewContactService(repo, n)

	_, err := svc.Submit(context.Background(), validForm)
	if !errors.Is(err, dbErr) {
		t.Errorf("expected wrapped repository error, got %v", err)
	}
	drain(t, svc)
	if n.calls != 1 {
		t.Errorf("notification is independent of persistence, got %d calls", n.calls)
	}
}

func TestContactService_Submit_DoesNotWaitForRelay(t *testing.T) {
	repo := &mockContactRepository{}
	n := newBlockingNotifier()
	svc := NewContactService(repo, n)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), validForm)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a hanging relay")
	}
	if repo.saveCalls != 1 {
		t.Errorf("expected Save once, got %d", repo.saveCalls)
	}

	<-n.started
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := svc.Drain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected Drain to time out while the relay hangs, got %v", err)
	}

	close(n.release)
	drain(t, svc)
}

func TestContactService_Submit_RelayTimeoutIsBounded(t *testing.T) {
	n := newBlockingNotifier()
	svc := &contactServiceImpl{repo: &mockContactRepository{}, notifier: n, notifyTimeout: 10 * time.Millisecond}

	if _, err := svc.Submit(context.Background(), validForm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drain(t, svc)
	if err := <-n.ctxErr; !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected the relay attempt to hit its own deadline, got %v", err)
	}
}

func TestContactService_Submit_CallerCancelStillSaves(t *testing.T) {
	var saveErr error
	repo := &mockContactRepository{
		saveFunc: func(ctx context.Context, msg *model.ContactMessage) error {
			saveErr = ctx.Err()
			if saveErr != nil {
				return saveErr
			}
			msg.ID = "doc-1"
			return nil
		},
	}
	n := &mockNotifier{}
	svc := NewContactService(repo, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, err := svc.Submit(ctx, validForm)
	if err != nil {
		t.Fatalf("a departed caller must not cancel the store write: %v", err)
	}
	if saveErr != nil || msg.ID != "doc-1" {
		t.Errorf("expected the record to be saved, got id=%q ctxErr=%v", msg.ID, saveErr)
	}
	drain(t, svc)
	if n.calls != 1 {
		t.Errorf("expected the relay to run after cancel, got %d calls", n.calls)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: model.FieldErrors{"message": "x", "email": "y"}}
	if got := err.Error(); got != "validation failed: email, message" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestHasOtherThan(t *testing.T) {
	other := errors.New("other")
	if hasOtherThan(notify.ErrNotConfigured, notify.ErrNotConfigured) {
		t.Error("plain target should not count as other")
	}
	if hasOtherThan(errors.Join(notify.ErrNotConfigured, notify.ErrNotConfigured), notify.ErrNotConfigured) {
		t.Error("joined targets should not count as other")
	}
	if !hasOtherThan(errors.Join(notify.ErrNotConfigured, other), notify.ErrNotConfigured) {
		t.Error("expected other error to be detected")
	}
}

// ---------------------------------------------------------------------------
// List / Delete tests
// ---------------------------------------------------------------------------

func TestContactService_List_ReturnsMessages(t *testing.T) {
	want := []*model.ContactMessage{{ID: "1", Name: "A", Email: "a@b.com", Message: "Hi"}}
	repo := &mockContactRepository{
		listFunc: func(ctx context.Context) ([]*model.ContactMessage, error) {
			return want, nil
		},
	}
	svc := NewContactService(repo, nil)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestContactService_List_RepositoryError(t *testing.T) {
	repo := &mockContactRepository{
		listFunc: func(ctx context.Context) ([]*model.ContactMessage, error) {
			return nil, errors.New("db read failed")
		},
	}
	svc := NewContactService(repo, nil)

	if _, err := svc.List(context.Background()); err == nil {
		t.Error("expected error from repository, got nil")
	}
}

func TestContactService_Delete_ForwardsID(t *testing.T) {
	var deleted string
	repo := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc := NewContactService(repo, nil)

	if err := svc.Delete(context.Background(), "doc-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "doc-9" {
		t.Errorf("expected doc-9, got %q", deleted)
	}
}

func TestContactService_Delete_NotFound(t *testing.T) {
	repo := &mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	svc := NewContactService(repo, nil)

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
