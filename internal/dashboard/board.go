package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/model"
)

var (
	// ErrDeleteInFlight is returned when the same message is already being deleted.
	ErrDeleteInFlight = errors.New("dashboard: delete already in progress")
	// ErrNotListed is returned when deleting an id that is not in the loaded list.
	ErrNotListed = errors.New("dashboard: message not in list")
)

// MessageStore is what the board reads from and deletes in.
type MessageStore interface {
	List(ctx context.Context) ([]*model.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// ConfirmFunc asks the user to confirm deleting m.
type ConfirmFunc func(m *model.ContactMessage) bool

// Board holds the fetched messages and the local filter state. The list is
// fetched once by Load; filtering and deletes never re-fetch.
type Board struct {
	store MessageStore
	loc   *time.Location

	mu       sync.Mutex
	messages []*model.ContactMessage
	loading  bool
	errMsg   string
	filter   Filter
	deleting map[string]bool
}

// NewBoard creates a board over store. Date filters are interpreted in loc
// (time.Local when nil).
func NewBoard(store MessageStore, loc *time.Location) *Board {
	if loc == nil {
		loc = time.Local
	}
	return &Board{store: store, loc: loc, deleting: make(map[string]bool)}
}

// Load fetches the whole collection. On failure the list is emptied and Err
// reports MsgLoadFailed.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()

	messages, err := b.store.List(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		slog.Error("dashboard load failed", "error", err)
		b.messages = nil
		b.errMsg = MsgLoadFailed
		return err
	}
	b.messages = messages
	return nil
}

// Reset drops the loaded list and filters, e.g. on logout.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = nil
	b.errMsg = ""
	b.filter = Filter{}
}

func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Err is the current user-facing error, empty when none.
func (b *Board) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// Messages returns every loaded message, unfiltered.
func (b *Board) Messages() []*model.ContactMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.messages)
}

// Filter returns the current criteria.
func (b *Board) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Visible returns the loaded messages that pass the current filter.
func (b *Board) Visible() []*model.ContactMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter.Apply(b.messages)
}

func (b *Board) SetSearch(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Search = s
}

// SetFromDate sets the lower date bound; "" clears it.
func (b *Board) SetFromDate(date string) error {
	var from time.Time
	if date != "" {
		var err error
		if from, err = StartOfDay(date, b.loc); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.From = from
	return nil
}

// SetToDate sets the upper date bound; "" clears it.
func (b *Board) SetToDate(date string) error {
	var to time.Time
	if date != "" {
		var err error
		if to, err = NextDayStart(date, b.loc); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.To = to
	return nil
}

func (b *Board) ClearFilters() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = Filter{}
}

// Deleting reports whether a delete of id is in flight.
func (b *Board) Deleting(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleting[id]
}

// Delete asks confirm first and only then deletes id from the store. On
// success the message is dropped from the local list without a re-fetch; on
// failure it stays and Err reports MsgDeleteFailed. It returns whether the
// message was deleted.
func (b *Board) Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error) {
	b.mu.Lock()
	idx := slices.IndexFunc(b.messages, func(m *model.ContactMessage) bool { return m.ID == id })
	if idx < 0 {
		b.mu.Unlock()
		return false, ErrNotListed
	}
	if b.deleting[id] {
		b.mu.Unlock()
		return false, ErrDeleteInFlight
	}
	target := b.messages[idx]
	b.mu.Unlock()

	if confirm == nil || !confirm(target) {
		return false, nil
	}

	b.mu.Lock()
	if b.deleting[id] {
		b.mu.Unlock()
		return false, ErrDeleteInFlight
	}
	b.deleting[id] = true
	b.errMsg = ""
	b.mu.Unlock()

	err := b.store.Delete(ctx, id)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.deleting, id)
	if err != nil {
		slog.Error("dashboard delete failed", "id", id, "error", err)
		b.errMsg = MsgDeleteFailed
		return false, err
	}
	b.messages = slices.DeleteFunc(b.messages, func(m *model.ContactMessage) bool { return m.ID == id })
	return true, nil
}
