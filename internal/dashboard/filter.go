package dashboard

import (
	"strings"
	"time"

	"github.com/portfolio/backend/internal/model"
)

// DateLayout is the calendar date format accepted by the date filters.
const DateLayout = "2006-01-02"

// Filter narrows the fetched list locally. Zero From/To means "no bound".
type Filter struct {
	Search string
	From   time.Time // inclusive, local midnight of the from-date
	To     time.Time // exclusive, local midnight after the to-date
}

// StartOfDay parses a calendar date as midnight in loc.
func StartOfDay(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

// NextDayStart parses a calendar date and returns midnight of the following day in loc.
// Comparing with it keeps every sub-millisecond instant of date.
func NextDayStart(date string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc), nil
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || !f.From.IsZero() || !f.To.IsZero()
}

// Match applies search, from and to with AND. A message without a timestamp
// never passes an active date bound.
func (f Filter) Match(m *model.ContactMessage) bool {
	if strings.TrimSpace(f.Search) != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Name), term) &&
			!strings.Contains(strings.ToLower(m.Email), term) &&
			!strings.Contains(strings.ToLower(m.Message), term) {
			return false
		}
	}
	if !f.From.IsZero() {
		if m.CreatedAt == nil || m.CreatedAt.Before(f.From) {
			return false
		}
	}
	if !f.To.IsZero() {
		if m.CreatedAt == nil || !m.CreatedAt.Before(f.To) {
			return false
		}
	}
	return true
}

// Apply returns the matching messages in their loaded order.
func (f Filter) Apply(messages []*model.ContactMessage) []*model.ContactMessage {
	out := make([]*model.ContactMessage, 0, len(messages))
	for _, m := range messages {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}
