package eventlog

import (
	"strings"
	"sync"
	"time"
)

// DefaultConsoleCapacity bounds the console buffer when no explicit
// capacity is configured.
const DefaultConsoleCapacity = 500

// ConsoleEntry is a single captured console/diagnostic message.
// Entries are immutable once stored.
type ConsoleEntry struct {
	When time.Time `json:"timestamp"`
	Kind string    `json:"type"`
	Text string    `json:"text"`
}

// ConsoleFilter selects console entries. All set clauses compose with
// logical AND.
type ConsoleFilter struct {
	// Kinds is an exact-match allow-list of entry kinds (log, info,
	// warning, error, ...). Empty means all kinds.
	Kinds []string `json:"types,omitempty"`

	// Search is a case-insensitive substring match on the message text.
	Search string `json:"search,omitempty"`
}

// Match reports whether e passes the filter.
func (f ConsoleFilter) Match(e ConsoleEntry) bool {
	if len(f.Kinds) > 0 {
		ok := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(e.Text), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// ConsoleReport is the result of a console query.
type ConsoleReport struct {
	Total   int            `json:"total"`
	Matched int            `json:"matched"`
	Entries []ConsoleEntry `json:"entries"`
}

// ConsoleStore is a bounded, append-only store of console entries.
// Appends arrive from asynchronous page callbacks while queries run on
// the caller's goroutine, so every access is mutex-guarded.
type ConsoleStore struct {
	mu      sync.Mutex
	ring    *Ring[ConsoleEntry]
	updated func()
}

// NewConsoleStore creates a store with the given capacity.
func NewConsoleStore(capacity int) *ConsoleStore {
	if capacity <= 0 {
		capacity = DefaultConsoleCapacity
	}
	return &ConsoleStore{ring: NewRing[ConsoleEntry](capacity)}
}

// OnUpdated registers a hook fired after each append, outside the store
// lock. Used to raise resource-updated notifications.
func (s *ConsoleStore) OnUpdated(fn func()) {
	s.mu.Lock()
	s.updated = fn
	s.mu.Unlock()
}

// Append stores an entry, evicting the oldest one at capacity.
func (s *ConsoleStore) Append(e ConsoleEntry) {
	s.mu.Lock()
	s.ring.Append(e)
	hook := s.updated
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Len returns the number of stored entries.
func (s *ConsoleStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Len()
}

// Query returns up to limit filtered entries in most-recent-first order,
// along with the unfiltered and filtered counts. A non-positive limit
// falls back to DefaultQueryLimit.
func (s *ConsoleStore) Query(filter ConsoleFilter, limit int) ConsoleReport {
	s.mu.Lock()
	entries := s.ring.Snapshot()
	s.mu.Unlock()

	return buildConsoleReport(entries, filter, limit)
}

// QueryAndClear atomically snapshots and empties the store, so entries
// appended by capture callbacks are either reported or retained, never
// silently dropped between the read and the clear.
func (s *ConsoleStore) QueryAndClear(filter ConsoleFilter, limit int) ConsoleReport {
	s.mu.Lock()
	entries := s.ring.Snapshot()
	s.ring.Clear()
	s.mu.Unlock()

	return buildConsoleReport(entries, filter, limit)
}

func buildConsoleReport(entries []ConsoleEntry, filter ConsoleFilter, limit int) ConsoleReport {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	matched := make([]ConsoleEntry, 0, len(entries))
	for _, e := range entries {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}

	report := ConsoleReport{
		Total:   len(entries),
		Matched: len(matched),
	}
	report.Entries = newestFirst(matched, limit)
	return report
}

// Clear empties the store.
func (s *ConsoleStore) Clear() {
	s.mu.Lock()
	s.ring.Clear()
	s.mu.Unlock()
}

// DefaultQueryLimit is the entry cap applied when a query supplies no
// explicit limit.
const DefaultQueryLimit = 100

// newestFirst takes the tail of arrival-ordered entries and reverses it.
func newestFirst[T any](entries []T, limit int) []T {
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]T, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}
