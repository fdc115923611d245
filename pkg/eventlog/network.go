package eventlog

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// DefaultNetworkCapacity bounds the network buffer when no explicit
// capacity is configured.
const DefaultNetworkCapacity = 1000

// NetworkPhase identifies which stage of an exchange an event records.
type NetworkPhase string

const (
	PhaseRequest  NetworkPhase = "request"
	PhaseResponse NetworkPhase = "response"
	PhaseFailure  NetworkPhase = "failure"
)

// NetworkEvent is a single captured network transaction event. Events of
// the same logical exchange share a correlation ID.
type NetworkEvent struct {
	ID           string        `json:"id"`
	When         time.Time     `json:"timestamp"`
	Phase        NetworkPhase  `json:"phase"`
	URL          string        `json:"url"`
	Method       string        `json:"method"`
	ResourceType string        `json:"resourceType,omitempty"`
	Status       int           `json:"status,omitempty"`
	StatusText   string        `json:"statusText,omitempty"`
	Duration     time.Duration `json:"-"`
	DurationMS   float64       `json:"durationMs,omitempty"`
	Failure      string        `json:"failure,omitempty"`
}

// NetworkFilter selects network events. All set clauses compose with
// logical AND.
type NetworkFilter struct {
	// Methods is a case-insensitive HTTP method allow-list.
	Methods []string `json:"methods,omitempty"`

	// Statuses is an exact status-code allow-list.
	Statuses []int `json:"statuses,omitempty"`

	// StatusMin and StatusMax bound an inclusive status-code range.
	StatusMin *int `json:"statusMin,omitempty"`
	StatusMax *int `json:"statusMax,omitempty"`

	// URLPattern is a regular expression matched against the event URL.
	URLPattern string `json:"urlPattern,omitempty"`

	// ResourceTypes is an allow-list of resource categories (document,
	// script, xhr, fetch, ...).
	ResourceTypes []string `json:"resourceTypes,omitempty"`

	// FailedOnly restricts results to failure-phase events.
	FailedOnly bool `json:"failedOnly,omitempty"`

	urlRE *regexp.Regexp
}

// Compile validates the filter, compiling the URL pattern if present.
func (f *NetworkFilter) Compile() error {
	if f.URLPattern == "" {
		f.urlRE = nil
		return nil
	}
	re, err := regexp.Compile(f.URLPattern)
	if err != nil {
		return err
	}
	f.urlRE = re
	return nil
}

// Match reports whether e passes the filter. Compile must have been
// called if a URL pattern is set.
func (f *NetworkFilter) Match(e NetworkEvent) bool {
	if f.FailedOnly && e.Phase != PhaseFailure {
		return false
	}
	if len(f.Methods) > 0 {
		ok := false
		for _, m := range f.Methods {
			if strings.EqualFold(m, e.Method) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if s == e.Status {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.StatusMin != nil && e.Status < *f.StatusMin {
		return false
	}
	if f.StatusMax != nil && e.Status > *f.StatusMax {
		return false
	}
	if f.urlRE != nil && !f.urlRE.MatchString(e.URL) {
		return false
	}
	if len(f.ResourceTypes) > 0 {
		ok := false
		for _, rt := range f.ResourceTypes {
			if strings.EqualFold(rt, e.ResourceType) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// NetworkReport is the result of a network query.
type NetworkReport struct {
	Total   int            `json:"total"`
	Matched int            `json:"matched"`
	Entries []NetworkEvent `json:"entries"`
}

// pendingExchange records an in-flight request awaiting its terminal
// response or failure event.
type pendingExchange struct {
	id      string
	started time.Time
}

// NetworkStore is a bounded, append-only store of network events with a
// pending-correlation map linking request starts to their terminal
// events. Correlation is keyed by (method, URL): concurrent duplicate
// in-flight requests to the same endpoint overwrite each other's pending
// record. That is a documented best-effort linkage, not a guarantee.
type NetworkStore struct {
	mu      sync.Mutex
	ring    *Ring[NetworkEvent]
	pending map[string]pendingExchange
}

// NewNetworkStore creates a store with the given capacity.
func NewNetworkStore(capacity int) *NetworkStore {
	if capacity <= 0 {
		capacity = DefaultNetworkCapacity
	}
	return &NetworkStore{
		ring:    NewRing[NetworkEvent](capacity),
		pending: make(map[string]pendingExchange),
	}
}

func exchangeKey(method, url string) string {
	return strings.ToUpper(method) + " " + url
}

// BeginExchange records a request start under the given correlation ID
// and appends the request-phase event.
func (s *NetworkStore) BeginExchange(id, method, url, resourceType string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[exchangeKey(method, url)] = pendingExchange{id: id, started: at}
	s.ring.Append(NetworkEvent{
		ID:           id,
		When:         at,
		Phase:        PhaseRequest,
		URL:          url,
		Method:       method,
		ResourceType: resourceType,
	})
}

// CompleteExchange appends a response-phase event correlated with the
// pending request, carrying the elapsed duration when the start record
// is found. The pending record is removed either way.
func (s *NetworkStore) CompleteExchange(method, url, resourceType string, status int, statusText string, at time.Time) {
	s.terminate(NetworkEvent{
		When:         at,
		Phase:        PhaseResponse,
		URL:          url,
		Method:       method,
		ResourceType: resourceType,
		Status:       status,
		StatusText:   statusText,
	})
}

// FailExchange appends a failure-phase event correlated with the pending
// request. The pending record is removed either way.
func (s *NetworkStore) FailExchange(method, url, resourceType, failure string, at time.Time) {
	s.terminate(NetworkEvent{
		When:         at,
		Phase:        PhaseFailure,
		URL:          url,
		Method:       method,
		ResourceType: resourceType,
		Failure:      failure,
	})
}

func (s *NetworkStore) terminate(e NetworkEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := exchangeKey(e.Method, e.URL)
	if p, ok := s.pending[key]; ok {
		e.ID = p.id
		d := e.When.Sub(p.started)
		if d < 0 {
			d = 0
		}
		e.Duration = d
		e.DurationMS = float64(d) / float64(time.Millisecond)
	}
	delete(s.pending, key)
	s.ring.Append(e)
}

// Len returns the number of stored events.
func (s *NetworkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Len()
}

// PendingCount returns the number of in-flight correlation records.
func (s *NetworkStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Query returns up to limit filtered events in most-recent-first order,
// along with the unfiltered and filtered counts. The filter's URL
// pattern must already be compiled.
func (s *NetworkStore) Query(filter NetworkFilter, limit int) NetworkReport {
	s.mu.Lock()
	events := s.ring.Snapshot()
	s.mu.Unlock()

	return buildNetworkReport(events, filter, limit)
}

// QueryAndClear atomically snapshots and empties the store, including
// pending correlation records, so events appended by capture callbacks
// are either reported or retained, never silently dropped between the
// read and the clear.
func (s *NetworkStore) QueryAndClear(filter NetworkFilter, limit int) NetworkReport {
	s.mu.Lock()
	events := s.ring.Snapshot()
	s.ring.Clear()
	s.pending = make(map[string]pendingExchange)
	s.mu.Unlock()

	return buildNetworkReport(events, filter, limit)
}

func buildNetworkReport(events []NetworkEvent, filter NetworkFilter, limit int) NetworkReport {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	matched := make([]NetworkEvent, 0, len(events))
	for _, e := range events {
		if filter.Match(e) {
			matched = append(matched, e)
		}
	}

	report := NetworkReport{
		Total:   len(events),
		Matched: len(matched),
	}
	report.Entries = newestFirst(matched, limit)
	return report
}

// Clear empties the store and discards all pending correlation records.
func (s *NetworkStore) Clear() {
	s.mu.Lock()
	s.ring.Clear()
	s.pending = make(map[string]pendingExchange)
	s.mu.Unlock()
}
