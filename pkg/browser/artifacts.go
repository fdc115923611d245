package browser

import (
	"fmt"
	"sort"
	"sync"
)

// Notifier receives change signals for the resource-listing surface:
// one after every console append, one after every new screenshot
// artifact.
type Notifier interface {
	ConsoleUpdated()
	ArtifactsChanged()
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) ConsoleUpdated()   {}
func (NopNotifier) ArtifactsChanged() {}

// ArtifactStore holds named screenshot payloads. Re-using a name
// overwrites the prior artifact. Artifacts deliberately survive session
// close; they live until process exit.
type ArtifactStore struct {
	mu       sync.RWMutex
	images   map[string][]byte
	notifier Notifier
}

// NewArtifactStore creates an artifact store. A nil notifier disables
// change signals.
func NewArtifactStore(notifier Notifier) *ArtifactStore {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ArtifactStore{
		images:   make(map[string][]byte),
		notifier: notifier,
	}
}

// Put stores a PNG payload under name, overwriting any prior artifact.
// The change signal fires only when the name is new; an overwrite does
// not alter the artifact listing.
func (s *ArtifactStore) Put(name string, png []byte) {
	s.mu.Lock()
	_, existed := s.images[name]
	s.images[name] = png
	s.mu.Unlock()

	if !existed {
		s.notifier.ArtifactsChanged()
	}
}

// Get retrieves an artifact by name.
func (s *ArtifactStore) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	png, ok := s.images[name]
	if !ok {
		return nil, fmt.Errorf("no screenshot named %q", name)
	}
	return png, nil
}

// Names returns the stored artifact names in sorted order.
func (s *ArtifactStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored artifacts.
func (s *ArtifactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
