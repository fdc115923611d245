package config

import (
	"fmt"
	"sync"
)

// Section is a registrable group of related settings. Sections own
// their defaults and validation; the manager handles persistence.
type Section interface {
	// ID returns the unique section identifier used as the storage key
	ID() string

	// Data returns the current configuration data for persistence
	Data() map[string]interface{}

	// SetData updates the section from loaded data. Unknown keys are
	// ignored for forward compatibility.
	SetData(data map[string]interface{}) error

	// Validate checks the section's current values
	Validate() error
}

// Manager coordinates configuration sections with a backing store.
type Manager struct {
	store    Store
	sections map[string]Section
	mu       sync.RWMutex
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// RegisterSection adds a section to the manager. Registering the same
// ID twice is an error.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}
	m.sections[id] = section
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	section, ok := m.sections[id]
	return section, ok
}

// LoadAll pushes stored data into every registered section and
// validates the result.
func (m *Manager) LoadAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, section := range m.sections {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to load section %q: %w", id, err)
		}
		if data != nil {
			if err := section.SetData(data); err != nil {
				return fmt.Errorf("failed to apply section %q: %w", id, err)
			}
		}
		if err := section.Validate(); err != nil {
			return fmt.Errorf("invalid configuration in section %q: %w", id, err)
		}
	}
	return nil
}

// SaveAll writes every registered section back through the store.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, section := range m.sections {
		if err := m.store.SetSection(id, section.Data()); err != nil {
			return fmt.Errorf("failed to stage section %q: %w", id, err)
		}
	}
	return m.store.Save()
}
