// Package config provides section-based YAML configuration for
// PagePilot. Each subsystem registers a Section with the Manager; the
// FileStore persists all sections to a single file, by default
// ~/.pagepilot/config.yaml. Missing files and unknown keys are not
// errors, so a fresh install runs entirely on defaults.
package config

import "fmt"

// LoadBrowser builds a browser section from the config file at path
// (empty path means the default location), applying defaults for
// anything absent.
func LoadBrowser(path string) (*BrowserSection, error) {
	store, err := NewFileStore(path)
	if err != nil {
		return nil, err
	}

	manager := NewManager(store)
	section := NewBrowserSection()
	if err := manager.RegisterSection(section); err != nil {
		return nil, err
	}
	if err := manager.LoadAll(); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}
	return section, nil
}
