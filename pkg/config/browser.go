package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	// Default values for browser settings
	defaultEngine          = "chromium"
	defaultHeadless        = false
	defaultViewportWidth   = 1280
	defaultViewportHeight  = 720
	defaultTypingDelayMS   = 25
	defaultConsoleCapacity = 500
	defaultNetworkCapacity = 1000
	defaultQueryLimit      = 100
)

// BrowserSection manages browser automation configuration settings.
type BrowserSection struct {
	Engine          string `yaml:"engine"`
	Headless        bool   `yaml:"headless"`
	ViewportWidth   int    `yaml:"viewport_width"`
	ViewportHeight  int    `yaml:"viewport_height"`
	TypingDelayMS   int    `yaml:"typing_delay_ms"`
	ConsoleCapacity int    `yaml:"console_capacity"`
	NetworkCapacity int    `yaml:"network_capacity"`
	QueryLimit      int    `yaml:"query_limit"`
	mu              sync.RWMutex
}

// NewBrowserSection creates a browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Engine:          defaultEngine,
		Headless:        defaultHeadless,
		ViewportWidth:   defaultViewportWidth,
		ViewportHeight:  defaultViewportHeight,
		TypingDelayMS:   defaultTypingDelayMS,
		ConsoleCapacity: defaultConsoleCapacity,
		NetworkCapacity: defaultNetworkCapacity,
		QueryLimit:      defaultQueryLimit,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"engine":           s.Engine,
		"headless":         s.Headless,
		"viewport_width":   s.ViewportWidth,
		"viewport_height":  s.ViewportHeight,
		"typing_delay_ms":  s.TypingDelayMS,
		"console_capacity": s.ConsoleCapacity,
		"network_capacity": s.NetworkCapacity,
		"query_limit":      s.QueryLimit,
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "engine":
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for engine: expected string, got %T", value)
			}
			s.Engine = v

		case "headless":
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("invalid value type for headless: expected bool, got %T", value)
			}
			s.Headless = v

		case "viewport_width":
			v, err := asInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for viewport_width: %w", err)
			}
			s.ViewportWidth = v

		case "viewport_height":
			v, err := asInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for viewport_height: %w", err)
			}
			s.ViewportHeight = v

		case "typing_delay_ms":
			v, err := asInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for typing_delay_ms: %w", err)
			}
			s.TypingDelayMS = v

		case "console_capacity":
			v, err := asInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for console_capacity: %w", err)
			}
			s.ConsoleCapacity = v

		case "network_capacity":
			v, err := asInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for network_capacity: %w", err)
			}
			s.NetworkCapacity = v

		case "query_limit":
			v, err := asInt(value)
			if err != nil {
				return fmt.Errorf("invalid value for query_limit: %w", err)
			}
			s.QueryLimit = v

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.Engine {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("engine must be chromium, firefox, or webkit, got %q", s.Engine)
	}
	if s.ViewportWidth < 1 || s.ViewportHeight < 1 {
		return fmt.Errorf("viewport dimensions must be positive, got %dx%d", s.ViewportWidth, s.ViewportHeight)
	}
	if s.TypingDelayMS < 0 {
		return fmt.Errorf("typing_delay_ms must be non-negative, got %d", s.TypingDelayMS)
	}
	if s.ConsoleCapacity < 1 || s.NetworkCapacity < 1 {
		return fmt.Errorf("buffer capacities must be positive, got console=%d network=%d", s.ConsoleCapacity, s.NetworkCapacity)
	}
	if s.QueryLimit < 1 {
		return fmt.Errorf("query_limit must be positive, got %d", s.QueryLimit)
	}
	return nil
}

// asInt normalizes the numeric types the YAML decoder may produce.
func asInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", value)
	}
}
