package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// EngineKind identifies the browser engine family behind a session.
type EngineKind string

const (
	EngineChromium EngineKind = "chromium"
	EngineFirefox  EngineKind = "firefox"
	EngineWebKit   EngineKind = "webkit"
)

// ParseEngineKind normalizes a caller-supplied engine name. Empty means
// chromium.
func ParseEngineKind(name string) (EngineKind, error) {
	switch name {
	case "", "chromium", "chrome":
		return EngineChromium, nil
	case "firefox":
		return EngineFirefox, nil
	case "webkit":
		return EngineWebKit, nil
	default:
		return "", fmt.Errorf("unsupported browser type %q (must be chromium, firefox, or webkit)", name)
	}
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowPosition represents the browser window's screen position.
type WindowPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LaunchOptions configures a launch or remote attach.
type LaunchOptions struct {
	// Engine selects the browser engine. Defaults to chromium.
	Engine EngineKind

	// Headless controls whether the browser runs without a window.
	Headless bool

	// CDPEndpoint attaches to a running chromium over its remote
	// debugging endpoint instead of launching a fresh process.
	// Mutually exclusive with DebugPort; chromium only.
	CDPEndpoint string

	// DebugPort attaches to localhost on the given remote debugging
	// port. Mutually exclusive with CDPEndpoint; chromium only.
	DebugPort int

	// Viewport sets the page viewport. Zero means the configured
	// default.
	Viewport *Viewport

	// WindowPosition positions the browser window (headed launch only).
	WindowPosition *WindowPosition
}

// Validate rejects unsupported option combinations. Called before any
// session state is touched.
func (o LaunchOptions) Validate() error {
	if o.CDPEndpoint != "" && o.DebugPort != 0 {
		return fmt.Errorf("cdpEndpoint and debugPort are mutually exclusive")
	}
	if o.CDPEndpoint != "" && o.Engine != EngineChromium {
		return fmt.Errorf("cdpEndpoint requires browserType chromium, got %q", o.Engine)
	}
	if o.DebugPort != 0 && o.Engine != EngineChromium {
		return fmt.Errorf("debugPort requires browserType chromium, got %q", o.Engine)
	}
	if o.DebugPort < 0 || o.DebugPort > 65535 {
		return fmt.Errorf("debugPort out of range: %d", o.DebugPort)
	}
	return nil
}

// attached reports whether the options describe a remote-debug attach
// rather than a fresh launch.
func (o LaunchOptions) attached() bool {
	return o.CDPEndpoint != "" || o.DebugPort != 0
}

// Session is the single owned browser+context+page triple under
// management. At most one Session exists per process; the Manager
// enforces that.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Driver is the capability-interface view of Page used by the
	// action executor
	Driver PageDriver

	// Engine records which engine family the session runs on
	Engine EngineKind

	// Attached is true when the session connected to an externally
	// launched browser over remote debugging
	Attached bool

	// Headless records the launch mode
	Headless bool
}

// Describe returns a human-readable summary of the session.
func (s *Session) Describe() string {
	mode := "launched"
	if s.Attached {
		mode = "attached via remote debugging"
	}
	visibility := "headed"
	if s.Headless {
		visibility = "headless"
	}
	return fmt.Sprintf("%s (%s, %s)", s.Engine, visibility, mode)
}
