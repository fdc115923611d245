package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/embermark/pagepilot/pkg/config"
	"github.com/embermark/pagepilot/pkg/eventlog"
	"github.com/embermark/pagepilot/pkg/logging"
)

// Manager owns the single browser session and coordinates launch,
// attach, implicit recovery, and teardown. All session mutation happens
// behind one mutex; capture callbacks synchronize on the stores
// themselves.
type Manager struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	session *Session

	console   *eventlog.ConsoleStore
	network   *eventlog.NetworkStore
	artifacts *ArtifactStore
	tap       *consoleTap
	notifier  Notifier

	cfg    *config.BrowserSection
	logger *logging.Logger
}

// NewManager creates a session manager. A nil notifier disables change
// notifications.
func NewManager(cfg *config.BrowserSection, logger *logging.Logger, notifier Notifier) *Manager {
	if cfg == nil {
		cfg = config.NewBrowserSection()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}

	m := &Manager{
		console:   eventlog.NewConsoleStore(cfg.ConsoleCapacity),
		network:   eventlog.NewNetworkStore(cfg.NetworkCapacity),
		artifacts: NewArtifactStore(notifier),
		tap:       &consoleTap{},
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
	m.console.OnUpdated(notifier.ConsoleUpdated)
	return m
}

// Console returns the diagnostic message store.
func (m *Manager) Console() *eventlog.ConsoleStore { return m.console }

// Network returns the network event store.
func (m *Manager) Network() *eventlog.NetworkStore { return m.network }

// Artifacts returns the screenshot artifact store. Artifacts persist
// across session close.
func (m *Manager) Artifacts() *ArtifactStore { return m.artifacts }

// ensureRuntime starts the Playwright driver process on first use.
func (m *Manager) ensureRuntime() error {
	if m.pw != nil {
		return nil
	}

	// Driver output is discarded so it cannot pollute the host
	// transport on stdout.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}
	m.pw = pw
	return nil
}

func (m *Manager) browserType(engine EngineKind) playwright.BrowserType {
	switch engine {
	case EngineFirefox:
		return m.pw.Firefox
	case EngineWebKit:
		return m.pw.WebKit
	default:
		return m.pw.Chromium
	}
}

// Launch starts a fresh browser session or attaches to a running one.
// Option validation happens before any existing session is disturbed;
// a valid request fully tears down the previous session first.
func (m *Manager) Launch(opts LaunchOptions) (string, error) {
	if opts.Engine == "" {
		engine, err := ParseEngineKind(m.cfg.Engine)
		if err != nil {
			return "", err
		}
		opts.Engine = engine
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureRuntime(); err != nil {
		return "", err
	}

	m.closeLocked()

	session, err := m.openSession(opts)
	if err != nil {
		return "", err
	}
	m.session = session

	m.logger.Infof("session started: %s", session.Describe())
	return fmt.Sprintf("Browser session started: %s", session.Describe()), nil
}

// openSession builds the browser/context/page triple and installs event
// capture. On any step's failure the already-created handles are closed.
func (m *Manager) openSession(opts LaunchOptions) (*Session, error) {
	var (
		browser playwright.Browser
		err     error
	)

	if opts.attached() {
		endpoint := opts.CDPEndpoint
		if endpoint == "" {
			endpoint = fmt.Sprintf("http://127.0.0.1:%d", opts.DebugPort)
		}
		browser, err = m.pw.Chromium.ConnectOverCDP(endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
		}
	} else {
		launchOpts := playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(opts.Headless),
		}
		if opts.WindowPosition != nil && opts.Engine == EngineChromium {
			launchOpts.Args = []string{
				fmt.Sprintf("--window-position=%d,%d", opts.WindowPosition.X, opts.WindowPosition.Y),
			}
		}
		browser, err = m.browserType(opts.Engine).Launch(launchOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to launch %s: %w", opts.Engine, err)
		}
	}

	context, err := m.obtainContext(browser, opts)
	if err != nil {
		browser.Close()
		return nil, err
	}

	page, err := m.obtainPage(context, opts.attached())
	if err != nil {
		context.Close()
		browser.Close()
		return nil, err
	}

	m.installCapture(page)

	return &Session{
		Browser:  browser,
		Context:  context,
		Page:     page,
		Driver:   NewPageDriver(page),
		Engine:   opts.Engine,
		Attached: opts.attached(),
		Headless: opts.Headless,
	}, nil
}

// obtainContext reuses the first existing context when attached,
// otherwise creates one with the requested viewport.
func (m *Manager) obtainContext(browser playwright.Browser, opts LaunchOptions) (playwright.BrowserContext, error) {
	if opts.attached() {
		if contexts := browser.Contexts(); len(contexts) > 0 {
			return contexts[0], nil
		}
	}

	viewport := opts.Viewport
	if viewport == nil {
		viewport = &Viewport{Width: m.cfg.ViewportWidth, Height: m.cfg.ViewportHeight}
	}
	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: viewport.Width, Height: viewport.Height},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	return context, nil
}

// obtainPage reuses an attached context's first page when present.
func (m *Manager) obtainPage(context playwright.BrowserContext, attached bool) (playwright.Page, error) {
	if attached {
		if pages := context.Pages(); len(pages) > 0 {
			return pages[0], nil
		}
	}
	page, err := context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

// Close tears down the current session. Idempotent: closing with no
// active session is a no-op, not an error.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
	return nil
}

// closeLocked closes page, context, and browser in that order. Each
// step's failure is logged and swallowed so the next step always runs.
// Both log buffers and pending correlations are cleared.
func (m *Manager) closeLocked() {
	s := m.session
	if s == nil {
		return
	}
	m.session = nil

	if err := s.Page.Close(); err != nil {
		m.logger.Warnf("page close failed: %v", err)
	}
	if err := s.Context.Close(); err != nil {
		m.logger.Warnf("context close failed: %v", err)
	}
	if err := s.Browser.Close(); err != nil {
		m.logger.Warnf("browser close failed: %v", err)
	}

	m.console.Clear()
	m.network.Clear()
	m.logger.Infof("session closed")
}

// EnsureActive returns the live session, implicitly launching a default
// one when absent and recreating the page when it was closed
// externally.
func (m *Manager) EnsureActive() (*Session, error) {
	m.mu.Lock()
	if m.session != nil && !m.session.Page.IsClosed() {
		s := m.session
		m.mu.Unlock()
		return s, nil
	}

	if m.session != nil {
		// Browser and context survive; only the page went away.
		page, err := m.session.Context.NewPage()
		if err == nil {
			m.installCapture(page)
			m.session.Page = page
			m.session.Driver = NewPageDriver(page)
			s := m.session
			m.mu.Unlock()
			m.logger.Infof("page recreated for active session")
			return s, nil
		}
		m.logger.Warnf("page recreation failed, relaunching: %v", err)
		m.closeLocked()
	}
	m.mu.Unlock()

	engine, err := ParseEngineKind(m.cfg.Engine)
	if err != nil {
		engine = EngineChromium
	}
	if _, err := m.Launch(LaunchOptions{Engine: engine, Headless: m.cfg.Headless}); err != nil {
		return nil, fmt.Errorf("implicit launch failed: %w", err)
	}

	m.mu.Lock()
	s := m.session
	m.mu.Unlock()
	return s, nil
}

// ActiveDriver is the SessionHost implementation used by the action
// executor.
func (m *Manager) ActiveDriver() (PageDriver, error) {
	s, err := m.EnsureActive()
	if err != nil {
		return nil, err
	}
	return s.Driver, nil
}

// Active returns the current session without side effects, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Shutdown closes the session and stops the Playwright runtime.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked()
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.pw = nil
	}
	return nil
}
