package browser

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/embermark/pagepilot/pkg/eventlog"
)

// installCapture subscribes the log stores to a page's event streams.
// Called once per page: on launch/attach and again whenever the page is
// recreated. Callbacks run on Playwright's event goroutine and may
// interleave with queries; the stores serialize internally.
func (m *Manager) installCapture(page playwright.Page) {
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		text := msg.Text()
		m.console.Append(eventlog.ConsoleEntry{
			When: time.Now(),
			Kind: msg.Type(),
			Text: text,
		})
		m.tap.observe(text)
	})

	page.OnRequest(func(req playwright.Request) {
		m.network.BeginExchange(uuid.NewString(), req.Method(), req.URL(), req.ResourceType(), time.Now())
	})

	page.OnResponse(func(resp playwright.Response) {
		req := resp.Request()
		m.network.CompleteExchange(req.Method(), resp.URL(), req.ResourceType(), resp.Status(), resp.StatusText(), time.Now())
	})

	page.OnRequestFailed(func(req playwright.Request) {
		failure := "request failed"
		if err := req.Failure(); err != nil {
			failure = err.Error()
		}
		m.network.FailExchange(req.Method(), req.URL(), req.ResourceType(), failure, time.Now())
	})
}

// consoleTap is a transient side-channel collecting console output
// produced while a script evaluation runs. Only one tap is active at a
// time; activating a new one discards the previous collection.
type consoleTap struct {
	mu     sync.Mutex
	active bool
	lines  []string
}

func (t *consoleTap) observe(line string) {
	t.mu.Lock()
	if t.active {
		t.lines = append(t.lines, line)
	}
	t.mu.Unlock()
}

func (t *consoleTap) start() {
	t.mu.Lock()
	t.active = true
	t.lines = nil
	t.mu.Unlock()
}

func (t *consoleTap) stop() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
	lines := t.lines
	t.lines = nil
	return lines
}

// TapConsole starts collecting console output and returns a stop
// function yielding the lines observed in between. Used by script
// evaluation to report output alongside the result.
func (m *Manager) TapConsole() func() []string {
	m.tap.start()
	return m.tap.stop
}
