package browser

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embermark/pagepilot/pkg/browser"
	"github.com/embermark/pagepilot/pkg/eventlog"
	"github.com/embermark/pagepilot/pkg/tools"
)

// fakeTarget scripts a locator's match count and records actions.
type fakeTarget struct {
	count     int
	clicks    int
	typed     []string
	selected  []string
	hovers    int
	shot      []byte
	firstUsed bool
}

func (t *fakeTarget) Count() (int, error) { return t.count, nil }

func (t *fakeTarget) First() browser.Target {
	t.firstUsed = true
	first := *t
	first.count = 1
	return &first
}

func (t *fakeTarget) Click() error { t.clicks++; return nil }

func (t *fakeTarget) Type(value string, delayMS float64) error {
	t.typed = append(t.typed, value)
	return nil
}

func (t *fakeTarget) SelectValue(value string) error {
	t.selected = append(t.selected, value)
	return nil
}

func (t *fakeTarget) Hover() error { t.hovers++; return nil }

func (t *fakeTarget) Screenshot() ([]byte, error) { return t.shot, nil }

// fakeDriver implements browser.PageDriver over scripted targets.
type fakeDriver struct {
	url        string
	title      string
	htmlSrc    string
	selectors  map[string]*fakeTarget
	texts      map[string]*fakeTarget
	evalResult interface{}
	evalErr    error
	shot       []byte
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		url:       "about:blank",
		selectors: make(map[string]*fakeTarget),
		texts:     make(map[string]*fakeTarget),
	}
}

func (d *fakeDriver) Navigate(url string) error { d.url = url; return nil }
func (d *fakeDriver) URL() string               { return d.url }
func (d *fakeDriver) Title() (string, error)    { return d.title, nil }

func (d *fakeDriver) BySelector(selector string) browser.Target {
	if t, ok := d.selectors[selector]; ok {
		return t
	}
	return &fakeTarget{}
}

func (d *fakeDriver) ByText(text string) browser.Target {
	if t, ok := d.texts[text]; ok {
		return t
	}
	return &fakeTarget{}
}

func (d *fakeDriver) Evaluate(script string) (interface{}, error) {
	return d.evalResult, d.evalErr
}

func (d *fakeDriver) Screenshot(fullPage bool) ([]byte, error) { return d.shot, nil }
func (d *fakeDriver) Content() (string, error)                 { return d.htmlSrc, nil }
func (d *fakeDriver) IsClosed() bool                           { return false }

// fakeHost implements both Host and browser.SessionHost so one fixture
// serves the tools and the executor behind them.
type fakeHost struct {
	driver    *fakeDriver
	console   *eventlog.ConsoleStore
	network   *eventlog.NetworkStore
	artifacts *browser.ArtifactStore

	launchDesc string
	launchErr  error
	launched   []browser.LaunchOptions
	closes     int
	ensureErr  error
	tapLines   []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		driver:     newFakeDriver(),
		console:    eventlog.NewConsoleStore(50),
		network:    eventlog.NewNetworkStore(50),
		artifacts:  browser.NewArtifactStore(nil),
		launchDesc: "Browser session started: chromium (headed, launched)",
	}
}

func (h *fakeHost) Launch(opts browser.LaunchOptions) (string, error) {
	if h.launchErr != nil {
		return "", h.launchErr
	}
	h.launched = append(h.launched, opts)
	return h.launchDesc, nil
}

func (h *fakeHost) Close() error { h.closes++; return nil }

func (h *fakeHost) EnsureActive() (*browser.Session, error) {
	if h.ensureErr != nil {
		return nil, h.ensureErr
	}
	return &browser.Session{Driver: h.driver, Engine: browser.EngineChromium}, nil
}

func (h *fakeHost) Console() *eventlog.ConsoleStore   { return h.console }
func (h *fakeHost) Network() *eventlog.NetworkStore   { return h.network }
func (h *fakeHost) Artifacts() *browser.ArtifactStore { return h.artifacts }

func (h *fakeHost) ActiveDriver() (browser.PageDriver, error) {
	if h.ensureErr != nil {
		return nil, h.ensureErr
	}
	return h.driver, nil
}

func (h *fakeHost) TapConsole() func() []string {
	return func() []string { return h.tapLines }
}

func newSuite(t *testing.T) (*fakeHost, map[string]tools.Tool) {
	t.Helper()
	host := newFakeHost()
	executor := browser.NewExecutor(host, host.artifacts, 25, nil)
	byName := make(map[string]tools.Tool)
	for _, tool := range NewToolSet(host, executor, nil) {
		byName[tool.Name()] = tool
	}
	return host, byName
}

func run(t *testing.T, tool tools.Tool, args string) *tools.Result {
	t.Helper()
	result, err := tool.Execute(context.Background(), json.RawMessage(args))
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestToolSet_CoversCatalog(t *testing.T) {
	_, suite := newSuite(t)

	expected := []string{
		"browser_launch", "browser_close", "browser_navigate",
		"browser_screenshot", "browser_click", "browser_click_text",
		"browser_fill", "browser_select", "browser_select_text",
		"browser_hover", "browser_hover_text", "browser_evaluate",
		"browser_get_logs", "browser_extract_content",
	}
	for _, name := range expected {
		tool, ok := suite[name]
		require.True(t, ok, "missing tool %s", name)
		assert.NotEmpty(t, tool.Description())
		assert.Equal(t, "object", tool.Schema()["type"])
	}
	assert.Len(t, suite, len(expected))
}

func TestLaunchTool_ForwardsOptions(t *testing.T) {
	host, suite := newSuite(t)

	result := run(t, suite["browser_launch"], `{
		"browserType": "firefox",
		"headless": true,
		"viewport": {"width": 800, "height": 600}
	}`)

	assert.False(t, result.IsError)
	require.Len(t, host.launched, 1)
	opts := host.launched[0]
	assert.Equal(t, browser.EngineFirefox, opts.Engine)
	assert.True(t, opts.Headless)
	require.NotNil(t, opts.Viewport)
	assert.Equal(t, 800, opts.Viewport.Width)
}

func TestLaunchTool_RejectsUnknownEngine(t *testing.T) {
	host, suite := newSuite(t)

	result := run(t, suite["browser_launch"], `{"browserType": "opera"}`)

	assert.True(t, result.IsError)
	assert.Empty(t, host.launched)
}

func TestLaunchTool_LaunchErrorBecomesEnvelope(t *testing.T) {
	host, suite := newSuite(t)
	host.launchErr = assert.AnError

	result := run(t, suite["browser_launch"], `{}`)

	assert.True(t, result.IsError)
}

func TestCloseTool(t *testing.T) {
	host, suite := newSuite(t)

	result := run(t, suite["browser_close"], `{}`)

	assert.False(t, result.IsError)
	assert.Equal(t, 1, host.closes)
}

func TestNavigateTool_RequiresURL(t *testing.T) {
	_, suite := newSuite(t)

	result := run(t, suite["browser_navigate"], `{}`)

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "url is required")
}

func TestNavigateTool(t *testing.T) {
	host, suite := newSuite(t)
	host.driver.title = "Example"

	result := run(t, suite["browser_navigate"], `{"url": "https://example.com"}`)

	assert.False(t, result.IsError)
	assert.Equal(t, "https://example.com", host.driver.url)
	assert.Contains(t, result.Text(), "Example")
}

func TestClickTool_AmbiguousMatchNamesSelector(t *testing.T) {
	host, suite := newSuite(t)
	target := &fakeTarget{count: 3}
	host.driver.selectors["button.cta"] = target

	result := run(t, suite["browser_click"], `{"selector": "button.cta"}`)

	assert.False(t, result.IsError)
	assert.True(t, target.firstUsed)
	assert.Contains(t, result.Text(), "button.cta")
}

func TestClickTool_NotFoundIsFailureEnvelope(t *testing.T) {
	_, suite := newSuite(t)

	result := run(t, suite["browser_click"], `{"selector": "#gone"}`)

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "#gone")
}

func TestFillTool(t *testing.T) {
	host, suite := newSuite(t)
	target := &fakeTarget{count: 1}
	host.driver.selectors["#email"] = target

	result := run(t, suite["browser_fill"], `{"selector": "#email", "value": "a@b.c"}`)

	assert.False(t, result.IsError)
	assert.Equal(t, []string{"a@b.c"}, target.typed)
}

func TestSelectTools(t *testing.T) {
	host, suite := newSuite(t)
	bySel := &fakeTarget{count: 1}
	byText := &fakeTarget{count: 1}
	host.driver.selectors["#lang"] = bySel
	host.driver.texts["Language"] = byText

	require.False(t, run(t, suite["browser_select"], `{"selector": "#lang", "value": "go"}`).IsError)
	assert.Equal(t, []string{"go"}, bySel.selected)

	require.False(t, run(t, suite["browser_select_text"], `{"text": "Language", "value": "rust"}`).IsError)
	assert.Equal(t, []string{"rust"}, byText.selected)
}

func TestHoverTools(t *testing.T) {
	host, suite := newSuite(t)
	bySel := &fakeTarget{count: 1}
	byText := &fakeTarget{count: 1}
	host.driver.selectors["#menu"] = bySel
	host.driver.texts["Products"] = byText

	require.False(t, run(t, suite["browser_hover"], `{"selector": "#menu"}`).IsError)
	assert.Equal(t, 1, bySel.hovers)

	require.False(t, run(t, suite["browser_hover_text"], `{"text": "Products"}`).IsError)
	assert.Equal(t, 1, byText.hovers)
}

func TestScreenshotTool_ReturnsInlineImage(t *testing.T) {
	host, suite := newSuite(t)
	host.driver.shot = []byte{0x89, 'P', 'N', 'G'}

	result := run(t, suite["browser_screenshot"], `{"name": "home"}`)

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 2)
	assert.Equal(t, "image", result.Content[1].Type)
	assert.Equal(t, "image/png", result.Content[1].MimeType)

	stored, err := host.artifacts.Get("home")
	require.NoError(t, err)
	assert.Equal(t, host.driver.shot, stored)
}

func TestScreenshotTool_RequiresName(t *testing.T) {
	_, suite := newSuite(t)

	result := run(t, suite["browser_screenshot"], `{}`)

	assert.True(t, result.IsError)
}

func TestEvaluateTool_IncludesConsoleOutput(t *testing.T) {
	host, suite := newSuite(t)
	host.driver.evalResult = map[string]interface{}{"sum": 3}
	host.tapLines = []string{"computing"}

	result := run(t, suite["browser_evaluate"], `{"script": "1+2"}`)

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), `"sum": 3`)
	assert.Contains(t, result.Text(), "computing")
}

func TestEvaluateTool_FaultBecomesEnvelope(t *testing.T) {
	host, suite := newSuite(t)
	host.driver.evalErr = assert.AnError

	result := run(t, suite["browser_evaluate"], `{"script": "oops()"}`)

	assert.True(t, result.IsError)
}

func TestExtractContentTool(t *testing.T) {
	host, suite := newSuite(t)
	host.driver.htmlSrc = `<html><head><title>Docs</title></head><body><script>x()</script><p>Welcome to the docs.</p></body></html>`

	result := run(t, suite["browser_extract_content"], `{}`)

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), "Docs")
	assert.Contains(t, result.Text(), "Welcome to the docs.")
	assert.NotContains(t, result.Text(), "x()")
}

func TestExtractContentTool_SelectorScoped(t *testing.T) {
	host, suite := newSuite(t)
	host.driver.evalResult = "<div><p>Sidebar text</p></div>"

	result := run(t, suite["browser_extract_content"], `{"selector": "#sidebar"}`)

	assert.False(t, result.IsError)
	assert.Contains(t, result.Text(), "Sidebar text")
}

func TestToolsRequireSession(t *testing.T) {
	host, suite := newSuite(t)
	host.ensureErr = assert.AnError

	for _, name := range []string{"browser_navigate", "browser_click", "browser_get_logs"} {
		args := `{"url": "https://x", "selector": "#x"}`
		result := run(t, suite[name], args)
		assert.True(t, result.IsError, "%s should fail without a session", name)
	}

	// Lifecycle tools bypass the precondition.
	assert.False(t, run(t, suite["browser_close"], `{}`).IsError)
}

func TestGetLogsTool_ConsoleFilterByType(t *testing.T) {
	host, suite := newSuite(t)
	now := time.Now()
	host.console.Append(eventlog.ConsoleEntry{When: now, Kind: "info", Text: "a"})
	host.console.Append(eventlog.ConsoleEntry{When: now, Kind: "error", Text: "b"})
	host.console.Append(eventlog.ConsoleEntry{When: now, Kind: "info", Text: "c"})

	result := run(t, suite["browser_get_logs"], `{
		"logTypes": ["console"],
		"filter": {"types": ["error"]}
	}`)

	assert.False(t, result.IsError)

	var output GetLogsOutput
	require.NoError(t, json.Unmarshal([]byte(result.Text()), &output))
	require.NotNil(t, output.Console)
	assert.Nil(t, output.Network)
	assert.Equal(t, 3, output.Console.Total)
	assert.Equal(t, 1, output.Console.Matched)
	require.Len(t, output.Console.Entries, 1)
	assert.Equal(t, "b", output.Console.Entries[0].Text)
}

func TestGetLogsTool_NetworkFilter(t *testing.T) {
	host, suite := newSuite(t)
	now := time.Now()
	host.network.BeginExchange("1", "GET", "https://api.test/users", "xhr", now)
	host.network.CompleteExchange("GET", "https://api.test/users", "xhr", 200, "OK", now.Add(time.Millisecond))
	host.network.BeginExchange("2", "POST", "https://api.test/users", "xhr", now)
	host.network.CompleteExchange("POST", "https://api.test/users", "xhr", 500, "Internal Server Error", now.Add(time.Millisecond))

	result := run(t, suite["browser_get_logs"], `{
		"logTypes": ["network"],
		"filter": {"statusMin": 500}
	}`)

	assert.False(t, result.IsError)

	var output GetLogsOutput
	require.NoError(t, json.Unmarshal([]byte(result.Text()), &output))
	require.NotNil(t, output.Network)

	statuses := make([]int, 0)
	for _, e := range output.Network.Entries {
		if e.Status != 0 {
			statuses = append(statuses, e.Status)
		}
	}
	assert.Equal(t, []int{500}, statuses)
}

func TestGetLogsTool_ClearReportsPreClearCounts(t *testing.T) {
	host, suite := newSuite(t)
	host.console.Append(eventlog.ConsoleEntry{When: time.Now(), Kind: "log", Text: "x"})

	result := run(t, suite["browser_get_logs"], `{"logTypes": ["console"], "clear": true}`)

	assert.False(t, result.IsError)

	var output GetLogsOutput
	require.NoError(t, json.Unmarshal([]byte(result.Text()), &output))
	assert.Equal(t, 1, output.Console.Total)
	assert.True(t, output.Cleared)
	assert.Equal(t, 0, host.console.Len())
}

func TestGetLogsTool_UnknownLogType(t *testing.T) {
	_, suite := newSuite(t)

	result := run(t, suite["browser_get_logs"], `{"logTypes": ["disk"]}`)

	assert.True(t, result.IsError)
	assert.Contains(t, result.Text(), "disk")
}

func TestGetLogsTool_InvalidURLPattern(t *testing.T) {
	_, suite := newSuite(t)

	result := run(t, suite["browser_get_logs"], `{"filter": {"urlPattern": "["}}`)

	assert.True(t, result.IsError)
}
