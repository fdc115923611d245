package browser

import (
	"encoding/json"
	"fmt"

	"github.com/embermark/pagepilot/pkg/browser"
	"github.com/embermark/pagepilot/pkg/eventlog"
	"github.com/embermark/pagepilot/pkg/logging"
	"github.com/embermark/pagepilot/pkg/tools"
)

// Host is the session surface the tools drive. *browser.Manager is the
// production implementation.
type Host interface {
	Launch(opts browser.LaunchOptions) (string, error)
	Close() error
	EnsureActive() (*browser.Session, error)
	Console() *eventlog.ConsoleStore
	Network() *eventlog.NetworkStore
	Artifacts() *browser.ArtifactStore
}

// deps bundles what every tool needs.
type deps struct {
	host     Host
	executor *browser.Executor
	logger   *logging.Logger
}

// requireSession enforces the active-session precondition shared by all
// non-lifecycle tools. A failed implicit launch comes back as a failure
// envelope.
func (d *deps) requireSession() *tools.Result {
	if _, err := d.host.EnsureActive(); err != nil {
		return tools.Errorf("browser session unavailable: %v", err)
	}
	return nil
}

// NewToolSet builds the complete tool suite over a session host and its
// action executor.
func NewToolSet(host Host, executor *browser.Executor, logger *logging.Logger) []tools.Tool {
	if logger == nil {
		logger = logging.Nop()
	}
	d := &deps{host: host, executor: executor, logger: logger}

	return []tools.Tool{
		&LaunchTool{deps: d},
		&CloseTool{deps: d},
		&NavigateTool{deps: d},
		&ScreenshotTool{deps: d},
		&ClickTool{deps: d},
		&ClickTextTool{deps: d},
		&FillTool{deps: d},
		&SelectTool{deps: d},
		&SelectTextTool{deps: d},
		&HoverTool{deps: d},
		&HoverTextTool{deps: d},
		&EvaluateTool{deps: d},
		&GetLogsTool{deps: d},
		&ExtractContentTool{deps: d},
	}
}

// decodeArgs unmarshals a JSON arguments payload. An empty payload
// decodes to the zero input.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// outcomeResult converts an action outcome into the result envelope.
func outcomeResult(out browser.ActionOutcome) *tools.Result {
	if !out.OK() {
		return tools.Errorf("%s", out.Message())
	}
	return tools.TextResult(out.Message())
}
