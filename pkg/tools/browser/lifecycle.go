package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/browser"
	"github.com/embermark/pagepilot/pkg/tools"
)

// LaunchTool starts a browser session or attaches to a running one.
type LaunchTool struct {
	*deps
}

// LaunchInput represents the launch parameters.
type LaunchInput struct {
	BrowserType    string                  `json:"browserType"`
	Headless       bool                    `json:"headless"`
	CDPEndpoint    string                  `json:"cdpEndpoint"`
	DebugPort      int                     `json:"debugPort"`
	Viewport       *browser.Viewport       `json:"viewport"`
	WindowPosition *browser.WindowPosition `json:"windowPosition"`
}

func (t *LaunchTool) Name() string {
	return "browser_launch"
}

func (t *LaunchTool) Description() string {
	return "Launch a browser session, or attach to a running Chromium via its remote debugging endpoint. Any existing session is closed first."
}

func (t *LaunchTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"browserType": map[string]interface{}{
				"type":        "string",
				"description": "Browser engine: 'chromium' (default), 'firefox', or 'webkit'",
			},
			"headless": map[string]interface{}{
				"type":        "boolean",
				"description": "Run without a visible window (default false)",
			},
			"cdpEndpoint": map[string]interface{}{
				"type":        "string",
				"description": "Attach to a running Chromium at this CDP endpoint instead of launching. Chromium only; mutually exclusive with debugPort",
			},
			"debugPort": map[string]interface{}{
				"type":        "integer",
				"description": "Attach to localhost on this remote debugging port. Chromium only; mutually exclusive with cdpEndpoint",
			},
			"viewport": map[string]interface{}{
				"type":        "object",
				"description": "Page viewport size as {width, height}",
			},
			"windowPosition": map[string]interface{}{
				"type":        "object",
				"description": "Window screen position as {x, y} (headed launch only)",
			},
		},
		nil,
	)
}

func (t *LaunchTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input LaunchInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}

	engine, err := browser.ParseEngineKind(input.BrowserType)
	if err != nil {
		return tools.Errorf("%v", err), nil
	}

	desc, err := t.host.Launch(browser.LaunchOptions{
		Engine:         engine,
		Headless:       input.Headless,
		CDPEndpoint:    input.CDPEndpoint,
		DebugPort:      input.DebugPort,
		Viewport:       input.Viewport,
		WindowPosition: input.WindowPosition,
	})
	if err != nil {
		return tools.Errorf("failed to launch browser: %v", err), nil
	}
	return tools.TextResult(desc), nil
}

// CloseTool tears down the current browser session.
type CloseTool struct {
	*deps
}

func (t *CloseTool) Name() string {
	return "browser_close"
}

func (t *CloseTool) Description() string {
	return "Close the current browser session. Closing when no session is active is a no-op."
}

func (t *CloseTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{}, nil)
}

func (t *CloseTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	if err := t.host.Close(); err != nil {
		return tools.Errorf("failed to close browser: %v", err), nil
	}
	return tools.TextResult("Browser session closed."), nil
}
