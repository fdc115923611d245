package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/tools"
)

// ScreenshotTool captures the page or a single element as a named PNG
// artifact.
type ScreenshotTool struct {
	*deps
}

// ScreenshotInput represents the screenshot parameters.
type ScreenshotInput struct {
	Name     string `json:"name"`
	Selector string `json:"selector"`
	FullPage bool   `json:"fullPage"`
}

func (t *ScreenshotTool) Name() string {
	return "browser_screenshot"
}

func (t *ScreenshotTool) Description() string {
	return "Capture a screenshot of the page (viewport or full page) or of a single element, stored as a named artifact. Reusing a name overwrites the previous screenshot."
}

func (t *ScreenshotTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Artifact name to store the screenshot under",
			},
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of an element to capture instead of the page",
			},
			"fullPage": map[string]interface{}{
				"type":        "boolean",
				"description": "Capture the full scrollable page instead of the viewport (ignored when selector is set)",
			},
		},
		[]string{"name"},
	)
}

func (t *ScreenshotTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input ScreenshotInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Name == "" {
		return tools.Errorf("name is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}

	out := t.executor.Screenshot(input.Name, input.Selector, input.FullPage)
	if !out.OK() {
		return tools.Errorf("%s", out.Message()), nil
	}

	png, err := t.host.Artifacts().Get(input.Name)
	if err != nil {
		return tools.Errorf("screenshot stored but could not be read back: %v", err), nil
	}
	return tools.ImageResult(out.Message(), png), nil
}
