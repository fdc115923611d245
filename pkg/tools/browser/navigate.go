package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/tools"
)

// NavigateTool loads a URL in the active session.
type NavigateTool struct {
	*deps
}

// NavigateInput represents the navigation parameters.
type NavigateInput struct {
	URL string `json:"url"`
}

func (t *NavigateTool) Name() string {
	return "browser_navigate"
}

func (t *NavigateTool) Description() string {
	return "Navigate the browser to a URL and wait for the page to load."
}

func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to navigate to (must include protocol, e.g., https://example.com)",
			},
		},
		[]string{"url"},
	)
}

func (t *NavigateTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input NavigateInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.URL == "" {
		return tools.Errorf("url is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.Navigate(input.URL)), nil
}
