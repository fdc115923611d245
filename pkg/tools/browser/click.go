package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/tools"
)

// ClickTool clicks an element addressed by CSS selector.
type ClickTool struct {
	*deps
}

// ClickInput represents the click parameters.
type ClickInput struct {
	Selector string `json:"selector"`
}

func (t *ClickTool) Name() string {
	return "browser_click"
}

func (t *ClickTool) Description() string {
	return "Click an element identified by a CSS selector. If the selector matches multiple elements, the first match is clicked."
}

func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to click",
			},
		},
		[]string{"selector"},
	)
}

func (t *ClickTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input ClickInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Selector == "" {
		return tools.Errorf("selector is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.Click(input.Selector)), nil
}

// ClickTextTool clicks an element carrying the given visible text.
type ClickTextTool struct {
	*deps
}

// ClickTextInput represents the text-click parameters.
type ClickTextInput struct {
	Text string `json:"text"`
}

func (t *ClickTextTool) Name() string {
	return "browser_click_text"
}

func (t *ClickTextTool) Description() string {
	return "Click an element by its visible text. Partial matches count; the first match wins when several elements carry the text."
}

func (t *ClickTextTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Visible text of the element to click",
			},
		},
		[]string{"text"},
	)
}

func (t *ClickTextTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input ClickTextInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Text == "" {
		return tools.Errorf("text is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.ClickText(input.Text)), nil
}
