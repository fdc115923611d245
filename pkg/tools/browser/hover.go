package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/tools"
)

// HoverTool moves the pointer over an element by CSS selector.
type HoverTool struct {
	*deps
}

// HoverInput represents the hover parameters.
type HoverInput struct {
	Selector string `json:"selector"`
}

func (t *HoverTool) Name() string {
	return "browser_hover"
}

func (t *HoverTool) Description() string {
	return "Hover the pointer over an element identified by a CSS selector, triggering hover states and tooltips."
}

func (t *HoverTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to hover",
			},
		},
		[]string{"selector"},
	)
}

func (t *HoverTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input HoverInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Selector == "" {
		return tools.Errorf("selector is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.Hover(input.Selector)), nil
}

// HoverTextTool moves the pointer over an element by visible text.
type HoverTextTool struct {
	*deps
}

// HoverTextInput represents the text-hover parameters.
type HoverTextInput struct {
	Text string `json:"text"`
}

func (t *HoverTextTool) Name() string {
	return "browser_hover_text"
}

func (t *HoverTextTool) Description() string {
	return "Hover the pointer over the element carrying the given visible text."
}

func (t *HoverTextTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Visible text of the element to hover",
			},
		},
		[]string{"text"},
	)
}

func (t *HoverTextTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input HoverTextInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Text == "" {
		return tools.Errorf("text is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.HoverText(input.Text)), nil
}
