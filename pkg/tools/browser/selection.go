package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/tools"
)

// SelectTool chooses an option in a select element by CSS selector.
type SelectTool struct {
	*deps
}

// SelectInput represents the select parameters.
type SelectInput struct {
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

func (t *SelectTool) Name() string {
	return "browser_select"
}

func (t *SelectTool) Description() string {
	return "Select the option with the given value in a select element identified by a CSS selector."
}

func (t *SelectTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the select element",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Value attribute of the option to select",
			},
		},
		[]string{"selector", "value"},
	)
}

func (t *SelectTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input SelectInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Selector == "" {
		return tools.Errorf("selector is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.Select(input.Selector, input.Value)), nil
}

// SelectTextTool chooses an option in a select element found by its
// visible text.
type SelectTextTool struct {
	*deps
}

// SelectTextInput represents the text-select parameters.
type SelectTextInput struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

func (t *SelectTextTool) Name() string {
	return "browser_select_text"
}

func (t *SelectTextTool) Description() string {
	return "Select an option by value in the select element carrying the given visible text."
}

func (t *SelectTextTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Visible text identifying the select element",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Value attribute of the option to select",
			},
		},
		[]string{"text", "value"},
	)
}

func (t *SelectTextTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input SelectTextInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Text == "" {
		return tools.Errorf("text is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.SelectText(input.Text, input.Value)), nil
}
