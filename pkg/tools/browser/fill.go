package browser

import (
	"context"
	"encoding/json"

	"github.com/embermark/pagepilot/pkg/tools"
)

// FillTool types a value into an input element.
type FillTool struct {
	*deps
}

// FillInput represents the fill parameters.
type FillInput struct {
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

func (t *FillTool) Name() string {
	return "browser_fill"
}

func (t *FillTool) Description() string {
	return "Type a value into an input or textarea identified by a CSS selector. The field is cleared first and the value is typed character by character so input-event listeners fire."
}

func (t *FillTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the input to fill",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Text to type into the input",
			},
		},
		[]string{"selector", "value"},
	)
}

func (t *FillTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input FillInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Selector == "" {
		return tools.Errorf("selector is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}
	return outcomeResult(t.executor.Fill(input.Selector, input.Value)), nil
}
