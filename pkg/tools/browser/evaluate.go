package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/embermark/pagepilot/pkg/tools"
)

// EvaluateTool runs JavaScript in the page context.
type EvaluateTool struct {
	*deps
}

// EvaluateInput represents the evaluation parameters.
type EvaluateInput struct {
	Script string `json:"script"`
}

func (t *EvaluateTool) Name() string {
	return "browser_evaluate"
}

func (t *EvaluateTool) Description() string {
	return "Run JavaScript in the page context and return the serialized result together with any console output the script produced."
}

func (t *EvaluateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"script": map[string]interface{}{
				"type":        "string",
				"description": "JavaScript expression or IIFE to evaluate in the page",
			},
		},
		[]string{"script"},
	)
}

func (t *EvaluateTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input EvaluateInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	if input.Script == "" {
		return tools.Errorf("script is required"), nil
	}
	if res := t.requireSession(); res != nil {
		return res, nil
	}

	result, out := t.executor.Evaluate(input.Script)
	if !out.OK() {
		return tools.Errorf("%s", out.Message()), nil
	}

	value, err := json.MarshalIndent(result.Value, "", "  ")
	if err != nil {
		value = []byte(fmt.Sprintf("%v", result.Value))
	}

	text := fmt.Sprintf("Result:\n%s", value)
	if len(result.Console) > 0 {
		text += fmt.Sprintf("\n\nConsole output:\n%s", strings.Join(result.Console, "\n"))
	}
	return tools.TextResult(text), nil
}
