package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/embermark/pagepilot/pkg/browser"
	"github.com/embermark/pagepilot/pkg/tools"
)

// ExtractContentTool returns the page's visible text, cleaned of
// markup, scripts, and styling.
type ExtractContentTool struct {
	*deps
}

// ExtractContentInput represents the extraction parameters.
type ExtractContentInput struct {
	Selector  string `json:"selector"`
	MaxLength int    `json:"maxLength"`
}

func (t *ExtractContentTool) Name() string {
	return "browser_extract_content"
}

func (t *ExtractContentTool) Description() string {
	return "Extract the visible text content of the current page, or of a single element, with scripts and styling stripped. Long content is truncated."
}

func (t *ExtractContentTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector scoping extraction to one element (default: whole page)",
			},
			"maxLength": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum characters of text to return (default 10000)",
			},
		},
		nil,
	)
}

func (t *ExtractContentTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input ExtractContentInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}
	session, err := t.host.EnsureActive()
	if err != nil {
		return tools.Errorf("browser session unavailable: %v", err), nil
	}
	driver := session.Driver

	raw, err := t.pageHTML(driver, input.Selector)
	if err != nil {
		return tools.Errorf("failed to read page content: %v", err), nil
	}

	content, err := browser.ExtractContent(raw, input.MaxLength)
	if err != nil {
		return tools.Errorf("failed to extract content: %v", err), nil
	}

	text := content.Text
	if content.Title != "" {
		text = fmt.Sprintf("Title: %s\n\n%s", content.Title, text)
	}
	return tools.TextResult(text), nil
}

// pageHTML fetches the full document, or one element's outer HTML when
// a selector is given.
func (t *ExtractContentTool) pageHTML(driver browser.PageDriver, selector string) (string, error) {
	if selector == "" {
		return driver.Content()
	}

	script := fmt.Sprintf("(() => { const el = document.querySelector(%q); return el ? el.outerHTML : null; })()", selector)
	value, err := driver.Evaluate(script)
	if err != nil {
		return "", err
	}
	html, ok := value.(string)
	if !ok || html == "" {
		return "", fmt.Errorf("no element matches %q", selector)
	}
	return html, nil
}
