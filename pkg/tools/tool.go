package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Tool represents a remotely invokable browser capability. Tools are
// dispatched by name with a JSON arguments payload.
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "browser_click")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given JSON arguments. Expected
	// operational failures are reported inside the Result with IsError
	// set; a non-nil error is reserved for faults the tool could not
	// express as a result (the dispatcher converts those too).
	Execute(ctx context.Context, args json.RawMessage) (*Result, error)
}

// Content is one block of a tool result: text, or a base64 image.
type Content struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Result is the envelope every tool invocation returns. Failures
// travel inside the envelope, not as transport faults.
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextResult wraps a plain text payload in a success envelope.
func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}}
}

// Errorf builds a failure envelope from a format string.
func Errorf(format string, args ...interface{}) *Result {
	return &Result{
		Content: []Content{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// ImageResult wraps PNG bytes and a caption in a success envelope.
func ImageResult(caption string, png []byte) *Result {
	return &Result{Content: []Content{
		{Type: "text", Text: caption},
		{Type: "image", Data: base64.StdEncoding.EncodeToString(png), MimeType: "image/png"},
	}}
}

// JSONResult marshals v and wraps it in a success envelope. A marshal
// fault becomes a failure envelope.
func JSONResult(v interface{}) *Result {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Errorf("failed to encode result: %v", err)
	}
	return TextResult(string(data))
}

// Text returns the concatenated text blocks of the result.
func (r *Result) Text() string {
	var out string
	for _, c := range r.Content {
		if c.Type == "text" {
			if out != "" {
				out += "\n"
			}
			out += c.Text
		}
	}
	return out
}

// BaseToolSchema builds a standard JSON schema object from property
// definitions and a required list.
func BaseToolSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	if required == nil {
		required = []string{}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
