package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/embermark/pagepilot/pkg/eventlog"
	"github.com/embermark/pagepilot/pkg/tools"
)

// GetLogsTool retrieves captured console and network logs.
type GetLogsTool struct {
	*deps
}

// LogFilterInput is the combined filter block of a get_logs request.
// Console clauses (types, search) and network clauses (methods,
// statuses, ...) apply to their respective stores.
type LogFilterInput struct {
	Types         []string `json:"types"`
	Search        string   `json:"search"`
	Methods       []string `json:"methods"`
	Statuses      []int    `json:"statuses"`
	StatusMin     *int     `json:"statusMin"`
	StatusMax     *int     `json:"statusMax"`
	URLPattern    string   `json:"urlPattern"`
	ResourceTypes []string `json:"resourceTypes"`
	FailedOnly    bool     `json:"failedOnly"`
}

// GetLogsInput represents the log retrieval parameters.
type GetLogsInput struct {
	LogTypes []string        `json:"logTypes"`
	Clear    bool            `json:"clear"`
	Limit    int             `json:"limit"`
	Filter   *LogFilterInput `json:"filter"`
}

// GetLogsOutput is the JSON payload returned to the caller.
type GetLogsOutput struct {
	Console *eventlog.ConsoleReport `json:"console,omitempty"`
	Network *eventlog.NetworkReport `json:"network,omitempty"`
	Cleared bool                    `json:"cleared,omitempty"`
}

func (t *GetLogsTool) Name() string {
	return "browser_get_logs"
}

func (t *GetLogsTool) Description() string {
	return "Retrieve captured console messages and network events, newest first. Supports filtering by console type, text search, HTTP method, status code or range, URL pattern, resource type, and failed-only; optionally clears the logs after reading."
}

func (t *GetLogsTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"logTypes": map[string]interface{}{
				"type":        "array",
				"description": "Which logs to return: 'console', 'network', or both (default both)",
				"items":       map[string]interface{}{"type": "string"},
			},
			"clear": map[string]interface{}{
				"type":        "boolean",
				"description": "Clear the selected logs after reading; counts reflect the pre-clear state",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum entries per log (default 100)",
			},
			"filter": map[string]interface{}{
				"type":        "object",
				"description": "Filter clauses, all combined with AND: types, search, methods, statuses, statusMin, statusMax, urlPattern, resourceTypes, failedOnly",
			},
		},
		nil,
	)
}

func (t *GetLogsTool) Execute(ctx context.Context, args json.RawMessage) (*tools.Result, error) {
	var input GetLogsInput
	if err := decodeArgs(args, &input); err != nil {
		return tools.Errorf("%v", err), nil
	}

	wantConsole, wantNetwork, err := selectLogTypes(input.LogTypes)
	if err != nil {
		return tools.Errorf("%v", err), nil
	}

	if res := t.requireSession(); res != nil {
		return res, nil
	}

	filter := input.Filter
	if filter == nil {
		filter = &LogFilterInput{}
	}

	output := GetLogsOutput{Cleared: input.Clear}

	if wantConsole {
		consoleFilter := eventlog.ConsoleFilter{
			Kinds:  filter.Types,
			Search: filter.Search,
		}
		var report eventlog.ConsoleReport
		if input.Clear {
			report = t.host.Console().QueryAndClear(consoleFilter, input.Limit)
		} else {
			report = t.host.Console().Query(consoleFilter, input.Limit)
		}
		output.Console = &report
	}

	if wantNetwork {
		netFilter := eventlog.NetworkFilter{
			Methods:       filter.Methods,
			Statuses:      filter.Statuses,
			StatusMin:     filter.StatusMin,
			StatusMax:     filter.StatusMax,
			URLPattern:    filter.URLPattern,
			ResourceTypes: filter.ResourceTypes,
			FailedOnly:    filter.FailedOnly,
		}
		if err := netFilter.Compile(); err != nil {
			return tools.Errorf("invalid urlPattern: %v", err), nil
		}
		var report eventlog.NetworkReport
		if input.Clear {
			report = t.host.Network().QueryAndClear(netFilter, input.Limit)
		} else {
			report = t.host.Network().Query(netFilter, input.Limit)
		}
		output.Network = &report
	}

	return tools.JSONResult(output), nil
}

// selectLogTypes interprets the logTypes argument. Empty means both.
func selectLogTypes(logTypes []string) (console, network bool, err error) {
	if len(logTypes) == 0 {
		return true, true, nil
	}
	for _, lt := range logTypes {
		switch lt {
		case "console":
			console = true
		case "network":
			network = true
		default:
			return false, false, fmt.Errorf("unknown log type %q (must be 'console' or 'network')", lt)
		}
	}
	return console, network, nil
}
