package tools

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/embermark/pagepilot/pkg/logging"
)

// Dispatcher routes invocations to registered tools by name. Every
// failure mode, including an unknown tool name or a tool fault, comes
// back as a failure envelope so the caller never sees a transport
// error for an operational problem.
type Dispatcher struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger *logging.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Dispatcher{
		tools:  make(map[string]Tool),
		logger: logger,
	}
}

// Register adds a tool. The last registration of a name wins.
func (d *Dispatcher) Register(tool Tool) {
	d.mu.Lock()
	d.tools[tool.Name()] = tool
	d.mu.Unlock()
}

// RegisterAll adds every tool in the slice.
func (d *Dispatcher) RegisterAll(tools []Tool) {
	for _, t := range tools {
		d.Register(t)
	}
}

// Get returns the named tool, if registered.
func (d *Dispatcher) Get(name string) (Tool, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (d *Dispatcher) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes the named tool with the given JSON arguments.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) *Result {
	tool, ok := d.Get(name)
	if !ok {
		d.logger.Warnf("unknown tool requested: %s", name)
		return Errorf("unknown tool %q", name)
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		d.logger.Warnf("tool %s faulted: %v", name, err)
		return Errorf("%s failed: %v", name, err)
	}
	if result == nil {
		return Errorf("%s returned no result", name)
	}
	if result.IsError {
		d.logger.Infof("tool %s reported failure: %s", name, result.Text())
	}
	return result
}
