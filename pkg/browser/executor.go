package browser

import (
	"fmt"

	"github.com/embermark/pagepilot/pkg/logging"
)

// SessionHost supplies the executor with a ready page and the console
// side channel. The Manager is the production implementation.
type SessionHost interface {
	ActiveDriver() (PageDriver, error)
	TapConsole() func() []string
}

// ActionOutcome is the typed result of an element-targeting action.
// Failures are values, never uncaught faults: the Err field carries the
// underlying cause while Action and Locator always name what was
// attempted.
type ActionOutcome struct {
	Action   string
	Locator  string
	Detail   string
	Fallback bool
	Err      error
}

// OK reports whether the action succeeded.
func (o ActionOutcome) OK() bool { return o.Err == nil }

// Message renders the outcome for the caller. Both success and failure
// name the original locator, not a match index.
func (o ActionOutcome) Message() string {
	if o.Err != nil {
		return fmt.Sprintf("Failed to %s %s: %v", o.Action, o.Locator, o.Err)
	}
	msg := fmt.Sprintf("%s %s", o.Action, o.Locator)
	if o.Fallback {
		msg += " (multiple matches, used first)"
	}
	if o.Detail != "" {
		msg += "\n" + o.Detail
	}
	return msg
}

// EvalResult carries a script evaluation's serialized value together
// with the console output captured while it ran.
type EvalResult struct {
	Value   interface{}
	Console []string
}

// Executor applies the uniform resolve-then-act-then-retry policy to
// every element-targeting action. One executor serves the single
// session; browser-side calls block until the engine completes them.
type Executor struct {
	host          SessionHost
	artifacts     *ArtifactStore
	typingDelayMS float64
	logger        *logging.Logger
}

// NewExecutor creates an action executor over the given session host.
func NewExecutor(host SessionHost, artifacts *ArtifactStore, typingDelayMS float64, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Nop()
	}
	if typingDelayMS < 0 {
		typingDelayMS = 0
	}
	return &Executor{
		host:          host,
		artifacts:     artifacts,
		typingDelayMS: typingDelayMS,
		logger:        logger,
	}
}

// perform resolves the target and applies act under the retry policy:
// a single match acts directly; an ambiguous match retries restricted
// to the first matching element; no match or an action error becomes a
// failure outcome.
func (e *Executor) perform(action, locator string, target Target, act func(Target) error) ActionOutcome {
	out := ActionOutcome{Action: action, Locator: locator}

	resolution, err := Resolve(target)
	if err != nil {
		out.Err = fmt.Errorf("locator resolution failed: %w", err)
		return out
	}

	switch resolution {
	case ResolutionNotFound:
		out.Err = fmt.Errorf("no element matches")
	case ResolutionSingle:
		out.Err = act(target)
	case ResolutionMultiple:
		out.Fallback = true
		out.Err = act(target.First())
	}

	if out.Err != nil {
		e.logger.Warnf("%s %s failed: %v", action, locator, out.Err)
	} else {
		e.logger.Debugf("%s %s ok (fallback=%v)", action, locator, out.Fallback)
	}
	return out
}

// withDriver fetches the live page, converting session errors into
// failure outcomes.
func (e *Executor) withDriver(action, locator string, fn func(PageDriver) ActionOutcome) ActionOutcome {
	driver, err := e.host.ActiveDriver()
	if err != nil {
		return ActionOutcome{Action: action, Locator: locator, Err: err}
	}
	return fn(driver)
}

// Navigate loads the given URL.
func (e *Executor) Navigate(url string) ActionOutcome {
	return e.withDriver("navigate to", url, func(d PageDriver) ActionOutcome {
		out := ActionOutcome{Action: "navigate to", Locator: url}
		if err := d.Navigate(url); err != nil {
			out.Err = err
			return out
		}
		if title, err := d.Title(); err == nil && title != "" {
			out.Detail = fmt.Sprintf("Now at %s (%s)", d.URL(), title)
		} else {
			out.Detail = fmt.Sprintf("Now at %s", d.URL())
		}
		return out
	})
}

// Click clicks the element addressed by a CSS selector.
func (e *Executor) Click(selector string) ActionOutcome {
	return e.withDriver("click", selector, func(d PageDriver) ActionOutcome {
		return e.perform("click", selector, d.BySelector(selector), Target.Click)
	})
}

// ClickText clicks the element carrying the given visible text.
func (e *Executor) ClickText(text string) ActionOutcome {
	return e.withDriver("click", quoted(text), func(d PageDriver) ActionOutcome {
		return e.perform("click", quoted(text), d.ByText(text), Target.Click)
	})
}

// Fill types value into the input addressed by selector using
// character-paced input, so pages listening for key events behave as
// they would for a human typist.
func (e *Executor) Fill(selector, value string) ActionOutcome {
	return e.withDriver("fill", selector, func(d PageDriver) ActionOutcome {
		return e.perform("fill", selector, d.BySelector(selector), func(t Target) error {
			return t.Type(value, e.typingDelayMS)
		})
	})
}

// Select chooses the option with the given value in a select element.
func (e *Executor) Select(selector, value string) ActionOutcome {
	return e.withDriver("select", selector, func(d PageDriver) ActionOutcome {
		return e.perform("select", selector, d.BySelector(selector), func(t Target) error {
			return t.SelectValue(value)
		})
	})
}

// SelectText chooses an option in the select element carrying the given
// visible text.
func (e *Executor) SelectText(text, value string) ActionOutcome {
	return e.withDriver("select", quoted(text), func(d PageDriver) ActionOutcome {
		return e.perform("select", quoted(text), d.ByText(text), func(t Target) error {
			return t.SelectValue(value)
		})
	})
}

// Hover moves the pointer over the element addressed by selector.
func (e *Executor) Hover(selector string) ActionOutcome {
	return e.withDriver("hover", selector, func(d PageDriver) ActionOutcome {
		return e.perform("hover", selector, d.BySelector(selector), Target.Hover)
	})
}

// HoverText moves the pointer over the element carrying the given text.
func (e *Executor) HoverText(text string) ActionOutcome {
	return e.withDriver("hover", quoted(text), func(d PageDriver) ActionOutcome {
		return e.perform("hover", quoted(text), d.ByText(text), Target.Hover)
	})
}

// Screenshot captures a named element or the viewport (whole page when
// fullPage is set) and stores the PNG under name, overwriting any prior
// artifact of that name. An empty capture is a failure outcome.
func (e *Executor) Screenshot(name, selector string, fullPage bool) ActionOutcome {
	locator := "page"
	if selector != "" {
		locator = selector
	}
	return e.withDriver("screenshot", locator, func(d PageDriver) ActionOutcome {
		var png []byte

		if selector != "" {
			out := e.perform("screenshot", selector, d.BySelector(selector), func(t Target) error {
				var err error
				png, err = t.Screenshot()
				return err
			})
			if !out.OK() {
				return out
			}
		} else {
			var err error
			png, err = d.Screenshot(fullPage)
			if err != nil {
				return ActionOutcome{Action: "screenshot", Locator: locator, Err: err}
			}
		}

		if len(png) == 0 {
			return ActionOutcome{Action: "screenshot", Locator: locator, Err: fmt.Errorf("capture produced no image data")}
		}

		e.artifacts.Put(name, png)
		return ActionOutcome{
			Action:  "screenshot",
			Locator: locator,
			Detail:  fmt.Sprintf("Saved as %q (%d bytes)", name, len(png)),
		}
	})
}

// Evaluate runs a script in the page context, capturing any console
// output it produces. An evaluation fault is a failure outcome, not an
// uncaught fault.
func (e *Executor) Evaluate(script string) (EvalResult, ActionOutcome) {
	var result EvalResult
	out := e.withDriver("evaluate", "script", func(d PageDriver) ActionOutcome {
		stop := e.host.TapConsole()
		value, err := d.Evaluate(script)
		result.Console = stop()
		if err != nil {
			return ActionOutcome{Action: "evaluate", Locator: "script", Err: err}
		}
		result.Value = value
		return ActionOutcome{Action: "evaluate", Locator: "script"}
	})
	return result, out
}

func quoted(text string) string {
	return fmt.Sprintf("text %q", text)
}
