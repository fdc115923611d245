package browser

// Resolution is the typed verdict of resolving a locator against the
// live page. The executor branches on this tag rather than sniffing
// engine error strings.
type Resolution int

const (
	// ResolutionNotFound means no element matched the locator.
	ResolutionNotFound Resolution = iota

	// ResolutionSingle means exactly one element matched.
	ResolutionSingle

	// ResolutionMultiple means the locator was ambiguous: more than one
	// element matched.
	ResolutionMultiple
)

// Target is a resolved locator on the live page. Actions on a Target
// block until the underlying engine completes or fails them.
type Target interface {
	// Count reports how many elements currently match.
	Count() (int, error)

	// First narrows the target to its first matching element.
	First() Target

	// Click clicks the target element.
	Click() error

	// Type clears the element and types value with a fixed
	// per-character delay, firing per-key input events.
	Type(value string, delayMS float64) error

	// SelectValue selects the option with the given value attribute.
	SelectValue(value string) error

	// Hover moves the pointer over the element.
	Hover() error

	// Screenshot captures the element's bounding box as PNG bytes.
	Screenshot() ([]byte, error)
}

// PageDriver is the capability interface over the live page consumed by
// the action executor. The Playwright adapter is the production
// implementation; tests substitute fakes.
type PageDriver interface {
	// Navigate loads the given URL and waits for the load event.
	Navigate(url string) error

	// URL returns the page's current URL.
	URL() string

	// Title returns the page's current title.
	Title() (string, error)

	// BySelector resolves a CSS selector.
	BySelector(selector string) Target

	// ByText resolves elements by their visible text. Partial matches
	// are included.
	ByText(text string) Target

	// Evaluate runs a script in the page context and returns the
	// structurally serialized result.
	Evaluate(script string) (interface{}, error)

	// Screenshot captures the viewport, or the whole page when
	// fullPage is set, as PNG bytes.
	Screenshot(fullPage bool) ([]byte, error)

	// Content returns the page's full HTML.
	Content() (string, error)

	// IsClosed reports whether the underlying page has been closed.
	IsClosed() bool
}

// Resolve turns a target's match count into a typed verdict.
func Resolve(t Target) (Resolution, error) {
	n, err := t.Count()
	if err != nil {
		return ResolutionNotFound, err
	}
	switch {
	case n == 0:
		return ResolutionNotFound, nil
	case n == 1:
		return ResolutionSingle, nil
	default:
		return ResolutionMultiple, nil
	}
}
