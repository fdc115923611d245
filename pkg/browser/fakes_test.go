package browser

import (
	"fmt"
)

// fakeTarget implements Target with scripted match counts and errors.
type fakeTarget struct {
	count    int
	countErr error

	clickErr  error
	typeErr   error
	selectErr error
	hoverErr  error

	shot    []byte
	shotErr error

	// recorded calls
	clicks      int
	typed       []string
	typedDelays []float64
	selected    []string
	hovers      int
	firstUsed   bool
}

func (t *fakeTarget) Count() (int, error) { return t.count, t.countErr }

func (t *fakeTarget) First() Target {
	t.firstUsed = true
	first := *t
	first.count = 1
	return &first
}

func (t *fakeTarget) Click() error {
	t.clicks++
	return t.clickErr
}

func (t *fakeTarget) Type(value string, delayMS float64) error {
	t.typed = append(t.typed, value)
	t.typedDelays = append(t.typedDelays, delayMS)
	return t.typeErr
}

func (t *fakeTarget) SelectValue(value string) error {
	t.selected = append(t.selected, value)
	return t.selectErr
}

func (t *fakeTarget) Hover() error {
	t.hovers++
	return t.hoverErr
}

func (t *fakeTarget) Screenshot() ([]byte, error) { return t.shot, t.shotErr }

// fakeDriver implements PageDriver over a map of scripted targets.
type fakeDriver struct {
	url     string
	title   string
	htmlSrc string
	closed  bool

	navErr   error
	navigate []string

	selectorTargets map[string]*fakeTarget
	textTargets     map[string]*fakeTarget

	evalResult interface{}
	evalErr    error
	evalRan    []string
	onEvaluate func()

	shot    []byte
	shotErr error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		url:             "about:blank",
		selectorTargets: make(map[string]*fakeTarget),
		textTargets:     make(map[string]*fakeTarget),
	}
}

func (d *fakeDriver) Navigate(url string) error {
	if d.navErr != nil {
		return d.navErr
	}
	d.navigate = append(d.navigate, url)
	d.url = url
	return nil
}

func (d *fakeDriver) URL() string            { return d.url }
func (d *fakeDriver) Title() (string, error) { return d.title, nil }

func (d *fakeDriver) BySelector(selector string) Target {
	if t, ok := d.selectorTargets[selector]; ok {
		return t
	}
	return &fakeTarget{count: 0}
}

func (d *fakeDriver) ByText(text string) Target {
	if t, ok := d.textTargets[text]; ok {
		return t
	}
	return &fakeTarget{count: 0}
}

func (d *fakeDriver) Evaluate(script string) (interface{}, error) {
	d.evalRan = append(d.evalRan, script)
	if d.onEvaluate != nil {
		d.onEvaluate()
	}
	return d.evalResult, d.evalErr
}

func (d *fakeDriver) Screenshot(fullPage bool) ([]byte, error) { return d.shot, d.shotErr }
func (d *fakeDriver) Content() (string, error)                 { return d.htmlSrc, nil }
func (d *fakeDriver) IsClosed() bool                           { return d.closed }

// fakeHost implements SessionHost for executor tests.
type fakeHost struct {
	driver  *fakeDriver
	err     error
	tapped  bool
	console []string
}

func (h *fakeHost) ActiveDriver() (PageDriver, error) {
	if h.err != nil {
		return nil, h.err
	}
	if h.driver == nil {
		return nil, fmt.Errorf("no driver configured")
	}
	return h.driver, nil
}

func (h *fakeHost) TapConsole() func() []string {
	h.tapped = true
	return func() []string { return h.console }
}
