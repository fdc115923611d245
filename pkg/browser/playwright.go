package browser

import (
	"github.com/playwright-community/playwright-go"
)

// playwrightDriver adapts a playwright.Page to the PageDriver
// capability interface.
type playwrightDriver struct {
	page playwright.Page
}

// NewPageDriver wraps a live Playwright page.
func NewPageDriver(page playwright.Page) PageDriver {
	return &playwrightDriver{page: page}
}

func (d *playwrightDriver) Navigate(url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateLoad})
	return err
}

func (d *playwrightDriver) URL() string {
	return d.page.URL()
}

func (d *playwrightDriver) Title() (string, error) {
	return d.page.Title()
}

func (d *playwrightDriver) BySelector(selector string) Target {
	return &playwrightTarget{locator: d.page.Locator(selector)}
}

func (d *playwrightDriver) ByText(text string) Target {
	return &playwrightTarget{locator: d.page.GetByText(text)}
}

func (d *playwrightDriver) Evaluate(script string) (interface{}, error) {
	return d.page.Evaluate(script)
}

func (d *playwrightDriver) Screenshot(fullPage bool) ([]byte, error) {
	return d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(fullPage),
	})
}

func (d *playwrightDriver) Content() (string, error) {
	return d.page.Content()
}

func (d *playwrightDriver) IsClosed() bool {
	return d.page.IsClosed()
}

// playwrightTarget adapts a playwright.Locator to the Target interface.
type playwrightTarget struct {
	locator playwright.Locator
}

func (t *playwrightTarget) Count() (int, error) {
	return t.locator.Count()
}

func (t *playwrightTarget) First() Target {
	return &playwrightTarget{locator: t.locator.First()}
}

func (t *playwrightTarget) Click() error {
	return t.locator.Click()
}

func (t *playwrightTarget) Type(value string, delayMS float64) error {
	if err := t.locator.Clear(); err != nil {
		return err
	}
	return t.locator.PressSequentially(value, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(delayMS),
	})
}

func (t *playwrightTarget) SelectValue(value string) error {
	_, err := t.locator.SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	})
	return err
}

func (t *playwrightTarget) Hover() error {
	return t.locator.Hover()
}

func (t *playwrightTarget) Screenshot() ([]byte, error) {
	return t.locator.Screenshot()
}
