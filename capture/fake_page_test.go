package capture

import (
	"context"
	"time"

	"github.com/ysmood/gson"

	"github.com/pageshot/pageshot/browser"
	"github.com/pageshot/pageshot/config"
	"github.com/pageshot/pageshot/models"
)

// fakePage is an in-memory browser.Page so pipeline behavior can be tested
// without Chromium. Heights is consumed one read at a time (last value
// repeats), which lets tests script mid-scroll document growth.
type fakePage struct {
	url           string
	title         string
	bodyText      string
	html          string
	status        int
	heights       []int
	viewport      int
	screenshot    []byte
	elements      map[string][]browser.Element
	elementsErr   map[string]error
	navErr        error
	navDelay      time.Duration
	heightErr     error
	viewportErr   error
	scrollErr     error
	screenshotErr error
	idleErr       error
	evalErr       error

	navigations  []string
	heightReads  int
	scrollCalls  []int
	idleCalls    int
	screenshots  int
	lastFullPage bool
	closed       bool
}

func newFakePage() *fakePage {
	return &fakePage{
		url:         "https://example.com/",
		title:       "Example Domain",
		bodyText:    "Example Domain body text",
		html:        "<html><body><p>Example</p></body></html>",
		status:      200,
		heights:     []int{800},
		viewport:    800,
		screenshot:  []byte("png-bytes"),
		elements:    map[string][]browser.Element{},
		elementsErr: map[string]error{},
	}
}

func (f *fakePage) Navigate(ctx context.Context, url string) error {
	f.navigations = append(f.navigations, url)
	if f.navDelay > 0 {
		select {
		case <-time.After(f.navDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.navErr
}

func (f *fakePage) URL() string   { return f.url }
func (f *fakePage) Title() string { return f.title }

func (f *fakePage) Eval(js string, args ...any) (gson.JSON, error) {
	return gson.New(nil), f.evalErr
}

func (f *fakePage) Elements(selector string) ([]browser.Element, error) {
	if err, ok := f.elementsErr[selector]; ok {
		return nil, err
	}
	return f.elements[selector], nil
}

func (f *fakePage) BodyText() (string, error) { return f.bodyText, nil }
func (f *fakePage) HTML() (string, error)     { return f.html, nil }

func (f *fakePage) ScrollHeight() (int, error) {
	if f.heightErr != nil {
		return 0, f.heightErr
	}
	if len(f.heights) == 0 {
		return 0, nil
	}
	i := f.heightReads
	f.heightReads++
	if i >= len(f.heights) {
		i = len(f.heights) - 1
	}
	return f.heights[i], nil
}

func (f *fakePage) ViewportHeight() (int, error) {
	if f.viewportErr != nil {
		return 0, f.viewportErr
	}
	return f.viewport, nil
}

func (f *fakePage) ScrollTo(y int) error {
	if f.scrollErr != nil {
		return f.scrollErr
	}
	f.scrollCalls = append(f.scrollCalls, y)
	return nil
}

func (f *fakePage) Screenshot(fullPage bool) ([]byte, error) {
	f.screenshots++
	f.lastFullPage = fullPage
	if f.screenshotErr != nil {
		return nil, f.screenshotErr
	}
	return f.screenshot, nil
}

func (f *fakePage) WaitIdle(timeout time.Duration) error {
	f.idleCalls++
	return f.idleErr
}

func (f *fakePage) StatusCode() int { return f.status }

func (f *fakePage) Close() error {
	f.closed = true
	return nil
}

// fakeElement backs Elements() results.
type fakeElement struct {
	attrs    map[string]string
	attrErrs map[string]error
	text     string
	textErr  error
}

func (e *fakeElement) Attribute(name string) (string, error) {
	if err, ok := e.attrErrs[name]; ok {
		return "", err
	}
	return e.attrs[name], nil
}

func (e *fakeElement) Text() (string, error) { return e.text, e.textErr }

func el(attrs map[string]string) browser.Element { return &fakeElement{attrs: attrs} }

func textEl(text string) browser.Element { return &fakeElement{text: text} }

// newTestCapturer wires a Capturer to the fake so no browser launches.
func newTestCapturer(p browser.Page) *Capturer {
	c := New(config.BrowserConfig{})
	c.newSession = func(req *models.CaptureRequest) (browser.Page, func(), error) {
		return p, func() { p.Close() }, nil
	}
	return c
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
