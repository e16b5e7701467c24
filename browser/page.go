package browser

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// Page is the rendering-engine boundary the capture pipeline works against:
// one live, navigated page. A Page belongs to exactly one capture run and is
// not safe for concurrent use.
type Page interface {
	// Navigate loads the URL and blocks until the load event fires or ctx
	// expires.
	Navigate(ctx context.Context, url string) error

	// URL returns the current (post-redirect) URL, "" when unreadable.
	URL() string

	// Title returns the document title, "" when unreadable.
	Title() string

	// Eval runs a JS function on the page and returns its result.
	Eval(js string, args ...any) (gson.JSON, error)

	// Elements returns all nodes matching the CSS selector in document
	// order, without waiting for any to appear.
	Elements(selector string) ([]Element, error)

	// BodyText returns the rendered visible text of the document body.
	BodyText() (string, error)

	// HTML returns the full serialized markup of the current DOM.
	HTML() (string, error)

	// ScrollHeight returns the document body's scroll height in CSS pixels.
	ScrollHeight() (int, error)

	// ViewportHeight returns the window's inner height in CSS pixels.
	ViewportHeight() (int, error)

	// ScrollTo scrolls the window to the given vertical offset.
	ScrollTo(y int) error

	// Screenshot captures the page as PNG bytes, spanning the full document
	// height when fullPage is set.
	Screenshot(fullPage bool) ([]byte, error)

	// WaitIdle blocks until the network has been quiet for a short trailing
	// window or the timeout elapses. The page is usable either way.
	WaitIdle(timeout time.Duration) error

	// StatusCode returns the HTTP status of the main document, 0 if unknown.
	StatusCode() int

	// Close releases the page.
	Close() error
}

// Element is a handle to one DOM node with best-effort reads.
type Element interface {
	// Attribute returns the value of the named attribute, "" when absent.
	Attribute(name string) (string, error)

	// Text returns the node's rendered text.
	Text() (string, error)
}

// rodPage binds Page to a Rod page.
type rodPage struct {
	page *rod.Page
}

func (r *rodPage) Navigate(ctx context.Context, url string) error {
	p := r.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (r *rodPage) URL() string {
	return r.evalStringOrEmpty(`() => window.location.href`)
}

func (r *rodPage) Title() string {
	return r.evalStringOrEmpty(`() => document.title`)
}

func (r *rodPage) Eval(js string, args ...any) (gson.JSON, error) {
	res, err := r.page.Eval(js, args...)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

func (r *rodPage) Elements(selector string) ([]Element, error) {
	els, err := r.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = &rodElement{el: el}
	}
	return out, nil
}

func (r *rodPage) BodyText() (string, error) {
	res, err := r.page.Eval(`() => document.body.innerText`)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (r *rodPage) HTML() (string, error) {
	return r.page.HTML()
}

func (r *rodPage) ScrollHeight() (int, error) {
	res, err := r.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (r *rodPage) ViewportHeight() (int, error) {
	res, err := r.page.Eval(`() => window.innerHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (r *rodPage) ScrollTo(y int) error {
	_, err := r.page.Eval(`(y) => window.scrollTo(0, y)`, y)
	return err
}

func (r *rodPage) Screenshot(fullPage bool) ([]byte, error) {
	return r.page.Screenshot(fullPage, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}

func (r *rodPage) WaitIdle(timeout time.Duration) error {
	wait := r.page.Timeout(timeout).WaitRequestIdle(300*time.Millisecond, nil, nil, nil)
	wait()
	return nil
}

// StatusCode reads the main document's HTTP status from the Performance API,
// which needs no CDP event listeners.
func (r *rodPage) StatusCode() int {
	res, err := r.page.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

func (r *rodPage) Close() error {
	return r.page.Close()
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional reads).
func (r *rodPage) evalStringOrEmpty(js string) string {
	res, err := r.page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// rodElement binds Element to a Rod element.
type rodElement struct {
	el *rod.Element
}

func (r *rodElement) Attribute(name string) (string, error) {
	v, err := r.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (r *rodElement) Text() (string, error) {
	return r.el.Text()
}
