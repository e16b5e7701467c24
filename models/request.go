package models

import "time"

// Capture defaults matching the standalone tool's behavior.
const (
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
	DefaultWaitMs         = 3000
	DefaultScrollDelayMs  = 500
	DefaultTimeoutMs      = 30000
)

// CaptureRequest describes one capture run. It doubles as the payload for
// POST /api/v1/capture and POST /api/v1/screenshot.
type CaptureRequest struct {
	// URL is the target page. Required.
	URL string `json:"url" binding:"required,url"`

	// OutputPath is where the PNG is written. When empty, a name derived
	// from the URL is placed under the configured output directory. The
	// HTTP service always derives the path server-side.
	OutputPath string `json:"output_path,omitempty"`

	// FullPage captures the entire scrollable document height rather than
	// just the viewport, and enables the lazy-load scroll pass.
	// Default: true.
	FullPage *bool `json:"full_page,omitempty"`

	// ViewportWidth and ViewportHeight set the emulated viewport in CSS
	// pixels. Defaults: 1920x1080.
	ViewportWidth  int `json:"viewport_width,omitempty" binding:"omitempty,min=1,max=7680"`
	ViewportHeight int `json:"viewport_height,omitempty" binding:"omitempty,min=1,max=4320"`

	// WaitMs is a fixed delay after the load event, giving scripts time to
	// settle before scrolling and capture. 0 skips the wait. Default: 3000.
	WaitMs *int `json:"wait_ms,omitempty" binding:"omitempty,min=0,max=60000"`

	// ScrollDelayMs is the pause between lazy-load scroll steps. 0 disables
	// the scroll pass entirely. Default: 500.
	ScrollDelayMs *int `json:"scroll_delay_ms,omitempty" binding:"omitempty,min=0,max=10000"`

	// TimeoutMs bounds navigation (request + load event) only; the scroll
	// pass and the network-idle wait have their own fixed bounds.
	// Default: 30000. Max: 120000.
	TimeoutMs int `json:"timeout_ms,omitempty" binding:"omitempty,min=1000,max=120000"`

	// Stealth enables anti-bot-detection evasions (e.g. navigator.webdriver
	// masking) before navigation. Default: false.
	Stealth bool `json:"stealth,omitempty"`

	// CSSSelector narrows the snapshot's text content to the matched
	// elements. The stored markup is unaffected.
	CSSSelector string `json:"css_selector,omitempty"`

	// IncludeArticle adds a readability extraction of the main article to
	// the snapshot.
	IncludeArticle bool `json:"include_article,omitempty"`

	// IncludeMarkdown adds a markdown rendition of the captured markup to
	// the snapshot.
	IncludeMarkdown bool `json:"include_markdown,omitempty"`

	// MaxAgeMs lets the HTTP service answer from a snapshot captured within
	// the window instead of launching a browser. 0 disables cache lookup.
	// Ignored outside the service.
	MaxAgeMs int `json:"max_age_ms,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *CaptureRequest) Defaults() {
	if r.FullPage == nil {
		t := true
		r.FullPage = &t
	}
	if r.ViewportWidth == 0 {
		r.ViewportWidth = DefaultViewportWidth
	}
	if r.ViewportHeight == 0 {
		r.ViewportHeight = DefaultViewportHeight
	}
	if r.WaitMs == nil {
		w := DefaultWaitMs
		r.WaitMs = &w
	}
	if r.ScrollDelayMs == nil {
		d := DefaultScrollDelayMs
		r.ScrollDelayMs = &d
	}
	if r.TimeoutMs == 0 {
		r.TimeoutMs = DefaultTimeoutMs
	}
}

// Validate checks invariants that gin binding cannot express for non-HTTP
// callers: URL and output path present, durations non-negative, viewport
// positive. Callers that accept an empty output path resolve it before the
// request reaches the pipeline.
func (r *CaptureRequest) Validate() error {
	if r.URL == "" {
		return NewCaptureError(ErrCodeInvalidInput, "url is required", nil)
	}
	if r.OutputPath == "" {
		return NewCaptureError(ErrCodeInvalidInput, "output_path is required", nil)
	}
	if r.ViewportWidth < 0 || r.ViewportHeight < 0 {
		return NewCaptureError(ErrCodeInvalidInput, "viewport dimensions must be positive", nil)
	}
	if r.WaitMs != nil && *r.WaitMs < 0 {
		return NewCaptureError(ErrCodeInvalidInput, "wait_ms must be non-negative", nil)
	}
	if r.ScrollDelayMs != nil && *r.ScrollDelayMs < 0 {
		return NewCaptureError(ErrCodeInvalidInput, "scroll_delay_ms must be non-negative", nil)
	}
	if r.TimeoutMs < 0 {
		return NewCaptureError(ErrCodeInvalidInput, "timeout_ms must be non-negative", nil)
	}
	return nil
}

// IsFullPage reports the resolved full-page flag.
func (r *CaptureRequest) IsFullPage() bool {
	if r.FullPage == nil {
		return true
	}
	return *r.FullPage
}

// Wait returns the resolved post-load wait.
func (r *CaptureRequest) Wait() time.Duration {
	if r.WaitMs == nil {
		return DefaultWaitMs * time.Millisecond
	}
	return time.Duration(*r.WaitMs) * time.Millisecond
}

// ScrollDelay returns the resolved per-step scroll delay.
func (r *CaptureRequest) ScrollDelay() time.Duration {
	if r.ScrollDelayMs == nil {
		return DefaultScrollDelayMs * time.Millisecond
	}
	return time.Duration(*r.ScrollDelayMs) * time.Millisecond
}

// NavTimeout returns the resolved navigation timeout.
func (r *CaptureRequest) NavTimeout() time.Duration {
	if r.TimeoutMs <= 0 {
		return DefaultTimeoutMs * time.Millisecond
	}
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// MaxAge returns the resolved cache acceptance window.
func (r *CaptureRequest) MaxAge() time.Duration {
	return time.Duration(r.MaxAgeMs) * time.Millisecond
}
