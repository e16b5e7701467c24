package models

// ImageInfo describes one discovered image. Width and height are the raw
// attribute strings; pages express them in varied units or omit them, so the
// values are passed through uninterpreted rather than parsed.
type ImageInfo struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Link is one hyperlink discovered in the captured markup.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text,omitempty"`
}

// PageLinks splits discovered links by whether they stay on the page's host.
type PageLinks struct {
	Internal []Link `json:"internal"`
	External []Link `json:"external"`
}

// ArticleInfo is the readability extraction of the page's main article.
type ArticleInfo struct {
	Title       string `json:"title,omitempty"`
	Byline      string `json:"byline,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	TextContent string `json:"text_content,omitempty"`
}

// TimingInfo breaks down where a capture run spent its time.
type TimingInfo struct {
	TotalMs      int64 `json:"total_ms"`
	NavigationMs int64 `json:"navigation_ms"`
	ScrollMs     int64 `json:"scroll_ms"`
	ExtractionMs int64 `json:"extraction_ms"`
}

// PageSnapshot is the aggregate result of one full capture: the screenshot
// path plus the structured content read from the same rendered DOM state.
// It is a value object; nothing mutates it after the pipeline returns it.
type PageSnapshot struct {
	ScreenshotPath string              `json:"screenshot_path"`
	URL            string              `json:"url"`
	StatusCode     int                 `json:"status_code,omitempty"`
	Title          string              `json:"title"`
	TextContent    string              `json:"text_content"`
	HTML           string              `json:"html"`
	Meta           map[string]string   `json:"meta"`
	Images         []ImageInfo         `json:"images"`
	Headings       map[string][]string `json:"headings"`
	Links          PageLinks           `json:"links"`
	Article        *ArticleInfo        `json:"article,omitempty"`
	Markdown       string              `json:"markdown,omitempty"`
	Fingerprint    string              `json:"fingerprint,omitempty"`
	DOMFingerprint string              `json:"dom_fingerprint,omitempty"`
	Timing         TimingInfo          `json:"timing"`
}

// CaptureResponse is the body for POST /api/v1/capture. ScreenshotURL is the
// path under the service's static mount where the image can be fetched.
type CaptureResponse struct {
	Success       bool          `json:"success"`
	Cached        bool          `json:"cached,omitempty"`
	ScreenshotURL string        `json:"screenshot_url,omitempty"`
	Snapshot      *PageSnapshot `json:"snapshot,omitempty"`
	Error         *ErrorDetail  `json:"error,omitempty"`
}

// ScreenshotResponse is the body for POST /api/v1/screenshot.
type ScreenshotResponse struct {
	Success        bool         `json:"success"`
	ScreenshotPath string       `json:"screenshot_path,omitempty"`
	ScreenshotURL  string       `json:"screenshot_url,omitempty"`
	Timing         *TimingInfo  `json:"timing,omitempty"`
	Error          *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the body for GET /api/v1/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Captures int64  `json:"captures"`
	Failures int64  `json:"failures"`
}
