package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pageshot/pageshot/browser"
	"github.com/pageshot/pageshot/config"
	"github.com/pageshot/pageshot/enrich"
	"github.com/pageshot/pageshot/fingerprint"
	"github.com/pageshot/pageshot/models"
	"github.com/pageshot/pageshot/output"
)

// Capturer runs capture pipelines. Every run launches its own browser and
// tears it down before returning, so a Capturer is safe for concurrent use;
// in-flight runs never share pages or browser state.
type Capturer struct {
	browserCfg config.BrowserConfig

	// newSession is swapped in tests to avoid launching a real browser.
	newSession func(req *models.CaptureRequest) (browser.Page, func(), error)
}

// New creates a Capturer that launches a browser per run.
func New(browserCfg config.BrowserConfig) *Capturer {
	c := &Capturer{browserCfg: browserCfg}
	c.newSession = c.launchSession
	return c
}

// launchSession brings up a browser and one page sized to the request. The
// returned release func closes both.
func (c *Capturer) launchSession(req *models.CaptureRequest) (browser.Page, func(), error) {
	b, err := browser.Launch(c.browserCfg)
	if err != nil {
		return nil, nil, err
	}
	page, err := b.NewPage(browser.PageOptions{
		Width:   req.ViewportWidth,
		Height:  req.ViewportHeight,
		Stealth: req.Stealth,
	})
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	release := func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("page close failed", "error", closeErr)
		}
		b.Close()
	}
	return page, release, nil
}

// CaptureImage navigates, settles the page, and writes the screenshot to
// req.OutputPath. A nil error means the file was written.
func (c *Capturer) CaptureImage(ctx context.Context, req *models.CaptureRequest) error {
	_, err := c.run(ctx, req, false)
	return err
}

// CaptureFull does everything CaptureImage does, then extracts the content
// model from the same still-open page, so snapshot and screenshot reflect one
// identical rendered state.
func (c *Capturer) CaptureFull(ctx context.Context, req *models.CaptureRequest) (*models.PageSnapshot, error) {
	return c.run(ctx, req, true)
}

// disableAnimationsJS freezes CSS animations and transitions so the
// screenshot is not taken mid-transition.
const disableAnimationsJS = `() => {
	const style = document.createElement('style');
	style.textContent = '*, *::before, *::after {' +
		' animation: none !important;' +
		' transition: none !important;' +
		' scroll-behavior: auto !important; }';
	document.head.appendChild(style);
}`

// run is the single-page capture lifecycle.
//
// Lifecycle (numbered steps match the inline comments):
//
//	1. Normalize + validate   – defaults, invariant checks
//	2. Browser session        – a dedicated browser + page for this run
//	3. DEFER: release         – page and browser close on every exit path
//	4. Navigate               – the only step bounded by the request timeout
//	5. Post-load wait         – fixed settle delay for late scripts
//	6. Lazy-load scroll pass  – full-page captures only; own step cap
//	7. Screenshot             – fixed policy: animations off, PNG
//	8. Extraction             – reads the same DOM the screenshot saw
func (c *Capturer) run(ctx context.Context, req *models.CaptureRequest, extract bool) (*models.PageSnapshot, error) {
	// ── 1. Normalize and validate ────────────────────────────────────
	req.Defaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	// ── 2. Browser session ───────────────────────────────────────────
	page, release, err := c.newSession(req)
	if err != nil {
		return nil, err
	}

	// ── 3. Release on every exit path ────────────────────────────────
	defer release()

	// ── 4. Navigate (bounded by the request timeout) ─────────────────
	navStart := time.Now()
	navCtx, cancel := context.WithTimeout(ctx, req.NavTimeout())
	defer cancel()
	if navErr := page.Navigate(navCtx, req.URL); navErr != nil {
		return nil, categorizeNavError(navErr)
	}
	navMs := time.Since(navStart).Milliseconds()
	slog.Debug("navigation complete", "url", req.URL, "ms", navMs)

	// ── 5. Post-load wait ────────────────────────────────────────────
	if d := req.Wait(); d > 0 {
		if waitErr := sleep(ctx, d); waitErr != nil {
			return nil, canceled(waitErr)
		}
	}

	// ── 6. Lazy-load scroll pass ─────────────────────────────────────
	scrollStart := time.Now()
	if req.IsFullPage() && req.ScrollDelay() > 0 {
		if scrollErr := c.triggerLazyLoad(ctx, page, req.ScrollDelay(), maxScrollSteps); scrollErr != nil {
			return nil, canceled(scrollErr)
		}
	}
	scrollMs := time.Since(scrollStart).Milliseconds()

	// ── 7. Screenshot (fixed policy) ─────────────────────────────────
	if _, evalErr := page.Eval(disableAnimationsJS); evalErr != nil {
		slog.Debug("disabling animations failed", "error", evalErr)
	}
	buf, shotErr := page.Screenshot(req.IsFullPage())
	if shotErr != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeScreenshot,
			"screenshot capture failed",
			shotErr,
		)
	}
	if writeErr := output.WriteFile(req.OutputPath, buf); writeErr != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeOutputWrite,
			"failed to write screenshot",
			writeErr,
		)
	}
	slog.Info("screenshot written",
		"path", req.OutputPath,
		"bytes", len(buf),
		"fullPage", req.IsFullPage(),
	)

	if !extract {
		return nil, nil
	}

	// ── 8. Extraction from the same rendered state ───────────────────
	extractStart := time.Now()
	snap := extractContent(page, req)
	snap.ScreenshotPath = req.OutputPath
	enrichSnapshot(snap, req)
	snap.Timing = models.TimingInfo{
		TotalMs:      time.Since(start).Milliseconds(),
		NavigationMs: navMs,
		ScrollMs:     scrollMs,
		ExtractionMs: time.Since(extractStart).Milliseconds(),
	}
	return snap, nil
}

// enrichSnapshot derives the optional content fields from the captured
// markup. Everything here is best-effort; the core snapshot stands without
// it.
func enrichSnapshot(snap *models.PageSnapshot, req *models.CaptureRequest) {
	if snap.TextContent != "" {
		snap.Fingerprint = fmt.Sprintf("%016x", fingerprint.Text(snap.TextContent))
	}
	if snap.HTML == "" {
		return
	}
	snap.DOMFingerprint = fmt.Sprintf("%016x", fingerprint.DOM(snap.HTML))
	snap.Links = enrich.Links(snap.HTML, snap.URL)

	if req.CSSSelector != "" {
		if text, err := enrich.SelectText(snap.HTML, req.CSSSelector); err != nil {
			slog.Warn("css selector narrowing failed",
				"selector", req.CSSSelector, "error", err)
		} else {
			snap.TextContent = text
		}
	}
	if req.IncludeArticle {
		if article, err := enrich.Article(snap.HTML, snap.URL); err != nil {
			slog.Warn("article extraction failed", "error", err)
		} else {
			snap.Article = article
		}
	}
	if req.IncludeMarkdown {
		if md, err := enrich.Markdown(snap.HTML, snap.URL); err != nil {
			slog.Warn("markdown conversion failed", "error", err)
		} else {
			snap.Markdown = md
		}
	}
}

// canceled wraps a context error hit at one of the suspension points.
func canceled(err error) *models.CaptureError {
	return models.NewCaptureError(models.ErrCodeInternal, "capture canceled", err)
}

// categorizeNavError wraps navigation errors into typed CaptureErrors so
// callers can tell an expected timeout from a broken page.
func categorizeNavError(err error) *models.CaptureError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCaptureError(models.ErrCodeTimeout, "page load timed out", err)
	case errors.Is(err, context.Canceled):
		return models.NewCaptureError(models.ErrCodeTimeout, "navigation canceled", err)
	default:
		return models.NewCaptureError(models.ErrCodeNavigation, "navigation to target URL failed", err)
	}
}
