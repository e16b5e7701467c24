package browser

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/pageshot/pageshot/config"
	"github.com/pageshot/pageshot/models"
)

// Browser wraps one launched Chromium process. Every capture run launches its
// own instance and closes it when done; nothing is pooled or shared between
// runs.
type Browser struct {
	rod      *rod.Browser
	launcher *launcher.Launcher
}

// Launch starts a Chromium process and connects to it.
func Launch(cfg config.BrowserConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}

	// ── Automation fingerprint and capture hygiene flags ─────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))
	l.Set(flags.Flag("hide-scrollbars"))
	l.Set(flags.Flag("mute-audio"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowser,
			"failed to launch browser",
			err,
		)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowser,
			"failed to connect to browser",
			err,
		)
	}
	slog.Debug("browser launched", "controlURL", controlURL)

	return &Browser{rod: b, launcher: l}, nil
}

// PageOptions configure a new page before navigation.
type PageOptions struct {
	Width   int
	Height  int
	Stealth bool
}

// NewPage creates a blank page with the viewport emulated at device scale 1
// and, when requested, the stealth script installed so it takes effect for
// subsequent navigations.
func (b *Browser) NewPage(opts PageOptions) (Page, error) {
	p, err := b.rod.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowser,
			"failed to create page",
			err,
		)
	}

	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}); err != nil {
		_ = p.Close()
		return nil, models.NewCaptureError(
			models.ErrCodeBrowser,
			"failed to set viewport",
			err,
		)
	}

	if opts.Stealth {
		if _, evalErr := p.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	return &rodPage{page: p}, nil
}

// Close kills the browser process and removes its temporary user data dir.
func (b *Browser) Close() {
	if err := b.rod.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
	b.launcher.Cleanup()
}
