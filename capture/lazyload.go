package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/pageshot/pageshot/browser"
)

const (
	// maxScrollSteps caps the lazy-load pass on pages whose height never
	// stops growing (infinite feeds).
	maxScrollSteps = 50

	// networkIdleTimeout bounds the advisory idle wait after scrolling.
	// Fixed, independent of the request's navigation timeout.
	networkIdleTimeout = 10 * time.Second
)

// scrollState tracks the lazy-load loop: the scroll cursor, the current
// height bound (a moving target, lazy content grows it mid-pass), and the
// number of steps taken so far.
type scrollState struct {
	pos    int
	height int
	steps  int
}

// triggerLazyLoad walks the page viewport-by-viewport so height- and
// visibility-triggered lazy content loads, re-measuring the document after
// each step, then returns to the top and waits briefly for the network to
// settle. Page read and scroll failures degrade to a shorter pass; the only
// error returned is context cancellation.
func (c *Capturer) triggerLazyLoad(ctx context.Context, p browser.Page, delay time.Duration, maxSteps int) error {
	height, err := p.ScrollHeight()
	if err != nil {
		slog.Warn("lazy-load: reading scroll height failed, skipping pass", "error", err)
		return nil
	}
	viewport, err := p.ViewportHeight()
	if err != nil || viewport <= 0 {
		slog.Warn("lazy-load: reading viewport height failed, skipping pass", "error", err)
		return nil
	}

	st := scrollState{height: height}
	for st.pos < st.height && st.steps < maxSteps {
		if scrollErr := p.ScrollTo(st.pos); scrollErr != nil {
			slog.Warn("lazy-load: scroll failed, stopping pass", "pos", st.pos, "error", scrollErr)
			break
		}
		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
		st.pos += viewport
		st.steps++

		if grown, hErr := p.ScrollHeight(); hErr == nil && grown > st.height {
			st.height = grown
		}
	}
	slog.Debug("lazy-load pass done", "steps", st.steps, "finalHeight", st.height)

	// Back to the top so the screenshot starts at the document origin, with
	// one more settle delay for scroll-position effects.
	if scrollErr := p.ScrollTo(0); scrollErr != nil {
		slog.Warn("lazy-load: scroll to top failed", "error", scrollErr)
	}
	if sleepErr := sleep(ctx, delay); sleepErr != nil {
		return sleepErr
	}

	// Advisory only. A network that never goes idle must not fail the run.
	if idleErr := p.WaitIdle(networkIdleTimeout); idleErr != nil {
		slog.Debug("network idle not reached, proceeding", "error", idleErr)
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
