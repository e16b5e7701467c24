package handler

import (
	"context"
	"net/http"
	"path"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageshot/pageshot/cache"
	"github.com/pageshot/pageshot/capture"
	"github.com/pageshot/pageshot/models"
	"github.com/pageshot/pageshot/output"
)

// Stats counts capture runs across handlers, for the health endpoint.
type Stats struct {
	Captures atomic.Int64
	Failures atomic.Int64
}

// Capture returns the handler for POST /api/v1/capture.
//
// Orchestration flow:
//  1. Parse & validate request. The output path is always derived
//     server-side, so clients cannot write outside the output directory.
//  2. Cache lookup (max_age_ms > 0).
//  3. Acquire a capture slot (bounded browser concurrency).
//  4. Capturer.CaptureFull → screenshot file + snapshot.
//  5. Cache store, respond 200.
func Capture(capt *capture.Capturer, cc *cache.SnapshotCache, sem chan struct{}, stats *Stats, outputDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// ── 1. Parse request ────────────────────────────────────────
		var req models.CaptureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.CaptureResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		req.Defaults()
		req.OutputPath = output.Resolve(outputDir, "", req.URL)

		// ── 2. Cache lookup ─────────────────────────────────────────
		key := cache.Key(req.URL, req.ViewportWidth, req.ViewportHeight, req.IsFullPage())
		if cc != nil && req.MaxAgeMs > 0 {
			if snap, hit := cc.Get(key, req.MaxAge()); hit {
				c.JSON(http.StatusOK, models.CaptureResponse{
					Success:       true,
					Cached:        true,
					ScreenshotURL: publicURL(snap.ScreenshotPath),
					Snapshot:      snap,
				})
				return
			}
		}

		// ── 3. Capture slot ─────────────────────────────────────────
		if err := acquireSlot(c.Request.Context(), sem); err != nil {
			respondError(c, models.NewCaptureError(
				models.ErrCodeTimeout,
				"canceled while waiting for a capture slot",
				err,
			))
			return
		}
		defer func() { <-sem }()

		// ── 4. Capture ──────────────────────────────────────────────
		stats.Captures.Add(1)
		snap, err := capt.CaptureFull(c.Request.Context(), &req)
		if err != nil {
			stats.Failures.Add(1)
			respondError(c, err)
			return
		}
		// Fold queue wait and parsing into the reported total.
		snap.Timing.TotalMs = time.Since(start).Milliseconds()

		// ── 5. Cache store + respond ────────────────────────────────
		if cc != nil && req.MaxAgeMs > 0 {
			cc.Set(key, snap)
		}
		c.JSON(http.StatusOK, models.CaptureResponse{
			Success:       true,
			ScreenshotURL: publicURL(snap.ScreenshotPath),
			Snapshot:      snap,
		})
	}
}

// acquireSlot blocks until a capture slot frees up or the client goes away.
func acquireSlot(ctx context.Context, sem chan struct{}) error {
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// publicURL maps a stored screenshot to its path under the static mount.
func publicURL(screenshotPath string) string {
	if screenshotPath == "" {
		return ""
	}
	return path.Join("/screenshots", filepath.Base(screenshotPath))
}

// respondError maps a CaptureError to the right HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error) {
	capErr, ok := err.(*models.CaptureError)
	if !ok {
		capErr = models.NewCaptureError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(capErr), models.CaptureResponse{
		Success: false,
		Error:   capErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.CaptureError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
