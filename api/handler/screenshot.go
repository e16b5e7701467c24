package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageshot/pageshot/capture"
	"github.com/pageshot/pageshot/models"
	"github.com/pageshot/pageshot/output"
)

// Screenshot returns the handler for POST /api/v1/screenshot: the capture
// pipeline without content extraction, for callers that only want pixels.
func Screenshot(capt *capture.Capturer, sem chan struct{}, stats *Stats, outputDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req models.CaptureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ScreenshotResponse{
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

		if err := acquireSlot(c.Request.Context(), sem); err != nil {
			respondScreenshotError(c, models.NewCaptureError(
				models.ErrCodeTimeout,
				"canceled while waiting for a capture slot",
				err,
			))
			return
		}
		defer func() { <-sem }()

		stats.Captures.Add(1)
		if err := capt.CaptureImage(c.Request.Context(), &req); err != nil {
			stats.Failures.Add(1)
			respondScreenshotError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ScreenshotResponse{
			Success:        true,
			ScreenshotPath: req.OutputPath,
			ScreenshotURL:  publicURL(req.OutputPath),
			Timing: &models.TimingInfo{
				TotalMs: time.Since(start).Milliseconds(),
			},
		})
	}
}

// respondScreenshotError is respondError for the screenshot response shape.
func respondScreenshotError(c *gin.Context, err error) {
	capErr, ok := err.(*models.CaptureError)
	if !ok {
		capErr = models.NewCaptureError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(capErr), models.ScreenshotResponse{
		Success: false,
		Error:   capErr.ToDetail(),
	})
}
