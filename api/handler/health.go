package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageshot/pageshot/models"
)

const apiVersion = "0.1.0"

// Health returns the handler for GET /api/v1/health.
//
// Status degrades when more than half of all runs failed (once there are
// enough runs to mean anything), which usually points at a broken Chromium
// install or an unreachable network.
func Health(stats *Stats, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		captures := stats.Captures.Load()
		failures := stats.Failures.Load()

		status := "healthy"
		if captures >= 10 && failures*2 > captures {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   status,
			Uptime:   time.Since(startTime).Round(time.Second).String(),
			Version:  apiVersion,
			Captures: captures,
			Failures: failures,
		})
	}
}
