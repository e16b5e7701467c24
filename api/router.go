// Package api wires the HTTP surface: routing, auth, rate limiting, and the
// capture handlers.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageshot/pageshot/api/handler"
	"github.com/pageshot/pageshot/api/middleware"
	"github.com/pageshot/pageshot/cache"
	"github.com/pageshot/pageshot/capture"
	"github.com/pageshot/pageshot/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health stays outside auth so monitoring probes always work, and the
// static screenshot mount stays outside too so returned screenshot URLs are
// directly fetchable.
func NewRouter(capt *capture.Capturer, cc *cache.SnapshotCache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	// Captured images, served under the same names the API returns.
	r.Static("/screenshots", cfg.Capture.OutputDir)

	sem := make(chan struct{}, cfg.Capture.MaxConcurrent)
	stats := &handler.Stats{}

	v1 := r.Group("/api/v1")

	// Health, no auth required.
	v1.GET("/health", handler.Health(stats, startTime))

	// Protected group: auth, then rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/capture", handler.Capture(capt, cc, sem, stats, cfg.Capture.OutputDir))
	protected.POST("/screenshot", handler.Screenshot(capt, sem, stats, cfg.Capture.OutputDir))

	return r
}
