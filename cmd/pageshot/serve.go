package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageshot/pageshot/api"
	"github.com/pageshot/pageshot/cache"
	"github.com/pageshot/pageshot/capture"
	"github.com/pageshot/pageshot/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the capture HTTP service",
		Long: `serve starts the HTTP API configured through PAGESHOT_* environment
variables: POST /api/v1/capture, POST /api/v1/screenshot, GET /api/v1/health,
and captured images under /screenshots/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// ── 1. Load configuration ───────────────────────────────
			cfg := config.Load()

			// ── 2. Initialise structured logging ────────────────────
			initLogger(cfg.Log)
			slog.Info("pageshot starting",
				"host", cfg.Server.Host,
				"port", cfg.Server.Port,
				"mode", cfg.Server.Mode,
				"maxConcurrent", cfg.Capture.MaxConcurrent,
				"outputDir", cfg.Capture.OutputDir,
			)

			// ── 3. Capturer + snapshot cache ────────────────────────
			capt := capture.New(cfg.Browser)
			cc := cache.New(cfg.Cache.MaxEntries)

			// ── 4. Setup router ─────────────────────────────────────
			startTime := time.Now()
			router := api.NewRouter(capt, cc, cfg, startTime)

			// ── 5. Start HTTP server ────────────────────────────────
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			srv := &http.Server{
				Addr:    addr,
				Handler: router,
			}

			go func() {
				slog.Info("HTTP server listening", "addr", addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("HTTP server error", "error", err)
					os.Exit(1)
				}
			}()

			// ── 6. Graceful shutdown ────────────────────────────────
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			sig := <-quit
			slog.Info("shutdown signal received", "signal", sig.String())

			// Give in-flight captures time to finish writing.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("HTTP server forced shutdown", "error", err)
			} else {
				slog.Info("HTTP server drained gracefully")
			}

			slog.Info("pageshot stopped")
			return nil
		},
	}
}
