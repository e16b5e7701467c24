package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Capture   CaptureConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration // default: 5s
}

// BrowserConfig controls the Rod browser instances launched per capture run.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string
}

// CaptureConfig controls the service-side capture surface.
type CaptureConfig struct {
	// OutputDir is where the HTTP service writes screenshots and where the
	// CLI places derived filenames.
	OutputDir string // default: "screenshots"

	// MaxConcurrent caps simultaneous browser launches on the service.
	// Runs stay fully isolated; this only bounds resource usage.
	MaxConcurrent int // default: 2
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication. With no keys configured the
	// middleware lets everything through regardless.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per API key.
	Burst int // default: 3
}

// CacheConfig controls the snapshot cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached snapshots.
	MaxEntries int // default: 256
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            envOr("PAGESHOT_HOST", "0.0.0.0"),
			Port:            envIntOr("PAGESHOT_PORT", 8080),
			Mode:            envOr("PAGESHOT_MODE", "release"),
			ShutdownTimeout: envDurationOr("PAGESHOT_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Browser: BrowserConfig{
			Headless:  envBoolOr("PAGESHOT_HEADLESS", true),
			NoSandbox: envBoolOr("PAGESHOT_NO_SANDBOX", false),
			Bin:       os.Getenv("PAGESHOT_BROWSER_BIN"),
		},
		Capture: CaptureConfig{
			OutputDir:     envOr("PAGESHOT_OUTPUT_DIR", "screenshots"),
			MaxConcurrent: envIntOr("PAGESHOT_MAX_CONCURRENT", 2),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PAGESHOT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("PAGESHOT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PAGESHOT_RATE_RPS", 1.0),
			Burst:             envIntOr("PAGESHOT_RATE_BURST", 3),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PAGESHOT_CACHE_MAX_ENTRIES", 256),
		},
		Log: LogConfig{
			Level:  envOr("PAGESHOT_LOG_LEVEL", "info"),
			Format: envOr("PAGESHOT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
