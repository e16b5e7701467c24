package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("Mode = %q, want release", cfg.Server.Mode)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.Server.ShutdownTimeout)
	}
	if !cfg.Browser.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.Browser.NoSandbox {
		t.Error("NoSandbox should default to false")
	}
	if cfg.Capture.OutputDir != "screenshots" {
		t.Errorf("OutputDir = %q, want screenshots", cfg.Capture.OutputDir)
	}
	if cfg.Capture.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Capture.MaxConcurrent)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled should default to true")
	}
	if len(cfg.Auth.APIKeys) != 0 {
		t.Errorf("APIKeys = %v, want empty", cfg.Auth.APIKeys)
	}
	if cfg.RateLimit.RequestsPerSecond != 1.0 {
		t.Errorf("RequestsPerSecond = %v, want 1.0", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst != 3 {
		t.Errorf("Burst = %d, want 3", cfg.RateLimit.Burst)
	}
	if cfg.Cache.MaxEntries != 256 {
		t.Errorf("Cache.MaxEntries = %d, want 256", cfg.Cache.MaxEntries)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want info/json", cfg.Log)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PAGESHOT_HOST", "127.0.0.1")
	t.Setenv("PAGESHOT_PORT", "9090")
	t.Setenv("PAGESHOT_MODE", "debug")
	t.Setenv("PAGESHOT_SHUTDOWN_TIMEOUT", "10s")
	t.Setenv("PAGESHOT_HEADLESS", "false")
	t.Setenv("PAGESHOT_NO_SANDBOX", "true")
	t.Setenv("PAGESHOT_BROWSER_BIN", "/usr/bin/chromium")
	t.Setenv("PAGESHOT_OUTPUT_DIR", "/var/captures")
	t.Setenv("PAGESHOT_MAX_CONCURRENT", "8")
	t.Setenv("PAGESHOT_AUTH_ENABLED", "false")
	t.Setenv("PAGESHOT_API_KEYS", "key-a, key-b,,key-c")
	t.Setenv("PAGESHOT_RATE_RPS", "2.5")
	t.Setenv("PAGESHOT_RATE_BURST", "10")
	t.Setenv("PAGESHOT_CACHE_MAX_ENTRIES", "64")
	t.Setenv("PAGESHOT_LOG_LEVEL", "debug")
	t.Setenv("PAGESHOT_LOG_FORMAT", "text")

	cfg := Load()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "debug" {
		t.Errorf("Mode = %q", cfg.Server.Mode)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Browser.Headless {
		t.Error("Headless should be false")
	}
	if !cfg.Browser.NoSandbox {
		t.Error("NoSandbox should be true")
	}
	if cfg.Browser.Bin != "/usr/bin/chromium" {
		t.Errorf("Bin = %q", cfg.Browser.Bin)
	}
	if cfg.Capture.OutputDir != "/var/captures" {
		t.Errorf("OutputDir = %q", cfg.Capture.OutputDir)
	}
	if cfg.Capture.MaxConcurrent != 8 {
		t.Errorf("MaxConcurrent = %d", cfg.Capture.MaxConcurrent)
	}
	if cfg.Auth.Enabled {
		t.Error("Auth.Enabled should be false")
	}
	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Auth.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Auth.APIKeys, want)
	}
	for i, k := range want {
		if cfg.Auth.APIKeys[i] != k {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Auth.APIKeys[i], k)
		}
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst != 10 {
		t.Errorf("Burst = %d", cfg.RateLimit.Burst)
	}
	if cfg.Cache.MaxEntries != 64 {
		t.Errorf("Cache.MaxEntries = %d", cfg.Cache.MaxEntries)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("PAGESHOT_PORT", "not-a-number")
	t.Setenv("PAGESHOT_HEADLESS", "maybe")
	t.Setenv("PAGESHOT_RATE_RPS", "fast")
	t.Setenv("PAGESHOT_SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", cfg.Server.Port)
	}
	if !cfg.Browser.Headless {
		t.Error("Headless should fall back to true")
	}
	if cfg.RateLimit.RequestsPerSecond != 1.0 {
		t.Errorf("RequestsPerSecond = %v, want default 1.0", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default 5s", cfg.Server.ShutdownTimeout)
	}
}
