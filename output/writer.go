// Package output handles screenshot persistence: writing image bytes to disk
// and deriving stable, portable file names from capture targets.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// TimestampedName derives a PNG file name from the target URL's host, e.g.
// capture_example_com_1714516543.png. Unparseable URLs fall back to "page".
func TimestampedName(rawURL string) string {
	host := "page"
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	return fmt.Sprintf("capture_%s_%d.png", sanitize(host), time.Now().Unix())
}

// Resolve returns explicit when set, otherwise a timestamped name under dir.
func Resolve(dir, explicit, rawURL string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(dir, TimestampedName(rawURL))
}

// sanitize keeps file names portable: every byte outside [a-zA-Z0-9_-]
// becomes an underscore.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
