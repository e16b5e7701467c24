// Package cache keeps recent page snapshots in memory so the HTTP service
// can answer repeat captures without launching a browser.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/pageshot/pageshot/models"
)

// entry holds a cached snapshot with its capture timestamp.
type entry struct {
	snapshot   *models.PageSnapshot
	capturedAt time.Time
}

// SnapshotCache is an in-memory snapshot store, safe for concurrent use.
type SnapshotCache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
}

// New creates a SnapshotCache bounded at maxEntries. A background goroutine
// evicts entries older than 1 hour every 5 minutes.
func New(maxEntries int) *SnapshotCache {
	c := &SnapshotCache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
	}

	go c.cleanupLoop()
	return c
}

// Key derives a cache key from the capture parameters that change what a
// snapshot contains: the URL, the emulated viewport, and the full-page flag.
func Key(url string, width, height int, fullPage bool) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%dx%d|%t", url, width, height, fullPage)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached snapshot captured within maxAge of now. A maxAge of
// zero or less disables the lookup entirely.
func (c *SnapshotCache) Get(key string, maxAge time.Duration) (*models.PageSnapshot, bool) {
	if maxAge <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Since(e.capturedAt) > maxAge {
		return nil, false
	}
	return e.snapshot, true
}

// Set stores a snapshot. At capacity a random entry is evicted to make room
// (map iteration order is random in Go).
func (c *SnapshotCache) Set(key string, snap *models.PageSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		snapshot:   snap,
		capturedAt: time.Now(),
	}
}

// cleanupLoop evicts entries older than 1 hour every 5 minutes.
func (c *SnapshotCache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-1 * time.Hour)
		c.mu.Lock()
		for k, e := range c.store {
			if e.capturedAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
