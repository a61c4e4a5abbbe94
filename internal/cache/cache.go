// Package cache stores the most recent flight snapshot in a single file slot
// so closely spaced runs do not hammer the upstream API.
package cache

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/unklstewy/flyby/pkg/opensky"
)

const (
	// DefaultFileName is the cache slot inside the platform temp directory
	DefaultFileName = "flyby_cache.json"

	// DefaultTTL controls how long a stored snapshot stays fresh
	DefaultTTL = 2 * time.Minute
)

// DefaultPath returns the cache slot location in the platform temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultFileName)
}

// entry is the on-disk cache format.
type entry struct {
	// Data is the cached snapshot
	Data *opensky.Snapshot `json:"data"`

	// Expiry is the moment the entry stops being served
	Expiry time.Time `json:"expiry"`
}

// Cache is a single-slot snapshot cache. Every run shares the same slot:
// the last writer wins, and a corrupt slot is treated as a miss rather than
// a failure.
type Cache struct {
	path     string
	ttl      time.Duration
	disabled bool
}

// New creates a cache over the given file slot. An empty path selects
// DefaultPath, a non-positive ttl selects DefaultTTL. A disabled cache loads
// nothing and stores nothing.
func New(path string, ttl time.Duration, disabled bool) *Cache {
	if path == "" {
		path = DefaultPath()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{path: path, ttl: ttl, disabled: disabled}
}

// Load returns the cached snapshot, or nil on any kind of miss: cache
// disabled, slot missing, content unreadable or corrupt, entry expired.
// An expired entry is left in place; the next Store overwrites it.
func (c *Cache) Load() *opensky.Snapshot {
	if c.disabled {
		return nil
	}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read cache file %s: %v", c.path, err)
		}
		return nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Printf("Warning: ignoring corrupt cache file %s: %v", c.path, err)
		return nil
	}

	if e.Data == nil || !time.Now().Before(e.Expiry) {
		return nil
	}

	return e.Data
}

// Store writes the snapshot into the slot with a fresh expiry. Persist
// failures are logged and absorbed.
func (c *Cache) Store(snap *opensky.Snapshot) {
	if c.disabled || snap == nil {
		return
	}

	raw, err := json.Marshal(entry{Data: snap, Expiry: time.Now().Add(c.ttl)})
	if err != nil {
		log.Printf("Warning: could not encode cache entry: %v", err)
		return
	}

	if err := os.WriteFile(c.path, raw, 0644); err != nil {
		log.Printf("Warning: could not write cache file %s: %v", c.path, err)
	}
}
