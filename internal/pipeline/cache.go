package pipeline

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// cachePayload records a finished build keyed by source content hash, so an
// unchanged script with an existing artifact skips the external builder.
type cachePayload struct {
	Schema   uint16
	Name     string
	Version  string
	Artifact string // artifact filename inside the output directory
}

// DiskCache stores build records under the user cache directory.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location for the given application name.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "builds", hex.EncodeToString(key[:])+".msgpack")
}

// Load returns the cached payload for a content hash, or ok=false when the
// entry is absent, unreadable, or from another schema version.
func (c *DiskCache) Load(key [32]byte) (cachePayload, bool) {
	if c == nil {
		return cachePayload{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key)) // #nosec G304 -- path derived from hash
	if err != nil {
		return cachePayload{}, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return cachePayload{}, false
	}
	if payload.Schema != cacheSchemaVersion {
		return cachePayload{}, false
	}
	return payload, true
}

// Store persists a payload for a content hash. Failures are returned but
// callers treat them as degradation, not build errors.
func (c *DiskCache) Store(key [32]byte, payload cachePayload) error {
	if c == nil {
		return errors.New("nil cache")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = cacheSchemaVersion
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return err
	}
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
