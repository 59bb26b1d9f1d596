// Package cache keeps finished digit searches on disk so that repeating a
// search for the same target is instant.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/HidekiAI/hairev-utils/internal/bignum"
)

// Current schema version - increment when Entry changes shape.
const schemaVersion uint16 = 1

// Entry is one cached search result.
type Entry struct {
	Schema uint16
	Target int
	Start  uint64 // first index the search examined
	Index  uint64
	Digits int
	Value  bignum.BigUint
}

// Covers reports whether a search for target starting at start would
// return e.Index. Digit counts never decrease along the sequence, so any
// start between e.Start and e.Index yields the same answer.
func (e *Entry) Covers(target int, start uint64) bool {
	return e != nil && e.Schema == schemaVersion && e.Target == target &&
		e.Start <= start && start <= e.Index
}

// DiskCache stores entries as msgpack files, one per target.
// Safe for concurrent use. A nil *DiskCache is a valid, empty cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDir(filepath.Join(base, app))
}

// OpenDir returns a cache rooted at dir, creating it if needed.
func OpenDir(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(target int) string {
	return filepath.Join(c.dir, "search", strconv.Itoa(target)+".mp")
}

// Put writes e atomically, replacing any entry for the same target.
func (c *DiskCache) Put(e *Entry) (err error) {
	if c == nil || e == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *e
	stored.Schema = schemaVersion

	p := c.pathFor(e.Target)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&stored); err != nil {
		_ = f.Close() //nolint:errcheck
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the entry for target. Entries written under another schema are
// reported as missing.
func (c *DiskCache) Get(target int) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(target))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %d: %w", target, err)
	}
	if e.Schema != schemaVersion || e.Target != target {
		return nil, false, nil
	}
	return &e, true, nil
}

// Lookup returns the cached entry for target when it answers a search
// starting at start.
func (c *DiskCache) Lookup(target int, start uint64) (*Entry, bool, error) {
	e, ok, err := c.Get(target)
	if err != nil || !ok || !e.Covers(target, start) {
		return nil, false, err
	}
	return e, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
