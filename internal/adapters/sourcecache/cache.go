// Package sourcecache implements the versioned parse cache shared across
// rebuilds. Entries are removed on invalidation, never mutated in place; the
// next read reparses and is stored at a strictly higher version.
package sourcecache

import (
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"

	"github.com/benjaminforras/analog/internal/core/domain"
	"github.com/benjaminforras/analog/internal/core/ports"
)

var _ ports.SourceCache = (*Cache)(nil)

type entry struct {
	version     int64
	fingerprint uint64
	text        string
	module      *domain.Module
	diags       []domain.Diagnostic
}

// Cache implements ports.SourceCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[unique.Handle[string]]*entry
	// clock is the cache-level version counter. Any Put assigns the next
	// tick, so a reparse after invalidation always lands on a strictly
	// higher version than the removed entry carried.
	clock int64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[unique.Handle[string]]*entry),
	}
}

func key(id string) unique.Handle[string] {
	return unique.Make(domain.NormalizeID(id))
}

// Get returns the cached parse and its parse diagnostics, if present.
func (c *Cache) Get(id string) (*domain.Module, []domain.Diagnostic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key(id)]
	if !ok {
		return nil, nil, false
	}
	return e.module, e.diags, true
}

// Text returns the last-read text for a file id, if present.
func (c *Cache) Text(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key(id)]
	if !ok {
		return "", false
	}
	return e.text, true
}

// Version returns the version of the cached entry, if present.
func (c *Cache) Version(id string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key(id)]
	if !ok {
		return 0, false
	}
	return e.version, true
}

// Fingerprint returns the content hash of the cached text, if present.
func (c *Cache) Fingerprint(id string) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key(id)]
	if !ok {
		return 0, false
	}
	return e.fingerprint, true
}

// Put stores a parse with its source text and parse diagnostics, and returns
// the assigned version.
func (c *Cache) Put(id, text string, m *domain.Module, diags []domain.Diagnostic) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.clock++
	c.entries[key(id)] = &entry{
		version:     c.clock,
		fingerprint: xxhash.Sum64String(text),
		text:        text,
		module:      m,
		diags:       diags,
	}
	return c.clock
}

// Invalidate removes the entries for the given ids.
func (c *Cache) Invalidate(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.entries, key(id))
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
