// Package cache memoizes lex/parse results by source-text content hash, so
// the CLI's run command can re-execute identical source without re-lexing
// or re-parsing. The interp package's Run/RunAsync entry points parse
// afresh on every call and do not use it.
//
// Entries are keyed by a deterministic content hash (blake2b-256, chosen
// for speed on the larger module-source inputs this package hashes) behind
// a mutex guarding concurrent access.
package cache

import (
	"sync"

	"golang.org/x/crypto/blake2b"
)

// Key is a content-derived cache key for a source string.
type Key [32]byte

// KeyOf hashes source with blake2b-256.
func KeyOf(source string) Key {
	return blake2b.Sum256([]byte(source))
}

// ParseCache memoizes an arbitrary parse result (the caller supplies the
// concrete type, typically *ast.Module) keyed by source content.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
}

type entry struct {
	value any
	err   error
}

// New creates an empty ParseCache.
func New() *ParseCache {
	return &ParseCache{entries: make(map[Key]*entry)}
}

// Get returns a cached result for source, if present.
func (c *ParseCache) Get(source string) (value any, err error, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[KeyOf(source)]
	if !ok {
		return nil, nil, false
	}
	return e.value, e.err, true
}

// Store records the result of parsing source, replacing any prior entry for
// the same content.
func (c *ParseCache) Store(source string, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[KeyOf(source)] = &entry{value: value, err: err}
}

// Len reports the number of distinct source texts currently cached.
func (c *ParseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear empties the cache.
func (c *ParseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*entry)
}

// GetOrCompute returns the cached result for source, computing and storing
// it via compute on a miss. Concurrent callers may race to compute the same
// miss; the cache simply keeps whichever Store call lands last, since
// compute is expected to be a pure function of source.
func (c *ParseCache) GetOrCompute(source string, compute func() (any, error)) (any, error) {
	if v, err, ok := c.Get(source); ok {
		return v, err
	}
	v, err := compute()
	c.Store(source, v, err)
	return v, err
}
