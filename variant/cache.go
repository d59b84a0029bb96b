// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package variant

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/softmask"
)

// Cache errors.
var (
	// ErrNilFactory is returned when Acquire needs to create a value but no
	// create function was supplied.
	ErrNilFactory = errors.New("variant: create function is nil")

	// ErrNilHandle is returned when releasing a nil handle.
	ErrNilHandle = errors.New("variant: handle is nil")

	// ErrReleased is returned when a handle is released twice, or after
	// its entry was purged. This is a contract violation by the caller.
	ErrReleased = errors.New("variant: handle already released")

	// ErrForeignHandle is returned when a handle is released into a cache
	// that did not issue it.
	ErrForeignHandle = errors.New("variant: handle belongs to another cache")
)

// shardCount is the number of shards for reduced lock contention.
// Must be a power of 2 for fast modulo via bitwise AND.
const (
	shardCount = 16
	shardMask  = shardCount - 1
)

// Resource is a value whose underlying resource must be freed when the
// last holder lets go of it.
type Resource interface {
	Destroy()
}

// Cache is a reference-counted store of shared values keyed by a
// structural Key.
//
// Acquire returns the live value for a key, creating it on a miss. Every
// successful Acquire hands out a Handle that must be released exactly
// once; when the last handle for a key is released the value is destroyed
// and the entry removed. At most one live value exists per key.
//
// Thread Safety:
// Cache is safe for concurrent use. Entries are spread over 16 shards,
// each with its own mutex; the create function runs under the shard lock
// so concurrent misses on the same key create a single value.
type Cache[V Resource] struct {
	shards [shardCount]*shard[V]

	// Statistics (atomic for zero-allocation reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	created   atomic.Uint64
	destroyed atomic.Uint64
}

// shard is a single shard of the cache.
type shard[V Resource] struct {
	mu      sync.Mutex
	entries map[Key]*entry[V]
}

// entry holds a shared value and its holder count.
type entry[V Resource] struct {
	key   Key
	value V
	refs  int
}

// Handle is one holder's reference to a cached value.
// A Handle is owned by a single holder and is not safe for concurrent use.
type Handle[V Resource] struct {
	cache    *Cache[V]
	entry    *entry[V]
	key      Key
	value    V
	released bool
}

// Key returns the key the handle was acquired with.
func (h *Handle[V]) Key() Key { return h.key }

// Value returns the shared value.
func (h *Handle[V]) Value() V { return h.value }

// Released reports whether the handle has been released.
func (h *Handle[V]) Released() bool { return h.released }

// New creates an empty cache.
func New[V Resource]() *Cache[V] {
	c := &Cache[V]{}
	for i := range c.shards {
		c.shards[i] = &shard[V]{
			entries: make(map[Key]*entry[V]),
		}
	}
	return c
}

// getShard returns the shard for a given key.
func (c *Cache[V]) getShard(key Key) *shard[V] {
	return c.shards[shardHash(key)&shardMask]
}

// Acquire returns a handle to the value cached under key.
//
// On a hit the holder count is incremented and the shared value returned.
// On a miss create is called (under the shard lock) and its value inserted
// with a holder count of one. If create fails nothing is inserted and the
// error is returned wrapped.
func (c *Cache[V]) Acquire(key Key, create func() (V, error)) (*Handle[V], error) {
	s := c.getShard(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.refs++
		c.hits.Add(1)
		softmask.Logger().Debug("variant: cache hit", "key", key, "refs", e.refs)
		return &Handle[V]{cache: c, entry: e, key: key, value: e.value}, nil
	}

	c.misses.Add(1)
	if create == nil {
		return nil, ErrNilFactory
	}
	value, err := create()
	if err != nil {
		return nil, fmt.Errorf("variant: create %s: %w", key, err)
	}

	e := &entry[V]{key: key, value: value, refs: 1}
	s.entries[key] = e
	c.created.Add(1)
	softmask.Logger().Info("variant: created", "key", key)

	return &Handle[V]{cache: c, entry: e, key: key, value: value}, nil
}

// Release gives up h. When h was the last holder of its key the value is
// destroyed and the entry removed.
//
// Releasing a handle twice is a programming error: it is logged and
// reported as ErrReleased, and never touches the holder count.
func (c *Cache[V]) Release(h *Handle[V]) error {
	if h == nil {
		return ErrNilHandle
	}
	if h.cache != c {
		softmask.Logger().Warn("variant: release into foreign cache", "key", h.key)
		return ErrForeignHandle
	}
	if h.released {
		softmask.Logger().Warn("variant: double release", "key", h.key)
		return ErrReleased
	}
	h.released = true

	s := c.getShard(h.key)

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[h.key]
	if !ok || e != h.entry {
		// The entry was purged while the handle was outstanding.
		softmask.Logger().Warn("variant: release of purged entry", "key", h.key)
		return ErrReleased
	}

	e.refs--
	if e.refs > 0 {
		return nil
	}
	if e.refs < 0 {
		softmask.Logger().Warn("variant: holder count underflow", "key", h.key, "refs", e.refs)
	}

	delete(s.entries, h.key)
	e.value.Destroy()
	c.destroyed.Add(1)
	softmask.Logger().Info("variant: destroyed", "key", h.key)
	return nil
}

// Swap moves a holder from its current handle to key.
//
// If h is live and already holds key, h is returned unchanged and the
// holder count is not touched. Otherwise h (if any) is released first and
// a handle for key acquired. On error the old handle has been released and
// nil is returned.
func (c *Cache[V]) Swap(h *Handle[V], key Key, create func() (V, error)) (*Handle[V], error) {
	if h != nil && !h.released && h.cache == c && h.key == key && c.live(h) {
		return h, nil
	}
	if h != nil && !h.released {
		_ = c.Release(h)
	}
	return c.Acquire(key, create)
}

// live reports whether the entry behind h is still the cached one.
func (c *Cache[V]) live(h *Handle[V]) bool {
	s := c.getShard(h.key)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[h.key] == h.entry
}

// RefCount returns the number of live holders of key (0 if absent).
func (c *Cache[V]) RefCount(key Key) int {
	s := c.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e.refs
	}
	return 0
}

// Contains reports whether a live value is cached under key.
func (c *Cache[V]) Contains(key Key) bool {
	return c.RefCount(key) > 0
}

// Len returns the total number of live entries across all shards.
func (c *Cache[V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Purge destroys every cached value regardless of outstanding holders and
// empties the cache. Handles issued before Purge report ErrReleased when
// released. Intended for shutdown.
func (c *Cache[V]) Purge() {
	for _, s := range c.shards {
		s.mu.Lock()
		for key, e := range s.entries {
			e.value.Destroy()
			delete(s.entries, key)
			c.destroyed.Add(1)
		}
		s.mu.Unlock()
	}
}

// Stats contains cache statistics for monitoring.
type Stats struct {
	// Len is the number of live entries.
	Len int
	// Hits is the number of acquisitions served by an existing entry.
	Hits uint64
	// Misses is the number of acquisitions that required creation.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 with no acquisitions.
	HitRate float64
	// Created is the number of values created.
	Created uint64
	// Destroyed is the number of values destroyed.
	Destroyed uint64
}

// Stats returns current cache statistics.
func (c *Cache[V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:       c.Len(),
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Created:   c.created.Load(),
		Destroyed: c.destroyed.Load(),
	}
}

// ResetStats resets the hit and miss counters to zero.
func (c *Cache[V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
