// Package cache provides a process-lifetime expiring key→value store for
// research and signal results. Entries are invalidated on read when older
// than the caller's freshness window; there is no other eviction. Values are
// idempotent derivations of the same idea text, so last-write-wins on
// concurrent writers is acceptable.
package cache

import (
	"sync"
	"time"
)

// Cache is the capability surface injected into research and signal
// components.
type Cache interface {
	// Get returns the value stored under key if it is younger than maxAge.
	// A maxAge of zero or less always misses.
	Get(key string, maxAge time.Duration) ([]byte, bool)
	Set(key string, val []byte)
}

type entry struct {
	val      []byte
	storedAt time.Time
}

// Memory is an in-memory Cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time // injectable for testing
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// WithNow sets a fixed clock for testing.
func (m *Memory) WithNow(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(key string, maxAge time.Duration) ([]byte, bool) {
	if maxAge <= 0 {
		return nil, false
	}
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.storedAt) > maxAge {
		return nil, false
	}
	return e.val, true
}

func (m *Memory) Set(key string, val []byte) {
	m.mu.Lock()
	m.entries[key] = entry{val: val, storedAt: m.now()}
	m.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
