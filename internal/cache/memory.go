// Hybridrec - Hybrid Product Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-process Store with per-entry TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	stats   Stats
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// Stats tracks cache performance counters.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// NewMemoryStore creates a MemoryStore whose expired entries are swept every
// cleanupInterval. A non-positive interval disables the sweeper; expired
// entries are then only dropped when read.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	m.stats.LastCleanup = m.now()

	if cleanupInterval > 0 {
		go m.cleanupLoop(cleanupInterval)
	}
	return m
}

// Get returns a copy of the stored bytes or ErrNotFound.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, exists := m.entries[key]
	m.mu.RUnlock()

	if !exists {
		m.recordMiss()
		return nil, ErrNotFound
	}

	if !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		m.recordMiss()
		m.recordEviction()
		return nil, ErrNotFound
	}

	m.recordHit()
	out := make([]byte, len(entry.data))
	copy(out, entry.data)
	return out, nil
}

// SetWithTTL stores a copy of value.
func (m *MemoryStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	data := make([]byte, len(value))
	copy(data, value)

	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, expiresAt: m.now().Add(ttl)}
	total := int64(len(m.entries))
	m.mu.Unlock()

	m.stats.mu.Lock()
	m.stats.TotalKeys = total
	m.stats.mu.Unlock()
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	_, existed := m.entries[key]
	delete(m.entries, key)
	m.mu.Unlock()

	if existed {
		m.recordEviction()
	}
	return nil
}

// Keys returns the live keys matching pattern, sorted.
func (m *MemoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	now := m.now()

	m.mu.RLock()
	keys := make([]string, 0)
	for key, entry := range m.entries {
		if now.Before(entry.expiresAt) && matchPattern(pattern, key) {
			keys = append(keys, key)
		}
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	return keys, nil
}

// Close stops the background sweeper.
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

// GetStats returns a snapshot of the counters.
func (m *MemoryStore) GetStats() Stats {
	m.stats.mu.RLock()
	defer m.stats.mu.RUnlock()

	return Stats{
		Hits:        m.stats.Hits,
		Misses:      m.stats.Misses,
		Evictions:   m.stats.Evictions,
		TotalKeys:   m.stats.TotalKeys,
		LastCleanup: m.stats.LastCleanup,
	}
}

// HitRate returns the hit rate as a percentage.
func (m *MemoryStore) HitRate() float64 {
	stats := m.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup removes all expired entries
func (m *MemoryStore) cleanup() {
	now := m.now()

	m.mu.Lock()
	evictions := int64(0)
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
			evictions++
		}
	}
	total := int64(len(m.entries))
	m.mu.Unlock()

	m.stats.mu.Lock()
	m.stats.Evictions += evictions
	m.stats.TotalKeys = total
	m.stats.LastCleanup = now
	m.stats.mu.Unlock()
}

func (m *MemoryStore) recordHit() {
	m.stats.mu.Lock()
	m.stats.Hits++
	m.stats.mu.Unlock()
}

func (m *MemoryStore) recordMiss() {
	m.stats.mu.Lock()
	m.stats.Misses++
	m.stats.mu.Unlock()
}

func (m *MemoryStore) recordEviction() {
	m.stats.mu.Lock()
	m.stats.Evictions++
	m.stats.mu.Unlock()
}
