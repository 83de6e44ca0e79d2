// Package session holds short-lived server-side markers: which email the
// current browser session signed up with, and whether it passed the admin
// gate. The browser only ever holds an opaque token.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is a small TTL'd key-value surface. Get returns ("", nil) when a key
// is absent or expired.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// NewToken mints an opaque session token.
func NewToken() string {
	return uuid.New().String()
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when Redis is not
// configured. Expired keys are dropped lazily on access and opportunistically
// on writes.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ops     uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return "", nil
	}
	return entry.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = memoryEntry{value: value, expiresAt: expiresAt}

	// Infrequent sweep to keep abandoned sessions from accumulating.
	m.ops++
	if m.ops%1024 == 0 {
		now := time.Now()
		for k, e := range m.entries {
			if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
				delete(m.entries, k)
			}
		}
	}

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
